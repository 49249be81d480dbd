/*
Package fontregistry manages a registry of font families found on a system.

Each family is registered under a simplified name and maps style variants
(bold and/or italic) to font file paths. Families which are not present
may be reachable through alias groups, e.g. "helvetica" resolving to
whatever sans-serif family is installed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ftfont.registry'
func tracer() tracing.Trace {
	return tracing.Select("ftfont.registry")
}
