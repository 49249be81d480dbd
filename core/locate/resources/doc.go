/*
Package resources locates fonts installed on a system.

System fonts are enumerated once per process. If fontconfig is available,
the output of

   fc-list : file family style

is used (and cached in the user's configuration directory, if an
application key is configured). Otherwise the standard font directories
are scanned and family names and styles are guessed from file names.

Font matching never fails: a family name which cannot be found resolves
to the empty path, which denotes the built-in default font.

Configuration keys:

   app-key      names the per-user folder for the cached fontconfig list
   fontconfig   absolute path of the 'fc-list' binary (default: search PATH)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'ftfont.resources'.
func tracer() tracing.Trace {
	return tracing.Select("ftfont.resources")
}
