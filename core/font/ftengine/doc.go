/*
Package ftengine is the font engine the ftfont facade delegates to.

A Face is a scalable font prepared for a size and a device resolution.
It carries a set of mutable rendering flags (see Settings), in the manner
of FreeType-based font objects: faux bold ("wide"), faux italic
("oblique"), underline, kerning, padding of bounding boxes, and the
choice of the baseline origin as the reference point of rectangles.

Rasterization and font-file parsing are done by golang.org/x/image.
This package composes glyph masks into text images and computes
text rectangles and glyph metrics.

Faces are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ftengine

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ftfont.engine'.
func tracer() tracing.Trace {
	return tracing.Select("ftfont.engine")
}
