/*
Package ftfont provides fonts with the API of a simple, older font module,
on top of the font engine of package ftengine.

A Font is created from a font file and a size, or by family name from the
fonts installed on the system (see SysFont). It renders text into images
and answers a few metric queries:

	f, err := ftfont.SysFont("DejaVu Sans, Arial", 16, false, false, nil)
	if err != nil {
		return err
	}
	img, err := f.Render("Hello World", true, color.Black, nil)

Fonts are configured once for a fixed rendering policy: full Unicode
text, no kerning, rectangles measured from the baseline origin and padded
to the full line height. Bold and italic are synthesized by the engine if
no font file for the style is installed.

A Font is not safe for concurrent use. Clients sharing a font between
goroutines have to synchronize access.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ftfont

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'ftfont'.
func tracer() tracing.Trace {
	return tracing.Select("ftfont")
}
