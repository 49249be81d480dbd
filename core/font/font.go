/*
Package font is for loading scalable fonts.

We stick to the following nomenclature:

* A "scalable font" is a font file parsed into memory, i.e. a variant of a
typeface with a certain weight and slant. An example is "Go Sans Regular".

* A "face" is a scalable font prepared for a certain size and resolution.
Faces live in package ftengine.

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"io"
	"os"
	"sync"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'ftfont.font'.
func tracer() tracing.Trace {
	return tracing.Select("ftfont.font")
}

// ScalableFont is a parsed OpenType font together with its raw data.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, "internal" for the fallback font
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, not safe for concurrent use
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.WrapError(err, core.EMISSING, "font file not found: %s", fontfile)
		}
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ReadOpenTypeFont loads an OpenType font from a reader, e.g. an open file
// or an embedded resource.
func ReadOpenTypeFont(r io.Reader) (*ScalableFont, error) {
	bytez, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseOpenTypeFont(bytez)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font data")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	tracer().Debugf("parsed font %q", f.Fontname)
	return
}

// --- Fallback font ---------------------------------------------------------

// FallbackFontFile is the pseudo file name of the fallback font.
const FallbackFontFile = "goregular.ttf"

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	var err error
	gofont := &ScalableFont{
		Fontname: "Go Sans",
		Filepath: "internal",
		Binary:   goregular.TTF,
	}
	gofont.SFNT, err = sfnt.Parse(gofont.Binary)
	if err != nil {
		panic("cannot load fallback font") // this cannot happen
	}
	return gofont
}

// --- System font descriptors ----------------------------------------------

// Descriptor describes a font file found on the system.
type Descriptor struct {
	Family string
	Path   string
	Style  xfont.Style
	Weight xfont.Weight
}

// IsBold is true if the descriptor's weight is semi-bold or heavier.
func (d Descriptor) IsBold() bool {
	return d.Weight >= xfont.WeightSemiBold
}

// IsItalic is true for italic and oblique styles.
func (d Descriptor) IsItalic() bool {
	return d.Style == xfont.StyleItalic || d.Style == xfont.StyleOblique
}
