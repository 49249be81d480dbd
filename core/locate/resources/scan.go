package resources

import (
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/ftfont/core/font"
	"github.com/npillmayer/ftfont/core/font/fontregistry"
)

func isFontFile(fontpath string) bool {
	switch strings.ToLower(filepath.Ext(fontpath)) {
	case ".ttf", ".otf":
		return true
	}
	return false
}

// describeFontFile guesses a descriptor from a font's file name.
func describeFontFile(fontpath string) font.Descriptor {
	style, weight := fontregistry.GuessStyleAndWeight(fontpath)
	return font.Descriptor{
		Family: fontregistry.FamilyFromFilename(fontpath),
		Path:   fontpath,
		Style:  style,
		Weight: weight,
	}
}

// loadDirectoryFonts stores the fonts found in the platform's standard font
// directories in a registry. It returns the number of font files found.
func loadDirectoryFonts(fr *fontregistry.Registry) int {
	n := 0
	for _, fontpath := range findfont.List() {
		if !isFontFile(fontpath) {
			continue
		}
		fr.StoreFont(describeFontFile(fontpath))
		n++
	}
	tracer().Infof("found %d font files in font directories", n)
	return n
}

// findFontFile looks up a font by file name, e.g. "DejaVuSans.ttf".
func findFontFile(name string) (string, bool) {
	if !isFontFile(name) {
		return "", false
	}
	fontpath, err := findfont.Find(name)
	if err != nil || fontpath == "" {
		tracer().Debugf("font file %s not found: %v", name, err)
		return "", false
	}
	tracer().Debugf("%s is a system font", name)
	return fontpath, true
}
