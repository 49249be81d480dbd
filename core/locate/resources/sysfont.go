package resources

import (
	"strings"
	"sync"

	"github.com/npillmayer/ftfont/core/font/fontregistry"
)

var loadSystemFontsTask sync.Once

// SystemFonts returns the global registry, filled with the fonts installed
// on the system. Fonts are enumerated on first call.
func SystemFonts() *fontregistry.Registry {
	loadSystemFontsTask.Do(func() {
		fr := fontregistry.GlobalRegistry()
		if !loadFontConfigFonts(fr) {
			loadDirectoryFonts(fr)
		}
		fr.CreateAliases()
		tracer().Infof("%d system fonts registered", fr.Len())
	})
	return fontregistry.GlobalRegistry()
}

// GetFonts returns the simplified names of all font families installed on
// the system.
func GetFonts() []string {
	return SystemFonts().Families()
}

// FontsWithPrefix returns the names of installed font families starting
// with prefix.
func FontsWithPrefix(prefix string) []string {
	return SystemFonts().FamiliesWithPrefix(prefix)
}

// Match is the result of resolving a list of font family names.
type Match struct {
	Path   string // font file, "" denotes the built-in default font
	Bold   bool   // bold has to be synthesized
	Italic bool   // italic has to be synthesized
}

// Resolve searches a registry for the first available family of a
// comma-separated list of names. If a requested style is not available as
// a font file of its own, the match asks for it to be synthesized.
// Resolve never fails: if no family is found, the match denotes the
// built-in default font.
func Resolve(fr *fontregistry.Registry, names string, bold, italic bool) Match {
	var gotBold, gotItalic bool
	var fontpath string
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if p, ok := findFontFile(name); ok {
			d := describeFontFile(p)
			fontpath, gotBold, gotItalic = p, bold && d.IsBold(), italic && d.IsItalic()
			break
		}
		styles, ok := fr.Family(name)
		if !ok {
			continue
		}
		plain, hasPlain := styles[fontregistry.Plain]
		p, hasWanted := styles[fontregistry.Style{Bold: bold, Italic: italic}]
		switch {
		case !hasWanted && !hasPlain:
			var st fontregistry.Style
			st, p = styles.Any()
			gotBold, gotItalic = bold && st.Bold, italic && st.Italic
		case !hasWanted:
			p = plain
		case p != plain:
			gotBold, gotItalic = bold, italic
		}
		if p != "" {
			fontpath = p
			break
		}
	}
	m := Match{Path: fontpath, Bold: bold && !gotBold, Italic: italic && !gotItalic}
	if fontpath == "" {
		tracer().Infof("no system font for %q, using built-in font", names)
	}
	tracer().Debugf("resolved %q to %+v", names, m)
	return m
}

// MatchFont returns the path of a font file for the first available family
// of a comma-separated list of names. If the requested style is missing,
// italic is dropped first, then bold, then any variant is taken.
// If no family is found, ok is false.
func MatchFont(names string, bold, italic bool) (fontpath string, ok bool) {
	return matchFont(SystemFonts(), names, bold, italic)
}

func matchFont(fr *fontregistry.Registry, names string, bold, italic bool) (string, bool) {
	for _, name := range strings.Split(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if p, ok := findFontFile(name); ok {
			return p, true
		}
		styles, ok := fr.Family(name)
		if !ok {
			continue
		}
		for b, i := bold, italic; ; {
			if p, ok := styles[fontregistry.Style{Bold: b, Italic: i}]; ok {
				return p, true
			}
			if i {
				i = false
			} else if b {
				b = false
			} else {
				break
			}
		}
		if _, p := styles.Any(); p != "" {
			return p, true
		}
	}
	return "", false
}

// Constructor creates a font from a font file path and a size. Bold and
// italic tell the constructor which styles it has to synthesize. An empty
// path denotes the built-in default font.
type Constructor[F any] func(fontpath string, size int, bold, italic bool) (F, error)

// SysFont creates a font from system font resources, given a comma-separated
// list of family names. It always finds a font, falling back to the built-in
// default font; errors can only originate from construct.
func SysFont[F any](names string, size int, bold, italic bool, construct Constructor[F]) (F, error) {
	m := Resolve(SystemFonts(), names, bold, italic)
	return construct(m.Path, size, m.Bold, m.Italic)
}
