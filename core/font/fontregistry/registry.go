package fontregistry

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/derekparker/trie"
	"github.com/npillmayer/ftfont/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/unicode/norm"
)

// Style is a font variant as far as font matching is concerned.
type Style struct {
	Bold   bool
	Italic bool
}

// Plain is the regular style.
var Plain = Style{}

// Styles maps the available styles of a family to font file paths.
type Styles map[Style]string

// Any returns a style variant of a family, preferring the plain one.
// The choice is deterministic.
func (s Styles) Any() (Style, string) {
	if p, ok := s[Plain]; ok {
		return Plain, p
	}
	for _, st := range []Style{{Bold: true}, {Italic: true}, {Bold: true, Italic: true}} {
		if p, ok := s[st]; ok {
			return st, p
		}
	}
	return Plain, ""
}

// Registry is a type for holding information about font families installed
// on a system.
type Registry struct {
	sync.Mutex
	families *trie.Trie
	aliases  map[string]Styles
	count    int
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// system fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families: trie.New(),
		aliases:  make(map[string]Styles),
	}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the simplified family name as a key. If the
// family already has a font for the descriptor's style, that font will not
// be overridden.
func (fr *Registry) StoreFont(desc font.Descriptor) {
	name := SimpleName(desc.Family)
	if name == "" || desc.Path == "" {
		tracer().Errorf("registry cannot store font without name or path: %v", desc)
		return
	}
	style := Style{Bold: desc.IsBold(), Italic: desc.IsItalic()}
	fr.Lock()
	defer fr.Unlock()
	var styles Styles
	if node, ok := fr.families.Find(name); ok {
		styles = node.Meta().(Styles)
	} else {
		styles = make(Styles)
		fr.families.Add(name, styles)
	}
	if _, ok := styles[style]; !ok {
		tracer().Debugf("registry stores font %s as %s %+v", desc.Path, name, style)
		styles[style] = desc.Path
		fr.count++
	}
}

// Family returns the style variants registered for a family name. The name
// is simplified before lookup. If the family is not installed, an alias
// family may be returned (see CreateAliases).
func (fr *Registry) Family(name string) (Styles, bool) {
	name = SimpleName(name)
	fr.Lock()
	defer fr.Unlock()
	if node, ok := fr.families.Find(name); ok {
		return node.Meta().(Styles), true
	}
	if styles, ok := fr.aliases[name]; ok {
		tracer().Debugf("font family %s found as alias", name)
		return styles, true
	}
	return nil, false
}

// Families returns the simplified names of all registered families, sorted.
func (fr *Registry) Families() []string {
	fr.Lock()
	defer fr.Unlock()
	names := fr.families.Keys()
	sort.Strings(names)
	return names
}

// FamiliesWithPrefix returns the sorted names of all registered families
// starting with a prefix. The prefix is simplified first.
func (fr *Registry) FamiliesWithPrefix(prefix string) []string {
	prefix = SimpleName(prefix)
	fr.Lock()
	defer fr.Unlock()
	if prefix == "" {
		names := fr.families.Keys()
		sort.Strings(names)
		return names
	}
	names := fr.families.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// Len returns the number of registered font files.
func (fr *Registry) Len() int {
	fr.Lock()
	defer fr.Unlock()
	return fr.count
}

// aliasGroups are families which may stand in for each other.
var aliasGroups = [][]string{
	{"monospace", "misc-fixed", "courier", "couriernew", "console", "fixed", "mono",
		"freemono", "bitstreamverasansmono", "verasansmono", "monotype", "lucidaconsole",
		"consolas", "dejavusansmono", "liberationmono", "gomono"},
	{"sans", "arial", "helvetica", "swiss", "freesans", "bitstreamverasans", "verasans",
		"verdana", "tahoma", "calibri", "gillsans", "segoeui", "trebuchetms", "ubuntu",
		"dejavusans", "liberationsans", "go"},
	{"serif", "times", "freeserif", "bitstreamveraserif", "roman", "timesroman",
		"timesnewroman", "dutch", "veraserif", "georgia", "cambria", "constantia",
		"dejavuserif", "liberationserif"},
	{"wingdings", "wingbats"},
	{"comicsansms", "comicsans"},
}

// CreateAliases makes every missing member of an alias group resolve to the
// first installed member of the group. Installed families are never
// shadowed by an alias.
func (fr *Registry) CreateAliases() {
	fr.Lock()
	defer fr.Unlock()
	for _, group := range aliasGroups {
		var found Styles
		for _, name := range group {
			if node, ok := fr.families.Find(SimpleName(name)); ok {
				found = node.Meta().(Styles)
				break
			}
		}
		if found == nil {
			continue
		}
		for _, name := range group {
			name = SimpleName(name)
			if _, ok := fr.families.Find(name); !ok {
				fr.aliases[name] = found
			}
		}
	}
	tracer().Debugf("registry has %d font aliases", len(fr.aliases))
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	tracer().Infof("--- registered fonts ---")
	for _, name := range fr.Families() {
		styles, _ := fr.Family(name)
		for st, p := range styles {
			tracer().Infof("font [%s] %+v = %s", name, st, p)
		}
	}
	tracer().Infof("------------------------")
}

// --- Names -----------------------------------------------------------------

// SimpleName normalizes a font family name for lookup: accents are
// stripped, letters are lower-cased, and everything except letters and
// digits is removed.
func SimpleName(name string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

var styleWords = []string{"regular", "normal", "medium", "book",
	"bold", "black", "heavy", "semibold", "demibold", "extrabold",
	"italic", "oblique", "light", "thin", "condensed"}

// FamilyFromFilename guesses a font's family name from its file name,
// e.g. "DejaVuSans-BoldOblique.ttf" yields "dejavusans".
func FamilyFromFilename(fontfilename string) string {
	base := filepath.Base(fontfilename)
	base = strings.ToLower(base[:len(base)-len(filepath.Ext(base))])
	if dash := strings.LastIndex(base, "-"); dash > 0 {
		base = base[:dash]
	}
	base = SimpleName(base)
	for trimmed := true; trimmed; {
		trimmed = false
		for _, w := range styleWords {
			if len(base) > len(w) && strings.HasSuffix(base, w) {
				base = base[:len(base)-len(w)]
				trimmed = true
			}
		}
	}
	return base
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name or style name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = filepath.Base(fontfilename)
	ext := filepath.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		case "italic", "i", "it":
			return xfont.StyleItalic, xfont.WeightNormal
		case "oblique":
			return xfont.StyleOblique, xfont.WeightNormal
		case "bi", "bolditalic":
			return xfont.StyleItalic, xfont.WeightBold
		case "boldoblique":
			return xfont.StyleOblique, xfont.WeightBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") {
		style = xfont.StyleItalic
	} else if strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleOblique
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") || strings.Contains(fontfilename, "black") {
		weight = xfont.WeightBold
	}
	return style, weight
}
