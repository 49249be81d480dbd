package ftfont

import (
	"github.com/npillmayer/ftfont/core/font/ftengine"
	"github.com/npillmayer/ftfont/core/locate/resources"
)

// Factory creates fonts for SysFont. Bold and italic tell the factory
// which styles have to be synthesized, as no font file for them has been
// found. An empty path denotes the engine's built-in font.
type Factory interface {
	NewFont(path string, size int, bold, italic bool) (*Font, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(path string, size int, bold, italic bool) (*Font, error)

// NewFont calls ff.
func (ff FactoryFunc) NewFont(path string, size int, bold, italic bool) (*Font, error) {
	return ff(path, size, bold, italic)
}

// DefaultFactory creates a font with New and switches on synthesized
// styles as requested.
var DefaultFactory Factory = FactoryFunc(func(path string, size int, bold, italic bool) (*Font, error) {
	f, err := New(path, size)
	if err != nil {
		return nil, err
	}
	f.SetBold(bold)
	f.SetItalic(italic)
	return f, nil
})

// SysFont creates a font from the fonts installed on the system. name is
// a comma-separated list of family names, which are tried in order. If no
// family is found, the engine's built-in font is used; SysFont does not
// fail for unknown names. If factory is nil, DefaultFactory is used.
func SysFont(name string, size int, bold, italic bool, factory Factory) (*Font, error) {
	if factory == nil {
		factory = DefaultFactory
	}
	tracer().Debugf("system font %q, bold=%v, italic=%v", name, bold, italic)
	return resources.SysFont[*Font](name, size, bold, italic, factory.NewFont)
}

// Init initializes the font engine. Fonts initialize the engine on
// creation, calling Init is optional.
func Init() {
	ftengine.Init()
}

// Quit de-initializes the font engine.
func Quit() {
	ftengine.Quit()
}

// GetInit returns true if the font engine is initialized.
func GetInit() bool {
	return ftengine.WasInit()
}

// GetDefaultFont returns the file name of the engine's built-in font.
func GetDefaultFont() string {
	return ftengine.DefaultFontName()
}

// GetFonts returns the names of all font families installed on the system.
func GetFonts() []string {
	return resources.GetFonts()
}

// MatchFont returns the path of a font file for a comma-separated list of
// family names, or false if none of them is installed.
func MatchFont(name string, bold, italic bool) (string, bool) {
	return resources.MatchFont(name, bold, italic)
}
