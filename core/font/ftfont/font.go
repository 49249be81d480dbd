package ftfont

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font"
	"github.com/npillmayer/ftfont/core/font/ftengine"
)

// ErrNullCharacter is returned for text containing U+0000.
var ErrNullCharacter = errors.New("text must not contain null characters")

// defaultResolutionFraction scales the engine's default resolution for
// the built-in font.
const defaultResolutionFraction = 0.6875

// engineFace is the part of an engine face a Font uses.
type engineFace interface {
	Settings() *ftengine.Settings
	Render(text string, fg, bg color.Color) (*image.RGBA, image.Rectangle, error)
	Rect(text string) (image.Rectangle, error)
	Metrics(text string) ([]*ftengine.GlyphMetrics, error)
	SizedAscender() int
	SizedDescender() int
	SizedHeight() int
	Name() string
	Size() float64
	Close() error
}

var _ engineFace = (*ftengine.Face)(nil)

// Font is a font at a fixed size, ready to render text.
type Font struct {
	face engineFace
}

var defaultFontIdentity struct {
	once sync.Once
	name string
}

// defaultFontName is the encoded name denoting the engine's built-in font.
func defaultFontName() string {
	defaultFontIdentity.once.Do(func() {
		name, err := encodeFilePath(ftengine.DefaultFontName())
		if err != nil {
			tracer().Errorf("cannot encode name of default font: %v", err)
		}
		defaultFontIdentity.name = name
	})
	return defaultFontIdentity.name
}

// encodeFilePath converts a file path into the form the engine accepts.
func encodeFilePath(path string) (string, error) {
	if !utf8.ValidString(path) {
		return "", core.Error(core.EENCODING, "file path is not valid UTF-8: %q", path)
	}
	if strings.IndexByte(path, 0) >= 0 {
		return "", core.Error(core.EENCODING, "file path contains a null byte: %q", path)
	}
	return path, nil
}

// New loads a font from a file and prepares it for size (in points).
// If file is empty or names the engine's built-in font (see
// GetDefaultFont), the built-in font is used. Sizes smaller than 1 are
// set to 1.
//
// A file path which the engine cannot accept selects the built-in font
// as well. Errors loading the font file are returned unchanged.
func New(file string, size int) (*Font, error) {
	size = max(size, 1)
	path, err := encodeFilePath(file)
	if err != nil {
		tracer().Infof("using default font: %v", err)
		path = ""
	}
	resolution := 0
	if path == "" || path == defaultFontName() {
		path = ""
		resolution = max(1, int(defaultResolutionFraction*float64(ftengine.DefaultResolution())))
	}
	face, err := ftengine.Open(path, float64(size), resolution)
	if err != nil {
		return nil, err
	}
	return newFont(face), nil
}

// NewFromReader reads a font from r and prepares it for size (in points).
// Sizes smaller than 1 are set to 1.
func NewFromReader(r io.Reader, size int) (*Font, error) {
	size = max(size, 1)
	sf, err := font.ReadOpenTypeFont(r)
	if err != nil {
		return nil, err
	}
	face, err := ftengine.New(sf, float64(size), 0)
	if err != nil {
		return nil, err
	}
	return newFont(face), nil
}

func newFont(face engineFace) *Font {
	s := face.Settings()
	s.Strength = 1.0 / 12.0
	s.Kerning = false
	s.Origin = true
	s.Pad = true
	s.UCS4 = true
	s.UnderlineAdjustment = 1.0
	tracer().Debugf("font %s at %gpt", face.Name(), face.Size())
	return &Font{face: face}
}

// Close releases the font's resources.
func (f *Font) Close() error {
	return f.face.Close()
}

// Render draws text into a new image, using fg as the text color.
// If bg is nil, the background is transparent. With antialias unset,
// pixels are either fully covered or not at all.
//
// Text must not contain null characters.
func (f *Font) Render(text string, antialias bool, fg, bg color.Color) (*image.RGBA, error) {
	if strings.IndexByte(text, 0) >= 0 {
		return nil, core.WrapError(ErrNullCharacter, core.EINVALID, "cannot render text")
	}
	return f.render(text, antialias, fg, bg)
}

// RenderBytes is like Render, for text given as bytes. A nil text renders
// the same as an empty one.
func (f *Font) RenderBytes(text []byte, antialias bool, fg, bg color.Color) (*image.RGBA, error) {
	if bytes.IndexByte(text, 0) >= 0 {
		return nil, core.WrapError(ErrNullCharacter, core.EINVALID, "cannot render text")
	}
	return f.render(string(text), antialias, fg, bg)
}

func (f *Font) render(text string, antialias bool, fg, bg color.Color) (*image.RGBA, error) {
	s := f.face.Settings()
	saved := s.Antialiased
	defer func() { s.Antialiased = saved }()
	s.Antialiased = antialias
	img, _, err := f.face.Render(text, fg, bg)
	return img, err
}

// SetBold switches synthesized bold on or off.
func (f *Font) SetBold(bold bool) {
	f.face.Settings().Wide = bold
}

// Bold returns true if bold is synthesized.
func (f *Font) Bold() bool {
	return f.face.Settings().Wide
}

// SetItalic switches synthesized italic on or off.
func (f *Font) SetItalic(italic bool) {
	f.face.Settings().Oblique = italic
}

// Italic returns true if italic is synthesized.
func (f *Font) Italic() bool {
	return f.face.Settings().Oblique
}

// SetUnderline switches underlining on or off.
func (f *Font) SetUnderline(underline bool) {
	f.face.Settings().Underline = underline
}

// Underline returns true if text is underlined.
func (f *Font) Underline() bool {
	return f.face.Settings().Underline
}

// Metrics returns the metrics of each character of text. Characters
// missing from the font get a nil entry.
func (f *Font) Metrics(text string) ([]*ftengine.GlyphMetrics, error) {
	return f.face.Metrics(text)
}

// Ascent is the font's ascender in pixels.
func (f *Font) Ascent() int {
	return f.face.SizedAscender()
}

// Descent is the font's descender in pixels. It is negative for fonts
// extending below the baseline.
func (f *Font) Descent() int {
	return f.face.SizedDescender()
}

// Height is the number of pixel rows from the lowest descender to the
// highest ascender, both included.
func (f *Font) Height() int {
	return f.Ascent() - f.Descent() + 1
}

// LineSize is the recommended distance between lines of text, in pixels.
func (f *Font) LineSize() int {
	return f.face.SizedHeight()
}

// Size returns the width and height of text when rendered.
func (f *Font) Size(text string) (w, h int, err error) {
	r, err := f.face.Rect(text)
	if err != nil {
		return 0, 0, err
	}
	return r.Dx(), r.Dy(), nil
}

// Name returns the name of the font.
func (f *Font) Name() string {
	return f.face.Name()
}

// PtSize returns the size of the font in points.
func (f *Font) PtSize() float64 {
	return f.face.Size()
}
