package ftengine

import (
	"errors"
	"unicode/utf8"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ErrEncoding is returned for text which cannot be decoded.
var ErrEncoding = errors.New("malformed text encoding")

// Settings are the mutable rendering flags of a face.
type Settings struct {
	Antialiased         bool    // render with coverage values instead of on/off pixels
	Wide                bool    // faux bold
	Oblique             bool    // faux italic
	Underline           bool    // draw an underline bar
	Kerning             bool    // apply pair kerning between glyphs
	Origin              bool    // rectangles are relative to the baseline origin
	Pad                 bool    // rectangles cover advance and full ascent/descent, not just ink
	UCS4                bool    // accept any string; malformed UTF-8 is replaced instead of rejected
	Strength            float64 // faux bold extra width, as a fraction of the pixel size
	UnderlineAdjustment float64 // underline position factor, negative values measure from the ascender
}

// DefaultSettings are the settings of a newly created face.
func DefaultSettings() Settings {
	return Settings{
		Antialiased:         true,
		Strength:            0.02778,
		UnderlineAdjustment: 1.0,
	}
}

// Face is a scalable font prepared for a size and a resolution.
type Face struct {
	font       *font.ScalableFont
	face       xfont.Face
	size       float64 // in points
	resolution int     // resolution override, 0 if unset
	ppem       float64 // pixels per em
	settings   Settings
	buf        sfnt.Buffer
}

// Open creates a face from a font file. An empty path selects the
// engine's built-in font. A resolution of 0 selects the engine's default
// resolution.
func Open(path string, size float64, resolution int) (*Face, error) {
	if path == "" {
		return New(font.FallbackFont(), size, resolution)
	}
	sf, err := font.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	return New(sf, size, resolution)
}

// New creates a face from a parsed font.
func New(sf *font.ScalableFont, size float64, resolution int) (*Face, error) {
	if sf == nil {
		return nil, core.Error(core.EINVALID, "no font to create a face from")
	}
	if size <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %g", size)
	}
	if resolution < 0 {
		return nil, core.Error(core.EINVALID, "resolution must not be negative, is %d", resolution)
	}
	if !WasInit() {
		Init()
	}
	dpi := resolution
	if dpi == 0 {
		dpi = DefaultResolution()
	}
	xf, err := opentype.NewFace(sf.SFNT, &opentype.FaceOptions{
		Size:    size,
		DPI:     float64(dpi),
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create face for %s", sf.Fontname)
	}
	tracer().Debugf("created face %s at %gpt, %d dpi", sf.Fontname, size, dpi)
	return &Face{
		font:       sf,
		face:       xf,
		size:       size,
		resolution: resolution,
		ppem:       size * float64(dpi) / 72,
		settings:   DefaultSettings(),
	}, nil
}

// Settings gives access to the face's mutable rendering flags.
func (f *Face) Settings() *Settings {
	return &f.settings
}

// Name returns the full name of the face's font.
func (f *Face) Name() string {
	return f.font.Fontname
}

// Path returns the file path of the face's font.
func (f *Face) Path() string {
	return f.font.Filepath
}

// Size returns the point size of the face.
func (f *Face) Size() float64 {
	return f.size
}

// Resolution returns the resolution override the face was created with,
// or 0 if it uses the engine's default resolution.
func (f *Face) Resolution() int {
	return f.resolution
}

// SizedAscender returns the scaled ascender in pixels.
func (f *Face) SizedAscender() int {
	return f.face.Metrics().Ascent.Ceil()
}

// SizedDescender returns the scaled descender in pixels. As with
// FreeType, the descender is negative for glyphs extending below the
// baseline.
func (f *Face) SizedDescender() int {
	return -f.face.Metrics().Descent.Ceil()
}

// SizedHeight returns the scaled line height in pixels.
func (f *Face) SizedHeight() int {
	return f.face.Metrics().Height.Ceil()
}

// Close releases the face's resources.
func (f *Face) Close() error {
	return f.face.Close()
}

// GlyphMetrics are the metrics of a single glyph in pixels, with the
// y-axis pointing up.
type GlyphMetrics struct {
	MinX, MaxX int
	MinY, MaxY int
	AdvanceX   float64
	AdvanceY   float64
}

// Metrics returns the metrics for each character of text. Characters
// which the font has no glyph for get a nil entry.
func (f *Face) Metrics(text string) ([]*GlyphMetrics, error) {
	runes, err := f.decode(text)
	if err != nil {
		return nil, err
	}
	metrics := make([]*GlyphMetrics, len(runes))
	for i, r := range runes {
		if !f.hasGlyph(r) {
			continue
		}
		bounds, advance, ok := f.face.GlyphBounds(r)
		if !ok {
			continue
		}
		metrics[i] = &GlyphMetrics{
			MinX:     bounds.Min.X.Floor(),
			MaxX:     bounds.Max.X.Ceil(),
			MinY:     -bounds.Max.Y.Ceil(),
			MaxY:     -bounds.Min.Y.Floor(),
			AdvanceX: float64(advance) / 64,
		}
	}
	return metrics, nil
}

func (f *Face) hasGlyph(r rune) bool {
	x, err := f.font.SFNT.GlyphIndex(&f.buf, r)
	return err == nil && x != 0
}

func (f *Face) decode(text string) ([]rune, error) {
	if !f.settings.UCS4 && !utf8.ValidString(text) {
		return nil, core.WrapError(ErrEncoding, core.EENCODING, "text is not valid UTF-8")
	}
	return []rune(text), nil
}
