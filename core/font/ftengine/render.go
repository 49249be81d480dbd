package ftengine

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// obliqueShear is the horizontal shear of faux italics, tan(12°).
const obliqueShear = 0.2126

// line is a run of glyphs positioned on a baseline at y=0, y pointing down.
type line struct {
	runes   []rune
	dots    []fixed.Int26_6 // x position of each glyph's origin
	advance fixed.Int26_6
	ink     fixed.Rectangle26_6
	hasInk  bool
}

func (f *Face) layout(text string) (*line, error) {
	runes, err := f.decode(text)
	if err != nil {
		return nil, err
	}
	l := &line{runes: runes, dots: make([]fixed.Int26_6, len(runes))}
	x := fixed.Int26_6(0)
	prev := rune(-1)
	for i, r := range runes {
		if f.settings.Kerning && prev >= 0 {
			x += f.face.Kern(prev, r)
		}
		l.dots[i] = x
		bounds, advance, ok := f.face.GlyphBounds(r)
		if ok && bounds.Min.X < bounds.Max.X && bounds.Min.Y < bounds.Max.Y {
			b := fixed.Rectangle26_6{
				Min: fixed.Point26_6{X: bounds.Min.X + x, Y: bounds.Min.Y},
				Max: fixed.Point26_6{X: bounds.Max.X + x, Y: bounds.Max.Y},
			}
			if !l.hasInk {
				l.ink, l.hasInk = b, true
			} else {
				l.ink.Min.X = min(l.ink.Min.X, b.Min.X)
				l.ink.Min.Y = min(l.ink.Min.Y, b.Min.Y)
				l.ink.Max.X = max(l.ink.Max.X, b.Max.X)
				l.ink.Max.Y = max(l.ink.Max.Y, b.Max.Y)
			}
		}
		x += advance
		prev = r
	}
	l.advance = x
	return l, nil
}

// emboldening returns the extra width of faux bold glyphs in pixels.
func (f *Face) emboldening() int {
	if !f.settings.Wide || f.settings.Strength <= 0 {
		return 0
	}
	return int(math.Ceil(f.settings.Strength * f.ppem))
}

// underlineBar returns the vertical extent of the underline relative to
// the baseline, y pointing down.
func (f *Face) underlineBar() (top, bottom int) {
	m := f.face.Metrics()
	thickness := max(1, int(math.Round(f.ppem/14)))
	adj := f.settings.UnderlineAdjustment
	var pos float64
	if adj >= 0 {
		pos = adj * float64(max(1, (m.Descent/2).Ceil()))
	} else {
		pos = adj * float64(m.Ascent.Ceil())
	}
	top = int(math.Round(pos)) - thickness/2
	return top, top + thickness
}

// bounds returns the rectangle of a line in baseline coordinates.
func (f *Face) bounds(l *line) image.Rectangle {
	m := f.face.Metrics()
	var r fixed.Rectangle26_6
	if f.settings.Pad || !l.hasInk {
		r.Max.X = l.advance
		r.Min.Y, r.Max.Y = -m.Ascent, m.Descent
		if l.hasInk {
			r.Min.X = min(r.Min.X, l.ink.Min.X)
			r.Min.Y = min(r.Min.Y, l.ink.Min.Y)
			r.Max.X = max(r.Max.X, l.ink.Max.X)
			r.Max.Y = max(r.Max.Y, l.ink.Max.Y)
		}
	} else {
		r = l.ink
	}
	rect := image.Rect(r.Min.X.Floor(), r.Min.Y.Floor(), r.Max.X.Ceil(), r.Max.Y.Ceil())
	if f.settings.Oblique {
		rect.Max.X += int(math.Ceil(obliqueShear * float64(max(0, -rect.Min.Y))))
		rect.Min.X -= int(math.Ceil(obliqueShear * float64(max(0, rect.Max.Y))))
	}
	rect.Max.X += f.emboldening()
	if f.settings.Underline && len(l.runes) > 0 {
		top, bottom := f.underlineBar()
		rect.Min.Y = min(rect.Min.Y, top)
		rect.Max.Y = max(rect.Max.Y, bottom)
	}
	return rect
}

// position moves a baseline rectangle to where the settings want it.
func (f *Face) position(r image.Rectangle) image.Rectangle {
	if f.settings.Origin {
		return r
	}
	return r.Sub(r.Min)
}

// Rect returns the rectangle text occupies when rendered. With origin
// set, the rectangle is relative to the baseline origin of the first
// glyph, otherwise it is placed at (0,0).
func (f *Face) Rect(text string) (image.Rectangle, error) {
	l, err := f.layout(text)
	if err != nil {
		return image.Rectangle{}, err
	}
	return f.position(f.bounds(l)), nil
}

// Render draws text into a new image, using color fg for the glyphs.
// If bg is nil, the background is transparent. Render returns the image
// together with the text's rectangle (see Rect).
func (f *Face) Render(text string, fg, bg color.Color) (*image.RGBA, image.Rectangle, error) {
	l, err := f.layout(text)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	if fg == nil {
		fg = color.Black
	}
	r := f.bounds(l)
	mask := image.NewAlpha(image.Rect(0, 0, max(r.Dx(), 1), max(r.Dy(), 1)))
	baseline := -r.Min.Y
	origin := fixed.P(-r.Min.X, baseline)
	for i, rn := range l.runes {
		dot := fixed.Point26_6{X: origin.X + l.dots[i], Y: origin.Y}
		dr, gmask, maskp, _, ok := f.face.Glyph(dot, rn)
		if !ok || gmask == nil {
			continue
		}
		draw.DrawMask(mask, dr, image.Opaque, image.Point{}, gmask, maskp, draw.Over)
	}
	if f.settings.Oblique {
		mask = shear(mask, baseline, f.settings.Antialiased)
	}
	if n := f.emboldening(); n > 0 {
		embolden(mask, n)
	}
	if f.settings.Underline && len(l.runes) > 0 {
		top, bottom := f.underlineBar()
		bar := image.Rect(-r.Min.X, top+baseline, -r.Min.X+l.advance.Ceil()+f.emboldening(), bottom+baseline)
		draw.Draw(mask, bar, image.Opaque, image.Point{}, draw.Src)
	}
	if !f.settings.Antialiased {
		threshold(mask)
	}
	img := image.NewRGBA(mask.Bounds())
	if bg != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}
	draw.DrawMask(img, img.Bounds(), image.NewUniform(fg), image.Point{}, mask, image.Point{}, draw.Over)
	tracer().Debugf("rendered %d glyphs into %v", len(l.runes), img.Bounds())
	return img, f.position(r), nil
}

// shear slants a glyph mask around the baseline.
func shear(mask *image.Alpha, baseline int, smooth bool) *image.Alpha {
	dst := image.NewAlpha(mask.Bounds())
	s2d := f64.Aff3{
		1, -obliqueShear, obliqueShear * float64(baseline),
		0, 1, 0,
	}
	var interp draw.Interpolator = draw.NearestNeighbor
	if smooth {
		interp = draw.BiLinear
	}
	interp.Transform(dst, s2d, mask, mask.Bounds(), draw.Over, nil)
	return dst
}

// embolden smears a glyph mask n pixels to the right.
func embolden(mask *image.Alpha, n int) {
	src := image.NewAlpha(mask.Bounds())
	copy(src.Pix, mask.Pix)
	for dx := 1; dx <= n; dx++ {
		draw.Draw(mask, mask.Bounds().Add(image.Pt(dx, 0)), src, src.Bounds().Min, draw.Over)
	}
}

// threshold turns coverage values into on/off pixels.
func threshold(mask *image.Alpha) {
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
}
