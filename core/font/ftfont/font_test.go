package ftfont

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font/ftengine"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

// fakeFace records delegation and lets tests inject render errors.
type fakeFace struct {
	settings    ftengine.Settings
	rendered    []string
	antialiased []bool
	err         error
}

func (ff *fakeFace) Settings() *ftengine.Settings { return &ff.settings }

func (ff *fakeFace) Render(text string, fg, bg color.Color) (*image.RGBA, image.Rectangle, error) {
	ff.rendered = append(ff.rendered, text)
	ff.antialiased = append(ff.antialiased, ff.settings.Antialiased)
	if ff.err != nil {
		return nil, image.Rectangle{}, ff.err
	}
	r := image.Rect(0, -10, 5*len(text), 3)
	return image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())), r, nil
}

func (ff *fakeFace) Rect(text string) (image.Rectangle, error) {
	return image.Rect(0, -10, 5*len(text), 3), nil
}

func (ff *fakeFace) Metrics(text string) ([]*ftengine.GlyphMetrics, error) {
	return make([]*ftengine.GlyphMetrics, len(text)), nil
}

func (ff *fakeFace) SizedAscender() int  { return 10 }
func (ff *fakeFace) SizedDescender() int { return -3 }
func (ff *fakeFace) SizedHeight() int    { return 15 }
func (ff *fakeFace) Name() string        { return "Fake" }
func (ff *fakeFace) Size() float64       { return 12 }
func (ff *fakeFace) Close() error        { return nil }

func fakeFont() (*Font, *fakeFace) {
	ff := &fakeFace{settings: ftengine.DefaultSettings()}
	return newFont(ff), ff
}

func TestPolicy(t *testing.T) {
	f, ff := fakeFont()
	assert.Equal(t, ftengine.Settings{
		Antialiased:         true,
		Origin:              true,
		Pad:                 true,
		UCS4:                true,
		Strength:            1.0 / 12.0,
		UnderlineAdjustment: 1.0,
	}, ff.settings)
	assert.False(t, f.Bold())
}

func TestRenderRestoresAntialiasing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	f, ff := fakeFont()
	img, err := f.Render("Hello", false, color.Black, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, img.Bounds().Dx())
	assert.Equal(t, []bool{false}, ff.antialiased)
	assert.True(t, ff.settings.Antialiased)
	//
	ff.settings.Antialiased = false
	ff.err = errors.New("engine failure")
	_, err = f.Render("Hello", true, color.Black, color.White)
	assert.Equal(t, ff.err, err, "engine errors should be passed unchanged")
	assert.Equal(t, []bool{false, true}, ff.antialiased)
	assert.False(t, ff.settings.Antialiased)
}

func TestRenderRejectsNull(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	f, ff := fakeFont()
	_, err := f.Render("Hel\x00lo", true, color.Black, nil)
	assert.ErrorIs(t, err, ErrNullCharacter)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = f.RenderBytes([]byte{'a', 0}, true, color.Black, nil)
	assert.ErrorIs(t, err, ErrNullCharacter)
	assert.Empty(t, ff.rendered, "null text must not be delegated")
	assert.True(t, ff.settings.Antialiased)
}

func TestRenderNil(t *testing.T) {
	f, ff := fakeFont()
	a, err := f.RenderBytes(nil, true, color.Black, nil)
	require.NoError(t, err)
	b, err := f.Render("", true, color.Black, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []string{"", ""}, ff.rendered)
}

func TestStyleFlags(t *testing.T) {
	f, ff := fakeFont()
	f.SetBold(true)
	assert.True(t, f.Bold())
	assert.False(t, f.Italic())
	assert.False(t, f.Underline())
	f.SetItalic(true)
	f.SetUnderline(true)
	f.SetBold(false)
	assert.False(t, f.Bold())
	assert.True(t, f.Italic())
	assert.True(t, f.Underline())
	assert.True(t, ff.settings.Oblique)
	assert.False(t, ff.settings.Wide)
}

func TestFakeMetrics(t *testing.T) {
	f, _ := fakeFont()
	assert.Equal(t, 10, f.Ascent())
	assert.Equal(t, -3, f.Descent())
	assert.Equal(t, 14, f.Height())
	assert.Equal(t, 15, f.LineSize())
	w, h, err := f.Size("abc")
	require.NoError(t, err)
	assert.Equal(t, 15, w)
	assert.Equal(t, 13, h)
}

// --- Tests with the engine's built-in font ---------------------------------

func TestDefaultFontResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	defer ftengine.Quit()
	for _, c := range []struct{ dpi, want int }{
		{72, 49},
		{96, 66},
		{1, 1},
	} {
		ftengine.SetDefaultResolution(c.dpi)
		for _, file := range []string{"", GetDefaultFont()} {
			f, err := New(file, 12)
			require.NoError(t, err)
			ef := f.face.(*ftengine.Face)
			assert.Equal(t, c.want, ef.Resolution(), "resolution override at %d dpi", c.dpi)
			assert.Equal(t, "Go Sans", f.Name())
		}
	}
}

func TestFontFileResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "gobold.ttf")
	require.NoError(t, os.WriteFile(path, gobold.TTF, 0644))
	f, err := New(path, 12)
	require.NoError(t, err)
	assert.Equal(t, 0, f.face.(*ftengine.Face).Resolution())
	assert.NotEqual(t, "Go Sans", f.Name())
	assert.NoError(t, f.Close())
	//
	f, err = NewFromReader(bytes.NewReader(gobold.TTF), 12)
	require.NoError(t, err)
	assert.Equal(t, 0, f.face.(*ftengine.Face).Resolution())
	assert.Equal(t, 12.0, f.PtSize())
}

func TestSizeClamp(t *testing.T) {
	for _, size := range []int{1, 0, -5} {
		f, err := New("", size)
		require.NoError(t, err)
		assert.Equal(t, 1.0, f.PtSize())
	}
	f, err := NewFromReader(bytes.NewReader(gobold.TTF), -1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.PtSize())
}

func TestUnencodablePathSelectsDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	for _, path := range []string{"font\x00.ttf", "f\xffont.ttf"} {
		f, err := New(path, 12)
		require.NoError(t, err)
		assert.Equal(t, "Go Sans", f.Name())
		assert.Greater(t, f.face.(*ftengine.Face).Resolution(), 0)
	}
}

func TestMissingFontFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.ttf"), 12)
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestHeightInvariant(t *testing.T) {
	for _, size := range []int{6, 12, 37} {
		f, err := New("", size)
		require.NoError(t, err)
		assert.Equal(t, f.Ascent()-f.Descent()+1, f.Height())
		assert.Greater(t, f.Ascent(), 0)
		assert.Less(t, f.Descent(), 0)
		f.SetBold(true)
		f.SetUnderline(true)
		assert.Equal(t, f.Ascent()-f.Descent()+1, f.Height())
	}
}

func TestRenderDefaultFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	f, err := New("", 24)
	require.NoError(t, err)
	w, h, err := f.Size("Hello")
	require.NoError(t, err)
	img, err := f.Render("Hello", true, color.White, color.Black)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
	// padded rectangles span the full line for any text
	_, hx, err := f.Size("x")
	require.NoError(t, err)
	assert.Equal(t, h, hx)
	// unicode text is accepted as is
	m, err := f.Metrics("a\U0001F600")
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.NotNil(t, m[0])
	assert.Nil(t, m[1])
}

func TestSysFontUnknownName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont")
	defer teardown()
	//
	f, err := SysFont("nonexistent-font-xyz", 12, false, false, nil)
	require.NoError(t, err)
	assert.Equal(t, "Go Sans", f.Name())
	_, err = f.Render("usable", true, color.Black, nil)
	assert.NoError(t, err)
	//
	f, err = SysFont("nonexistent-font-xyz", 12, true, true, nil)
	require.NoError(t, err)
	assert.True(t, f.Bold())
	assert.True(t, f.Italic())
}

func TestSysFontFactory(t *testing.T) {
	var got []interface{}
	factory := FactoryFunc(func(path string, size int, bold, italic bool) (*Font, error) {
		got = append(got, path, size, bold, italic)
		f, _ := fakeFont()
		return f, nil
	})
	f, err := SysFont("nonexistent-font-xyz", 20, true, false, factory)
	require.NoError(t, err)
	assert.Equal(t, "Fake", f.Name())
	assert.Equal(t, []interface{}{"", 20, true, false}, got)
}

func TestEngineState(t *testing.T) {
	Quit()
	assert.False(t, GetInit())
	Init()
	assert.True(t, GetInit())
	assert.Equal(t, "goregular.ttf", GetDefaultFont())
	Quit()
	_, err := New("", 10)
	require.NoError(t, err)
	assert.True(t, GetInit(), "creating a font initializes the engine")
}
