package ftengine

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/npillmayer/ftfont/core"
	"github.com/npillmayer/ftfont/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDefault(t *testing.T, size float64) *Face {
	face, err := Open("", size, 0)
	require.NoError(t, err)
	return face
}

func TestInitQuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	Quit()
	assert.False(t, WasInit())
	Init()
	assert.True(t, WasInit())
	Quit()
	_ = openDefault(t, 12)
	assert.True(t, WasInit(), "face creation should initialize the engine")
}

func TestDefaultResolution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	Quit()
	assert.Equal(t, StandardResolution, DefaultResolution())
	SetDefaultResolution(96)
	assert.Equal(t, 96, DefaultResolution())
	SetDefaultResolution(0)
	assert.Equal(t, StandardResolution, DefaultResolution())
	Quit()
}

func TestConfiguredResolution(t *testing.T) {
	restore := core.Configure(testconfig.Conf{
		core.ConfResolution: "144",
	})
	defer restore()
	//
	Quit()
	Init()
	assert.Equal(t, 144, DefaultResolution())
	Quit()
}

func TestOpenFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 12)
	assert.Equal(t, "Go Sans", face.Name())
	assert.Equal(t, 12.0, face.Size())
	assert.Equal(t, 0, face.Resolution())
	assert.Equal(t, font.FallbackFontFile, DefaultFontName())
	assert.Equal(t, DefaultSettings(), *face.Settings())
	assert.NoError(t, face.Close())
}

func TestOpenErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	_, err := Open(filepath.Join(t.TempDir(), "nofont.ttf"), 12, 0)
	assert.Equal(t, core.EMISSING, core.Code(err))
	_, err = New(font.FallbackFont(), 0, 0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = New(font.FallbackFont(), 12, -1)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = New(nil, 12, 0)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSizedMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 24)
	assert.Greater(t, face.SizedAscender(), 0)
	assert.Less(t, face.SizedDescender(), 0)
	assert.Greater(t, face.SizedHeight(), 0)
	big, err := Open("", 24, 144)
	require.NoError(t, err)
	assert.Greater(t, big.SizedAscender(), face.SizedAscender())
}

func TestGlyphMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 20)
	metrics, err := face.Metrics("a\U0001F600")
	require.NoError(t, err)
	require.Len(t, metrics, 2)
	require.NotNil(t, metrics[0])
	assert.Greater(t, metrics[0].AdvanceX, 0.0)
	assert.Less(t, metrics[0].MinY, metrics[0].MaxY)
	assert.Less(t, metrics[0].MinX, metrics[0].MaxX)
	assert.Nil(t, metrics[1], "Go Sans has no emoji glyphs")
}

func TestDecoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 12)
	_, err := face.Rect("ab\xffc")
	assert.True(t, errors.Is(err, ErrEncoding))
	assert.Equal(t, core.EENCODING, core.Code(err))
	face.Settings().UCS4 = true
	_, err = face.Rect("ab\xffc")
	assert.NoError(t, err)
}

func TestRectPadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 20)
	face.Settings().Pad = true
	padded, err := face.Rect(".")
	require.NoError(t, err)
	assert.Equal(t, face.SizedAscender()-face.SizedDescender(), padded.Dy())
	face.Settings().Pad = false
	tight, err := face.Rect(".")
	require.NoError(t, err)
	assert.Less(t, tight.Dy(), padded.Dy())
	assert.Equal(t, 0, tight.Min.X)
	assert.Equal(t, 0, tight.Min.Y)
}

func TestRectOrigin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 20)
	face.Settings().Pad = true
	face.Settings().Origin = true
	r, err := face.Rect("Hx")
	require.NoError(t, err)
	assert.Equal(t, -face.SizedAscender(), r.Min.Y)
	assert.Equal(t, -face.SizedDescender(), r.Max.Y)
	face.Settings().Origin = false
	r0, err := face.Rect("Hx")
	require.NoError(t, err)
	assert.Equal(t, r.Size(), r0.Size())
	assert.Equal(t, 0, r0.Min.Y)
}

func TestRectEmptyText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 20)
	r, err := face.Rect("")
	require.NoError(t, err)
	assert.Equal(t, 0, r.Dx())
	assert.Equal(t, face.SizedAscender()-face.SizedDescender(), r.Dy())
}

func TestFauxStylesWiden(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 48)
	face.Settings().Pad = true
	plain, err := face.Rect("Hello")
	require.NoError(t, err)
	face.Settings().Wide = true
	face.Settings().Strength = 1.0 / 12.0
	wide, err := face.Rect("Hello")
	require.NoError(t, err)
	assert.Equal(t, plain.Dx()+face.emboldening(), wide.Dx())
	face.Settings().Wide = false
	face.Settings().Oblique = true
	oblique, err := face.Rect("Hello")
	require.NoError(t, err)
	assert.Greater(t, oblique.Dx(), plain.Dx())
	assert.Equal(t, plain.Dy(), oblique.Dy())
}

func TestUnderlineStaysInsideRect(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 30)
	face.Settings().Pad = true
	face.Settings().Underline = true
	face.Settings().UnderlineAdjustment = 8
	r, err := face.Rect("x")
	require.NoError(t, err)
	_, bottom := face.underlineBar()
	assert.Equal(t, bottom-(-face.SizedAscender()), r.Dy())
	img, _, err := face.Render("x", color.Black, nil)
	require.NoError(t, err)
	assert.Equal(t, r.Size(), img.Bounds().Size())
}

func TestRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 24)
	face.Settings().Pad = true
	bg := color.RGBA{R: 0, G: 0, B: 0xff, A: 0xff}
	img, r, err := face.Render("Hi", color.White, bg)
	require.NoError(t, err)
	want, err := face.Rect("Hi")
	require.NoError(t, err)
	assert.Equal(t, want, r)
	assert.Equal(t, r.Size(), img.Bounds().Size())
	assert.Equal(t, bg, img.RGBAAt(0, 0), "top left corner should show background")
	inked := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			inked = inked || img.RGBAAt(x, y) == color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
	}
	assert.True(t, inked, "expected fully inked glyph pixels")
}

func TestRenderTransparent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 24)
	face.Settings().Pad = true
	img, _, err := face.Render("Hi", color.Black, nil)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).A)
}

func TestRenderAliased(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 17)
	face.Settings().Antialiased = false
	face.Settings().Oblique = true
	face.Settings().Wide = true
	img, _, err := face.Render("Quiz", color.Black, nil)
	require.NoError(t, err)
	for _, a := range alphas(img) {
		if a != 0 && a != 0xff {
			t.Fatalf("expected on/off pixels only, found alpha %d", a)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftfont.engine")
	defer teardown()
	//
	face := openDefault(t, 12)
	img, r, err := face.Render("", color.Black, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Dx())
	assert.Equal(t, 1, img.Bounds().Dx())
}

func alphas(img *image.RGBA) []uint8 {
	a := make([]uint8, 0, len(img.Pix)/4)
	for i := 3; i < len(img.Pix); i += 4 {
		a = append(a, img.Pix[i])
	}
	return a
}
