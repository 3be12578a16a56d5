package folio

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func TestRenderCaption(t *testing.T) {
	p := Project{
		ID:       "p2",
		Index:    2,
		Title:    "Predict Kit",
		Category: "DeFi / Infrastructure",
		Tagline:  "Oracle-backed prediction markets with on-chain settlement.",
	}
	red := Color{1, 0, 0, 1}
	img := renderCaption(p, 7, red)
	require.Equal(t, image.Rect(0, 0, captionW, captionH), img.Bounds())

	isAccent := func(x, y int) bool {
		c := img.RGBAAt(x, y)
		return c.A == 0xff && c.R == 0xff && c.G == 0 && c.B == 0
	}
	var counter, below int
	for y := 0; y < captionH; y++ {
		for x := 0; x < captionW; x++ {
			if !isAccent(x, y) {
				continue
			}
			if y < 70 && x < 100 {
				counter++
			} else {
				below++
			}
		}
	}
	assert.Positive(t, counter, "counter is drawn in the accent color")
	assert.Zero(t, below, "only the counter uses the accent color")

	var ink int
	for y := 90; y < captionH; y++ {
		for x := 0; x < captionW; x++ {
			if img.RGBAAt(x, y).A > 0 {
				ink++
			}
		}
	}
	assert.Positive(t, ink, "title and tagline are drawn below the counter")
}

func TestRenderCaptionWithoutText(t *testing.T) {
	img := renderCaption(Project{Index: 0}, 1, ColorWhite)
	for y := 90; y < captionH; y++ {
		for x := 0; x < captionW; x++ {
			require.Zero(t, img.RGBAAt(x, y).A, "pixel %d,%d", x, y)
		}
	}
}

func TestWrapText(t *testing.T) {
	loadCaptionFonts()
	face := taglineFace

	assert.Empty(t, wrapText(face, "", 400))
	assert.Equal(t, []string{"Short line"}, wrapText(face, "  Short   line ", 400))

	long := strings.Repeat("gallery cards scroll on a curved strip ", 6)
	lines := wrapText(face, long, 200)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, font.MeasureString(face, line).Ceil(), 200, line)
	}
	assert.Equal(t, strings.Fields(long), strings.Fields(strings.Join(lines, " ")))

	word := strings.Repeat("w", 80)
	assert.Equal(t, []string{"a", word, "b"}, wrapText(face, "a "+word+" b", 200))
}

func TestIndicatorRects(t *testing.T) {
	rects := indicatorRects(1280, 720, 5, 2)
	require.Len(t, rects, 5)
	for i, r := range rects {
		assert.Equal(t, 1280-indicatorRight-indicatorW, r.Min.X)
		assert.Equal(t, indicatorW, r.Dx())
		if i == 2 {
			assert.Equal(t, indicatorActiveH, r.Dy())
		} else {
			assert.Equal(t, indicatorH, r.Dy())
		}
		if i > 0 {
			assert.Equal(t, indicatorGap, r.Min.Y-rects[i-1].Max.Y)
		}
	}
	assert.Equal(t, 360, (rects[0].Min.Y+rects[4].Max.Y)/2)

	for _, r := range indicatorRects(1280, 720, 3, -1) {
		assert.Equal(t, indicatorH, r.Dy())
	}
}

func TestCaptionVisibleOnlyInGallery(t *testing.T) {
	e := newTestEngine(t, 3, Options{})
	assert.False(t, e.captionVisible())

	advance(e, 4)
	assert.True(t, e.captionVisible())

	e.OpenHero()
	assert.False(t, e.captionVisible())
	advance(e, 1)
	require.Equal(t, PhaseHero, e.State().Phase)
	assert.False(t, e.captionVisible())

	e.CloseHero()
	assert.False(t, e.captionVisible())
	advance(e, 1)
	require.Equal(t, PhaseGallery, e.State().Phase)
	assert.True(t, e.captionVisible())
}

func TestCaptionTextureFollowsActiveProject(t *testing.T) {
	e := readyEngine(t, 4, Options{})

	first := e.captionTexture()
	require.NotNil(t, first)
	assert.Same(t, first, e.captionTexture())
	assert.Equal(t, 0, e.caption.index)

	e.GoToIndex(2)
	advance(e, 10)
	require.Equal(t, 2, e.State().ActiveIndex)

	second := e.captionTexture()
	assert.NotSame(t, first, second)
	assert.True(t, first.disposed)
	assert.False(t, second.disposed)
	assert.Equal(t, 2, e.caption.index)

	e.Close()
	assert.True(t, second.disposed)
	assert.Nil(t, e.caption.tex)
}

func TestClickIndicatorScrollsToProject(t *testing.T) {
	e := readyEngine(t, 5, Options{})
	w, h := e.Camera().Viewport()
	rects := indicatorRects(w, h, 5, e.State().ActiveIndex)

	r := rects[3]
	x := float64(r.Min.X+r.Max.X) / 2
	y := float64(r.Min.Y+r.Max.Y) / 2
	require.Equal(t, 3, e.indicatorAt(x, y))

	c := e.ClickAt(x, y)
	require.NotNil(t, c)
	assert.Equal(t, 3, c.Index())
	assert.Equal(t, PhaseGallery, e.State().Phase)
	assert.InDelta(t, 3*e.cfg.Spacing, e.State().ScrollTarget, 1e-12)

	assert.Equal(t, -1, e.indicatorAt(10, 10))
}

func TestClickIndicatorIgnoredDuringEntry(t *testing.T) {
	e := newTestEngine(t, 5, Options{})
	w, h := e.Camera().Viewport()
	r := indicatorRects(w, h, 5, 0)[4]

	assert.Nil(t, e.ClickAt(float64(r.Min.X+2), float64(r.Min.Y+8)))
	assert.Equal(t, 0.0, e.State().ScrollTarget)
}
