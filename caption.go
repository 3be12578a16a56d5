package folio

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Caption block beside the centered card.
const (
	captionW       = 560
	captionH       = 340
	captionMarginX = 48
	taglineWidth   = 400
	titleLines     = 2
)

// Navigation bars at the right edge, one per project.
const (
	indicatorRight   = 40
	indicatorW       = 4
	indicatorH       = 16
	indicatorActiveH = 32
	indicatorGap     = 8
)

var (
	captionMuted    = color.RGBA{0x52, 0x52, 0x5b, 0xff}
	captionCategory = color.RGBA{0x71, 0x71, 0x7a, 0xff}
	captionTagline  = color.RGBA{0xa1, 0xa1, 0xaa, 0xff}
	captionTitle    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	indicatorIdle   = color.RGBA{0x3f, 0x3f, 0x46, 0xff}
)

var (
	captionFontsOnce sync.Once
	counterFace      font.Face
	totalFace        font.Face
	headingFace      font.Face
	categoryFace     font.Face
	taglineFace      font.Face
)

func loadCaptionFonts() {
	captionFontsOnce.Do(func() {
		counterFace = mustFace(gomonobold.TTF, 64)
		totalFace = mustFace(gomonobold.TTF, 24)
		headingFace = mustFace(gobold.TTF, 44)
		categoryFace = mustFace(gomono.TTF, 13)
		taglineFace = mustFace(goregular.TTF, 16)
	})
}

// captionState caches the rendered caption of one project.
type captionState struct {
	index int
	tex   *Texture
}

// renderCaption draws the counter ("03 / 07" with the ordinal in accent),
// the title, the category and the wrapped tagline of p on a transparent
// background.
func renderCaption(p Project, total int, accent Color) *image.RGBA {
	loadCaptionFonts()
	img := image.NewRGBA(image.Rect(0, 0, captionW, captionH))

	y := 64
	x := drawText(img, counterFace, fmt.Sprintf("%02d", p.Index+1), accent.toRGBA(), 0, y)
	x = drawText(img, totalFace, " / ", captionMuted, x, y)
	drawText(img, totalFace, fmt.Sprintf("%02d", total), captionMuted, x, y)

	y += 24
	lines := wrapText(headingFace, p.Title, captionW)
	if len(lines) > titleLines {
		lines = lines[:titleLines]
	}
	for _, line := range lines {
		y += 46
		drawText(img, headingFace, line, captionTitle, 0, y)
	}

	if p.Category != "" {
		y += 30
		drawText(img, categoryFace, strings.ToUpper(p.Category), captionCategory, 0, y)
	}

	y += 12
	for _, line := range wrapText(taglineFace, p.Tagline, taglineWidth) {
		y += 24
		if y > captionH-6 {
			break
		}
		drawText(img, taglineFace, line, captionTagline, 0, y)
	}
	return img
}

// drawText draws s with its baseline at y starting at x and returns the x
// position after the last glyph.
func drawText(dst *image.RGBA, face font.Face, s string, c color.Color, x, y int) int {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

// wrapText breaks s into lines no wider than maxW pixels. A single word
// wider than maxW gets a line of its own.
func wrapText(face font.Face, s string, maxW int) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		next := word
		if line != "" {
			next = line + " " + word
		}
		if line != "" && font.MeasureString(face, next).Ceil() > maxW {
			lines = append(lines, line)
			next = word
		}
		line = next
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// indicatorRects returns one bar per project, stacked at the right edge of a
// w x h screen and centered vertically. The active bar is taller.
func indicatorRects(w, h float64, n, active int) []image.Rectangle {
	total := (n-1)*indicatorH + indicatorActiveH + (n-1)*indicatorGap
	if active < 0 || active >= n {
		total = n*indicatorH + (n-1)*indicatorGap
	}
	x := int(w) - indicatorRight - indicatorW
	y := int(math.Round(h/2)) - total/2
	rects := make([]image.Rectangle, n)
	for i := range rects {
		bh := indicatorH
		if i == active {
			bh = indicatorActiveH
		}
		rects[i] = image.Rect(x, y, x+indicatorW, y+bh)
		y += bh + indicatorGap
	}
	return rects
}

// captionVisible reports whether the caption and navigation bars are shown:
// only in the idle gallery.
func (e *Engine) captionVisible() bool {
	return e.galleryReady()
}

// captionTexture returns the caption of the centered project, rendering it
// again when the centered project changed.
func (e *Engine) captionTexture() *Texture {
	i := e.state.ActiveIndex
	if e.caption.tex != nil && e.caption.index == i {
		return e.caption.tex
	}
	e.caption.tex.Dispose()
	p := e.cards[i].Project
	e.caption = captionState{
		index: i,
		tex:   NewTexture(renderCaption(p, len(e.cards), e.theme(p.ID).Accent)),
	}
	return e.caption.tex
}

// indicatorAt returns the index of the navigation bar under (x, y), or -1.
// Bars accept clicks within half a gap on every side.
func (e *Engine) indicatorAt(x, y float64) int {
	w, h := e.camera.Viewport()
	pt := image.Pt(int(math.Floor(x)), int(math.Floor(y)))
	for i, r := range indicatorRects(w, h, len(e.cards), e.state.ActiveIndex) {
		if pt.In(r.Inset(-indicatorGap / 2)) {
			return i
		}
	}
	return -1
}

// drawCaption draws the caption and navigation bars over the cards.
func (e *Engine) drawCaption(screen *ebiten.Image) {
	if !e.captionVisible() {
		return
	}
	w, h := e.camera.Viewport()
	if img := e.captionTexture().Image(); img != nil {
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(captionMarginX, math.Round(h/2-captionH/2))
		screen.DrawImage(img, &op)
	}

	if e.render.pixel == nil {
		e.render.pixel = ebiten.NewImage(1, 1)
		e.render.pixel.Fill(color.White)
	}
	accent := e.theme(e.activeCard().Project.ID).Accent.toRGBA()
	for i, r := range indicatorRects(w, h, len(e.cards), e.state.ActiveIndex) {
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
		op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
		if i == e.state.ActiveIndex {
			op.ColorScale.ScaleWithColor(accent)
		} else {
			op.ColorScale.ScaleWithColor(indicatorIdle)
		}
		screen.DrawImage(e.render.pixel, &op)
	}
}
