package folio

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// PlaceholderFunc renders the image a card shows until its texture loads.
type PlaceholderFunc func(p Project) image.Image

const (
	placeholderW = 900
	placeholderH = 700
)

var (
	placeholderBg      = color.RGBA{0x0a, 0x0a, 0x10, 0xff}
	placeholderOrdinal = color.NRGBA{0x22, 0xd3, 0xee, 0x1a} // 10% alpha
	placeholderTitle   = color.NRGBA{0xff, 0xff, 0xff, 0x80} // 50% alpha
)

var (
	placeholderFontsOnce sync.Once
	ordinalFace          font.Face
	titleFace            font.Face
)

func loadPlaceholderFonts() {
	placeholderFontsOnce.Do(func() {
		ordinalFace = mustFace(gomonobold.TTF, 320)
		titleFace = mustFace(gomedium.TTF, 38)
	})
}

// mustFace parses an embedded Go font. The data is compiled in, so failure
// is a build problem.
func mustFace(ttf []byte, size float64) font.Face {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(fmt.Sprintf("folio: parse embedded font: %v", err))
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(fmt.Sprintf("folio: create font face: %v", err))
	}
	return face
}

// DefaultPlaceholder draws a dark card with the project's two-digit ordinal
// faintly in the middle and its title near the bottom.
func DefaultPlaceholder(p Project) image.Image {
	loadPlaceholderFonts()

	img := image.NewRGBA(image.Rect(0, 0, placeholderW, placeholderH))
	draw.Draw(img, img.Bounds(), image.NewUniform(placeholderBg), image.Point{}, draw.Src)

	drawCentered(img, ordinalFace, fmt.Sprintf("%02d", p.Index+1), placeholderOrdinal,
		placeholderW/2, placeholderH/2-20)
	if p.Title != "" {
		drawCentered(img, titleFace, p.Title, placeholderTitle,
			placeholderW/2, placeholderH-85)
	}
	return img
}

// drawCentered draws s with its box centered horizontally on cx and its
// glyph body centered vertically on cy.
func drawCentered(dst draw.Image, face font.Face, s string, c color.Color, cx, cy int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face}
	m := face.Metrics()
	adv := d.MeasureString(s)
	d.Dot = fixed.Point26_6{
		X: fixed.I(cx) - adv/2,
		Y: fixed.I(cy) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(s)
}

// newPlaceholderTexture renders the placeholder for p.
func newPlaceholderTexture(fn PlaceholderFunc, p Project) *Texture {
	if fn == nil {
		fn = DefaultPlaceholder
	}
	t := NewTexture(fn(p))
	t.placeholder = true
	return t
}
