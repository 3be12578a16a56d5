package folio

import (
	"cmp"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Card shading: a soft key light from the upper front keeps the bend legible
// without washing out the artwork.
const (
	shadeAmbient = 0.82
	shadeDiffuse = 0.18
)

var lightDir = Vec3{0.3, 0.45, 1}.Normalize()

// renderBuffers holds per-frame scratch space, grown to a high-water mark and
// never shrunk.
type renderBuffers struct {
	verts []ebiten.Vertex
	order []drawItem
	pixel *ebiten.Image // 1x1 white, for the navigation bars
}

// drawItem is a card queued for drawing with its world matrix and view depth.
type drawItem struct {
	card  *Card
	model Mat4
	depth float64
}

// ensureVerts returns r.verts resliced to n, growing it when needed.
func (r *renderBuffers) ensureVerts(n int) []ebiten.Vertex {
	if cap(r.verts) < n {
		r.verts = make([]ebiten.Vertex, n)
	}
	r.verts = r.verts[:n]
	return r.verts
}

// collectVisible fills r.order with the drawable cards sorted far to near.
func (e *Engine) collectVisible() []drawItem {
	group := e.entry.groupMatrix()
	items := e.render.order[:0]
	for _, c := range e.cards {
		if !c.Visible || c.Opacity <= 0 || c.surface.Released() {
			continue
		}
		model := group.Mul(c.Pose.modelMatrix())
		x, y, z, _ := model.MulPoint(0, 0, 0)
		items = append(items, drawItem{
			card:  c,
			model: model,
			depth: e.camera.viewDepth(Vec3{x, y, z}),
		})
	}
	slices.SortStableFunc(items, func(a, b drawItem) int {
		return cmp.Compare(b.depth, a.depth)
	})
	e.render.order = items
	return items
}

// projectSurface projects a card surface into screen-space vertices. Texture
// coordinates are scaled to texW x texH and colors carry the card opacity
// (premultiplied) and the light shade. Returns false when any vertex falls
// outside the clip range.
func (e *Engine) projectSurface(it drawItem, texW, texH float32) ([]ebiten.Vertex, bool) {
	s := it.card.surface
	dst := e.render.ensureVerts(len(s.Vertices))
	mvp := e.camera.computeViewProj().Mul(it.model)
	alpha := float32(clamp01(it.card.Opacity))

	for i := range s.Vertices {
		v := &s.Vertices[i]
		sx, sy, _, ok := e.camera.toScreen(mvp.MulPoint(float64(v.X), float64(v.Y), float64(v.Z)))
		if !ok {
			return nil, false
		}
		n := it.model.MulDir(float64(v.NX), float64(v.NY), float64(v.NZ)).Normalize()
		shade := float32(shadeAmbient + shadeDiffuse*max(0, n.Dot(lightDir)))
		c := shade * alpha
		dst[i] = ebiten.Vertex{
			DstX:   float32(sx),
			DstY:   float32(sy),
			SrcX:   v.U * texW,
			SrcY:   v.V * texH,
			ColorR: c,
			ColorG: c,
			ColorB: c,
			ColorA: alpha,
		}
	}
	return dst, true
}

// Draw renders the gallery onto screen: the themed background, every visible
// card far to near, then the caption of the centered project.
func (e *Engine) Draw(screen *ebiten.Image) {
	if e.closed {
		return
	}
	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	screen.Fill(e.background.toRGBA())
	items := e.collectVisible()

	if e.debug {
		stats.collectTime = time.Since(t0)
		stats.cardCount = len(items)
		t0 = time.Now()
	}

	for _, it := range items {
		img := it.card.texture.Image()
		if img == nil {
			continue
		}
		b := img.Bounds()
		verts, ok := e.projectSurface(it, float32(b.Dx()), float32(b.Dy()))
		if !ok {
			continue
		}
		screen.DrawTriangles(verts, it.card.surface.Indices, img, &ebiten.DrawTrianglesOptions{
			Filter: ebiten.FilterLinear,
		})
		stats.drawCallCount++
		stats.vertexCount += len(verts)
	}
	e.drawCaption(screen)

	if e.debug {
		stats.submitTime = time.Since(t0)
		e.debugLog(stats)
	}
}

// HitTest returns the frontmost visible card under the screen point (x, y),
// or nil.
func (e *Engine) HitTest(x, y float64) *Card {
	if e.closed {
		return nil
	}
	items := e.collectVisible()
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		verts, ok := e.projectSurface(it, 1, 1)
		if !ok {
			continue
		}
		inds := it.card.surface.Indices
		for j := 0; j+2 < len(inds); j += 3 {
			if triangleContains(verts[inds[j]], verts[inds[j+1]], verts[inds[j+2]], x, y) {
				return it.card
			}
		}
	}
	return nil
}

// ClickAt handles a click at a screen point: a navigation bar or any card
// other than the centered one becomes the scroll destination, and the
// centered card opens the hero view. Returns the card selected.
func (e *Engine) ClickAt(x, y float64) *Card {
	if !e.galleryReady() {
		return nil
	}
	if i := e.indicatorAt(x, y); i >= 0 {
		e.GoToIndex(i)
		return e.cards[i]
	}
	c := e.HitTest(x, y)
	if c == nil {
		return nil
	}
	if c.Index() == e.state.ActiveIndex {
		e.OpenHero()
	} else {
		e.GoToIndex(c.Index())
	}
	return c
}

// triangleContains reports whether (x, y) lies inside the triangle using the
// cross-product sign test; either winding is accepted.
func triangleContains(a, b, c ebiten.Vertex, x, y float64) bool {
	pts := [3]ebiten.Vertex{a, b, c}
	var positive, negative bool
	for i := 0; i < 3; i++ {
		x1, y1 := float64(pts[i].DstX), float64(pts[i].DstY)
		j := (i + 1) % 3
		x2, y2 := float64(pts[j].DstX), float64(pts[j].DstY)
		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}
