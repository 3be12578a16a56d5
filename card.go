package folio

import "math"

// curvatureEpsilon is the smallest bend change that rebuilds a surface.
const curvatureEpsilon = 1e-3

// Card is the engine-side representation of one featured project. Cards are
// created by New and live until Engine.Close.
type Card struct {
	Project Project

	// RestingSlot is the card's position along the strip: -index * spacing.
	RestingSlot float64

	Pose      Pose
	Curvature float64
	Visible   bool
	Opacity   float64

	surface *Surface
	texture *Texture

	// Teardown guard for async texture results.
	alive   bool
	loadGen uint64
}

// newCard creates a card at its gallery pose for scroll 0 with a flat surface
// and zero opacity.
func newCard(p Project, cfg *Config, tex *Texture) *Card {
	c := &Card{
		Project:     p,
		RestingSlot: -float64(p.Index) * cfg.Spacing,
		Visible:     true,
		texture:     tex,
		alive:       true,
	}
	c.Pose = cfg.galleryPose(c.RestingSlot, 0)
	c.surface = BuildSurface(cfg.CardWidth, cfg.CardHeight, 0)
	return c
}

// Index returns the card's display position.
func (c *Card) Index() int { return c.Project.Index }

// Surface returns the geometry currently assigned to the card.
func (c *Card) Surface() *Surface { return c.surface }

// Texture returns the card's current texture.
func (c *Card) Texture() *Texture { return c.texture }

// IsAlive reports whether the card still belongs to an open engine.
func (c *Card) IsAlive() bool { return c.alive }

// setCurvature rebuilds the surface when bend differs from the current
// curvature by more than curvatureEpsilon or the card dimensions changed.
// force rebuilds whenever the value is not already exact. Reports whether a
// rebuild happened.
func (c *Card) setCurvature(bend, width, height float64, force bool) bool {
	if bend < 0 {
		bend = 0
	}
	s := c.surface
	sizeChanged := s == nil || s.Released() || s.Width != width || s.Height != height
	delta := math.Abs(bend - c.Curvature)
	if !sizeChanged && delta <= curvatureEpsilon && !(force && delta != 0) {
		return false
	}
	next := BuildSurface(width, height, bend)
	if s != nil {
		s.Release()
	}
	c.surface = next
	c.Curvature = bend
	return true
}

// setTexture swaps the card's texture and disposes the previous one.
func (c *Card) setTexture(t *Texture) {
	if c.texture == t {
		return
	}
	if c.texture != nil {
		c.texture.Dispose()
	}
	c.texture = t
}

// dispose releases every resource the card holds.
func (c *Card) dispose() {
	c.alive = false
	c.loadGen++
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.texture != nil {
		c.texture.Dispose()
		c.texture = nil
	}
}
