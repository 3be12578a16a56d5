package folio

import "math"

// Camera is the fixed perspective camera the gallery is viewed through.
type Camera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Eye is the camera position; Target is the point it looks at.
	Eye, Target Vec3
	// Up is the world up direction.
	Up Vec3
	// Near and Far are the clip plane distances.
	Near, Far float64

	width, height float64

	viewMatrix     Mat4
	viewProjMatrix Mat4
	dirty          bool
}

// newCamera creates the gallery camera for a viewport of w x h pixels.
func newCamera(w, h float64) *Camera {
	return &Camera{
		FOV:    50,
		Eye:    Vec3{1.5, 0, 6},
		Target: Vec3{0.8, 0, 0},
		Up:     Vec3{0, 1, 0},
		Near:   0.1,
		Far:    100,
		width:  math.Max(w, 1),
		height: math.Max(h, 1),
		dirty:  true,
	}
}

// Resize updates the viewport size and therefore the aspect ratio.
func (c *Camera) Resize(w, h float64) {
	w = math.Max(w, 1)
	h = math.Max(h, 1)
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.dirty = true
}

// Viewport returns the size in pixels the camera projects onto.
func (c *Camera) Viewport() (w, h float64) {
	return c.width, c.height
}

// MarkDirty forces a recomputation of the matrices. Call it after changing
// the exported fields.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeViewProj recomputes the cached matrices if dirty.
//
// viewProj = Perspective(fov, aspect, near, far) * LookAt(eye, target, up)
func (c *Camera) computeViewProj() Mat4 {
	if !c.dirty {
		return c.viewProjMatrix
	}
	c.dirty = false
	c.viewMatrix = lookAtMat4(c.Eye, c.Target, c.Up)
	proj := perspectiveMat4(c.FOV*math.Pi/180, c.width/c.height, c.Near, c.Far)
	c.viewProjMatrix = proj.Mul(c.viewMatrix)
	return c.viewProjMatrix
}

// toScreen maps a clip-space point to screen pixels. depth is the NDC z in
// [-1, 1]; ok is false for points behind the eye or outside the clip range.
func (c *Camera) toScreen(cx, cy, cz, cw float64) (sx, sy, depth float64, ok bool) {
	if cw <= 1e-9 {
		return 0, 0, 0, false
	}
	nx, ny, nz := cx/cw, cy/cw, cz/cw
	sx = (nx + 1) / 2 * c.width
	sy = (1 - ny) / 2 * c.height
	return sx, sy, nz, nz >= -1 && nz <= 1
}

// WorldToScreen projects a world-space point to screen pixels.
func (c *Camera) WorldToScreen(p Vec3) (sx, sy, depth float64, ok bool) {
	vp := c.computeViewProj()
	return c.toScreen(vp.MulPoint(p.X, p.Y, p.Z))
}

// viewDepth returns the distance of a world-space point in front of the eye.
func (c *Camera) viewDepth(p Vec3) float64 {
	c.computeViewProj()
	_, _, z, _ := c.viewMatrix.MulPoint(p.X, p.Y, p.Z)
	return -z
}
