package folio

import "github.com/chewxy/math32"

// Surface grid resolution. Cards are dense enough that the bend reads as a
// smooth curve even at hero size.
const (
	surfaceCols = 64
	surfaceRows = 48

	// minSurfaceSize replaces non-positive card dimensions.
	minSurfaceSize = 1e-3
)

// SurfaceVertex is one vertex of a card surface in local space. U and V are
// texture coordinates in [0, 1] with V = 0 along the top edge.
type SurfaceVertex struct {
	X, Y, Z    float32
	NX, NY, NZ float32
	U, V       float32
}

// Surface is a bent rectangular grid mesh: a card's geometry. It is centered
// on the origin in the XY plane and bows toward +Z.
type Surface struct {
	Width, Height float64
	Bend          float64

	Vertices []SurfaceVertex
	Indices  []uint16

	released bool
}

// BuildSurface creates a width x height grid whose depth at local x is
// bend * (1 - (x / (width/2))^2). A bend of 0 yields a flat plane. Non-positive
// dimensions are clamped to a tiny size and a negative bend is treated as 0.
// The result depends only on its arguments.
func BuildSurface(width, height, bend float64) *Surface {
	if !(width > 0) {
		width = minSurfaceSize
	}
	if !(height > 0) {
		height = minSurfaceSize
	}
	if !(bend > 0) {
		bend = 0
	}

	vcols := surfaceCols + 1
	vrows := surfaceRows + 1
	verts := make([]SurfaceVertex, vcols*vrows)
	inds := make([]uint16, surfaceCols*surfaceRows*6)

	halfW := width / 2
	halfH := height / 2
	cellW := width / surfaceCols
	cellH := height / surfaceRows

	for r := 0; r < vrows; r++ {
		for c := 0; c < vcols; c++ {
			x := -halfW + float64(c)*cellW
			y := halfH - float64(r)*cellH
			nx := x / halfW
			z := bend * (1 - nx*nx)
			verts[r*vcols+c] = SurfaceVertex{
				X: float32(x), Y: float32(y), Z: float32(z),
				U: float32(c) / surfaceCols,
				V: float32(r) / surfaceRows,
			}
		}
	}

	ii := 0
	for r := 0; r < surfaceRows; r++ {
		for c := 0; c < surfaceCols; c++ {
			tl := uint16(r*vcols + c)
			tr := tl + 1
			bl := uint16((r+1)*vcols + c)
			br := bl + 1
			inds[ii+0] = tl
			inds[ii+1] = bl
			inds[ii+2] = tr
			inds[ii+3] = tr
			inds[ii+4] = bl
			inds[ii+5] = br
			ii += 6
		}
	}

	computeNormals(verts, inds)

	return &Surface{
		Width:    width,
		Height:   height,
		Bend:     bend,
		Vertices: verts,
		Indices:  inds,
	}
}

// computeNormals accumulates unnormalized face normals (so larger triangles
// weigh more) into each vertex and normalizes the sums.
func computeNormals(verts []SurfaceVertex, inds []uint16) {
	for i := range verts {
		verts[i].NX, verts[i].NY, verts[i].NZ = 0, 0, 0
	}
	for i := 0; i+2 < len(inds); i += 3 {
		a, b, c := &verts[inds[i]], &verts[inds[i+1]], &verts[inds[i+2]]
		e1x, e1y, e1z := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		e2x, e2y, e2z := c.X-a.X, c.Y-a.Y, c.Z-a.Z
		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x
		for _, v := range [3]*SurfaceVertex{a, b, c} {
			v.NX += nx
			v.NY += ny
			v.NZ += nz
		}
	}
	for i := range verts {
		v := &verts[i]
		l := math32.Sqrt(v.NX*v.NX + v.NY*v.NY + v.NZ*v.NZ)
		if l < 1e-12 {
			v.NX, v.NY, v.NZ = 0, 0, 1
			continue
		}
		v.NX /= l
		v.NY /= l
		v.NZ /= l
	}
}

// Release discards the surface buffers. A released surface draws nothing.
func (s *Surface) Release() {
	if s == nil {
		return
	}
	s.Vertices = nil
	s.Indices = nil
	s.released = true
}

// Released reports whether Release has been called.
func (s *Surface) Released() bool {
	return s == nil || s.released
}
