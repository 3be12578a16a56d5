package folio

import "math"

// Mat4 is a 4x4 matrix stored row-major: m[row*4+col]. Points are column
// vectors, so a chain A·B·p applies B first.
type Mat4 [16]float64

// identityMat4 is the identity matrix.
var identityMat4 = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Mul returns a·b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r[row*4+col] = a[row*4+0]*b[0*4+col] +
				a[row*4+1]*b[1*4+col] +
				a[row*4+2]*b[2*4+col] +
				a[row*4+3]*b[3*4+col]
		}
	}
	return r
}

// MulPoint transforms (x, y, z, 1) and returns the homogeneous result.
func (a Mat4) MulPoint(x, y, z float64) (float64, float64, float64, float64) {
	return a[0]*x + a[1]*y + a[2]*z + a[3],
		a[4]*x + a[5]*y + a[6]*z + a[7],
		a[8]*x + a[9]*y + a[10]*z + a[11],
		a[12]*x + a[13]*y + a[14]*z + a[15]
}

// MulDir transforms a direction (w = 0). Translation is ignored.
func (a Mat4) MulDir(x, y, z float64) Vec3 {
	return Vec3{
		a[0]*x + a[1]*y + a[2]*z,
		a[4]*x + a[5]*y + a[6]*z,
		a[8]*x + a[9]*y + a[10]*z,
	}
}

func translateMat4(x, y, z float64) Mat4 {
	m := identityMat4
	m[3], m[7], m[11] = x, y, z
	return m
}

func scaleMat4(s float64) Mat4 {
	m := identityMat4
	m[0], m[5], m[10] = s, s, s
	return m
}

func rotateXMat4(a float64) Mat4 {
	sin, cos := math.Sincos(a)
	return Mat4{
		1, 0, 0, 0,
		0, cos, -sin, 0,
		0, sin, cos, 0,
		0, 0, 0, 1,
	}
}

func rotateYMat4(a float64) Mat4 {
	sin, cos := math.Sincos(a)
	return Mat4{
		cos, 0, sin, 0,
		0, 1, 0, 0,
		-sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

func rotateZMat4(a float64) Mat4 {
	sin, cos := math.Sincos(a)
	return Mat4{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// modelMatrix computes the local matrix of a pose.
//
// Composition order (Euler XYZ):
//
//	Scale -> RotateZ -> RotateY -> RotateX -> Translate
func (p Pose) modelMatrix() Mat4 {
	m := translateMat4(p.X, p.Y, p.Z)
	if p.RotX != 0 {
		m = m.Mul(rotateXMat4(p.RotX))
	}
	if p.RotY != 0 {
		m = m.Mul(rotateYMat4(p.RotY))
	}
	if p.RotZ != 0 {
		m = m.Mul(rotateZMat4(p.RotZ))
	}
	if p.Scale != 1 {
		m = m.Mul(scaleMat4(p.Scale))
	}
	return m
}

// groupMatrix is the strip transform the entry animation drives:
// Translate(0, y, z) * RotateX(tilt).
func groupMatrix(y, z, tilt float64) Mat4 {
	m := translateMat4(0, y, z)
	if tilt != 0 {
		m = m.Mul(rotateXMat4(tilt))
	}
	return m
}

// perspectiveMat4 builds an OpenGL-style projection. fovY is in radians.
func perspectiveMat4(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovY/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// lookAtMat4 builds a view matrix for an eye looking at target.
func lookAtMat4(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	}
}
