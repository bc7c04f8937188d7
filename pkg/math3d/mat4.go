package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// Rotate creates a rotation matrix around an arbitrary axis.
func Rotate(axis Vec3, angle float64) Mat4 {
	return QuatFromAxisAngle(axis, angle).Mat4()
}

// TRS composes Translate · Rotate · Scale, the X3D Transform order.
func TRS(translation Vec3, rotation AxisAngle, scale Vec3) Mat4 {
	return Translate(translation).Mul(Rotate(rotation.Axis, rotation.Angle)).Mul(Scale(scale))
}

// Frustum creates a symmetric perspective projection from the near plane
// half extents. Camera space looks down -Z; clip w is -z.
func Frustum(near, far, right, top float64) Mat4 {
	var m Mat4
	m.Set(0, 0, near/right)
	m.Set(1, 1, near/top)
	m.Set(2, 2, -(far+near)/(far-near))
	m.Set(2, 3, -2*far*near/(far-near))
	m.Set(3, 2, -1)
	return m
}

// VerticalFOV converts a field of view given against the viewport
// diagonal into the vertical field of view of a width x height viewport.
func VerticalFOV(fov, width, height float64) float64 {
	return 2 * math.Atan(math.Tan(fov/2)*height/math.Hypot(width, height))
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a position (w = 1) and divides by the resulting w.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(Point(v)).PerspectiveDivide()
}

// Transpose returns the transposed matrix. For a pure rotation this is
// the inverse.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// Determinant returns the determinant of the matrix.
func (m Mat4) Determinant() float64 {
	return m[0]*(m[5]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[6]*m[15]-m[14]*m[7])+m[13]*(m[6]*m[11]-m[10]*m[7])) -
		m[4]*(m[1]*(m[10]*m[15]-m[14]*m[11])-m[9]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[11]-m[10]*m[3])) +
		m[8]*(m[1]*(m[6]*m[15]-m[14]*m[7])-m[5]*(m[2]*m[15]-m[14]*m[3])+m[13]*(m[2]*m[7]-m[6]*m[3])) -
		m[12]*(m[1]*(m[6]*m[11]-m[10]*m[7])-m[5]*(m[2]*m[11]-m[10]*m[3])+m[9]*(m[2]*m[7]-m[6]*m[3]))
}

// Inverse returns the inverse of the matrix by cofactor expansion.
// Returns identity if the matrix is singular (det=0).
func (m Mat4) Inverse() Mat4 {
	det := m.Determinant()
	if det == 0 {
		return Identity()
	}

	var inv Mat4
	for row := range 4 {
		for col := range 4 {
			// inverse(row, col) = cofactor(col, row) / det
			minor := m.minor(col, row)
			sign := 1.0
			if (row+col)%2 == 1 {
				sign = -1
			}
			inv.Set(row, col, sign*minor/det)
		}
	}
	return inv
}

// minor returns the determinant of the 3x3 matrix left after removing
// the given row and column.
func (m Mat4) minor(skipRow, skipCol int) float64 {
	var s [9]float64
	i := 0
	for col := range 4 {
		if col == skipCol {
			continue
		}
		for row := range 4 {
			if row == skipRow {
				continue
			}
			s[i] = m.Get(row, col)
			i++
		}
	}
	// s is column-major 3x3
	return s[0]*(s[4]*s[8]-s[7]*s[5]) -
		s[3]*(s[1]*s[8]-s[7]*s[2]) +
		s[6]*(s[1]*s[5]-s[4]*s[2])
}

// Get returns the element at (row, col).
func (m Mat4) Get(row, col int) float64 {
	return m[row+col*4]
}

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, val float64) {
	m[row+col*4] = val
}
