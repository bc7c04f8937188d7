package math3d

import "math"

// AxisAngle is a rotation of Angle radians around Axis, following the
// right-hand rule. This is the X3D SFRotation layout.
type AxisAngle struct {
	Axis  Vec3
	Angle float64
}

// AxisAngleFromSlice reads an [x, y, z, angle] rotation. Short slices map
// to the zero rotation.
func AxisAngleFromSlice(s []float64) AxisAngle {
	if len(s) < 4 {
		return AxisAngle{Axis: V3(0, 0, 1)}
	}
	return AxisAngle{Axis: V3(s[0], s[1], s[2]), Angle: s[3]}
}

// Quat returns the unit quaternion for the rotation.
func (r AxisAngle) Quat() Quat {
	return QuatFromAxisAngle(r.Axis, r.Angle)
}

// Mat4 returns the rotation matrix.
func (r AxisAngle) Mat4() Mat4 {
	return r.Quat().Mat4()
}

// Quat is a rotation quaternion with real part W.
type Quat struct {
	W, X, Y, Z float64
}

// QuatFromAxisAngle builds the quaternion (cos θ/2, sin θ/2 · axis). The
// axis is normalized first; a zero axis yields the identity rotation.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalize()
	if axis == (Vec3{}) {
		return Quat{W: 1}
	}
	s := math.Sin(angle / 2)
	return Quat{
		W: math.Cos(angle / 2),
		X: s * axis.X,
		Y: s * axis.Y,
		Z: s * axis.Z,
	}
}

// Mat4 converts the quaternion into a rotation matrix.
func (q Quat) Mat4() Mat4 {
	w, x, y, z := q.W, q.X, q.Y, q.Z

	return Mat4{
		// column 0
		1 - 2*(y*y+z*z), 2 * (x*y + z*w), 2 * (x*z - y*w), 0,
		// column 1
		2 * (x*y - z*w), 1 - 2*(x*x+z*z), 2 * (y*z + x*w), 0,
		// column 2
		2 * (x*z + y*w), 2 * (y*z - x*w), 1 - 2*(x*x+y*y), 0,
		0, 0, 0, 1,
	}
}
