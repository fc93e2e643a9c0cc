// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Quat is a rotation quaternion. The zero value is not a valid
// rotation; see [Quat.IsNil].
type Quat struct {
	X float32 `toml:"x" yaml:"x"`
	Y float32 `toml:"y" yaml:"y"`
	Z float32 `toml:"z" yaml:"z"`
	W float32 `toml:"w" yaml:"w"`
}

// NewQuatIdentity returns the identity rotation.
func NewQuatIdentity() Quat {
	return Quat{W: 1}
}

// NewQuatAxisAngle returns the rotation by angle radians about axis,
// which need not be normalized.
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	axis = axis.Normal()
	s := Sin(angle / 2)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, Cos(angle / 2)}
}

// NewQuatEuler returns the rotation for XYZ ordered Euler angles in radians.
func NewQuatEuler(e Vector3) Quat {
	cx, sx := Cos(e.X/2), Sin(e.X/2)
	cy, sy := Cos(e.Y/2), Sin(e.Y/2)
	cz, sz := Cos(e.Z/2), Sin(e.Z/2)
	return Quat{
		X: sx*cy*cz + cx*sy*sz,
		Y: cx*sy*cz - sx*cy*sz,
		Z: cx*cy*sz + sx*sy*cz,
		W: cx*cy*cz - sx*sy*sz,
	}
}

func (q Quat) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.X, q.Y, q.Z, q.W)
}

// SetIdentity resets q to the identity rotation.
func (q *Quat) SetIdentity() {
	*q = NewQuatIdentity()
}

// IsNil returns true if all components are zero, as in a
// never initialized transform.
func (q Quat) IsNil() bool {
	return q == Quat{}
}

// SetFromRotationMatrix sets q from the upper 3x3 of m, which
// must be a pure rotation.
func (q *Quat) SetFromRotationMatrix(m *Matrix4) {
	// row, column
	r := func(i, j int) float32 { return m[j*4+i] }
	switch tr := r(0, 0) + r(1, 1) + r(2, 2); {
	case tr > 0:
		s := 0.5 / Sqrt(tr+1)
		*q = Quat{(r(2, 1) - r(1, 2)) * s, (r(0, 2) - r(2, 0)) * s, (r(1, 0) - r(0, 1)) * s, 0.25 / s}
	case r(0, 0) > r(1, 1) && r(0, 0) > r(2, 2):
		s := 2 * Sqrt(1+r(0, 0)-r(1, 1)-r(2, 2))
		*q = Quat{0.25 * s, (r(0, 1) + r(1, 0)) / s, (r(0, 2) + r(2, 0)) / s, (r(2, 1) - r(1, 2)) / s}
	case r(1, 1) > r(2, 2):
		s := 2 * Sqrt(1+r(1, 1)-r(0, 0)-r(2, 2))
		*q = Quat{(r(0, 1) + r(1, 0)) / s, 0.25 * s, (r(1, 2) + r(2, 1)) / s, (r(0, 2) - r(2, 0)) / s}
	default:
		s := 2 * Sqrt(1+r(2, 2)-r(0, 0)-r(1, 1))
		*q = Quat{(r(0, 2) + r(2, 0)) / s, (r(1, 2) + r(2, 1)) / s, 0.25 * s, (r(1, 0) - r(0, 1)) / s}
	}
}

// Inverse returns the inverse rotation.
func (q Quat) Inverse() Quat {
	q.X, q.Y, q.Z = -q.X, -q.Y, -q.Z
	q.Normalize()
	return q
}

// Dot returns the four component dot product.
func (q Quat) Dot(o Quat) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Length returns the norm of q.
func (q Quat) Length() float32 {
	return Sqrt(q.Dot(q))
}

// Normalize scales q to unit length. A zero quaternion becomes
// the identity.
func (q *Quat) Normalize() {
	l := q.Length()
	if l == 0 {
		q.SetIdentity()
		return
	}
	q.X, q.Y, q.Z, q.W = q.X/l, q.Y/l, q.Z/l, q.W/l
}

// Mul returns the Hamilton product q * o: the rotation o applied
// first, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.X*o.W + q.W*o.X + q.Y*o.Z - q.Z*o.Y,
		Y: q.Y*o.W + q.W*o.Y + q.Z*o.X - q.X*o.Z,
		Z: q.Z*o.W + q.W*o.Z + q.X*o.Y - q.Y*o.X,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// IsEqualTol returns true if q and o are the same rotation within
// tol. q and -q are the same rotation.
func (q Quat) IsEqualTol(o Quat, tol float32) bool {
	return Abs(Abs(q.Dot(o))-1) <= tol
}

// ToAxisAngle returns the axis and angle in radians of the rotation.
// The axis is +X when the angle is zero.
func (q Quat) ToAxisAngle() (Vector3, float32) {
	q.Normalize()
	angle := 2 * Acos(Clamp(q.W, -1, 1))
	s := Sqrt(1 - q.W*q.W)
	if s < 0.0001 {
		return Vec3(1, 0, 0), angle
	}
	return Vec3(q.X/s, q.Y/s, q.Z/s), angle
}
