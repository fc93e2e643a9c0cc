// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "errors"

// Matrix4 is 4x4 matrix organized internally as column matrix.
// The translation of an affine transform lives in elements 12, 13, 14.
type Matrix4 [16]float32

// ErrSingular is returned when inverting a matrix whose determinant is zero.
var ErrSingular = errors.New("math32: matrix determinant is zero; cannot invert")

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// NewMatrix4Transform returns a new matrix composed from the given
// position, rotation and scale.
func NewMatrix4Transform(pos Vector3, quat Quat, scale Vector3) *Matrix4 {
	m := &Matrix4{}
	m.SetTransform(pos, quat, scale)
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// Pos returns the translation component of this matrix.
func (m *Matrix4) Pos() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// SetTransform sets this matrix to a transformation matrix for the specified position,
// rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x := quat.X
	y := quat.Y
	z := quat.Z
	w := quat.W
	x2 := x + x
	y2 := y + y
	z2 := z + z
	xx := x * x2
	xy := x * y2
	xz := x * z2
	yy := y * y2
	yz := y * z2
	zz := z * z2
	wx := w * x2
	wy := w * y2
	wz := w * z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0
	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0
	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Determinant3 returns the determinant of the upper 3x3 (rotation and scale) part.
func (m *Matrix4) Determinant3() float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// Decompose updates the position vector, quaternion and scale from this transformation matrix.
// A negative determinant is attributed to a negative X scale.
func (m *Matrix4) Decompose() (pos Vector3, quat Quat, scale Vector3) {
	sx := Vec3(m[0], m[1], m[2]).Length()
	sy := Vec3(m[4], m[5], m[6]).Length()
	sz := Vec3(m[8], m[9], m[10]).Length()

	if m.Determinant3() < 0 {
		sx = -sx
	}

	pos = Vec3(m[12], m[13], m[14])

	// scale the rotation part
	mc := *m
	if sx != 0 {
		invSX := 1 / sx
		mc[0] *= invSX
		mc[1] *= invSX
		mc[2] *= invSX
	}
	if sy != 0 {
		invSY := 1 / sy
		mc[4] *= invSY
		mc[5] *= invSY
		mc[6] *= invSY
	}
	if sz != 0 {
		invSZ := 1 / sz
		mc[8] *= invSZ
		mc[9] *= invSZ
		mc[10] *= invSZ
	}
	quat.SetFromRotationMatrix(&mc)
	quat.Normalize()
	scale = Vec3(sx, sy, sz)
	return
}

// MulMatrices sets this matrix as the multiplication of a by b: a * b.
// Applied to a point, b transforms first, then a.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	*m = r
}

// Mul returns this matrix times other matrix (this * other).
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// SetInverse sets this matrix to the inverse of the src matrix.
// If the src matrix cannot be inverted returns [ErrSingular] and
// sets this to the identity matrix.
func (m *Matrix4) SetInverse(src *Matrix4) error {
	n11 := src[0]
	n12 := src[4]
	n13 := src[8]
	n14 := src[12]
	n21 := src[1]
	n22 := src[5]
	n23 := src[9]
	n24 := src[13]
	n31 := src[2]
	n32 := src[6]
	n33 := src[10]
	n34 := src[14]
	n41 := src[3]
	n42 := src[7]
	n43 := src[11]
	n44 := src[15]

	t11 := n23*n34*n42 - n24*n33*n42 + n24*n32*n43 - n22*n34*n43 - n23*n32*n44 + n22*n33*n44
	t12 := n14*n33*n42 - n13*n34*n42 - n14*n32*n43 + n12*n34*n43 + n13*n32*n44 - n12*n33*n44
	t13 := n13*n24*n42 - n14*n23*n42 + n14*n22*n43 - n12*n24*n43 - n13*n22*n44 + n12*n23*n44
	t14 := n14*n23*n32 - n13*n24*n32 - n14*n22*n33 + n12*n24*n33 + n13*n22*n34 - n12*n23*n34

	det := n11*t11 + n21*t12 + n31*t13 + n41*t14
	if det == 0 {
		m.SetIdentity()
		return ErrSingular
	}
	detInv := 1 / det

	var r Matrix4
	r[0] = t11 * detInv
	r[1] = (n24*n33*n41 - n23*n34*n41 - n24*n31*n43 + n21*n34*n43 + n23*n31*n44 - n21*n33*n44) * detInv
	r[2] = (n22*n34*n41 - n24*n32*n41 + n24*n31*n42 - n21*n34*n42 - n22*n31*n44 + n21*n32*n44) * detInv
	r[3] = (n23*n32*n41 - n22*n33*n41 - n23*n31*n42 + n21*n33*n42 + n22*n31*n43 - n21*n32*n43) * detInv

	r[4] = t12 * detInv
	r[5] = (n13*n34*n41 - n14*n33*n41 + n14*n31*n43 - n11*n34*n43 - n13*n31*n44 + n11*n33*n44) * detInv
	r[6] = (n14*n32*n41 - n12*n34*n41 - n14*n31*n42 + n11*n34*n42 + n12*n31*n44 - n11*n32*n44) * detInv
	r[7] = (n12*n33*n41 - n13*n32*n41 + n13*n31*n42 - n11*n33*n42 - n12*n31*n43 + n11*n32*n43) * detInv

	r[8] = t13 * detInv
	r[9] = (n14*n23*n41 - n13*n24*n41 - n14*n21*n43 + n11*n24*n43 + n13*n21*n44 - n11*n23*n44) * detInv
	r[10] = (n12*n24*n41 - n14*n22*n41 + n14*n21*n42 - n11*n24*n42 - n12*n21*n44 + n11*n22*n44) * detInv
	r[11] = (n13*n22*n41 - n12*n23*n41 - n13*n21*n42 + n11*n23*n42 + n12*n21*n43 - n11*n22*n43) * detInv

	r[12] = t14 * detInv
	r[13] = (n13*n24*n31 - n14*n23*n31 + n14*n21*n33 - n11*n24*n33 - n13*n21*n34 + n11*n23*n34) * detInv
	r[14] = (n14*n22*n31 - n12*n24*n31 - n14*n21*n32 + n11*n24*n32 + n12*n21*n34 - n11*n22*n34) * detInv
	r[15] = (n12*n23*n31 - n13*n22*n31 + n13*n21*n32 - n11*n23*n32 - n12*n21*n33 + n11*n22*n33) * detInv

	*m = r
	return nil
}

// Inverse returns the inverse of this matrix.
// If the matrix cannot be inverted returns the identity and [ErrSingular].
func (m *Matrix4) Inverse() (*Matrix4, error) {
	nm := &Matrix4{}
	err := nm.SetInverse(m)
	return nm, err
}

// SetLookAt sets this matrix to a rotation matrix that orients the -Z axis
// from eye toward target, with the given up direction.
// If up is parallel to the view direction, the view direction is nudged
// slightly so that a valid basis can still be formed.
func (m *Matrix4) SetLookAt(eye, target, up Vector3) {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		z.Z = 1
	}
	z = z.Normal()
	x := up.Cross(z)

	if x.LengthSquared() == 0 {
		if Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normal()
		x = up.Cross(z)
	}
	x = x.Normal()
	y := z.Cross(x)

	m.SetIdentity()
	m[0] = x.X
	m[1] = x.Y
	m[2] = x.Z
	m[4] = y.X
	m[5] = y.Y
	m[6] = y.Z
	m[8] = z.X
	m[9] = z.Y
	m[10] = z.Z
}

// NewLookAtQuat returns the rotation that points the -Z axis from eye
// toward target with the given up direction.
func NewLookAtQuat(eye, target, up Vector3) Quat {
	m := &Matrix4{}
	m.SetLookAt(eye, target, up)
	q := Quat{}
	q.SetFromRotationMatrix(m)
	q.Normalize()
	return q
}
