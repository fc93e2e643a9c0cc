// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// When the normal vector is the unit vector the constant is the distance from the origin.
// Points p on the plane satisfy Normal.Dot(p) + Constant == 0.
type Plane struct {
	Normal   Vector3
	Constant float32
}

// NewPlane creates and returns a new plane from a normal vector and a constant.
func NewPlane(normal Vector3, constant float32) Plane {
	return Plane{Normal: normal, Constant: constant}
}

// NewPlaneNormalPoint returns the plane through point with the given normal,
// which is normalized first.
func NewPlaneNormalPoint(normal, point Vector3) Plane {
	n := normal.Normal()
	return Plane{Normal: n, Constant: -point.Dot(n)}
}

// DistanceToPoint returns the signed distance from this plane to the specified point.
// Positive values are on the side the normal points to.
func (p Plane) DistanceToPoint(point Vector3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

// Negate returns the plane facing the opposite direction.
func (p Plane) Negate() Plane {
	return Plane{Normal: p.Normal.Negate(), Constant: -p.Constant}
}
