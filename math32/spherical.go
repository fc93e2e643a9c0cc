// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Spherical is a point in spherical coordinates around the Y (up) axis.
// Phi is the polar angle from +Y and Theta the azimuth around Y measured from +Z.
type Spherical struct {
	Radius float32
	Phi    float32
	Theta  float32
}

// NewSpherical returns the spherical coordinates of the given offset vector.
func NewSpherical(v Vector3) Spherical {
	s := Spherical{}
	s.SetFromVector3(v)
	return s
}

// SetFromVector3 sets the spherical coordinates from the given offset vector.
func (s *Spherical) SetFromVector3(v Vector3) {
	s.Radius = v.Length()
	if s.Radius == 0 {
		s.Theta = 0
		s.Phi = 0
		return
	}
	s.Theta = Atan2(v.X, v.Z)
	s.Phi = Acos(Clamp(v.Y/s.Radius, -1, 1))
}

// Vector3 returns the cartesian offset vector for these coordinates.
func (s Spherical) Vector3() Vector3 {
	sinPhiRadius := Sin(s.Phi) * s.Radius
	return Vector3{
		X: sinPhiRadius * Sin(s.Theta),
		Y: Cos(s.Phi) * s.Radius,
		Z: sinPhiRadius * Cos(s.Theta),
	}
}

// ClampPhi restricts the polar angle to [eps, Pi - eps].
func (s *Spherical) ClampPhi(eps float32) {
	s.Phi = Clamp(s.Phi, eps, Pi-eps)
}
