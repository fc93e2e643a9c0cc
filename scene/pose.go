// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/xyzedit/math32"

// Pose contains the full description of position and orientation,
// always relevant to the parent element.
type Pose struct {
	// position of center of element (relative to parent)
	Pos math32.Vector3

	// scale (relative to parent)
	Scale math32.Vector3

	// Node rotation specified as a Quat (relative to parent)
	Quat math32.Quat
}

// NewPose returns a pose at the given position with identity
// rotation and unit scale.
func NewPose(pos math32.Vector3) Pose {
	return Pose{Pos: pos, Scale: math32.Vector3Scalar(1), Quat: math32.NewQuatIdentity()}
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// Matrix returns the local transform matrix based on its position, quaternion, and scale.
func (ps *Pose) Matrix() *math32.Matrix4 {
	ps.Defaults()
	return math32.NewMatrix4Transform(ps.Pos, ps.Quat, ps.Scale)
}

// SetMatrix sets Pos, Scale, Quat from the given local transformation matrix.
func (ps *Pose) SetMatrix(m *math32.Matrix4) {
	ps.Pos, ps.Quat, ps.Scale = m.Decompose()
}

// IsEqualTol returns true if the other pose is the same within tolerance.
func (ps Pose) IsEqualTol(other Pose, tol float32) bool {
	return ps.Pos.IsEqualTol(other.Pos, tol) && ps.Scale.IsEqualTol(other.Scale, tol) &&
		ps.Quat.IsEqualTol(other.Quat, tol)
}

// RotateOnAxis rotates around the specified local axis the specified angle in degrees.
func (ps *Pose) RotateOnAxis(x, y, z, angle float32) {
	ps.Quat = ps.Quat.Mul(math32.NewQuatAxisAngle(math32.Vec3(x, y, z), math32.DegToRad(angle)))
}
