// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package camera

import (
	"fmt"

	"cogentcore.org/xyzedit/math32"
)

// Projections are the two camera projection families.
type Projections int32

const (
	// Perspective is a pinhole camera with a field of view.
	Perspective Projections = iota

	// Orthographic is a parallel projection with a fixed frustum size.
	Orthographic
)

func (p Projections) String() string {
	if p == Orthographic {
		return "Orthographic"
	}
	return "Perspective"
}

// UpDir is the world up direction used for all camera orientations.
var UpDir = math32.Vec3(0, 1, 0)

// Camera defines the properties of the camera. The camera looks down
// its local negative Z axis with positive Y up.
type Camera struct {
	Projection Projections

	// Pos is the world position of the camera.
	Pos math32.Vector3

	// Quat is the world orientation of the camera.
	Quat math32.Quat

	// field of view in degrees, for perspective cameras
	FOV float32

	// aspect ratio (width/height), for perspective cameras
	Aspect float32

	// near plane z coordinate
	Near float32

	// far plane z coordinate
	Far float32

	// Width and Height are the orthographic frustum extents in world units.
	Width  float32
	Height float32
}

// NewPerspective returns a new perspective camera.
func NewPerspective(fov, aspect, near, far float32) *Camera {
	return &Camera{Projection: Perspective, FOV: fov, Aspect: aspect, Near: near, Far: far, Quat: math32.NewQuatIdentity()}
}

// NewOrthographic returns a new orthographic camera with the given frustum extents.
func NewOrthographic(width, height, near, far float32) *Camera {
	cm := &Camera{Projection: Orthographic, Width: width, Height: height, Near: near, Far: far, Quat: math32.NewQuatIdentity()}
	if height > 0 {
		cm.Aspect = width / height
	}
	return cm
}

func (cm *Camera) String() string {
	if cm.Projection == Orthographic {
		return fmt.Sprintf("Orthographic{Pos: %v, Width: %g, Height: %g}", cm.Pos, cm.Width, cm.Height)
	}
	return fmt.Sprintf("Perspective{Pos: %v, FOV: %g, Aspect: %g}", cm.Pos, cm.FOV, cm.Aspect)
}

// LookAt points the camera at the given target location, using the given up direction.
func (cm *Camera) LookAt(target, up math32.Vector3) {
	cm.Quat = math32.NewLookAtQuat(cm.Pos, target, up)
}

// Forward returns the world direction the camera looks in.
func (cm *Camera) Forward() math32.Vector3 {
	return math32.Vec3(0, 0, -1).MulQuat(cm.Quat)
}

// Right returns the world direction of the camera's local X axis.
func (cm *Camera) Right() math32.Vector3 {
	return math32.Vec3(1, 0, 0).MulQuat(cm.Quat)
}

// Up returns the world direction of the camera's local Y axis.
func (cm *Camera) Up() math32.Vector3 {
	return math32.Vec3(0, 1, 0).MulQuat(cm.Quat)
}

func (cm *Camera) tanHalfFOV() float32 {
	return math32.Tan(math32.DegToRad(cm.FOV) / 2)
}

// RayFromNDC returns the world ray through the given normalized device coordinates.
func (cm *Camera) RayFromNDC(ndc math32.Vector2) math32.Ray {
	if cm.Projection == Orthographic {
		off := math32.Vec3(ndc.X*cm.Width/2, ndc.Y*cm.Height/2, 0).MulQuat(cm.Quat)
		return math32.NewRay(cm.Pos.Add(off), cm.Forward())
	}
	th := cm.tanHalfFOV()
	dir := math32.Vec3(ndc.X*th*cm.Aspect, ndc.Y*th, -1).MulQuat(cm.Quat)
	return math32.NewRay(cm.Pos, dir)
}

// ProjectToNDC returns the normalized device coordinates of the world point.
// ok is false for points at or behind a perspective camera.
func (cm *Camera) ProjectToNDC(p math32.Vector3) (ndc math32.Vector2, ok bool) {
	pc := p.Sub(cm.Pos).MulQuat(cm.Quat.Inverse())
	if cm.Projection == Orthographic {
		if cm.Width == 0 || cm.Height == 0 {
			return ndc, false
		}
		return math32.Vec2(pc.X/(cm.Width/2), pc.Y/(cm.Height/2)), true
	}
	if pc.Z >= 0 {
		return ndc, false
	}
	th := cm.tanHalfFOV()
	d := -pc.Z
	return math32.Vec2(pc.X/(d*th*cm.Aspect), pc.Y/(d*th)), true
}
