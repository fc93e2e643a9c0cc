// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package camera provides the editor camera and the rig that navigates
// it: pan, orbit and zoom around a look-at target, focus on objects,
// view presets and runtime switching between projections.
package camera

import (
	"log/slog"
	"strings"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

// Settings are the navigation parameters of a [Rig].
type Settings struct {

	// PanSpeed is the pan distance per pixel, per unit of target distance.
	PanSpeed float32 `default:"0.002"`

	// OrbitSpeed is the orbit angle in radians per pixel.
	OrbitSpeed float32 `default:"0.005"`

	// ZoomSpeed sets the zoom factor 1+ZoomSpeed applied per wheel step.
	ZoomSpeed float32 `default:"0.1"`

	// MinDistance and MaxDistance clamp the perspective target distance.
	MinDistance float32 `default:"1"`
	MaxDistance float32 `default:"1000"`

	// MinOrthoWidth and MaxOrthoWidth clamp the orthographic frustum width.
	MinOrthoWidth float32 `default:"0.1"`
	MaxOrthoWidth float32 `default:"2000"`

	// FOV is the perspective field of view in degrees.
	FOV float32 `default:"50"`

	Near float32 `default:"0.1"`
	Far  float32 `default:"5000"`

	// OrthoHeight is the initial orthographic frustum height.
	OrthoHeight float32 `default:"20"`

	// FocusPadding scales the fitted distance when focusing on an object.
	FocusPadding float32 `default:"1.5"`

	// OrthoFocusMultiple is the camera distance, in multiples of the
	// object's largest dimension, when focusing an orthographic camera.
	OrthoFocusMultiple float32 `default:"4"`

	// PivotDistance is the orbit target distance used when nothing is
	// under the screen center after a pan.
	PivotDistance float32 `default:"10"`

	// DefaultPos and DefaultTarget are restored by [Rig.Reset].
	DefaultPos    math32.Vector3 `default:"10 10 10"`
	DefaultTarget math32.Vector3
}

// Views are the cardinal view presets.
type Views int32

const (
	ViewFront Views = iota
	ViewSide
	ViewTop
	ViewBottom
	ViewsN
)

var viewNames = [...]string{"front", "side", "top", "bottom"}

func (v Views) String() string {
	if v < 0 || v >= ViewsN {
		return "unknown"
	}
	return viewNames[v]
}

// ViewFromString returns the view preset with the given name.
func ViewFromString(s string) (Views, bool) {
	for i, n := range viewNames {
		if strings.EqualFold(n, s) {
			return Views(i), true
		}
	}
	return ViewsN, false
}

// direction from target to camera
func (v Views) direction() math32.Vector3 {
	switch v {
	case ViewFront:
		return math32.Vec3(0, 0, 1)
	case ViewSide:
		return math32.Vec3(1, 0, 0)
	case ViewTop:
		return math32.Vec3(0, 1, 0)
	default:
		return math32.Vec3(0, -1, 0)
	}
}

// polar angle limits for orbit, keeping away from the poles
const (
	minPolar = 0.1
	maxPolar = math32.Pi - 0.1
)

// Picker casts rays into the scene.
type Picker interface {
	Raycast(ray math32.Ray, targets []*scene.Node, recursive bool) []scene.Hit
}

// Rig owns the active camera, its look-at target and the spherical
// coordinates of the camera relative to the target, which are kept in
// sync after every operation.
type Rig struct {
	Camera *Camera

	// Target is the look-at and orbit center.
	Target math32.Vector3

	// Spherical is the camera position relative to Target.
	Spherical math32.Spherical

	Settings Settings

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger
}

// NewRig returns a rig for a perspective camera at the default pose,
// for a render surface with the given aspect ratio.
func NewRig(st Settings, aspect float32) *Rig {
	cam := NewPerspective(st.FOV, aspect, st.Near, st.Far)
	rg := &Rig{Camera: cam, Settings: st}
	rg.Reset()
	return rg
}

func (rg *Rig) logger() *slog.Logger {
	return logx.Or(rg.Logger)
}

// ViewVector is the vector between the camera position and target
func (rg *Rig) ViewVector() math32.Vector3 {
	return rg.Camera.Pos.Sub(rg.Target)
}

// Distance returns the distance from the camera to the target.
func (rg *Rig) Distance() float32 {
	return rg.ViewVector().Length()
}

// syncSpherical recomputes the spherical coordinates from the camera position.
func (rg *Rig) syncSpherical() {
	rg.Spherical.SetFromVector3(rg.ViewVector())
}

// applySpherical positions the camera from the spherical coordinates
// and points it at the target.
func (rg *Rig) applySpherical() {
	rg.Camera.Pos = rg.Target.Add(rg.Spherical.Vector3())
	rg.Camera.LookAt(rg.Target, UpDir)
}

// Reset restores the default camera position and target.
func (rg *Rig) Reset() {
	st := &rg.Settings
	rg.Target = st.DefaultTarget
	rg.Camera.Pos = st.DefaultPos
	if rg.Camera.Projection == Orthographic {
		rg.Camera.Height = st.OrthoHeight
		rg.Camera.Width = st.OrthoHeight * rg.Camera.Aspect
	}
	rg.Camera.LookAt(rg.Target, UpDir)
	rg.syncSpherical()
}

// SetTarget points the camera at a new target, keeping its position.
func (rg *Rig) SetTarget(target math32.Vector3) {
	rg.Target = target
	rg.Camera.LookAt(target, UpDir)
	rg.syncSpherical()
}

// Pan moves the camera and the target by the same offset along the
// camera's right and up axes. dx, dy are pointer deltas in pixels; the
// offset scales with the target distance so framing stays consistent.
func (rg *Rig) Pan(dx, dy float32) {
	scale := rg.Settings.PanSpeed * rg.Distance()
	off := rg.Camera.Right().MulScalar(-dx * scale).Add(rg.Camera.Up().MulScalar(dy * scale))
	rg.Camera.Pos.SetAdd(off)
	rg.Target.SetAdd(off)
	rg.syncSpherical()
}

// Orbit rotates the camera around the target by pointer deltas in pixels:
// dx changes the azimuth and dy the polar angle, which is clamped away
// from the poles.
func (rg *Rig) Orbit(dx, dy float32) {
	rg.syncSpherical()
	sp := &rg.Spherical
	if sp.Radius == 0 {
		sp.Radius = rg.Settings.MinDistance
	}
	sp.Theta -= dx * rg.Settings.OrbitSpeed
	sp.Phi -= dy * rg.Settings.OrbitSpeed
	sp.Phi = math32.Clamp(sp.Phi, minPolar, maxPolar)
	rg.applySpherical()
}

// Zoom zooms in for positive delta and out for negative delta, by the
// factor 1+ZoomSpeed. Perspective cameras dolly toward the target
// (distance clamped to [MinDistance, MaxDistance]); orthographic cameras
// resize the frustum (width clamped to [MinOrthoWidth, MaxOrthoWidth]).
func (rg *Rig) Zoom(delta float32) {
	if delta == 0 {
		return
	}
	st := &rg.Settings
	factor := 1 + st.ZoomSpeed
	if delta < 0 {
		factor = 1 / factor
	}
	cam := rg.Camera
	if cam.Projection == Orthographic {
		aspect := cam.Width / cam.Height
		cam.Width = math32.Clamp(cam.Width/factor, st.MinOrthoWidth, st.MaxOrthoWidth)
		cam.Height = cam.Width / aspect
		return
	}
	rg.syncSpherical()
	rg.Spherical.Radius = math32.Clamp(rg.Spherical.Radius/factor, st.MinDistance, st.MaxDistance)
	rg.applySpherical()
}

// FocusOnObject targets the center of the node's world bounding box and
// moves the camera along its current viewing direction to a distance
// that fits the box. It returns false if the node has no geometry.
func (rg *Rig) FocusOnObject(n *scene.Node) bool {
	if n == nil {
		rg.logger().Warn("camera.Rig.FocusOnObject: nil node")
		return false
	}
	bb := n.WorldBBox()
	if bb.IsEmpty() {
		rg.logger().Debug("camera.Rig.FocusOnObject: node has no geometry", "node", n.ID)
		return false
	}
	st := &rg.Settings
	center := bb.Center()
	maxDim := math32.Max(bb.Size().MaxComponent(), 0.001)
	dir := rg.ViewVector().Normal()
	if dir.IsNil() {
		dir = math32.Vec3(0, 0, 1)
	}
	cam := rg.Camera
	var dist float32
	if cam.Projection == Orthographic {
		dist = maxDim * st.OrthoFocusMultiple
		aspect := cam.Width / cam.Height
		cam.Height = maxDim * st.FocusPadding
		cam.Width = math32.Clamp(cam.Height*aspect, st.MinOrthoWidth, st.MaxOrthoWidth)
		cam.Height = cam.Width / aspect
	} else {
		dist = maxDim / (2 * cam.tanHalfFOV()) * st.FocusPadding
		dist = math32.Clamp(dist, st.MinDistance, st.MaxDistance)
	}
	rg.Target = center
	cam.Pos = center.Add(dir.MulScalar(dist))
	cam.LookAt(center, UpDir)
	rg.syncSpherical()
	return true
}

// SetView positions the camera along a cardinal axis at the current
// target distance, looking at the target. Unknown presets return false.
func (rg *Rig) SetView(v Views) bool {
	if v < 0 || v >= ViewsN {
		rg.logger().Warn("camera.Rig.SetView: unknown view preset", "view", int(v))
		return false
	}
	dist := rg.Distance()
	if dist == 0 {
		dist = rg.Settings.PivotDistance
	}
	rg.Camera.Pos = rg.Target.Add(v.direction().MulScalar(dist))
	rg.Camera.LookAt(rg.Target, UpDir)
	rg.syncSpherical()
	return true
}

// ToggleProjection replaces the camera with one of the opposite
// projection at the same position and orientation, and returns it so
// that dependent systems can rebind. Switching to orthographic sizes the
// frustum to match the perspective view at the target distance.
func (rg *Rig) ToggleProjection() *Camera {
	old := rg.Camera
	st := &rg.Settings
	var cam *Camera
	if old.Projection == Perspective {
		height := 2 * rg.Distance() * old.tanHalfFOV()
		height = math32.Max(height, st.MinOrthoWidth)
		cam = NewOrthographic(height*old.Aspect, height, st.Near, st.Far)
		cam.Aspect = old.Aspect
	} else {
		cam = NewPerspective(st.FOV, old.Aspect, st.Near, st.Far)
	}
	cam.Pos = old.Pos
	cam.Quat = old.Quat
	rg.Camera = cam
	rg.syncSpherical()
	return cam
}

// UpdateRotationCenterAfterPan re-targets the orbit center after a pan:
// to the nearest candidate hit under the screen center, or otherwise to
// a point PivotDistance along the viewing direction.
func (rg *Rig) UpdateRotationCenterAfterPan(p Picker, candidates []*scene.Node) math32.Vector3 {
	ray := rg.Camera.RayFromNDC(math32.Vec2(0, 0))
	var hits []scene.Hit
	if p != nil && len(candidates) > 0 {
		hits = p.Raycast(ray, candidates, true)
	}
	if len(hits) > 0 {
		rg.Target = hits[0].Point
	} else {
		rg.Target = rg.Camera.Pos.Add(rg.Camera.Forward().MulScalar(rg.Settings.PivotDistance))
	}
	rg.syncSpherical()
	return rg.Target
}

// HandleResize updates the aspect ratio (perspective) or the frustum
// width from height times aspect (orthographic).
func (rg *Rig) HandleResize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := width / height
	cam := rg.Camera
	cam.Aspect = aspect
	if cam.Projection == Orthographic {
		cam.Width = cam.Height * aspect
	}
}
