// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gizmo

import (
	"image/color"

	"cogentcore.org/xyzedit/math32"
)

// Handle is the layout of one gizmo handle in world space: an arrow or
// bar from Origin along Dir of length Size, or for rotate mode a ring
// of radius Size around Origin with normal Dir.
type Handle struct {
	Axis   Axes
	Origin math32.Vector3
	Dir    math32.Vector3
	Size   float32
	Ring   bool
	Color  color.RGBA
	Active bool
}

var unitAxes = [3]math32.Vector3{{X: 1}, {Y: 1}, {Z: 1}}

// AxisDir returns the world direction of the handle axis. Scale mode
// and local space use the target's world rotation.
func (g *Gizmo) AxisDir(a Axes) math32.Vector3 {
	if a < AxisX || a > AxisZ || g.target == nil {
		return math32.Vector3{}
	}
	dir := unitAxes[a-AxisX]
	if g.Space == Local || g.Mode == Scale {
		dir = dir.MulQuat(g.target.WorldPose().Quat).Normal()
	}
	return dir
}

// Handles returns the handle layout for the current target and mode,
// nil if detached. While dragging with Style.HideInactive set, only the
// dragged handle is returned.
func (g *Gizmo) Handles() []Handle {
	if g.target == nil {
		return nil
	}
	origin := g.target.WorldPos()
	var hs []Handle
	for a := AxisX; a <= AxisZ; a++ {
		active := g.dragging && g.axis == a
		if g.dragging && g.axis != NoAxis && !active && g.Style.HideInactive {
			continue
		}
		hs = append(hs, Handle{Axis: a, Origin: origin, Dir: g.AxisDir(a), Size: g.Style.Size,
			Ring: g.Mode == Rotate, Color: g.Style.Colors[a-AxisX], Active: active})
	}
	return hs
}

// PickHandle returns the handle nearest to the ray within the hit
// tolerance, or [NoAxis].
func (g *Gizmo) PickHandle(ray math32.Ray) Axes {
	if g.target == nil {
		return NoAxis
	}
	origin := g.target.WorldPos()
	size := g.Style.Size
	tol := size * g.Style.HitTolerance
	best, bestDist := NoAxis, tol
	for a := AxisX; a <= AxisZ; a++ {
		dir := g.AxisDir(a)
		var dist float32
		if g.Mode == Rotate {
			p, ok := ray.IntersectPlane(math32.NewPlaneNormalPoint(dir, origin))
			if !ok {
				continue
			}
			dist = math32.Abs(p.DistanceTo(origin) - size)
		} else {
			s, t := ray.ClosestToLine(origin, dir)
			if s < 0 || t < 0 || t > size+tol {
				continue
			}
			dist = ray.At(s).DistanceTo(origin.Add(dir.MulScalar(t)))
		}
		if dist <= bestDist {
			best, bestDist = a, dist
		}
	}
	return best
}

// BeginDrag picks a handle with the ray and starts dragging it,
// returning false if no handle was hit.
func (g *Gizmo) BeginDrag(ray math32.Ray) bool {
	if g.dragging {
		return false
	}
	a := g.PickHandle(ray)
	if a == NoAxis {
		return false
	}
	g.origin = g.target.WorldPos()
	g.dir = g.AxisDir(a)
	g.plane = g.dragPlane(ray.Dir)
	start, ok := ray.IntersectPlane(g.plane)
	if !ok {
		return false
	}
	if !g.Start() {
		return false
	}
	g.axis = a
	g.startPt = start
	return true
}

// dragPlane returns the plane the pointer ray is projected onto: the
// ring plane for rotate, otherwise the plane through the axis that
// faces the view direction most.
func (g *Gizmo) dragPlane(view math32.Vector3) math32.Plane {
	if g.Mode == Rotate {
		return math32.NewPlaneNormalPoint(g.dir, g.origin)
	}
	n := view.Sub(g.dir.MulScalar(view.Dot(g.dir)))
	if n.LengthSquared() < 1e-8 {
		n = g.dir.Cross(math32.Vec3(0, 1, 0))
		if n.LengthSquared() < 1e-8 {
			n = g.dir.Cross(math32.Vec3(1, 0, 0))
		}
	}
	return math32.NewPlaneNormalPoint(n.Normal(), g.origin)
}

// Drag moves the dragged handle to follow the ray, returning false if
// no handle drag is in progress or the ray misses the drag plane.
func (g *Gizmo) Drag(ray math32.Ray) bool {
	if !g.dragging || g.axis == NoAxis {
		return false
	}
	p, ok := ray.IntersectPlane(g.plane)
	if !ok {
		return false
	}
	ps := g.pivotSnap
	switch g.dragMode {
	case Translate:
		d := p.Sub(g.startPt).Dot(g.dir)
		if g.dragSnap.TranslateOn {
			d = math32.IntMultiple(d, g.dragSnap.Translate)
		}
		ps.Pos = g.pivotSnap.Pos.Add(g.dir.MulScalar(d))
	case Rotate:
		v0 := g.startPt.Sub(g.origin)
		v1 := p.Sub(g.origin)
		angle := math32.Atan2(v0.Cross(v1).Dot(g.dir), v0.Dot(v1))
		if g.dragSnap.RotateOn {
			angle = math32.IntMultiple(angle, math32.DegToRad(g.dragSnap.RotateDeg))
		}
		ps.Quat = math32.NewQuatAxisAngle(g.dir, angle).Mul(g.pivotSnap.Quat)
	case Scale:
		d0 := g.startPt.Sub(g.origin).Dot(g.dir)
		if math32.Abs(d0) < 1e-6 {
			return false
		}
		s := p.Sub(g.origin).Dot(g.dir) / d0
		if g.dragSnap.ScaleOn {
			s = math32.IntMultiple(s, g.dragSnap.Scale)
		}
		s = math32.Max(s, MinScale)
		dim := math32.Dims(g.axis - AxisX)
		ps.Scale.SetDim(dim, g.pivotSnap.Scale.Dim(dim)*s)
	}
	g.Update(ps)
	return true
}
