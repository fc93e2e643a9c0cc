// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parts

import (
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
	"cogentcore.org/xyzedit/selection"
)

// IsSolo returns whether solo mode is on.
func (pi *Inspector) IsSolo() bool {
	return pi.soloOn
}

// SetSolo turns solo mode on or off. In solo mode only the active part,
// its ancestors and its descendants stay visible. Turning it off restores
// the visibility of every node to what it was when solo was turned on.
func (pi *Inspector) SetSolo(on bool) bool {
	if on == pi.soloOn {
		return true
	}
	if !on {
		pi.restoreVisibility()
		pi.soloOn = false
		pi.visibility = nil
		return true
	}
	if !pi.enabled || pi.active == nil {
		pi.logger().Warn("parts.Inspector.SetSolo: no active part")
		return false
	}
	pi.soloOn = true
	pi.visibility = map[*scene.Node]bool{}
	pi.Scene.Walk(func(n *scene.Node) bool {
		pi.visibility[n] = n.Visible
		return scene.Continue
	})
	pi.applySolo()
	return true
}

// applySolo hides everything off the active part's chain. With no active
// part everything stays as snapshotted.
func (pi *Inspector) applySolo() {
	act := pi.active
	if act == nil {
		return
	}
	pi.Scene.Walk(func(n *scene.Node) bool {
		switch {
		case n == act || n.IsAncestorOf(act):
			return scene.Continue
		case act.IsAncestorOf(n):
			return scene.Break
		}
		if n.Kind == scene.Pivot || n.Kind == scene.Helper {
			return scene.Break
		}
		n.Visible = false
		return scene.Break
	})
}

func (pi *Inspector) restoreVisibility() {
	for n, vis := range pi.visibility {
		n.Visible = vis
	}
}

////////////////////////////////////////////////////////////
// 	Clipping

// IsClipping returns whether clipping to the active part is on.
func (pi *Inspector) IsClipping() bool {
	return pi.clipping
}

// ClippingPlanes returns the current clipping planes, nil when off.
func (pi *Inspector) ClippingPlanes() []math32.Plane {
	return pi.planes
}

// SetClipping turns clipping to the padded bounds of the active part on
// or off.
func (pi *Inspector) SetClipping(on bool) bool {
	if on == pi.clipping {
		return true
	}
	if !on {
		pi.clipping = false
		pi.planes = nil
		if pi.Renderer != nil {
			pi.Renderer.SetClippingPlanes(nil)
			pi.Renderer.SetLocalClipping(false)
		}
		return true
	}
	if !pi.enabled || pi.active == nil {
		pi.logger().Warn("parts.Inspector.SetClipping: no active part")
		return false
	}
	pi.clipping = true
	pi.applyClipping()
	return true
}

func (pi *Inspector) applyClipping() {
	if pi.active == nil {
		pi.planes = nil
	} else {
		pi.planes = ClipPlanes(pi.active.WorldBBox(), pi.Settings.ClipPadding)
	}
	if pi.Renderer != nil {
		pi.Renderer.SetClippingPlanes(pi.planes)
		pi.Renderer.SetLocalClipping(pi.planes != nil)
	}
}

// ClipPlanes returns the six inward facing planes of the box grown by pad
// on each side. Points outside the box are on the negative side of at
// least one plane. An empty box gives nil.
func ClipPlanes(bb math32.Box3, pad float32) []math32.Plane {
	if bb.IsEmpty() {
		return nil
	}
	mn := bb.Min.Sub(math32.Vector3Scalar(pad))
	mx := bb.Max.Add(math32.Vector3Scalar(pad))
	return []math32.Plane{
		math32.NewPlaneNormalPoint(math32.Vec3(1, 0, 0), mn),
		math32.NewPlaneNormalPoint(math32.Vec3(-1, 0, 0), mx),
		math32.NewPlaneNormalPoint(math32.Vec3(0, 1, 0), mn),
		math32.NewPlaneNormalPoint(math32.Vec3(0, -1, 0), mx),
		math32.NewPlaneNormalPoint(math32.Vec3(0, 0, 1), mn),
		math32.NewPlaneNormalPoint(math32.Vec3(0, 0, -1), mx),
	}
}

////////////////////////////////////////////////////////////
// 	Gizmo

// IsGizmoEnabled returns whether the part gizmo follows the part selection.
func (pi *Inspector) IsGizmoEnabled() bool {
	return pi.gizmoOn
}

// SetGizmoEnabled turns the part gizmo on or off. Attaching it detaches
// its peer.
func (pi *Inspector) SetGizmoEnabled(on bool) {
	pi.gizmoOn = on
	pi.attachGizmo()
}

// SetPivotMode sets the part pivot mode and re-places the pivot.
func (pi *Inspector) SetPivotMode(mode selection.PivotModes) {
	pi.PivotMode = mode
	if pi.pivot != nil && (pi.Gizmo == nil || !pi.Gizmo.IsDragging()) {
		pi.pivot.Pose = scene.NewPose(selection.PivotPosition(mode, pi.parts))
	}
}

func (pi *Inspector) attachGizmo() {
	if pi.Gizmo == nil {
		return
	}
	if !pi.gizmoOn || !pi.enabled || len(pi.parts) == 0 {
		pi.detachGizmo()
		pi.destroyPivot()
		return
	}
	if len(pi.parts) == 1 {
		pi.detachGizmo()
		pi.destroyPivot()
		if pi.Gizmo.Attach(pi.parts[0]) {
			pi.attached = pi.parts[0]
		}
		return
	}
	if pi.pivot == nil {
		pi.pivot = selection.NewPivot(PivotID, pi.PivotMode, pi.parts)
		if err := pi.Scene.Add(nil, pi.pivot); err != nil {
			pi.logger().Error("parts.Inspector: cannot add pivot", "err", err)
			pi.pivot = nil
			return
		}
	} else {
		pi.pivot.Pose = scene.NewPose(selection.PivotPosition(pi.PivotMode, pi.parts))
	}
	if pi.Gizmo.Attach(pi.pivot, pi.parts...) {
		pi.attached = pi.pivot
	}
}

// detachGizmo detaches the part gizmo if it is still on the node the
// inspector last attached it to.
func (pi *Inspector) detachGizmo() {
	if pi.attached != nil && pi.Gizmo.Target() == pi.attached {
		pi.Gizmo.Detach()
	}
	pi.attached = nil
}

func (pi *Inspector) destroyPivot() {
	if pi.pivot == nil {
		return
	}
	pi.Scene.Remove(pi.pivot)
	pi.pivot = nil
}
