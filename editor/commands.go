// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"slices"

	"cogentcore.org/xyzedit/base/errors"
	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
	"cogentcore.org/xyzedit/selection"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

////////////////////////////////////////////////////////////
// 	Selection

// SelectObject makes the object the only selected one.
func (ed *Controller) SelectObject(id string) bool {
	n := ed.nodes[id]
	if n == nil || !ed.Selection.IsSelectable(n) {
		ed.logger().Warn("editor.Controller.SelectObject: object is not selectable", "id", id)
		return false
	}
	return ed.Selection.SelectSingle(n)
}

// SelectObjects selects the objects, adding to the selection if additive.
func (ed *Controller) SelectObjects(ids []string, additive bool) bool {
	if ids == nil {
		ed.logger().Warn("editor.Controller.SelectObjects: nil id list")
		return false
	}
	nodes := []*scene.Node{}
	for _, id := range ids {
		if n := ed.nodes[id]; n != nil && ed.Selection.IsSelectable(n) {
			nodes = append(nodes, n)
		}
	}
	return ed.Selection.SelectMultiple(nodes, additive)
}

// SelectAll selects every valid selectable object.
func (ed *Controller) SelectAll() bool {
	return ed.Selection.SelectMultiple(slices.Clone(ed.Selection.Selectable()), false)
}

// DeselectAll clears the selection.
func (ed *Controller) DeselectAll() {
	ed.Selection.DeselectAll()
}

// SelectedObjects returns the document entries of the selected objects.
func (ed *Controller) SelectedObjects() []*docstore.Object {
	st := ed.Store.State()
	var obs []*docstore.Object
	for _, id := range ed.Selection.SelectedIDs() {
		if ob := st.Object(id); ob != nil {
			obs = append(obs, ob)
		}
	}
	return obs
}

// topSelected returns the selected nodes that have no selected ancestor.
func (ed *Controller) topSelected() []*scene.Node {
	return slices.DeleteFunc(ed.Selection.Selected(), func(n *scene.Node) bool {
		return n.Parent() != nil && n.Parent().AncestorIn(ed.Selection.IsSelected) != nil
	})
}

////////////////////////////////////////////////////////////
// 	Transform

// SetTransformMode sets the mode of both gizmos by name: translate,
// rotate or scale. Unknown modes and changes during a drag return false.
func (ed *Controller) SetTransformMode(name string) bool {
	m, ok := gizmo.ModeFromString(name)
	if !ok {
		ed.logger().Warn("editor.Controller.SetTransformMode: unknown mode", "mode", name)
		return false
	}
	if ed.IsDragging() {
		return false
	}
	ed.Parts.Gizmo.SetMode(m)
	return ed.Gizmo.SetMode(m)
}

// ToggleTransformSpace switches both gizmos between world and local
// space, recording the space in the document settings.
func (ed *Controller) ToggleTransformSpace() gizmo.Spaces {
	sp := ed.Gizmo.ToggleSpace()
	ed.Parts.Gizmo.Space = sp
	ed.updateSettings(func(ds *docstore.Settings) { ds.GizmoSpace = sp.String() })
	return sp
}

// ToggleGridSnap toggles snapping and returns the new state.
func (ed *Controller) ToggleGridSnap() bool {
	var on bool
	ed.updateSettings(func(ds *docstore.Settings) {
		ds.IsGridSnap = !ds.IsGridSnap
		on = ds.IsGridSnap
	})
	return on
}

// SetGridSize sets the grid size, which is also the translate snap
// increment. Sizes <= 0 return false.
func (ed *Controller) SetGridSize(size float32) bool {
	if size <= 0 {
		ed.logger().Warn("editor.Controller.SetGridSize: size must be positive", "size", size)
		return false
	}
	ed.updateSettings(func(ds *docstore.Settings) {
		ds.GridSize = size
		ds.SnapMove = size
	})
	return true
}

func (ed *Controller) updateSettings(fun func(ds *docstore.Settings)) {
	ds := ed.Store.State().Settings
	fun(&ds)
	ed.Store.UpdateSettings(ds)
	ed.applyDocSettings(ds)
}

// RotateSelection rotates the selection around world Y by dir times the
// rotation snap increment, as one history entry.
func (ed *Controller) RotateSelection(dir float32) bool {
	if !ed.Gizmo.IsAttached() || ed.IsDragging() {
		return false
	}
	ed.Gizmo.RotateBy(math32.Vec3(0, 1, 0), dir*math32.DegToRad(ed.Gizmo.Snap.RotateDeg))
	ed.Sync()
	return true
}

////////////////////////////////////////////////////////////
// 	Structure

// DuplicateSelectedObjects copies the selected objects with their
// descendants, offset by one grid step along X, and selects the copies.
// It returns the ids of the copies.
func (ed *Controller) DuplicateSelectedObjects() []string {
	sel := ed.topSelected()
	if len(sel) == 0 || ed.IsDragging() {
		return nil
	}
	st := ed.Store.State()
	off := math32.Vec3(st.GridSize, 0, 0)
	var ids []string
	ed.History.Begin("duplicate")
	for _, n := range sel {
		if ob := st.Object(n.ID); ob != nil {
			if id := ed.duplicate(st, ob, ob.ParentID, off); id != "" {
				ids = append(ids, id)
			}
		}
	}
	ed.History.End()
	ed.Sync()
	ed.SelectObjects(ids, false)
	return ids
}

func (ed *Controller) duplicate(st *docstore.State, ob *docstore.Object, parentID string, off math32.Vector3) string {
	cp := &docstore.Object{}
	if errors.Log(copier.CopyWithOption(cp, ob, copier.Option{DeepCopy: true})) != nil {
		return ""
	}
	cp.ID = uuid.NewString()
	cp.ParentID = parentID
	cp.Transform.Position.SetAdd(off)
	if errors.Log(ed.Store.AddObject(cp)) != nil {
		return ""
	}
	ed.History.Touch(cp.ID)
	for _, ch := range st.Children(ob.ID) {
		ed.duplicate(st, ch, cp.ID, math32.Vector3{})
	}
	return cp.ID
}

// DeleteSelectedObjects removes the selected objects and their
// descendants from the document, as one history entry. It returns the
// number of selected objects removed.
func (ed *Controller) DeleteSelectedObjects() int {
	ids := ed.Selection.SelectedIDs()
	if len(ids) == 0 || ed.IsDragging() {
		return 0
	}
	ed.Selection.DeselectAll()
	n := 0
	ed.History.Begin("delete")
	for _, id := range ids {
		err := ed.Store.RemoveObjectByID(id)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if errors.Log(err) == nil {
			ed.History.Touch(id)
			n++
		}
	}
	ed.History.End()
	ed.Sync()
	return n
}

// GroupSelectedObjects puts the two or more selected objects under a new
// group placed at their center, keeping their world transforms, and
// selects the group. It returns the group id, or "" if fewer than two
// objects are selected.
func (ed *Controller) GroupSelectedObjects() string {
	sel := ed.topSelected()
	if len(sel) < 2 || ed.IsDragging() {
		ed.logger().Warn("editor.Controller.GroupSelectedObjects: need at least two selected objects", "selected", len(sel))
		return ""
	}
	st := ed.Store.State()
	parentID := ""
	if ob := st.Object(sel[0].ID); ob != nil {
		parentID = ob.ParentID
	}
	for _, n := range sel[1:] {
		if ob := st.Object(n.ID); ob == nil || ob.ParentID != parentID {
			parentID = ""
			break
		}
	}
	parentWorld := ed.worldMatrix(parentID)
	invParent, err := parentWorld.Inverse()
	if errors.Log(err) != nil {
		return ""
	}
	center := selection.PivotPosition(selection.PivotCenter, sel)
	grp := &docstore.Object{ID: uuid.NewString(), Name: "Group", Type: docstore.TypeGroup, ParentID: parentID, Visible: true,
		Transform: docstore.NewTransform(center.MulMatrix4AsPoint(invParent))}
	gp := grp.Transform.Pose()
	invGroup, err := parentWorld.Mul(gp.Matrix()).Inverse()
	if errors.Log(err) != nil {
		return ""
	}

	ed.Selection.DeselectAll()
	ed.History.Begin("group")
	if errors.Log(ed.Store.AddObject(grp)) == nil {
		ed.History.Touch(grp.ID)
		for _, n := range sel {
			local := poseOf(invGroup.Mul(n.WorldMatrix()))
			errors.Log(ed.Store.SetParent(n.ID, grp.ID))
			errors.Log(ed.Store.UpdateObjectTransform(n.ID, docstore.TransformFromPose(local)))
			ed.History.Touch(n.ID)
		}
	}
	ed.History.End()
	ed.Sync()
	ed.SelectObject(grp.ID)
	return grp.ID
}

// UngroupSelectedObjects moves the children of the selected groups to
// the groups' parents, keeping their world transforms, removes the
// groups and selects the freed objects. It returns the freed ids.
func (ed *Controller) UngroupSelectedObjects() []string {
	if ed.IsDragging() {
		return nil
	}
	st := ed.Store.State()
	var groups []*docstore.Object
	for _, n := range ed.topSelected() {
		if ob := st.Object(n.ID); ob != nil && ob.IsGroup() {
			groups = append(groups, ob)
		}
	}
	if len(groups) == 0 {
		ed.logger().Warn("editor.Controller.UngroupSelectedObjects: no group selected")
		return nil
	}
	ed.Selection.DeselectAll()
	var freed []string
	ed.History.Begin("ungroup")
	for _, g := range groups {
		invParent, err := ed.worldMatrix(g.ParentID).Inverse()
		if errors.Log(err) != nil {
			continue
		}
		for _, ch := range st.Children(g.ID) {
			n := ed.nodes[ch.ID]
			if n == nil {
				continue
			}
			local := poseOf(invParent.Mul(n.WorldMatrix()))
			errors.Log(ed.Store.SetParent(ch.ID, g.ParentID))
			errors.Log(ed.Store.UpdateObjectTransform(ch.ID, docstore.TransformFromPose(local)))
			freed = append(freed, ch.ID)
		}
		if errors.Log(ed.Store.RemoveObjectByID(g.ID)) == nil {
			ed.History.Touch(g.ID)
		}
	}
	ed.History.Touch(freed...)
	ed.History.End()
	ed.Sync()
	ed.SelectObjects(freed, false)
	return freed
}

func poseOf(m *math32.Matrix4) scene.Pose {
	var ps scene.Pose
	ps.SetMatrix(m)
	return ps
}

////////////////////////////////////////////////////////////
// 	Camera

// FocusOnObject points the camera at the object, or at the active
// selection for an empty id.
func (ed *Controller) FocusOnObject(id string) bool {
	n := ed.Selection.Active()
	if id != "" {
		n = ed.nodes[id]
	}
	if n == nil {
		ed.logger().Warn("editor.Controller.FocusOnObject: nothing to focus", "id", id)
		return false
	}
	return ed.Rig.FocusOnObject(n)
}

// SetCameraView applies a view preset by name: front, side, top, bottom
// or reset. Unknown presets return false.
func (ed *Controller) SetCameraView(name string) bool {
	if name == "reset" {
		ed.ResetCamera()
		return true
	}
	v, ok := camera.ViewFromString(name)
	if !ok {
		ed.logger().Warn("editor.Controller.SetCameraView: unknown view", "view", name)
		return false
	}
	return ed.Rig.SetView(v)
}

// ToggleCameraProjection switches the camera projection, rebinding the
// selection and part ray casting to the new camera.
func (ed *Controller) ToggleCameraProjection() camera.Projections {
	cam := ed.Rig.ToggleProjection()
	ed.Selection.Camera = cam
	ed.Parts.Camera = cam
	return cam.Projection
}

// ResetCamera restores the default camera position and target.
func (ed *Controller) ResetCamera() {
	ed.Rig.Reset()
}

// CameraTarget returns the orbit target.
func (ed *Controller) CameraTarget() math32.Vector3 {
	return ed.Rig.Target
}

// SetCameraTarget points the camera at target.
func (ed *Controller) SetCameraTarget(target math32.Vector3) {
	ed.Rig.SetTarget(target)
}

////////////////////////////////////////////////////////////
// 	History

// Undo undoes the last document change. It returns false while dragging
// or if there is nothing to undo.
func (ed *Controller) Undo() bool {
	if ed.IsDragging() || !ed.Store.Undo() {
		return false
	}
	ed.Sync()
	return true
}

// Redo redoes the last undone change. It returns false while dragging
// or if there is nothing to redo.
func (ed *Controller) Redo() bool {
	if ed.IsDragging() || !ed.Store.Redo() {
		return false
	}
	ed.Sync()
	return true
}

////////////////////////////////////////////////////////////
// 	Parts

// EnablePartInspection starts part inspection of the object, or of the
// whole scene for an empty id, with the part gizmo following the part
// selection.
func (ed *Controller) EnablePartInspection(id string) bool {
	var host *scene.Node
	if id != "" {
		if host = ed.nodes[id]; host == nil {
			ed.logger().Warn("editor.Controller.EnablePartInspection: unknown object", "id", id)
			return false
		}
	}
	if !ed.Parts.Enable(host) {
		return false
	}
	ed.Parts.SetGizmoEnabled(true)
	return true
}

// DisablePartInspection ends part inspection, restoring everything it changed.
func (ed *Controller) DisablePartInspection() {
	ed.Parts.Disable()
}
