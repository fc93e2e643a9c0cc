// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package selection owns the ordered set of selected nodes, the active
// member, and the transient pivot that stands in for a multi-selection
// on the gizmo. It hit tests against a registered pool of selectable nodes.
package selection

import (
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

// Manager is the selection manager. It is the only writer of the
// selection, the pivot and the gizmo attachment.
type Manager struct {
	Scene *scene.Scene

	// Camera is the active camera used for hit tests; rebind it when the
	// projection changes.
	Camera *camera.Camera

	Gizmo *gizmo.Gizmo

	PivotMode PivotModes

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	pool      []*scene.Node
	selected  []*scene.Node
	active    *scene.Node
	pivot     *scene.Node
	listeners []func(sel []*scene.Node, active *scene.Node)

	// untoggled restores the order of a member toggled off, if it is
	// toggled back on before any other change.
	untoggled toggleUndo
}

type toggleUndo struct {
	node   *scene.Node
	index  int
	active *scene.Node
	after  []*scene.Node
}

// NewManager returns a manager with an empty pool and selection.
func NewManager(sc *scene.Scene, cam *camera.Camera, gz *gizmo.Gizmo) *Manager {
	return &Manager{Scene: sc, Camera: cam, Gizmo: gz}
}

func (sm *Manager) logger() *slog.Logger {
	return logx.Or(sm.Logger)
}

// OnChange adds a listener called after every selection change.
func (sm *Manager) OnChange(fun func(sel []*scene.Node, active *scene.Node)) {
	sm.listeners = append(sm.listeners, fun)
}

func (sm *Manager) notify() {
	sel := slices.Clone(sm.selected)
	for _, fun := range sm.listeners {
		fun(sel, sm.active)
	}
}

////////////////////////////////////////////////////////////
// 	Pool

// AddSelectable adds n to the selectable pool.
func (sm *Manager) AddSelectable(n *scene.Node) {
	if n == nil {
		sm.logger().Warn("selection.Manager.AddSelectable: nil node")
		return
	}
	if !slices.Contains(sm.pool, n) {
		sm.pool = append(sm.pool, n)
	}
}

// RemoveSelectable removes n from the pool, deselecting it if selected.
func (sm *Manager) RemoveSelectable(n *scene.Node) {
	i := slices.Index(sm.pool, n)
	if i < 0 {
		return
	}
	sm.pool = slices.Delete(sm.pool, i, i+1)
	if sm.IsSelected(n) {
		sm.remove(n)
		sm.refresh()
		sm.notify()
	}
}

// SetSelectable replaces the pool, deselecting members no longer in it.
func (sm *Manager) SetSelectable(nodes []*scene.Node) {
	sm.pool = slices.DeleteFunc(slices.Clone(nodes), func(n *scene.Node) bool { return n == nil })
	changed := false
	for _, n := range slices.Clone(sm.selected) {
		if !slices.Contains(sm.pool, n) {
			sm.remove(n)
			changed = true
		}
	}
	if changed {
		sm.refresh()
		sm.notify()
	}
}

// Selectable returns the selectable pool.
func (sm *Manager) Selectable() []*scene.Node {
	return sm.pool
}

// IsSelectable returns whether n is in the pool.
func (sm *Manager) IsSelectable(n *scene.Node) bool {
	return slices.Contains(sm.pool, n)
}

////////////////////////////////////////////////////////////
// 	Selection

// Selected returns the selected nodes in selection order.
func (sm *Manager) Selected() []*scene.Node {
	return slices.Clone(sm.selected)
}

// SelectedIDs returns the ids of the selected nodes in selection order.
func (sm *Manager) SelectedIDs() []string {
	ids := make([]string, len(sm.selected))
	for i, n := range sm.selected {
		ids[i] = n.ID
	}
	return ids
}

// Active returns the most recently selected member, nil if none.
func (sm *Manager) Active() *scene.Node {
	return sm.active
}

// IsSelected returns whether n is selected.
func (sm *Manager) IsSelected(n *scene.Node) bool {
	return slices.Contains(sm.selected, n)
}

// Pivot returns the pivot node, nil unless more than one node is selected.
func (sm *Manager) Pivot() *scene.Node {
	return sm.pivot
}

// IsValid returns whether n can be selected: it is in the scene graph,
// visible, not frozen, and not editor furniture.
func (sm *Manager) IsValid(n *scene.Node) bool {
	if n == nil || n.Frozen || n.Kind == scene.Pivot || n.Kind == scene.Helper {
		return false
	}
	return sm.Scene.Contains(n) && n.IsVisible()
}

// SelectSingle makes n the only selected node. Invalid nodes are
// ignored with a diagnostic.
func (sm *Manager) SelectSingle(n *scene.Node) bool {
	if !sm.IsValid(n) {
		sm.logger().Warn("selection.Manager.SelectSingle: node cannot be selected", "node", n)
		return false
	}
	sm.clear()
	sm.selected = []*scene.Node{n}
	sm.active = n
	sm.refresh()
	sm.notify()
	return true
}

// SelectMultiple selects the valid nodes among nodes, appending them to
// the current selection if additive. A nil slice is ignored.
func (sm *Manager) SelectMultiple(nodes []*scene.Node, additive bool) bool {
	if nodes == nil {
		sm.logger().Warn("selection.Manager.SelectMultiple: nil node list")
		return false
	}
	sm.untoggled = toggleUndo{}
	if !additive {
		sm.clear()
	}
	for _, n := range nodes {
		if !sm.IsValid(n) {
			sm.logger().Debug("selection.Manager.SelectMultiple: skipping node", "node", n)
			continue
		}
		if sm.IsSelected(n) {
			continue
		}
		sm.selected = append(sm.selected, n)
		sm.active = n
	}
	sm.refresh()
	sm.notify()
	return true
}

// Toggle adds n to the selection, or removes it if already selected.
// Removing the active member makes the last remaining member active.
// Toggling a member off and on again restores the selection as it was.
func (sm *Manager) Toggle(n *scene.Node) bool {
	if n == nil {
		sm.logger().Warn("selection.Manager.Toggle: nil node")
		return false
	}
	undo := sm.untoggled
	sm.untoggled = toggleUndo{}
	switch {
	case sm.IsSelected(n):
		u := toggleUndo{node: n, index: slices.Index(sm.selected, n), active: sm.active}
		sm.remove(n)
		u.after = slices.Clone(sm.selected)
		sm.untoggled = u
	case !sm.IsValid(n):
		sm.logger().Warn("selection.Manager.Toggle: node cannot be selected", "node", n)
		return false
	case undo.node == n && slices.Equal(undo.after, sm.selected):
		sm.selected = slices.Insert(sm.selected, undo.index, n)
		sm.active = undo.active
	default:
		sm.selected = append(sm.selected, n)
		sm.active = n
	}
	sm.refresh()
	sm.notify()
	return true
}

// DeselectAll clears the selection, detaching the gizmo before the
// pivot is destroyed.
func (sm *Manager) DeselectAll() {
	if sm.Gizmo != nil {
		sm.Gizmo.Detach()
	}
	sm.destroyPivot()
	had := len(sm.selected) > 0
	sm.clear()
	if had {
		sm.notify()
	}
}

// clear clears the selection and outlines without touching the gizmo.
func (sm *Manager) clear() {
	for _, n := range sm.selected {
		n.SetOutlined(false)
	}
	sm.selected = nil
	sm.active = nil
	sm.untoggled = toggleUndo{}
}

// remove removes n from the selection, promoting the last remaining
// member to active if n was active.
func (sm *Manager) remove(n *scene.Node) {
	i := slices.Index(sm.selected, n)
	if i < 0 {
		return
	}
	n.SetOutlined(false)
	sm.untoggled = toggleUndo{}
	sm.selected = slices.Delete(sm.selected, i, i+1)
	if sm.active == n {
		sm.active = nil
		if len(sm.selected) > 0 {
			sm.active = sm.selected[len(sm.selected)-1]
		}
	}
}

// refresh brings outlines, the pivot and the gizmo attachment in line
// with the selection.
func (sm *Manager) refresh() {
	for _, n := range sm.selected {
		n.SetOutlined(true)
	}
	switch len(sm.selected) {
	case 0:
		if sm.Gizmo != nil {
			sm.Gizmo.Detach()
		}
		sm.destroyPivot()
	case 1:
		n := sm.selected[0]
		if sm.Gizmo != nil && sm.Gizmo.Target() == sm.pivot {
			sm.Gizmo.Detach()
		}
		sm.destroyPivot()
		if sm.Gizmo == nil {
			return
		}
		if !sm.Scene.Contains(n) {
			sm.logger().Error("selection.Manager: selected node is not in the scene graph; gizmo left detached", "node", n)
			sm.Gizmo.Detach()
			return
		}
		sm.Gizmo.Attach(n)
	default:
		sm.ensurePivot()
		if sm.Gizmo != nil {
			sm.Gizmo.Attach(sm.pivot, sm.selected...)
		}
	}
}

func (sm *Manager) ensurePivot() {
	if sm.pivot == nil {
		sm.pivot = NewPivot(PivotID, sm.PivotMode, sm.selected)
		if err := sm.Scene.Add(nil, sm.pivot); err != nil {
			sm.logger().Error("selection.Manager: cannot add pivot", "err", err)
		}
		return
	}
	sm.pivot.Pose = scene.NewPose(PivotPosition(sm.PivotMode, sm.selected))
}

func (sm *Manager) destroyPivot() {
	if sm.pivot == nil {
		return
	}
	sm.Scene.Remove(sm.pivot)
	sm.pivot = nil
}

// RefreshPivot re-places the pivot relative to its members, resetting
// its rotation and scale. It does nothing while dragging.
func (sm *Manager) RefreshPivot() {
	if sm.pivot == nil || (sm.Gizmo != nil && sm.Gizmo.IsDragging()) {
		return
	}
	sm.pivot.Pose = scene.NewPose(PivotPosition(sm.PivotMode, sm.selected))
}

// SetPivotMode sets the pivot mode and re-places the pivot.
func (sm *Manager) SetPivotMode(mode PivotModes) {
	sm.PivotMode = mode
	sm.RefreshPivot()
}

// CleanupInvalid prunes members that are no longer valid and checks the
// gizmo attachment. It does nothing while the gizmo is dragging.
func (sm *Manager) CleanupInvalid() {
	if sm.Gizmo != nil && sm.Gizmo.IsDragging() {
		return
	}
	changed := false
	for _, n := range slices.Clone(sm.selected) {
		if !sm.IsValid(n) {
			sm.logger().Debug("selection.Manager.CleanupInvalid: pruning", "node", n)
			sm.remove(n)
			changed = true
		}
	}
	if changed {
		sm.refresh()
		sm.notify()
		return
	}
	if sm.Gizmo != nil && !sm.Gizmo.Validate() && len(sm.selected) > 0 {
		sm.logger().Error("selection.Manager.CleanupInvalid: gizmo attachment lost; clearing selection")
		sm.DeselectAll()
	}
}

////////////////////////////////////////////////////////////
// 	Picking

// poolMember returns the nearest of n and its ancestors in the pool.
func (sm *Manager) poolMember(n *scene.Node) *scene.Node {
	return n.AncestorIn(sm.IsSelectable)
}

// HitTest returns the selectable node under the normalized device
// coordinates: the nearest hit promoted up to its pool ancestor, skipping
// hits with no valid pool ancestor. It returns nil if nothing is hit.
func (sm *Manager) HitTest(ndc math32.Vector2) *scene.Node {
	if sm.Camera == nil {
		return nil
	}
	ray := sm.Camera.RayFromNDC(ndc)
	for _, h := range sm.Scene.Raycast(ray, sm.pool, true) {
		n := sm.poolMember(h.Node)
		if n != nil && sm.IsValid(n) {
			return n
		}
	}
	return nil
}

// RectSelect returns every valid pool member whose world origin projects
// inside the rectangle spanned by the two NDC corners.
func (sm *Manager) RectSelect(ndcA, ndcB math32.Vector2) []*scene.Node {
	if sm.Camera == nil {
		return nil
	}
	lo, hi := ndcA.Min(ndcB), ndcA.Max(ndcB)
	var nodes []*scene.Node
	for _, n := range sm.pool {
		if !sm.IsValid(n) {
			continue
		}
		p, ok := sm.Camera.ProjectToNDC(n.WorldPos())
		if ok && p.InRect(lo, hi) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
