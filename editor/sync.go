// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"slices"

	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

// Sync updates the scene graph from the document if the document
// changed since the last sync: nodes are created, updated, reparented
// and removed to match the objects and walls, and the selectable pool is
// recomputed. It does nothing while a gizmo is dragging, since the
// dragged nodes are ahead of the document until the drag ends.
func (ed *Controller) Sync() {
	if ed.IsDragging() {
		return
	}
	gen := ed.Store.Generation()
	if ed.synced && gen == ed.gen {
		return
	}
	ed.synced = true
	ed.gen = gen
	st := ed.Store.State()
	ed.applyDocSettings(st.Settings)

	live := map[string]bool{}
	var visit func(parent *scene.Node, parentID string)
	visit = func(parent *scene.Node, parentID string) {
		for _, ob := range st.Children(parentID) {
			if live[ob.ID] {
				continue
			}
			live[ob.ID] = true
			n := ed.syncObject(parent, ob)
			if n != nil {
				visit(n, ob.ID)
			}
		}
	}
	visit(nil, "")
	// objects whose parent is missing are attached to the root
	for _, ob := range slices.Concat(st.Objects, st.Walls) {
		if !live[ob.ID] {
			live[ob.ID] = true
			if n := ed.syncObject(nil, ob); n != nil {
				visit(n, ob.ID)
			}
		}
	}

	for id, n := range ed.nodes {
		if live[id] {
			continue
		}
		ed.Scene.Remove(n)
		delete(ed.nodes, id)
		delete(ed.objects, id)
	}
	ed.UpdateSelectableObjects()
	ed.Selection.CleanupInvalid()
	ed.Selection.RefreshPivot()
	ed.Parts.Cleanup()
}

// syncObject creates or updates the node of ob under parent.
func (ed *Controller) syncObject(parent *scene.Node, ob *docstore.Object) *scene.Node {
	kind := scene.Object
	switch {
	case ob.IsGroup():
		kind = scene.Group
	case ob.IsWall():
		kind = scene.Wall
	}
	n := ed.nodes[ob.ID]
	prev := ed.objects[ob.ID]
	if n == nil {
		n = scene.NewNode(ob.ID, ob.Name, kind)
	}
	n.Name = ob.Name
	n.Kind = kind
	n.Type = ob.Type
	n.Pose = ob.Transform.Pose()
	n.Visible = ob.Visible
	n.Frozen = ob.Frozen
	target := parent
	if target == nil {
		target = ed.Scene.Root
	}
	if n.Parent() != target || !ed.Scene.Contains(n) {
		if err := ed.Scene.Add(parent, n); err != nil {
			ed.logger().Error("editor.Controller.Sync: cannot place node", "id", ob.ID, "err", err)
			return nil
		}
	}
	if prev == nil || prev.Size != ob.Size || !slices.Equal(prev.Parts, ob.Parts) {
		ed.buildMeshes(n, ob)
	}
	ed.nodes[ob.ID] = n
	ed.objects[ob.ID] = ob
	return n
}

// buildMeshes replaces the mesh children of n with the geometry of ob:
// one mesh per part, or one body mesh of ob.Size.
func (ed *Controller) buildMeshes(n *scene.Node, ob *docstore.Object) {
	for _, k := range slices.Clone(n.Children()) {
		if k.Kind == scene.Mesh {
			ed.Scene.Remove(k)
		}
	}
	add := func(m *scene.Node) {
		if err := ed.Scene.Add(n, m); err != nil {
			ed.logger().Error("editor.Controller.Sync: cannot add mesh", "id", m.ID, "err", err)
		}
	}
	if len(ob.Parts) > 0 {
		for _, p := range ob.Parts {
			m := scene.NewMesh(ob.ID+"/"+p.Name, p.Name, p.Size)
			m.Pose.Pos = p.Position
			add(m)
		}
		return
	}
	if !ob.Size.IsNil() {
		add(scene.NewMesh(ob.ID+"/body", "body", ob.Size))
	}
}

// applyDocSettings applies the document's editor settings to both gizmos.
func (ed *Controller) applyDocSettings(ds docstore.Settings) {
	for _, g := range []*gizmo.Gizmo{ed.Gizmo, ed.Parts.Gizmo} {
		if ds.GizmoSize > 0 {
			g.Style.Size = ds.GizmoSize
		}
		if sp, ok := gizmo.SpaceFromString(ds.GizmoSpace); ok {
			g.Space = sp
		}
		g.Snap.TranslateOn = ds.IsGridSnap
		g.Snap.RotateOn = ds.IsGridSnap
		g.Snap.ScaleOn = ds.IsGridSnap
		g.Snap.Translate = ds.SnapMove
		if g.Snap.Translate <= 0 {
			g.Snap.Translate = ds.GridSize
		}
		if ds.SnapRotateDeg > 0 {
			g.Snap.RotateDeg = ds.SnapRotateDeg
		}
		if ds.SnapScale > 0 {
			g.Snap.Scale = ds.SnapScale
		}
	}
}

// UpdateSelectableObjects recomputes the selectable pool: the root
// objects and walls, plus those added with [Controller.AddSelectableObject],
// minus those removed with [Controller.RemoveSelectableObject].
func (ed *Controller) UpdateSelectableObjects() {
	var pool []*scene.Node
	for _, n := range ed.Scene.Root.Children() {
		if n.Kind == scene.Pivot || n.Kind == scene.Helper || ed.excluded[n.ID] || ed.nodes[n.ID] != n {
			continue
		}
		pool = append(pool, n)
	}
	for id := range ed.extra {
		if n := ed.nodes[id]; n != nil && !ed.excluded[id] && !slices.Contains(pool, n) {
			pool = append(pool, n)
		}
	}
	ed.Selection.SetSelectable(pool)
}

// AddSelectableObject adds the object to the selectable pool.
func (ed *Controller) AddSelectableObject(id string) bool {
	n := ed.nodes[id]
	if n == nil {
		ed.logger().Warn("editor.Controller.AddSelectableObject: unknown object", "id", id)
		return false
	}
	delete(ed.excluded, id)
	ed.extra[id] = true
	ed.Selection.AddSelectable(n)
	return true
}

// RemoveSelectableObject removes the object from the selectable pool,
// deselecting it.
func (ed *Controller) RemoveSelectableObject(id string) bool {
	n := ed.nodes[id]
	if n == nil {
		ed.logger().Warn("editor.Controller.RemoveSelectableObject: unknown object", "id", id)
		return false
	}
	delete(ed.extra, id)
	ed.excluded[id] = true
	ed.Selection.RemoveSelectable(n)
	return true
}

// worldMatrix returns the world matrix of the object's node, identity
// for the root (empty id).
func (ed *Controller) worldMatrix(id string) *math32.Matrix4 {
	if n := ed.nodes[id]; n != nil {
		return n.WorldMatrix()
	}
	return math32.Identity4()
}
