// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package docstore defines the persisted document consumed by the
// editor, and the store contract through which the editor mutates it.
// [Memory] is the in-process implementation with batched undo / redo.
package docstore

import (
	"errors"
	"slices"

	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

var (
	// ErrNotFound is returned for operations on an unknown object id.
	ErrNotFound = errors.New("docstore: object not found")

	// ErrCycle is returned when a reparent would make an object its own ancestor.
	ErrCycle = errors.New("docstore: object cannot be parented under itself or its descendants")

	// ErrDuplicateID is returned when adding an object whose id is taken.
	ErrDuplicateID = errors.New("docstore: duplicate object id")
)

// Object types with editor meaning. Any other type tag is a plain object.
const (
	TypeGroup = "group"
	TypeWall  = "wall"
)

// Transform is the local transform of an object relative to its parent.
type Transform struct {
	Position math32.Vector3 `yaml:"position" json:"position"`
	Rotation math32.Quat    `yaml:"rotation" json:"rotation"`
	Scale    math32.Vector3 `yaml:"scale" json:"scale"`
}

// NewTransform returns a transform at pos with identity rotation and unit scale.
func NewTransform(pos math32.Vector3) Transform {
	return Transform{Position: pos, Rotation: math32.NewQuatIdentity(), Scale: math32.Vector3Scalar(1)}
}

// Defaults fills in a zero rotation or scale.
func (tr *Transform) Defaults() {
	if tr.Rotation.IsNil() {
		tr.Rotation.SetIdentity()
	}
	if tr.Scale.IsNil() {
		tr.Scale = math32.Vector3Scalar(1)
	}
}

// IsEqualTol returns whether the transforms match within tolerance.
func (tr Transform) IsEqualTol(other Transform, tol float32) bool {
	return tr.Position.IsEqualTol(other.Position, tol) && tr.Scale.IsEqualTol(other.Scale, tol) &&
		tr.Rotation.IsEqualTol(other.Rotation, tol)
}

// Part is one mesh of an object, positioned in the object's local space.
type Part struct {
	Name     string         `yaml:"name" json:"name"`
	Position math32.Vector3 `yaml:"position" json:"position"`
	Size     math32.Vector3 `yaml:"size" json:"size"`
}

// Object is one document entry: a placed object, a group or a wall.
type Object struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Type is the type tag; [TypeGroup] and [TypeWall] are special.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	// ParentID is the id of the parent object, empty for root objects.
	ParentID string `yaml:"parent,omitempty" json:"parent,omitempty"`

	Transform Transform `yaml:"transform" json:"transform"`

	Visible bool `yaml:"visible" json:"visible"`
	Frozen  bool `yaml:"frozen,omitempty" json:"frozen,omitempty"`

	// Size is the geometry size used when there are no Parts.
	Size math32.Vector3 `yaml:"size,omitempty" json:"size,omitempty"`

	Parts []Part `yaml:"parts,omitempty" json:"parts,omitempty"`
}

// IsEqual returns whether both objects are nil or have identical fields.
func (ob *Object) IsEqual(other *Object) bool {
	if ob == nil || other == nil {
		return ob == other
	}
	return ob.ID == other.ID && ob.Name == other.Name && ob.Type == other.Type && ob.ParentID == other.ParentID &&
		ob.Transform == other.Transform && ob.Visible == other.Visible && ob.Frozen == other.Frozen &&
		ob.Size == other.Size && slices.Equal(ob.Parts, other.Parts)
}

// IsGroup returns whether the object is a group.
func (ob *Object) IsGroup() bool {
	return ob.Type == TypeGroup
}

// IsWall returns whether the object is a wall.
func (ob *Object) IsWall() bool {
	return ob.Type == TypeWall
}

// Settings are the document fields that configure the editor.
type Settings struct {
	IsGridVisible bool    `yaml:"gridVisible" json:"gridVisible"`
	IsGridSnap    bool    `yaml:"gridSnap" json:"gridSnap"`
	GridSize      float32 `yaml:"gridSize" json:"gridSize"`
	GizmoSize     float32 `yaml:"gizmoSize" json:"gizmoSize"`
	GizmoSpace    string  `yaml:"gizmoSpace" json:"gizmoSpace"`
	SnapMove      float32 `yaml:"snapMove" json:"snapMove"`
	SnapRotateDeg float32 `yaml:"snapRotateDeg" json:"snapRotateDeg"`
	SnapScale     float32 `yaml:"snapScale" json:"snapScale"`
}

// DefaultSettings returns the settings of a new document.
func DefaultSettings() Settings {
	return Settings{IsGridVisible: true, GridSize: 1, GizmoSize: 1, GizmoSpace: "world", SnapMove: 1, SnapRotateDeg: 15, SnapScale: 0.1}
}

// State is a snapshot of the document.
type State struct {
	Objects []*Object `yaml:"objects" json:"objects"`
	Walls   []*Object `yaml:"walls,omitempty" json:"walls,omitempty"`

	SelectedID  string   `yaml:"selected,omitempty" json:"selected,omitempty"`
	SelectedIDs []string `yaml:"selectedIds,omitempty" json:"selectedIds,omitempty"`

	Settings `yaml:",inline" json:"settings"`
}

// NewState returns an empty document with default settings.
func NewState() *State {
	return &State{Settings: DefaultSettings()}
}

// Object returns the object or wall with the given id, or nil.
func (st *State) Object(id string) *Object {
	if id == "" {
		return nil
	}
	for _, ob := range st.Objects {
		if ob.ID == id {
			return ob
		}
	}
	for _, ob := range st.Walls {
		if ob.ID == id {
			return ob
		}
	}
	return nil
}

// Children returns the objects whose parent is id, in document order.
// An empty id returns the root objects.
func (st *State) Children(id string) []*Object {
	var cs []*Object
	for _, ob := range slices.Concat(st.Objects, st.Walls) {
		if ob.ParentID == id {
			cs = append(cs, ob)
		}
	}
	return cs
}

// IsAncestor returns whether the object anc is id or one of its ancestors.
func (st *State) IsAncestor(anc, id string) bool {
	seen := map[string]bool{}
	for cur := id; cur != "" && !seen[cur]; {
		if cur == anc {
			return true
		}
		seen[cur] = true
		ob := st.Object(cur)
		if ob == nil {
			return false
		}
		cur = ob.ParentID
	}
	return false
}

// Descendants returns the ids of all objects below id, depth first.
func (st *State) Descendants(id string) []string {
	var ids []string
	for _, k := range st.Children(id) {
		ids = append(ids, k.ID)
		ids = append(ids, st.Descendants(k.ID)...)
	}
	return ids
}

// remove deletes the objects with the given ids from both lists and the selection.
func (st *State) remove(ids ...string) {
	del := func(ob *Object) bool { return slices.Contains(ids, ob.ID) }
	st.Objects = slices.DeleteFunc(st.Objects, del)
	st.Walls = slices.DeleteFunc(st.Walls, del)
	st.SelectedIDs = slices.DeleteFunc(st.SelectedIDs, func(id string) bool { return slices.Contains(ids, id) })
	if slices.Contains(ids, st.SelectedID) {
		st.SelectedID = ""
	}
}

// Store is the document store contract consumed by the editor.
// Structural and transform mutations outside a batch each record one
// undo entry; inside a BeginBatch / EndBatch bracket they record one
// entry for the whole bracket when it closes.
type Store interface {
	AddObject(ob *Object) error
	RemoveObjectByID(id string) error

	// SetParent reparents id under parentID, or to the root if parentID is empty.
	// The local transform is left unchanged.
	SetParent(id, parentID string) error

	UpdateObjectTransform(id string, tr Transform) error

	// SetSelectedObject records the primary selection; empty means none.
	SetSelectedObject(id string)
	SetSelectedIDs(ids []string)

	// UpdateSettings replaces the editor settings without recording undo.
	UpdateSettings(st Settings)

	BeginBatch()
	EndBatch()

	// Undo and Redo return false if there is nothing to undo or redo.
	Undo() bool
	Redo() bool

	// State returns a snapshot copy of the document.
	State() *State

	// Generation returns a counter that changes on every mutation.
	Generation() uint64
}

// TransformFromPose returns the transform of a scene pose.
func TransformFromPose(ps scene.Pose) Transform {
	return Transform{Position: ps.Pos, Rotation: ps.Quat, Scale: ps.Scale}
}

// Pose returns the scene pose of the transform.
func (tr Transform) Pose() scene.Pose {
	tr.Defaults()
	return scene.Pose{Pos: tr.Position, Quat: tr.Rotation, Scale: tr.Scale}
}
