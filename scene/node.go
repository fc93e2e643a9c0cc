// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image/color"

	"cogentcore.org/xyzedit/math32"
)

// Kinds are the variants of scene nodes. Capabilities such as outline
// highlighting or gizmo attachment are decided by switching on the kind.
type Kinds int32

const (
	// Object is a document object: a container for its parts.
	Object Kinds = iota

	// Group is a document group created by grouping objects.
	Group

	// Mesh is a renderable sub-part with geometry and a material.
	Mesh

	// Wall is a document wall, selectable like an object.
	Wall

	// Pivot is a transient multi-selection anchor, never persisted.
	Pivot

	// Helper is editor furniture (grid, gizmo visuals) that is never selected.
	Helper
)

func (k Kinds) String() string {
	switch k {
	case Object:
		return "Object"
	case Group:
		return "Group"
	case Mesh:
		return "Mesh"
	case Wall:
		return "Wall"
	case Pivot:
		return "Pivot"
	case Helper:
		return "Helper"
	}
	return "Unknown"
}

// Highlightable returns whether nodes of this kind show a selection outline.
func (k Kinds) Highlightable() bool {
	switch k {
	case Object, Group, Mesh, Wall:
		return true
	}
	return false
}

// Attachable returns whether a gizmo can be attached to nodes of this kind.
func (k Kinds) Attachable() bool {
	return k != Helper
}

// Persistent returns whether nodes of this kind mirror a document entry.
func (k Kinds) Persistent() bool {
	switch k {
	case Object, Group, Wall:
		return true
	}
	return false
}

// Material is the part of a mesh material that the editor touches.
type Material struct {
	Color             color.RGBA
	Emissive          color.RGBA
	EmissiveIntensity float32
}

// Node is one element of the scene graph. A parent owns its children;
// the parent link is a back reference used for ancestor checks and
// world transforms.
type Node struct {
	// ID is the document id, or a synthetic id for transient nodes.
	ID string

	Name string

	Kind Kinds

	// Type is the free-form document type tag (for example "chair").
	Type string

	Pose Pose

	Visible bool

	// Frozen nodes are excluded from selection.
	Frozen bool

	// Bounds is the local geometry bounding box. Empty for pure containers.
	Bounds math32.Box3

	// Material is set for meshes.
	Material *Material

	// Outlined is the selection outline state.
	Outlined bool

	parent   *Node
	children []*Node
}

// NewNode returns a new visible node with default pose and empty bounds.
func NewNode(id, name string, kind Kinds) *Node {
	return &Node{ID: id, Name: name, Kind: kind, Visible: true, Pose: NewPose(math32.Vector3{}), Bounds: math32.B3Empty()}
}

// NewMesh returns a new mesh node with a box geometry of the given size
// centered on its origin.
func NewMesh(id, name string, size math32.Vector3) *Node {
	n := NewNode(id, name, Mesh)
	n.Bounds = math32.B3Size(size)
	n.Material = &Material{Color: color.RGBA{200, 200, 200, 255}}
	return n
}

func (n *Node) String() string {
	return n.Kind.String() + " " + n.ID
}

// Parent returns the parent node, nil for the root or detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the children of the node. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// IndexInParent returns the index of the node in its parent's children, -1 if none.
func (n *Node) IndexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, k := range n.parent.children {
		if k == n {
			return i
		}
	}
	return -1
}

// IsAncestorOf returns true if n is a strict ancestor of other.
func (n *Node) IsAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// AncestorIn returns the nearest of n and its ancestors for which in returns true,
// or nil if there is none.
func (n *Node) AncestorIn(in func(*Node) bool) *Node {
	for p := n; p != nil; p = p.parent {
		if in(p) {
			return p
		}
	}
	return nil
}

// addChild appends child, which must already be detached.
func (n *Node) addChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
}

// detach removes the node from its parent.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := n.IndexInParent(); i >= 0 {
		p.children = append(p.children[:i:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// Walk calls fun on the node and its descendants depth first.
// Returning [Break] from fun skips the children of that node.
func (n *Node) Walk(fun func(k *Node) bool) {
	if !fun(n) {
		return
	}
	for _, k := range n.children {
		k.Walk(fun)
	}
}

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// IsVisible returns true if this node and all of its ancestors are visible.
func (n *Node) IsVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// SetOutlined sets the selection outline state, for kinds that support it.
func (n *Node) SetOutlined(on bool) {
	if !n.Kind.Highlightable() {
		return
	}
	n.Outlined = on
}

///////////////////////////////////////////////////////
// 		World values

// LocalMatrix returns the transform relative to the parent.
func (n *Node) LocalMatrix() *math32.Matrix4 {
	return n.Pose.Matrix()
}

// WorldMatrix returns the transform from local to world coordinates.
func (n *Node) WorldMatrix() *math32.Matrix4 {
	if n.parent == nil {
		return n.LocalMatrix()
	}
	return n.parent.WorldMatrix().Mul(n.LocalMatrix())
}

// ParentWorldMatrix returns the world matrix of the parent, identity if none.
func (n *Node) ParentWorldMatrix() *math32.Matrix4 {
	if n.parent == nil {
		return math32.Identity4()
	}
	return n.parent.WorldMatrix()
}

// WorldPose returns the world position, rotation and scale.
func (n *Node) WorldPose() Pose {
	if n.parentIsIdentity() {
		return n.Pose
	}
	ps := Pose{}
	ps.SetMatrix(n.WorldMatrix())
	return ps
}

// parentIsIdentity returns whether every ancestor has an identity pose,
// in which case the local pose is the world pose.
func (n *Node) parentIsIdentity() bool {
	id := NewPose(math32.Vector3{})
	for p := n.parent; p != nil; p = p.parent {
		if p.Pose != id {
			return false
		}
	}
	return true
}

// WorldPos returns the world position.
func (n *Node) WorldPos() math32.Vector3 {
	return n.WorldMatrix().Pos()
}

// SetWorldMatrix sets the local pose so that the world transform
// equals m under the current parent.
func (n *Node) SetWorldMatrix(m *math32.Matrix4) error {
	inv, err := n.ParentWorldMatrix().Inverse()
	if err != nil {
		return err
	}
	n.Pose.SetMatrix(inv.Mul(m))
	return nil
}

// SetWorldPose sets the local pose from a world pose under the current parent.
func (n *Node) SetWorldPose(ps Pose) error {
	if n.parentIsIdentity() {
		n.Pose = ps
		return nil
	}
	return n.SetWorldMatrix(ps.Matrix())
}

// WorldBBox returns the world-space bounding box of the node's geometry
// and that of all of its descendants.
func (n *Node) WorldBBox() math32.Box3 {
	bb := math32.B3Empty()
	n.expandWorldBBox(&bb, n.ParentWorldMatrix())
	return bb
}

func (n *Node) expandWorldBBox(bb *math32.Box3, parWorld *math32.Matrix4) {
	world := parWorld.Mul(n.LocalMatrix())
	if !n.Bounds.IsEmpty() {
		bb.ExpandByBox(n.Bounds.MulMatrix4(world))
	}
	for _, k := range n.children {
		k.expandWorldBBox(bb, world)
	}
}

// OwnWorldBBox returns the world-space bounding box of only this node's geometry.
func (n *Node) OwnWorldBBox() math32.Box3 {
	return n.Bounds.MulMatrix4(n.WorldMatrix())
}
