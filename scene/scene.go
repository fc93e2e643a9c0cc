// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is the retained-mode scene graph edited by the editor:
// nodes with poses, local bounds and materials, membership tracking
// with a generation counter, and ray casting.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"cogentcore.org/xyzedit/math32"
)

var (
	// ErrCycle is returned when a reparent would make a node its own ancestor.
	ErrCycle = errors.New("scene: node cannot be parented under itself or its descendants")

	// ErrDuplicateID is returned when adding a node whose id is already registered.
	ErrDuplicateID = errors.New("scene: duplicate node id")
)

// Scene owns the root node and an id index of all reachable nodes.
// Every structural change bumps the generation, which invalidates the
// per-node reachability cache used by [Scene.Contains].
type Scene struct {
	Root *Node

	byID  map[string]*Node
	gen   uint64
	reach map[*Node]reachEntry
}

type reachEntry struct {
	gen uint64
	ok  bool
}

// New returns a new empty scene.
func New() *Scene {
	sc := &Scene{
		Root:  NewNode("", "root", Helper),
		byID:  map[string]*Node{},
		reach: map[*Node]reachEntry{},
	}
	return sc
}

// Generation returns the structural generation counter.
func (sc *Scene) Generation() uint64 {
	return sc.gen
}

func (sc *Scene) touch() {
	sc.gen++
}

// ByID returns the reachable node with the given id, or nil.
func (sc *Scene) ByID(id string) *Node {
	return sc.byID[id]
}

// Add adds n (with its subtree) under parent, or under the root if parent is nil.
// If n is already in the graph it is moved, keeping its local pose.
func (sc *Scene) Add(parent, n *Node) error {
	if parent == nil {
		parent = sc.Root
	}
	if n == parent || n.IsAncestorOf(parent) {
		return fmt.Errorf("scene.Add %v under %v: %w", n, parent, ErrCycle)
	}
	if !sc.Contains(n) {
		var dup string
		n.Walk(func(k *Node) bool {
			if k.ID != "" && sc.byID[k.ID] != nil && sc.byID[k.ID] != k {
				dup = k.ID
				return Break
			}
			return Continue
		})
		if dup != "" {
			return fmt.Errorf("scene.Add %q: %w", dup, ErrDuplicateID)
		}
	}
	n.detach()
	parent.addChild(n)
	if sc.Contains(parent) {
		sc.register(n)
	}
	sc.touch()
	return nil
}

// Attach moves n under parent (the root if nil) keeping its world transform.
func (sc *Scene) Attach(parent, n *Node) error {
	world := n.WorldMatrix()
	if err := sc.Add(parent, n); err != nil {
		return err
	}
	return n.SetWorldMatrix(world)
}

// Remove detaches n and its subtree from the graph.
func (sc *Scene) Remove(n *Node) {
	if n == nil || n == sc.Root {
		return
	}
	n.detach()
	n.Walk(func(k *Node) bool {
		if k.ID != "" && sc.byID[k.ID] == k {
			delete(sc.byID, k.ID)
		}
		delete(sc.reach, k)
		return Continue
	})
	sc.touch()
}

func (sc *Scene) register(n *Node) {
	n.Walk(func(k *Node) bool {
		if k.ID != "" {
			sc.byID[k.ID] = k
		}
		return Continue
	})
}

// Contains returns true if n is reachable from the root. Results are
// cached per node until the next structural change.
func (sc *Scene) Contains(n *Node) bool {
	if n == nil {
		return false
	}
	if n == sc.Root {
		return true
	}
	if e, ok := sc.reach[n]; ok && e.gen == sc.gen {
		return e.ok
	}
	top := n
	for top.parent != nil {
		top = top.parent
	}
	ok := top == sc.Root
	sc.reach[n] = reachEntry{gen: sc.gen, ok: ok}
	return ok
}

// Walk calls fun on every node below the root, depth first.
func (sc *Scene) Walk(fun func(n *Node) bool) {
	for _, k := range sc.Root.children {
		k.Walk(fun)
	}
}

// NodesOfKind returns all reachable nodes of the given kind, in walk order.
func (sc *Scene) NodesOfKind(kind Kinds) []*Node {
	var nodes []*Node
	sc.Walk(func(n *Node) bool {
		if n.Kind == kind {
			nodes = append(nodes, n)
		}
		return Continue
	})
	return nodes
}

// Hit is one ray intersection.
type Hit struct {
	Node     *Node
	Distance float32
	Point    math32.Vector3
}

// Raycast intersects the ray with the world bounding box of each
// visible target's geometry, and that of their visible descendants
// if recursive. Hits are sorted by distance, nearest first.
func (sc *Scene) Raycast(ray math32.Ray, targets []*Node, recursive bool) []Hit {
	var hits []Hit
	seen := map[*Node]bool{}
	var visit func(n *Node, parWorld *math32.Matrix4)
	visit = func(n *Node, parWorld *math32.Matrix4) {
		if !n.Visible || seen[n] {
			return
		}
		seen[n] = true
		world := parWorld.Mul(n.LocalMatrix())
		if !n.Bounds.IsEmpty() {
			if d, ok := ray.IntersectBox(n.Bounds.MulMatrix4(world)); ok {
				hits = append(hits, Hit{Node: n, Distance: d, Point: ray.At(d)})
			}
		}
		if !recursive {
			return
		}
		for _, k := range n.children {
			visit(k, world)
		}
	}
	for _, t := range targets {
		if t == nil || !t.IsVisible() {
			continue
		}
		visit(t, t.ParentWorldMatrix())
	}
	slices.SortStableFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	return hits
}
