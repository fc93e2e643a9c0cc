// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gizmo provides the translate / rotate / scale manipulator.
// A gizmo is attached to a single node, or to a pivot node standing in
// for several members; dragging the pivot distributes its change since
// the drag started to every member relative to the pivot.
package gizmo

import (
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/history"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
)

// MinScale is the smallest scale factor a scale drag can produce.
const MinScale = 0.001

// Recorder receives the transform changes of persistent members.
// [history.Bridge] is a Recorder.
type Recorder interface {
	Begin(label string)
	Record(id string, before, after docstore.Transform)
	End() *history.Entry
}

type memberSnap struct {
	node  *scene.Node
	world scene.Pose
	local scene.Pose
}

// Gizmo is a transform manipulator. Its state machine is idle, then
// dragging between [Gizmo.Start] (or [Gizmo.BeginDrag]) and
// [Gizmo.EndDrag], then idle again. Mode and Snap are read when a drag
// starts; changes made during the drag apply to the next one.
type Gizmo struct {
	// Name identifies the gizmo in logs.
	Name string

	Mode  Modes
	Space Spaces
	Snap  Snap
	Style Style

	Scene *scene.Scene

	// Recorder, if set, receives the changes of persistent members.
	Recorder Recorder

	// Peer is a gizmo that must not be attached at the same time as this
	// one; attaching either detaches the other.
	Peer *Gizmo

	// OnChange is called after every transform update.
	OnChange func()

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	target  *scene.Node
	members []*scene.Node

	dragging  bool
	dragMode  Modes
	dragSnap  Snap
	axis      Axes
	origin    math32.Vector3
	dir       math32.Vector3
	plane     math32.Plane
	startPt   math32.Vector3
	pivotSnap scene.Pose
	snaps     []memberSnap
}

// New returns a detached gizmo in translate mode and world space.
func New(name string, sc *scene.Scene) *Gizmo {
	return &Gizmo{Name: name, Scene: sc, Style: DefaultStyle(),
		Snap: Snap{Translate: 1, RotateDeg: 15, Scale: 0.1}}
}

func (g *Gizmo) logger() *slog.Logger {
	return logx.Or(g.Logger)
}

// Target returns the attached node, nil if detached.
func (g *Gizmo) Target() *scene.Node {
	return g.target
}

// Members returns the nodes moved by the gizmo: the members of an
// attached pivot, or the attached node itself.
func (g *Gizmo) Members() []*scene.Node {
	return g.members
}

// IsAttached returns whether the gizmo has a target.
func (g *Gizmo) IsAttached() bool {
	return g.target != nil
}

// IsDragging returns whether a drag is in progress.
func (g *Gizmo) IsDragging() bool {
	return g.dragging
}

// DragAxis returns the handle being dragged, [NoAxis] for programmatic drags.
func (g *Gizmo) DragAxis() Axes {
	return g.axis
}

// Attach attaches the gizmo to target, silently detaching any previous
// target and the peer gizmo. For a [scene.Pivot] target, members are the
// nodes the pivot moves. It returns false and stays detached if target
// cannot be attached or is not in the scene graph.
func (g *Gizmo) Attach(target *scene.Node, members ...*scene.Node) bool {
	if g.dragging {
		g.EndDrag()
	}
	if target == nil {
		g.Detach()
		return false
	}
	if !target.Kind.Attachable() {
		g.logger().Warn("gizmo.Gizmo.Attach: node kind cannot be attached", "gizmo", g.Name, "target", target)
		g.Detach()
		return false
	}
	if !g.Scene.Contains(target) {
		g.logger().Error("gizmo.Gizmo.Attach: target is not in the scene graph", "gizmo", g.Name, "target", target)
		g.Detach()
		return false
	}
	if g.Peer != nil && g.Peer.IsAttached() {
		g.Peer.Detach()
	}
	g.target = target
	if target.Kind == scene.Pivot {
		g.members = slices.DeleteFunc(slices.Clone(members), func(n *scene.Node) bool { return n == nil })
	} else {
		g.members = []*scene.Node{target}
	}
	return true
}

// Detach detaches the gizmo, ending any drag first.
func (g *Gizmo) Detach() {
	if g.dragging {
		g.EndDrag()
	}
	g.target = nil
	g.members = nil
}

// SetMode sets the mode, returning false for an unknown mode or while
// dragging.
func (g *Gizmo) SetMode(m Modes) bool {
	if m < 0 || m >= ModesN {
		g.logger().Warn("gizmo.Gizmo.SetMode: unknown mode", "gizmo", g.Name, "mode", m)
		return false
	}
	if g.dragging {
		g.logger().Debug("gizmo.Gizmo.SetMode: ignored while dragging", "gizmo", g.Name, "mode", m)
		return false
	}
	g.Mode = m
	return true
}

// ToggleSpace switches between world and local space and returns the new space.
func (g *Gizmo) ToggleSpace() Spaces {
	if g.Space == World {
		g.Space = Local
	} else {
		g.Space = World
	}
	return g.Space
}

// Validate checks that the attachment is still in the scene graph,
// dropping members that left it. If the target itself is gone, or a
// pivot has no members left, the gizmo detaches and Validate returns false.
func (g *Gizmo) Validate() bool {
	if g.target == nil {
		return true
	}
	if !g.Scene.Contains(g.target) {
		g.logger().Error("gizmo.Gizmo.Validate: target left the scene graph; detaching", "gizmo", g.Name, "target", g.target)
		g.Detach()
		return false
	}
	if g.target.Kind != scene.Pivot {
		return true
	}
	g.members = slices.DeleteFunc(g.members, func(n *scene.Node) bool { return !g.Scene.Contains(n) })
	if len(g.members) == 0 {
		g.logger().Error("gizmo.Gizmo.Validate: pivot has no members left; detaching", "gizmo", g.Name)
		g.Detach()
		return false
	}
	return true
}

// Start begins a drag without a handle, for programmatic changes
// through [Gizmo.Update]. It snapshots the target and every member.
func (g *Gizmo) Start() bool {
	if g.target == nil || g.dragging {
		return false
	}
	g.dragging = true
	g.dragMode = g.Mode
	g.dragSnap = g.Snap
	g.pivotSnap = g.target.WorldPose()
	g.snaps = make([]memberSnap, len(g.members))
	for i, m := range g.members {
		g.snaps[i] = memberSnap{node: m, world: m.WorldPose(), local: m.Pose}
	}
	if g.Recorder != nil {
		g.Recorder.Begin(g.Mode.String())
	}
	return true
}

// Update sets the world pose of the target during a drag and applies
// the change since the drag started to every member. Outside a drag it
// is applied as a drag of its own.
func (g *Gizmo) Update(ps scene.Pose) {
	if g.target == nil {
		return
	}
	if !g.dragging {
		g.Start()
		defer g.EndDrag()
	}
	if err := g.target.SetWorldPose(ps); err != nil {
		g.logger().Error("gizmo.Gizmo.Update: cannot set target pose", "gizmo", g.Name, "err", err)
		return
	}
	if g.target.Kind == scene.Pivot {
		g.distribute(g.target.WorldPose())
	}
	if g.Recorder != nil {
		for _, s := range g.snaps {
			if !s.node.Kind.Persistent() {
				continue
			}
			g.Recorder.Record(s.node.ID, docstore.TransformFromPose(s.local), docstore.TransformFromPose(s.node.Pose))
		}
	}
	if g.OnChange != nil {
		g.OnChange()
	}
}

// distribute applies the pivot change since the snapshot to each member.
func (g *Gizmo) distribute(pv scene.Pose) {
	ps := g.pivotSnap
	for _, s := range g.snaps {
		w := s.world
		rel := s.world.Pos.Sub(ps.Pos)
		switch g.dragMode {
		case Translate:
			w.Pos = s.world.Pos.Add(pv.Pos.Sub(ps.Pos))
		case Rotate:
			dq := pv.Quat.Mul(ps.Quat.Inverse())
			w.Pos = pv.Pos.Add(rel.MulQuat(dq))
			w.Quat = dq.Mul(s.world.Quat)
		case Scale:
			ratio := pv.Scale.Div(ps.Scale)
			w.Pos = pv.Pos.Add(ratio.Mul(rel))
			w.Scale = s.world.Scale.Mul(ratio)
		}
		if err := s.node.SetWorldPose(w); err != nil {
			g.logger().Error("gizmo.Gizmo.Update: cannot set member pose", "gizmo", g.Name, "member", s.node, "err", err)
		}
	}
}

// EndDrag ends the drag, clears the snapshots and closes the recorder
// bracket, returning its entry if any member changed.
func (g *Gizmo) EndDrag() *history.Entry {
	if !g.dragging {
		return nil
	}
	g.dragging = false
	g.axis = NoAxis
	g.snaps = nil
	if g.Recorder != nil {
		return g.Recorder.End()
	}
	return nil
}

// TranslateBy moves the target by delta in world space, as one change.
func (g *Gizmo) TranslateBy(delta math32.Vector3) {
	if g.target == nil {
		return
	}
	mode := g.Mode
	g.Mode = Translate
	ps := g.target.WorldPose()
	ps.Pos.SetAdd(delta)
	g.Update(ps)
	g.Mode = mode
}

// RotateBy rotates the target by angle radians around the world axis, as one change.
func (g *Gizmo) RotateBy(axis math32.Vector3, angle float32) {
	if g.target == nil {
		return
	}
	mode := g.Mode
	g.Mode = Rotate
	ps := g.target.WorldPose()
	ps.Quat = math32.NewQuatAxisAngle(axis, angle).Mul(ps.Quat)
	g.Update(ps)
	g.Mode = mode
}

// ScaleBy scales the target componentwise by ratio, as one change.
func (g *Gizmo) ScaleBy(ratio math32.Vector3) {
	if g.target == nil {
		return
	}
	mode := g.Mode
	g.Mode = Scale
	ps := g.target.WorldPose()
	ps.Scale = ps.Scale.Mul(ratio)
	g.Update(ps)
	g.Mode = mode
}
