// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editor provides the [Controller], which owns the scene graph,
// camera, selection, gizmos, part inspector and history of one editing
// session, routes input to them, and keeps the scene graph in sync
// with the document store.
package editor

import (
	"log/slog"
	"sync"

	"cogentcore.org/xyzedit/base/errors"
	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/config"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/history"
	"cogentcore.org/xyzedit/input"
	"cogentcore.org/xyzedit/keymap"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/parts"
	"cogentcore.org/xyzedit/scene"
	"cogentcore.org/xyzedit/selection"
)

// gestures are the pointer drag gestures.
type gestures int32

const (
	noGesture gestures = iota
	gizmoDrag
	partGizmoDrag
	rectSelect
	orbit
	pan
)

// Controller is the editing session. All of its methods must be called
// from the one goroutine that delivers input and calls [Controller.Update].
type Controller struct {
	Settings *config.Settings

	Store docstore.Store
	Scene *scene.Scene
	Rig   *camera.Rig

	Input *input.Router
	Keys  *keymap.Table

	Selection *selection.Manager

	// Gizmo is the object gizmo; Parts.Gizmo is its peer.
	Gizmo *gizmo.Gizmo
	Parts *parts.Inspector

	History *history.Bridge
	Frames  *history.FrameScheduler

	// OnSave is called for the save key binding with a snapshot of the document.
	OnSave func(st *docstore.State)

	// OnEntry is called with each history entry, one per finished gesture.
	OnEntry func(e *history.Entry)

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	platform input.Platform

	synced  bool
	gen     uint64
	nodes   map[string]*scene.Node
	objects map[string]*docstore.Object

	// extra and excluded adjust the selectable pool of root objects.
	extra    map[string]bool
	excluded map[string]bool

	gesture gestures

	settingsMu   sync.Mutex
	nextSettings *config.Settings
	cancelWatch  func()

	disposed bool
}

// New returns a controller editing the document in store, with input
// from p. Nil settings use [config.Default].
func New(p input.Platform, store docstore.Store, s *config.Settings) *Controller {
	if s == nil {
		s = config.Default()
	}
	ed := &Controller{Store: store, platform: p, nodes: map[string]*scene.Node{}, objects: map[string]*docstore.Object{},
		extra: map[string]bool{}, excluded: map[string]bool{}}
	ed.Scene = scene.New()
	aspect := float32(1)
	if b := p.Bounds(); b.Width > 0 && b.Height > 0 {
		aspect = b.Width / b.Height
	}
	ed.Rig = camera.NewRig(s.Camera, aspect)

	ed.Frames = &history.FrameScheduler{}
	ed.History = history.New(store, ed.Frames)
	ed.History.OnEntry = ed.entry

	ed.Gizmo = gizmo.New("object", ed.Scene)
	ed.Gizmo.Recorder = ed.History
	pg := gizmo.New("part", ed.Scene)
	pg.Peer = ed.Gizmo
	ed.Gizmo.Peer = pg

	ed.Selection = selection.NewManager(ed.Scene, ed.Rig.Camera, ed.Gizmo)
	ed.Selection.OnChange(ed.selectionChanged)
	ed.Parts = parts.NewInspector(ed.Scene, ed.Rig.Camera, pg)

	ed.Keys = keymap.NewDefault()
	ed.Input = input.NewRouter(p, s.Input.DragThreshold)

	ed.ApplySettings(s)
	ed.bindKeys()
	ed.bindInput()
	ed.Sync()
	return ed
}

func (ed *Controller) logger() *slog.Logger {
	return logx.Or(ed.Logger)
}

// SetLogger sets the logger of the controller and all of its components.
func (ed *Controller) SetLogger(l *slog.Logger) {
	ed.Logger = l
	ed.Rig.Logger = l
	ed.Input.Logger = l
	ed.Keys.Logger = l
	ed.Selection.Logger = l
	ed.Gizmo.Logger = l
	ed.Parts.Gizmo.Logger = l
	ed.Parts.Logger = l
	ed.History.Logger = l
}

// ApplySettings applies settings to every component. The document's own
// settings, applied on the next sync, take precedence for snapping and
// gizmo space and size.
func (ed *Controller) ApplySettings(s *config.Settings) {
	ed.Settings = s
	ed.Input.DragThreshold = s.Input.DragThreshold
	ed.Rig.Settings = s.Camera
	for _, g := range []*gizmo.Gizmo{ed.Gizmo, ed.Parts.Gizmo} {
		if m, ok := gizmo.ModeFromString(s.Gizmo.Mode); ok {
			g.SetMode(m)
		}
		if sp, ok := gizmo.SpaceFromString(s.Gizmo.Space); ok {
			g.Space = sp
		}
		g.Snap = s.Gizmo.Snap
		g.Style = s.Gizmo.Style
	}
	if pm, ok := selection.PivotModeFromString(s.Gizmo.PivotMode); ok {
		ed.Selection.SetPivotMode(pm)
		ed.Parts.SetPivotMode(pm)
	}
	ed.Parts.Settings = s.Parts
	if m, ok := ed.Store.(*docstore.Memory); ok {
		m.MaxDepth = s.History.MaxDepth
	}
	if s.Keys.Preset != "" {
		if p, err := keymap.OpenPreset(s.Keys.Preset); errors.Log(err) == nil {
			errors.Log(ed.Keys.ApplyPreset(p))
		}
	}
	if ed.synced {
		ed.applyDocSettings(ed.Store.State().Settings)
	}
}

// IsDragging returns whether either gizmo is being dragged.
func (ed *Controller) IsDragging() bool {
	return ed.Gizmo.IsDragging() || ed.Parts.Gizmo.IsDragging()
}

// camera returns the active camera.
func (ed *Controller) camera() *camera.Camera {
	return ed.Rig.Camera
}

// Node returns the scene node of the document object id, or nil.
func (ed *Controller) Node(id string) *scene.Node {
	return ed.nodes[id]
}

// Update runs the per-frame work: pending settings are applied, deferred
// transform writes are flushed, the scene graph is synced with the
// document, and the selections are revalidated. Settings and
// revalidation wait while a gizmo is dragging.
func (ed *Controller) Update() {
	if ed.disposed {
		return
	}
	if !ed.IsDragging() {
		ed.settingsMu.Lock()
		ns := ed.nextSettings
		ed.nextSettings = nil
		ed.settingsMu.Unlock()
		if ns != nil {
			ed.ApplySettings(ns)
		}
	}
	ed.Frames.Tick()
	ed.Sync()
	if ed.IsDragging() {
		return
	}
	ed.Selection.CleanupInvalid()
	ed.Parts.Cleanup()
}

// OnWindowResize updates the camera for the current render surface size.
func (ed *Controller) OnWindowResize() {
	b := ed.platform.Bounds()
	ed.Rig.HandleResize(b.Width, b.Height)
}

// Dispose removes every input listener and clears the selections. It is
// safe to call more than once.
func (ed *Controller) Dispose() {
	if ed.disposed {
		return
	}
	ed.disposed = true
	if ed.cancelWatch != nil {
		ed.cancelWatch()
	}
	if ed.IsDragging() {
		ed.Gizmo.EndDrag()
		ed.Parts.Gizmo.EndDrag()
	}
	ed.Input.Dispose()
	ed.Keys.ReleaseAll()
	ed.Parts.Disable()
	ed.Selection.DeselectAll()
}

// IsDisposed returns whether [Controller.Dispose] has been called.
func (ed *Controller) IsDisposed() bool {
	return ed.disposed
}

func (ed *Controller) entry(e *history.Entry) {
	ed.logger().Debug("editor.Controller: history entry", "label", e.Label, "changes", len(e.Changes), "objects", len(e.IDs))
	if ed.OnEntry != nil {
		ed.OnEntry(e)
	}
}

// selectionChanged mirrors the selection into the document.
func (ed *Controller) selectionChanged(sel []*scene.Node, active *scene.Node) {
	ids := make([]string, len(sel))
	for i, n := range sel {
		ids[i] = n.ID
	}
	ed.Store.SetSelectedIDs(ids)
	id := ""
	if active != nil {
		id = active.ID
	}
	ed.Store.SetSelectedObject(id)
}

// ray returns the camera ray through the normalized device coordinates.
func (ed *Controller) ray(ndc math32.Vector2) math32.Ray {
	return ed.camera().RayFromNDC(ndc)
}
