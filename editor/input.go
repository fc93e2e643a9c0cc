// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/input"
	"cogentcore.org/xyzedit/keymap"
	"cogentcore.org/xyzedit/math32"
)

// bindInput registers the pointer and keyboard handlers. A left drag
// starting on a gizmo handle drags it, and otherwise draws a selection
// rectangle; a right drag orbits and a middle drag (or shift right drag)
// pans.
func (ed *Controller) bindInput() {
	rt := ed.Input
	rt.RegisterIntent(input.Click, ed.click)
	rt.RegisterIntent(input.DragStart, ed.dragStart)
	rt.RegisterIntent(input.DragMove, ed.dragMove)
	rt.RegisterIntent(input.DragEnd, ed.dragEnd)
	rt.RegisterIntent(input.Wheel, func(in *input.Input) {
		ed.Rig.Zoom(-in.WheelDelta)
	})
	rt.Register("resize", func(in *input.Input) {
		ed.OnWindowResize()
	})
	rt.Register("keydown", func(in *input.Input) {
		ed.Keys.KeyDown(in.Code, in.Mods, in.Repeat)
	})
	rt.Register("keyup", func(in *input.Input) {
		ed.Keys.KeyUp(in.Code)
	})
	rt.Register("blur", func(in *input.Input) {
		ed.Keys.ReleaseAll()
	})
}

// isAdditive returns whether the modifiers extend a selection.
func isAdditive(mods key.Modifiers) bool {
	return mods.HasFlag(key.Shift) || mods.HasCommand()
}

func (ed *Controller) click(in *input.Input) {
	if in.Button != events.Left {
		return
	}
	// a click on a handle that did not reach the drag threshold
	ray := ed.ray(in.NDC)
	if ed.Gizmo.PickHandle(ray) != gizmo.NoAxis || ed.Parts.Gizmo.PickHandle(ray) != gizmo.NoAxis {
		return
	}
	add := isAdditive(in.Mods)
	if ed.Parts.IsEnabled() {
		ed.Parts.Click(in.NDC, add)
		return
	}
	n := ed.Selection.HitTest(in.NDC)
	switch {
	case n == nil:
		if !add {
			ed.Selection.DeselectAll()
		}
	case add:
		ed.Selection.Toggle(n)
	default:
		ed.Selection.SelectSingle(n)
	}
}

func (ed *Controller) dragStart(in *input.Input) {
	ed.gesture = noGesture
	switch in.Button {
	case events.Left:
		ray := ed.ray(in.StartNDC)
		switch {
		case ed.Gizmo.IsAttached() && ed.Gizmo.BeginDrag(ray):
			ed.gesture = gizmoDrag
		case ed.Parts.Gizmo.IsAttached() && ed.Parts.Gizmo.BeginDrag(ray):
			ed.gesture = partGizmoDrag
		default:
			ed.gesture = rectSelect
		}
	case events.Right:
		ed.gesture = orbit
		if in.Mods.HasFlag(key.Shift) {
			ed.gesture = pan
		}
	case events.Middle:
		ed.gesture = pan
	}
}

func (ed *Controller) dragMove(in *input.Input) {
	switch ed.gesture {
	case gizmoDrag:
		ed.Gizmo.Drag(ed.ray(in.NDC))
	case partGizmoDrag:
		ed.Parts.Gizmo.Drag(ed.ray(in.NDC))
	case orbit:
		ed.Rig.Orbit(in.Delta.X, in.Delta.Y)
	case pan:
		ed.Rig.Pan(in.Delta.X, in.Delta.Y)
	}
}

func (ed *Controller) dragEnd(in *input.Input) {
	g := ed.gesture
	ed.gesture = noGesture
	switch g {
	case gizmoDrag:
		ed.Gizmo.EndDrag()
		ed.Sync()
	case partGizmoDrag:
		ed.Parts.Gizmo.EndDrag()
	case rectSelect:
		ed.rectSelect(in.StartNDC, in.NDC, isAdditive(in.Mods))
	case pan:
		ed.Rig.UpdateRotationCenterAfterPan(ed.Scene, ed.Selection.Selectable())
	}
}

func (ed *Controller) rectSelect(a, b math32.Vector2, additive bool) {
	if ed.Parts.IsEnabled() {
		ed.Parts.RectSelect(a, b, additive)
		return
	}
	nodes := ed.Selection.RectSelect(a, b)
	if len(nodes) == 0 {
		if !additive {
			ed.Selection.DeselectAll()
		}
		return
	}
	ed.Selection.SelectMultiple(nodes, additive)
}

// bindKeys connects the key map actions to the editing API.
func (ed *Controller) bindKeys() {
	k := ed.Keys
	k.Handle(keymap.TranslateMode, func() { ed.SetTransformMode("translate") })
	k.Handle(keymap.RotateMode, func() { ed.SetTransformMode("rotate") })
	k.Handle(keymap.ScaleMode, func() { ed.SetTransformMode("scale") })
	k.Handle(keymap.ToggleSpace, func() { ed.ToggleTransformSpace() })
	k.Handle(keymap.ToggleGridSnap, func() { ed.ToggleGridSnap() })

	k.Handle(keymap.RotateLeft, func() { ed.RotateSelection(1) })
	k.Handle(keymap.RotateRight, func() { ed.RotateSelection(-1) })

	k.Handle(keymap.DeselectAll, ed.DeselectAll)
	k.Handle(keymap.SelectAll, func() { ed.SelectAll() })

	k.Handle(keymap.DeleteSelection, func() { ed.DeleteSelectedObjects() })
	k.Handle(keymap.Duplicate, func() { ed.DuplicateSelectedObjects() })
	k.Handle(keymap.Group, func() { ed.GroupSelectedObjects() })
	k.Handle(keymap.Ungroup, func() { ed.UngroupSelectedObjects() })

	k.Handle(keymap.Focus, func() { ed.FocusOnObject("") })
	k.Handle(keymap.ViewFront, func() { ed.Rig.SetView(camera.ViewFront) })
	k.Handle(keymap.ViewSide, func() { ed.Rig.SetView(camera.ViewSide) })
	k.Handle(keymap.ViewTop, func() { ed.Rig.SetView(camera.ViewTop) })
	k.Handle(keymap.ViewBottom, func() { ed.Rig.SetView(camera.ViewBottom) })
	k.Handle(keymap.ResetView, ed.ResetCamera)
	k.Handle(keymap.ToggleProjection, func() { ed.ToggleCameraProjection() })

	k.Handle(keymap.Undo, func() { ed.Undo() })
	k.Handle(keymap.Redo, func() { ed.Redo() })
	k.Handle(keymap.Save, ed.save)
}

func (ed *Controller) save() {
	if ed.OnSave == nil {
		ed.logger().Debug("editor.Controller: no save handler")
		return
	}
	ed.OnSave(ed.Store.State())
}
