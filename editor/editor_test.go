// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/config"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/docstore/sqlstore"
	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/history"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surface = 800

type testEditor struct {
	ed      *Controller
	src     *events.Source
	mem     *docstore.Memory
	entries []*history.Entry
}

func box(id string, pos math32.Vector3) *docstore.Object {
	return &docstore.Object{ID: id, Name: id, Transform: docstore.NewTransform(pos), Visible: true,
		Size: math32.Vector3Scalar(0.5)}
}

// newTestEditor returns an editor over boxes a, b and c at x = 0, 1, 2
// and a frozen box f above them, seen from (0, 0, 20).
func newTestEditor(t *testing.T) *testEditor {
	st := docstore.NewState()
	f := box("f", math32.Vec3(0, 3, 0))
	f.Frozen = true
	st.Objects = []*docstore.Object{
		box("a", math32.Vec3(0, 0, 0)),
		box("b", math32.Vec3(1, 0, 0)),
		box("c", math32.Vec3(2, 0, 0)),
		f,
	}
	te := &testEditor{src: events.NewSource(surface, surface), mem: docstore.NewMemory(st)}
	te.ed = New(te.src, te.mem, nil)
	te.ed.OnEntry = func(e *history.Entry) { te.entries = append(te.entries, e) }
	te.ed.Rig.Camera.Pos = math32.Vec3(0, 0, 20)
	te.ed.SetCameraTarget(math32.Vector3{})
	return te
}

// px returns the client pixel position of the world point.
func (te *testEditor) px(t *testing.T, p math32.Vector3) math32.Vector2 {
	t.Helper()
	ndc, ok := te.ed.Rig.Camera.ProjectToNDC(p)
	require.True(t, ok)
	return math32.Vec2((ndc.X+1)/2*surface, (1-ndc.Y)/2*surface)
}

func (te *testEditor) mouse(typ events.Types, but events.Buttons, pos math32.Vector2, mods key.Modifiers) {
	te.src.Send(events.NewMouse(typ, but, pos, mods))
}

func (te *testEditor) click(pos math32.Vector2, mods key.Modifiers) {
	te.mouse(events.MouseDown, events.Left, pos, mods)
	te.mouse(events.MouseUp, events.Left, pos, mods)
}

func (te *testEditor) key(typ events.Types, code key.Codes, mods key.Modifiers, repeat bool) {
	te.src.Send(events.NewKey(typ, code, mods, repeat))
}

func (te *testEditor) pos(id string) math32.Vector3 {
	return te.mem.State().Object(id).Transform.Position
}

func assertVec3(t *testing.T, want, got math32.Vector3, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, tol, "Y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, tol, "Z of %v vs %v", want, got)
}

func TestSyncBuildsScene(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	for _, id := range []string{"a", "b", "c", "f"} {
		n := ed.Node(id)
		require.NotNil(t, n, id)
		assert.Equal(t, scene.Object, n.Kind)
		assert.Equal(t, ed.Scene.Root, n.Parent())
		require.Equal(t, 1, n.NumChildren())
		assert.Equal(t, scene.Mesh, n.Children()[0].Kind)
		assert.Equal(t, id+"/body", n.Children()[0].ID)
	}
	assert.Len(t, ed.Selection.Selectable(), 4)
	assert.True(t, ed.Node("f").Frozen)
	assertVec3(t, math32.Vec3(2, 0, 0), ed.Node("c").WorldPos(), 1e-6)

	// external changes are picked up by the next update
	require.NoError(t, te.mem.UpdateObjectTransform("c", docstore.NewTransform(math32.Vec3(2, 1, 0))))
	require.NoError(t, te.mem.AddObject(box("d", math32.Vec3(-3, 0, 0))))
	ed.Update()
	assertVec3(t, math32.Vec3(2, 1, 0), ed.Node("c").WorldPos(), 1e-6)
	require.NotNil(t, ed.Node("d"))
	assert.Len(t, ed.Selection.Selectable(), 5)
}

func TestClickSelect(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed

	te.click(te.px(t, math32.Vec3(1, 0, 0)), 0)
	assert.Equal(t, []string{"b"}, ed.Selection.SelectedIDs())
	assert.Equal(t, ed.Node("b"), ed.Gizmo.Target())
	assert.Equal(t, []string{"b"}, te.mem.State().SelectedIDs)
	assert.Equal(t, "b", te.mem.State().SelectedID)

	// below the handles of the attached gizmo
	te.click(te.px(t, math32.Vec3(2, -0.2, 0)), key.Shift)
	assert.Equal(t, []string{"b", "c"}, ed.Selection.SelectedIDs())
	require.NotNil(t, ed.Selection.Pivot())
	assert.Equal(t, ed.Selection.Pivot(), ed.Gizmo.Target())

	// toggling c off again destroys the pivot
	te.click(te.px(t, math32.Vec3(2, -0.2, 0)), key.Control)
	assert.Equal(t, []string{"b"}, ed.Selection.SelectedIDs())
	assert.Nil(t, ed.Selection.Pivot())

	// frozen objects are never selected
	te.click(te.px(t, math32.Vec3(0, 3, 0)), 0)
	assert.Empty(t, ed.Selection.SelectedIDs())
	assert.False(t, ed.SelectObject("f"))

	te.click(te.px(t, math32.Vec3(0, 0, 0)), 0)
	assert.Equal(t, []string{"a"}, ed.Selection.SelectedIDs())
	te.click(math32.Vec2(50, 50), 0)
	assert.Empty(t, ed.Selection.SelectedIDs())
	assert.False(t, ed.Gizmo.IsAttached())
	assert.Empty(t, te.mem.State().SelectedID)
}

func TestClickOnHandleKeepsSelection(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("a"))

	// the Y handle reaches past the box
	tip := math32.Vec3(0, 0.7, 0)
	ndc, ok := ed.Rig.Camera.ProjectToNDC(tip)
	require.True(t, ok)
	require.Equal(t, gizmo.AxisY, ed.Gizmo.PickHandle(ed.ray(ndc)))
	te.click(te.px(t, tip), 0)
	assert.Equal(t, []string{"a"}, ed.Selection.SelectedIDs())
	assert.Equal(t, ed.Node("a"), ed.Gizmo.Target())
	assert.Empty(t, te.entries)

	// same for the part gizmo
	require.True(t, ed.EnablePartInspection("a"))
	require.True(t, ed.Parts.Select(ed.Node("a").Children()[0]))
	require.Equal(t, "a/body", ed.Parts.Gizmo.Target().ID)
	te.click(te.px(t, tip), 0)
	assert.Len(t, ed.Parts.Parts(), 1)
	assert.True(t, ed.Parts.Gizmo.IsAttached())

	// a click off the handles still deselects
	te.click(math32.Vec2(50, 50), 0)
	assert.Empty(t, ed.Parts.Parts())
}

func TestDragTranslateSelection(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObjects([]string{"a", "b", "c"}, false))
	require.NotNil(t, ed.Selection.Pivot())
	assertVec3(t, math32.Vec3(1, 0, 0), ed.Selection.Pivot().WorldPos(), 1e-5)

	te.mouse(events.MouseDown, events.Left, te.px(t, math32.Vec3(1.5, 0, 0)), 0)
	for _, x := range []float32{2.5, 3.5, 4.5, 5.5, 6.5} {
		te.mouse(events.MouseMove, events.NoButton, te.px(t, math32.Vec3(x, 0, 0)), 0)
		require.True(t, ed.IsDragging())
		assert.Equal(t, gizmo.AxisX, ed.Gizmo.DragAxis())
		ed.Update()
	}
	te.mouse(events.MouseUp, events.Left, te.px(t, math32.Vec3(6.5, 0, 0)), 0)
	assert.False(t, ed.IsDragging())

	want := map[string]math32.Vector3{"a": math32.Vec3(5, 0, 0), "b": math32.Vec3(6, 0, 0), "c": math32.Vec3(7, 0, 0)}
	for id, p := range want {
		assertVec3(t, p, te.pos(id), 1e-3)
		assertVec3(t, p, ed.Node(id).WorldPos(), 1e-3)
	}

	require.Len(t, te.entries, 1)
	e := te.entries[0]
	assert.Equal(t, "translate", e.Label)
	require.Len(t, e.Changes, 3)
	for _, ch := range e.Changes {
		before := want[ch.ID].Sub(math32.Vec3(5, 0, 0))
		assertVec3(t, before, ch.Before.Position, 1e-6)
		assertVec3(t, want[ch.ID], ch.After.Position, 1e-3)
	}
	recs, idx := te.mem.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, 0, idx)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, recs[0].IDs)

	// the selection survives the drag
	assert.Equal(t, []string{"a", "b", "c"}, ed.Selection.SelectedIDs())

	require.True(t, ed.Undo())
	assertVec3(t, math32.Vec3(1, 0, 0), ed.Node("b").WorldPos(), 1e-6)
	assertVec3(t, math32.Vec3(1, 0, 0), ed.Selection.Pivot().WorldPos(), 1e-5)
}

func TestDragDoesNotResyncMidGesture(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObjects([]string{"a", "b"}, false))
	te.mouse(events.MouseDown, events.Left, te.px(t, math32.Vec3(1, 0, 0)), 0)
	te.mouse(events.MouseMove, events.NoButton, te.px(t, math32.Vec3(2, 0, 0)), 0)
	require.True(t, ed.IsDragging())

	require.NoError(t, te.mem.RemoveObjectByID("c"))
	ed.Update()
	assert.True(t, ed.IsDragging())
	assert.NotNil(t, ed.Node("c"))
	assert.Len(t, ed.Gizmo.Members(), 2)

	te.mouse(events.MouseUp, events.Left, te.px(t, math32.Vec3(2, 0, 0)), 0)
	assert.Nil(t, ed.Node("c"))
	assert.Equal(t, []string{"a", "b"}, ed.Selection.SelectedIDs())
}

func TestUndoSingleFireUnderRepeat(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("a"))
	ed.Gizmo.TranslateBy(math32.Vec3(1, 0, 0))
	ed.Gizmo.TranslateBy(math32.Vec3(1, 0, 0))
	ed.Sync()
	_, idx := te.mem.Records()
	require.Equal(t, 1, idx)

	te.key(events.KeyDown, key.CodeControlLeft, key.Control, false)
	te.key(events.KeyDown, key.CodeZ, key.Control, false)
	for range 5 {
		te.key(events.KeyDown, key.CodeZ, key.Control, true)
	}
	_, idx = te.mem.Records()
	assert.Equal(t, 0, idx)
	assertVec3(t, math32.Vec3(1, 0, 0), ed.Node("a").WorldPos(), 1e-6)

	te.key(events.KeyUp, key.CodeZ, key.Control, false)
	te.key(events.KeyDown, key.CodeZ, key.Control, false)
	_, idx = te.mem.Records()
	assert.Equal(t, -1, idx)
	assertVec3(t, math32.Vec3(0, 0, 0), ed.Node("a").WorldPos(), 1e-6)

	te.key(events.KeyUp, key.CodeZ, key.Control, false)
	te.key(events.KeyDown, key.CodeZ, key.Control|key.Shift, false)
	te.key(events.KeyDown, key.CodeZ, key.Control|key.Shift, true)
	_, idx = te.mem.Records()
	assert.Equal(t, 0, idx)
}

func TestRotateKeys(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("b"))
	te.key(events.KeyDown, key.CodeBracketLeft, 0, false)
	te.key(events.KeyUp, key.CodeBracketLeft, 0, false)

	q := te.mem.State().Object("b").Transform.Rotation
	want := math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(15))
	assert.True(t, want.IsEqualTol(q, 1e-5), "rotation %v", q)
	assertVec3(t, math32.Vec3(1, 0, 0), te.pos("b"), 1e-5)
	require.Len(t, te.entries, 1)
	assert.Equal(t, "rotate", te.entries[0].Label)

	// plain bindings auto-repeat
	te.key(events.KeyDown, key.CodeBracketRight, 0, false)
	te.key(events.KeyDown, key.CodeBracketRight, 0, true)
	q = te.mem.State().Object("b").Transform.Rotation
	want = math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(-15))
	assert.True(t, want.IsEqualTol(q, 1e-5), "rotation %v", q)
}

func TestGroupUngroupRoundTrip(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	tr := docstore.Transform{Position: math32.Vec3(0, 0, 0),
		Rotation: math32.NewQuatAxisAngle(math32.Vec3(0, 1, 0), math32.DegToRad(30)), Scale: math32.Vec3(2, 1, 1)}
	require.NoError(t, te.mem.UpdateObjectTransform("a", tr))
	ed.Update()
	before := map[string]*math32.Matrix4{"a": ed.Node("a").WorldMatrix(), "b": ed.Node("b").WorldMatrix()}

	require.True(t, ed.SelectObjects([]string{"a", "b"}, false))
	gid := ed.GroupSelectedObjects()
	require.NotEmpty(t, gid)
	st := te.mem.State()
	grp := st.Object(gid)
	require.NotNil(t, grp)
	assert.True(t, grp.IsGroup())
	assert.Equal(t, gid, st.Object("a").ParentID)
	assert.Equal(t, gid, st.Object("b").ParentID)
	assert.Equal(t, []string{gid}, ed.Selection.SelectedIDs())
	assert.Equal(t, ed.Node(gid), ed.Node("a").Parent())
	assert.NotContains(t, ed.Selection.Selectable(), ed.Node("a"))
	require.Len(t, te.entries, 1)
	assert.Equal(t, "group", te.entries[0].Label)
	assert.ElementsMatch(t, []string{gid, "a", "b"}, te.entries[0].IDs)

	check := func(label string) {
		for id, m := range before {
			got := ed.Node(id).WorldMatrix()
			for i := range m {
				assert.InDelta(t, m[i], got[i], 1e-4, "%s: %s element %d", label, id, i)
			}
		}
	}
	check("grouped")

	freed := ed.UngroupSelectedObjects()
	assert.ElementsMatch(t, []string{"a", "b"}, freed)
	st = te.mem.State()
	assert.Nil(t, st.Object(gid))
	assert.Nil(t, ed.Node(gid))
	assert.Empty(t, st.Object("a").ParentID)
	assert.Equal(t, ed.Scene.Root, ed.Node("a").Parent())
	assert.ElementsMatch(t, []string{"a", "b"}, ed.Selection.SelectedIDs())
	check("ungrouped")
	require.Len(t, te.entries, 2)
	assert.Equal(t, "ungroup", te.entries[1].Label)
	assert.ElementsMatch(t, []string{gid, "a", "b"}, te.entries[1].IDs)

	// one undo record per structural command
	recs, _ := te.mem.Records()
	assert.Len(t, recs, 3)
	require.True(t, ed.Undo())
	assert.NotNil(t, ed.Node(gid))
	assert.Equal(t, ed.Node(gid), ed.Node("b").Parent())
	check("undone")
}

func TestGroupNeedsTwo(t *testing.T) {
	te := newTestEditor(t)
	require.True(t, te.ed.SelectObject("a"))
	assert.Empty(t, te.ed.GroupSelectedObjects())
	assert.Nil(t, te.ed.UngroupSelectedObjects())
	recs, _ := te.mem.Records()
	assert.Empty(t, recs)
	assert.Empty(t, te.entries)
}

func TestDuplicateDelete(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("a"))
	te.key(events.KeyDown, key.CodeD, key.Control, false)
	te.key(events.KeyUp, key.CodeD, key.Control, false)

	sel := ed.Selection.SelectedIDs()
	require.Len(t, sel, 1)
	cp := sel[0]
	assert.NotEqual(t, "a", cp)
	ob := te.mem.State().Object(cp)
	require.NotNil(t, ob)
	assert.Equal(t, "a", ob.Name)
	assertVec3(t, math32.Vec3(1, 0, 0), ob.Transform.Position, 1e-6)
	require.NotNil(t, ed.Node(cp))
	assert.Equal(t, cp+"/body", ed.Node(cp).Children()[0].ID)
	require.Len(t, te.entries, 1)
	assert.Equal(t, "duplicate", te.entries[0].Label)
	assert.Equal(t, []string{cp}, te.entries[0].IDs)

	te.key(events.KeyDown, key.CodeDelete, 0, false)
	assert.Nil(t, te.mem.State().Object(cp))
	assert.Nil(t, ed.Node(cp))
	assert.Empty(t, ed.Selection.SelectedIDs())
	require.Len(t, te.entries, 2)
	assert.Equal(t, "delete", te.entries[1].Label)
	assert.Equal(t, []string{cp}, te.entries[1].IDs)

	require.True(t, ed.Undo())
	assert.NotNil(t, ed.Node(cp))
	require.True(t, ed.Redo())
	assert.Nil(t, ed.Node(cp))
	assert.Equal(t, 0, ed.DeleteSelectedObjects())
}

func TestExternalDeleteClearsSelection(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObjects([]string{"b", "c"}, false))
	require.NoError(t, te.mem.RemoveObjectByID("b"))
	ed.Update()
	assert.Equal(t, []string{"c"}, ed.Selection.SelectedIDs())
	assert.Equal(t, ed.Node("c"), ed.Gizmo.Target())
	assert.Nil(t, ed.Selection.Pivot())

	require.NoError(t, te.mem.RemoveObjectByID("c"))
	ed.Update()
	assert.Empty(t, ed.Selection.SelectedIDs())
	assert.False(t, ed.Gizmo.IsAttached())
}

func TestRectSelectDrag(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	te.mouse(events.MouseDown, events.Left, te.px(t, math32.Vec3(-0.5, 0.5, 0)), 0)
	te.mouse(events.MouseMove, events.NoButton, te.px(t, math32.Vec3(1.5, -0.5, 0)), 0)
	te.mouse(events.MouseUp, events.Left, te.px(t, math32.Vec3(1.5, -0.5, 0)), 0)
	assert.Equal(t, []string{"a", "b"}, ed.Selection.SelectedIDs())
	assert.NotNil(t, ed.Selection.Pivot())
}

func TestSettingsCommands(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	assert.False(t, ed.SetTransformMode("shear"))
	assert.True(t, ed.SetTransformMode("rotate"))
	assert.Equal(t, gizmo.Rotate, ed.Gizmo.Mode)
	assert.Equal(t, gizmo.Rotate, ed.Parts.Gizmo.Mode)
	te.key(events.KeyDown, key.CodeR, 0, false)
	assert.Equal(t, gizmo.Scale, ed.Gizmo.Mode)

	assert.Equal(t, gizmo.Local, ed.ToggleTransformSpace())
	assert.Equal(t, gizmo.Local, ed.Parts.Gizmo.Space)
	assert.Equal(t, "local", te.mem.State().GizmoSpace)

	assert.True(t, ed.ToggleGridSnap())
	assert.True(t, ed.Gizmo.Snap.TranslateOn)
	assert.True(t, ed.Parts.Gizmo.Snap.RotateOn)
	assert.True(t, te.mem.State().IsGridSnap)

	assert.False(t, ed.SetGridSize(0))
	assert.True(t, ed.SetGridSize(0.5))
	assert.Equal(t, float32(0.5), ed.Gizmo.Snap.Translate)
	assert.Equal(t, float32(0.5), te.mem.State().GridSize)

	// settings changes are not undoable
	recs, _ := te.mem.Records()
	assert.Empty(t, recs)
}

func TestSettingsWaitForDrag(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("a"))
	require.True(t, ed.Gizmo.Start())
	assert.False(t, ed.SetTransformMode("rotate"))
	assert.Equal(t, gizmo.Translate, ed.Gizmo.Mode)
	assert.Equal(t, gizmo.Translate, ed.Parts.Gizmo.Mode)

	s := config.Default()
	s.Gizmo.Mode = "scale"
	ed.settingsMu.Lock()
	ed.nextSettings = s
	ed.settingsMu.Unlock()
	ed.Update()
	assert.Equal(t, gizmo.Translate, ed.Gizmo.Mode)

	ed.Gizmo.EndDrag()
	ed.Update()
	assert.Equal(t, gizmo.Scale, ed.Gizmo.Mode)
	assert.Equal(t, gizmo.Scale, ed.Parts.Gizmo.Mode)
}

// warnHandler sends the messages of warnings and errors to a channel.
type warnHandler chan string

func (h warnHandler) Enabled(_ context.Context, lvl slog.Level) bool { return lvl >= slog.LevelWarn }
func (h warnHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h warnHandler) WithGroup(string) slog.Handler { return h }

func (h warnHandler) Handle(_ context.Context, r slog.Record) error {
	select {
	case h <- r.Message:
	default:
	}
	return nil
}

func TestWatchConfigLogsBadFile(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	warns := make(warnHandler, 64)
	ed.Logger = slog.New(warns)
	defer ed.Dispose()

	fn := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, config.Default().Save(fn))
	require.NoError(t, ed.WatchConfig(context.Background(), fn))
	require.NoError(t, os.WriteFile(fn, []byte("[Camera\nFOV = \"wide\"\n"), 0o644))

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-warns:
			if strings.HasPrefix(msg, "editor.Controller.WatchConfig:") {
				return
			}
		case <-timeout:
			t.Fatal("bad settings file was not reported")
		}
	}
}

func TestCameraCommands(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	assert.False(t, ed.SetCameraView("diagonal"))
	assert.True(t, ed.SetCameraView("top"))
	assert.Greater(t, ed.Rig.Camera.Pos.Y, float32(0))

	assert.Equal(t, camera.Orthographic, ed.ToggleCameraProjection())
	assert.Same(t, ed.Rig.Camera, ed.Selection.Camera)
	assert.Same(t, ed.Rig.Camera, ed.Parts.Camera)
	assert.Equal(t, camera.Perspective, ed.ToggleCameraProjection())
	assert.Same(t, ed.Rig.Camera, ed.Selection.Camera)

	ed.SetCameraTarget(math32.Vec3(1, 2, 3))
	assert.Equal(t, math32.Vec3(1, 2, 3), ed.CameraTarget())
	ed.ResetCamera()
	assert.Equal(t, ed.Settings.Camera.DefaultTarget, ed.CameraTarget())
	assert.Equal(t, ed.Settings.Camera.DefaultPos, ed.Rig.Camera.Pos)

	assert.False(t, ed.FocusOnObject(""))
	assert.True(t, ed.FocusOnObject("c"))
	assertVec3(t, math32.Vec3(2, 0, 0), ed.CameraTarget(), 1e-4)
}

func TestPartInspection(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("b"))
	assert.False(t, ed.EnablePartInspection("missing"))
	require.True(t, ed.EnablePartInspection("b"))

	te.click(te.px(t, math32.Vec3(1, -0.2, 0)), 0)
	require.Len(t, ed.Parts.Parts(), 1)
	assert.Equal(t, "b/body", ed.Parts.Active().ID)
	assert.Equal(t, ed.Parts.Active(), ed.Parts.Gizmo.Target())
	assert.False(t, ed.Gizmo.IsAttached())

	// parts outside the host are ignored
	te.click(te.px(t, math32.Vec3(2, -0.2, 0)), key.Shift)
	assert.Len(t, ed.Parts.Parts(), 1)

	ed.DisablePartInspection()
	assert.False(t, ed.Parts.IsEnabled())
	assert.False(t, ed.Parts.Gizmo.IsAttached())
}

func TestSaveKey(t *testing.T) {
	te := newTestEditor(t)
	db, err := sqlstore.Open(filepath.Join(t.TempDir(), "scene.db"))
	require.NoError(t, err)
	defer db.Close()

	te.ed.SaveTo(db, "main")
	te.key(events.KeyDown, key.CodeS, key.Meta, false)
	st, err := db.Load(context.Background(), "main")
	require.NoError(t, err)
	assert.Len(t, st.Objects, 4)

	require.NoError(t, te.mem.RemoveObjectByID("a"))
	require.NoError(t, te.ed.Save(context.Background(), db, "main"))
	st, err = db.Load(context.Background(), "main")
	require.NoError(t, err)
	assert.Len(t, st.Objects, 3)
}

func TestDispose(t *testing.T) {
	te := newTestEditor(t)
	ed := te.ed
	require.True(t, ed.SelectObject("a"))
	assert.Positive(t, te.src.NumListeners())
	ed.Dispose()
	ed.Dispose()
	assert.True(t, ed.IsDisposed())
	assert.Equal(t, 0, te.src.NumListeners())
	assert.Empty(t, ed.Selection.SelectedIDs())

	// input after dispose does nothing
	te.click(te.px(t, math32.Vec3(1, 0, 0)), 0)
	assert.Empty(t, ed.Selection.SelectedIDs())
}
