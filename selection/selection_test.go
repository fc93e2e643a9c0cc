// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package selection

import (
	"testing"

	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/math32"
	"cogentcore.org/xyzedit/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testScene struct {
	sc         *scene.Scene
	sm         *Manager
	a, b, c, f *scene.Node
}

func addObject(t *testing.T, sc *scene.Scene, id string, pos math32.Vector3) *scene.Node {
	n := scene.NewNode(id, id, scene.Object)
	n.Pose.Pos = pos
	require.NoError(t, sc.Add(nil, n))
	require.NoError(t, sc.Add(n, scene.NewMesh(id+"/body", "body", math32.Vector3Scalar(1))))
	return n
}

func newTestScene(t *testing.T) *testScene {
	sc := scene.New()
	cam := camera.NewPerspective(50, 1, 0.1, 100)
	cam.Pos = math32.Vec3(0, 0, 10)
	cam.LookAt(math32.Vector3{}, camera.UpDir)
	ts := &testScene{sc: sc, sm: NewManager(sc, cam, gizmo.New("primary", sc))}
	ts.a = addObject(t, sc, "a", math32.Vec3(-3, 0, 0))
	ts.b = addObject(t, sc, "b", math32.Vec3(0, 0, 0))
	ts.c = addObject(t, sc, "c", math32.Vec3(3, 0, 0))
	ts.f = addObject(t, sc, "f", math32.Vec3(0, 3, 0))
	ts.f.Frozen = true
	for _, n := range []*scene.Node{ts.a, ts.b, ts.c, ts.f} {
		ts.sm.AddSelectable(n)
	}
	return ts
}

func TestSelectSingleExclusive(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	require.True(t, sm.SelectSingle(ts.a))
	require.True(t, sm.SelectSingle(ts.b))
	assert.Equal(t, []*scene.Node{ts.b}, sm.Selected())
	assert.Equal(t, ts.b, sm.Active())
	assert.False(t, ts.a.Outlined)
	assert.True(t, ts.b.Outlined)
	assert.Equal(t, ts.b, sm.Gizmo.Target())

	orphan := scene.NewNode("o", "o", scene.Object)
	assert.False(t, sm.SelectSingle(orphan))
	assert.False(t, sm.SelectSingle(nil))
	assert.Equal(t, []*scene.Node{ts.b}, sm.Selected(), "invalid input leaves the selection alone")
}

func TestToggleRoundTrip(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectSingle(ts.b)

	require.True(t, sm.Toggle(ts.a))
	assert.Equal(t, []*scene.Node{ts.b, ts.a}, sm.Selected())
	assert.Equal(t, ts.a, sm.Active())
	assert.NotNil(t, sm.Pivot())

	require.True(t, sm.Toggle(ts.a))
	assert.Equal(t, []*scene.Node{ts.b}, sm.Selected())
	assert.Equal(t, ts.b, sm.Active())
	assert.Nil(t, sm.Pivot())
	assert.Equal(t, ts.b, sm.Gizmo.Target())
	assert.False(t, ts.a.Outlined)
}

func TestToggleRestoresOrder(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectMultiple([]*scene.Node{ts.a, ts.b, ts.c}, false)

	require.True(t, sm.Toggle(ts.a))
	require.True(t, sm.Toggle(ts.a))
	assert.Equal(t, []*scene.Node{ts.a, ts.b, ts.c}, sm.Selected())
	assert.Equal(t, ts.c, sm.Active())

	// any change in between appends as usual
	require.True(t, sm.Toggle(ts.b))
	require.True(t, sm.Toggle(ts.c))
	require.True(t, sm.Toggle(ts.b))
	assert.Equal(t, []*scene.Node{ts.a, ts.b}, sm.Selected())
	assert.Equal(t, ts.b, sm.Active())
}

func TestActivePromotion(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectMultiple([]*scene.Node{ts.a, ts.b, ts.c}, false)
	assert.Equal(t, ts.c, sm.Active())
	sm.Toggle(ts.c)
	assert.Equal(t, ts.b, sm.Active())
	sm.Toggle(ts.a)
	assert.Equal(t, ts.b, sm.Active())
}

func TestPivotLifecycle(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectMultiple([]*scene.Node{ts.a, ts.b, ts.c}, false)
	pv := sm.Pivot()
	require.NotNil(t, pv)
	assert.Len(t, ts.sc.NodesOfKind(scene.Pivot), 1)
	assert.Equal(t, pv, ts.sc.ByID(PivotID))
	assert.Equal(t, pv, sm.Gizmo.Target())
	assert.Equal(t, []*scene.Node{ts.a, ts.b, ts.c}, sm.Gizmo.Members())

	// additive selection reuses the pivot
	sm.SelectMultiple([]*scene.Node{ts.b}, true)
	assert.Same(t, pv, sm.Pivot())
	assert.Len(t, ts.sc.NodesOfKind(scene.Pivot), 1)

	sm.Toggle(ts.b)
	sm.Toggle(ts.c)
	assert.Nil(t, sm.Pivot())
	assert.Empty(t, ts.sc.NodesOfKind(scene.Pivot))
	assert.Equal(t, ts.a, sm.Gizmo.Target())

	sm.SelectMultiple([]*scene.Node{ts.b, ts.c}, true)
	require.NotNil(t, sm.Pivot())
	sm.DeselectAll()
	assert.Nil(t, sm.Pivot())
	assert.Empty(t, ts.sc.NodesOfKind(scene.Pivot))
	assert.False(t, sm.Gizmo.IsAttached())
	assert.Empty(t, sm.Selected())
	assert.False(t, ts.b.Outlined)
}

func TestPivotModes(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectMultiple([]*scene.Node{ts.a, ts.c}, false)
	assert.True(t, math32.Vec3(0, 0, 0).IsEqualTol(sm.Pivot().Pose.Pos, 1e-5))
	sm.SetPivotMode(PivotFirst)
	assert.Equal(t, math32.Vec3(-3, 0, 0), sm.Pivot().Pose.Pos)
	sm.SetPivotMode(PivotLast)
	assert.Equal(t, math32.Vec3(3, 0, 0), sm.Pivot().Pose.Pos)

	m, ok := PivotModeFromString("LAST")
	assert.True(t, ok)
	assert.Equal(t, PivotLast, m)
	_, ok = PivotModeFromString("median")
	assert.False(t, ok)
}

func TestFrozenExcluded(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	assert.False(t, sm.SelectSingle(ts.f))
	assert.False(t, sm.Toggle(ts.f))
	sm.SelectMultiple([]*scene.Node{ts.f, ts.a}, false)
	assert.Equal(t, []*scene.Node{ts.a}, sm.Selected())

	all := sm.RectSelect(math32.Vec2(-1, -1), math32.Vec2(1, 1))
	assert.ElementsMatch(t, []*scene.Node{ts.a, ts.b, ts.c}, all)

	ndc, ok := sm.Camera.ProjectToNDC(ts.f.WorldPos())
	require.True(t, ok)
	assert.Nil(t, sm.HitTest(ndc))
}

func TestHitTestPromotion(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	assert.Equal(t, ts.b, sm.HitTest(math32.Vec2(0, 0)), "mesh hit promoted to its pool object")

	ndc, ok := sm.Camera.ProjectToNDC(ts.a.WorldPos())
	require.True(t, ok)
	assert.Equal(t, ts.a, sm.HitTest(ndc))
	assert.Nil(t, sm.HitTest(math32.Vec2(0.9, -0.9)))

	// geometry outside the pool is never returned
	sm.RemoveSelectable(ts.b)
	assert.Nil(t, sm.HitTest(math32.Vec2(0, 0)))
}

func TestRectSelect(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	left := sm.RectSelect(math32.Vec2(-0.05, 1), math32.Vec2(-1, -1))
	assert.Equal(t, []*scene.Node{ts.a}, left)
	ts.a.Visible = false
	assert.Empty(t, sm.RectSelect(math32.Vec2(-0.05, 1), math32.Vec2(-1, -1)))
}

func TestCleanupInvalid(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	var changes [][]string
	sm.OnChange(func(sel []*scene.Node, active *scene.Node) {
		ids := []string{}
		for _, n := range sel {
			ids = append(ids, n.ID)
		}
		changes = append(changes, ids)
	})

	sm.SelectMultiple([]*scene.Node{ts.a, ts.b}, false)
	require.True(t, sm.Gizmo.Start())
	ts.sc.Remove(ts.a)
	sm.CleanupInvalid()
	assert.Len(t, sm.Selected(), 2, "no pruning while dragging")
	assert.True(t, sm.Gizmo.IsDragging())

	sm.Gizmo.EndDrag()
	sm.CleanupInvalid()
	assert.Equal(t, []*scene.Node{ts.b}, sm.Selected())
	assert.Nil(t, sm.Pivot())
	assert.Equal(t, ts.b, sm.Gizmo.Target())

	ts.b.Visible = false
	sm.CleanupInvalid()
	assert.Empty(t, sm.Selected())
	assert.False(t, sm.Gizmo.IsAttached())
	assert.Equal(t, [][]string{{"a", "b"}, {"b"}, {}}, changes)
}

func TestRemoveSelectable(t *testing.T) {
	ts := newTestScene(t)
	sm := ts.sm
	sm.SelectMultiple([]*scene.Node{ts.a, ts.b}, false)
	sm.RemoveSelectable(ts.a)
	assert.False(t, sm.IsSelectable(ts.a))
	assert.Equal(t, []*scene.Node{ts.b}, sm.Selected())

	sm.SetSelectable([]*scene.Node{ts.c})
	assert.Empty(t, sm.Selected())
	assert.Equal(t, []*scene.Node{ts.c}, sm.Selectable())
	assert.False(t, sm.SelectMultiple(nil, false))
}
