// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"testing"

	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (*events.Source, *Router) {
	src := events.NewSource(800, 600)
	return src, NewRouter(src, DefaultDragThreshold)
}

func mouse(typ events.Types, x, y float32) *events.Event {
	return events.NewMouse(typ, events.Left, math32.Vec2(x, y), 0)
}

func TestNDC(t *testing.T) {
	src, rt := newTestRouter()
	src.Rect = events.Rect{X: 100, Y: 50, Width: 800, Height: 600}

	pos, ndc := rt.ToNDC(math32.Vec2(100, 50))
	assert.Equal(t, math32.Vec2(0, 0), pos)
	assert.Equal(t, math32.Vec2(-1, 1), ndc)

	_, ndc = rt.ToNDC(math32.Vec2(500, 350))
	assert.Equal(t, math32.Vec2(0, 0), ndc)

	_, ndc = rt.ToNDC(math32.Vec2(900, 650))
	assert.Equal(t, math32.Vec2(1, -1), ndc)

	src.Rect = events.Rect{}
	_, ndc = rt.ToNDC(math32.Vec2(10, 10))
	assert.Equal(t, math32.Vector2{}, ndc)
}

func TestClick(t *testing.T) {
	src, rt := newTestRouter()
	var got []Intents
	var last *Input
	for it := Click; it < IntentsN; it++ {
		rt.RegisterIntent(it, func(in *Input) {
			got = append(got, in.Intent)
			last = in
		})
	}
	src.Send(mouse(events.MouseDown, 400, 300))
	src.Send(mouse(events.MouseMove, 402, 301))
	src.Send(mouse(events.MouseUp, 402, 301))
	assert.Equal(t, []Intents{Click}, got)
	require.NotNil(t, last)
	assert.Equal(t, events.Left, last.Button)
	assert.Equal(t, math32.Vec2(400, 300), last.Start)
	assert.Equal(t, math32.Vec2(0, 0), last.StartNDC)
}

func TestDrag(t *testing.T) {
	src, rt := newTestRouter()
	var got []Intents
	var deltas []math32.Vector2
	for it := Click; it < IntentsN; it++ {
		rt.RegisterIntent(it, func(in *Input) {
			got = append(got, in.Intent)
			if in.Intent == DragMove {
				deltas = append(deltas, in.Delta)
			}
		})
	}
	src.Send(mouse(events.MouseDown, 100, 100))
	src.Send(mouse(events.MouseMove, 103, 100))
	assert.Empty(t, got, "below threshold")
	src.Send(mouse(events.MouseMove, 110, 100))
	src.Send(mouse(events.MouseMove, 120, 100))
	src.Send(mouse(events.MouseUp, 120, 100))
	assert.Equal(t, []Intents{DragStart, DragMove, DragMove, DragEnd}, got)
	assert.Equal(t, []math32.Vector2{math32.Vec2(7, 0), math32.Vec2(10, 0)}, deltas)
	assert.False(t, rt.State.Down)
	assert.False(t, rt.State.Dragging)

	// moving without a button held is not a drag
	got = nil
	src.Send(mouse(events.MouseMove, 300, 300))
	assert.Empty(t, got)
}

func TestWheelAndContextMenu(t *testing.T) {
	src, rt := newTestRouter()
	var delta float32
	rt.RegisterIntent(Wheel, func(in *Input) { delta = in.WheelDelta })
	src.Send(events.NewWheel(math32.Vec2(10, 10), -120, 0))
	assert.Equal(t, float32(-120), delta)

	ev := mouse(events.ContextMenu, 10, 10)
	src.Send(ev)
	assert.True(t, ev.IsHandled())
}

func TestRegisterOnce(t *testing.T) {
	src, rt := newTestRouter()
	var which string
	assert.True(t, rt.Register("mousedown", func(in *Input) { which = "first" }))
	assert.False(t, rt.Register("mousedown", func(in *Input) { which = "second" }))
	assert.False(t, rt.Register("pointerdown", func(in *Input) {}))
	src.Send(mouse(events.MouseDown, 1, 1))
	assert.Equal(t, "first", which)

	assert.True(t, rt.RegisterIntent(Click, func(in *Input) {}))
	assert.False(t, rt.RegisterIntent(Click, func(in *Input) {}))
}

func TestKeysAndFocus(t *testing.T) {
	src, rt := newTestRouter()
	var downs, ups []key.Codes
	rt.Register("keydown", func(in *Input) { downs = append(downs, in.Code) })
	rt.Register("keyup", func(in *Input) { ups = append(ups, in.Code) })

	src.Send(events.NewKey(events.KeyDown, key.CodeControlLeft, key.Control, false))
	assert.True(t, rt.State.Mods.HasFlag(key.Control))
	assert.True(t, rt.State.IsPressed(key.CodeControlLeft))

	src.Editable = true
	src.Send(events.NewKey(events.KeyDown, key.CodeW, 0, false))
	assert.Equal(t, []key.Codes{key.CodeControlLeft}, downs, "suppressed while typing")
	assert.True(t, rt.State.IsPressed(key.CodeW), "state still tracked")
	src.Send(events.NewKey(events.KeyUp, key.CodeW, 0, false))
	assert.Equal(t, []key.Codes{key.CodeW}, ups, "keyup always delivered")

	src.Editable = false
	src.Send(events.NewKey(events.KeyUp, key.CodeControlLeft, 0, false))
	assert.False(t, rt.State.Mods.HasFlag(key.Control))

	src.Send(events.NewKey(events.KeyDown, key.CodeShiftLeft, key.Shift, false))
	src.Send(&events.Event{Type: events.Blur})
	assert.Empty(t, rt.State.Keys)
	assert.Equal(t, key.Modifiers(0), rt.State.Mods)
}

func TestHandlerPanic(t *testing.T) {
	src, rt := newTestRouter()
	clicks := 0
	rt.Register("mousedown", func(in *Input) { panic("boom") })
	rt.RegisterIntent(Click, func(in *Input) { clicks++ })
	assert.NotPanics(t, func() {
		src.Send(mouse(events.MouseDown, 5, 5))
		src.Send(mouse(events.MouseUp, 5, 5))
	})
	assert.Equal(t, 1, clicks)
}

func TestDispose(t *testing.T) {
	src, rt := newTestRouter()
	assert.Equal(t, int(events.TypesN-events.MouseDown), src.NumListeners())
	n := 0
	rt.RegisterIntent(Click, func(in *Input) { n++ })
	rt.Dispose()
	rt.Dispose()
	assert.True(t, rt.IsDisposed())
	assert.Equal(t, 0, src.NumListeners())
	src.Send(mouse(events.MouseDown, 5, 5))
	src.Send(mouse(events.MouseUp, 5, 5))
	assert.Equal(t, 0, n)
	assert.False(t, rt.Register("keydown", func(in *Input) {}))
}
