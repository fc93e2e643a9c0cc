// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"sync"
	"testing"

	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/math32"
	"github.com/stretchr/testify/assert"
)

func TestTypeNames(t *testing.T) {
	for typ := MouseDown; typ < TypesN; typ++ {
		got, ok := TypeFromString(typ.String())
		assert.True(t, ok, typ.String())
		assert.Equal(t, typ, got)
	}
	_, ok := TypeFromString("pointerdown")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Types(99).String())
}

func TestListenersOrderAndHandled(t *testing.T) {
	var ls Listeners
	var calls []string
	ls.Add(MouseDown, 1, func(ev *Event) { calls = append(calls, "first") })
	ls.Add(MouseDown, 2, func(ev *Event) {
		calls = append(calls, "second")
		ev.SetHandled()
	})
	ls.Call(NewMouse(MouseDown, Left, math32.Vec2(0, 0), 0))
	assert.Equal(t, []string{"second"}, calls)

	ls.Remove(MouseDown, 2)
	calls = nil
	ls.Call(NewMouse(MouseDown, Left, math32.Vec2(0, 0), 0))
	assert.Equal(t, []string{"first"}, calls)
}

func TestSourceSubscribe(t *testing.T) {
	s := NewSource(800, 600)
	n := 0
	cancel := s.Subscribe(KeyDown, func(ev *Event) { n++ })
	s.Send(NewKey(KeyDown, key.CodeW, 0, false))
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.NumListeners())
	cancel()
	s.Send(NewKey(KeyDown, key.CodeW, 0, false))
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, s.NumListeners())
}

func TestSourcePostFlush(t *testing.T) {
	s := NewSource(800, 600)
	var got []key.Codes
	s.Subscribe(KeyDown, func(ev *Event) { got = append(got, ev.Code) })

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Post(NewKey(KeyDown, key.CodeA, 0, false))
		}()
	}
	wg.Wait()
	s.Post(NewKey(KeyDown, key.CodeZ, 0, false))
	assert.Equal(t, 11, s.Flush())
	assert.Len(t, got, 11)
	assert.Equal(t, key.CodeZ, got[10])
	assert.Equal(t, 0, s.Flush())
}

func TestQueueCompress(t *testing.T) {
	s := NewSource(800, 600)
	var got []*Event
	s.Subscribe(MouseMove, func(ev *Event) { got = append(got, ev) })
	s.Subscribe(Wheel, func(ev *Event) { got = append(got, ev) })
	s.Subscribe(MouseDown, func(ev *Event) { got = append(got, ev) })

	s.Queue.Compress = true
	s.Post(NewMouse(MouseMove, NoButton, math32.Vec2(1, 1), 0))
	s.Post(NewMouse(MouseMove, NoButton, math32.Vec2(2, 2), 0))
	s.Post(NewMouse(MouseMove, NoButton, math32.Vec2(3, 3), key.Shift))
	s.Post(NewMouse(MouseDown, Left, math32.Vec2(3, 3), 0))
	s.Post(NewWheel(math32.Vec2(3, 3), 1, 0))
	s.Post(NewWheel(math32.Vec2(3, 3), 2, 0))
	assert.Equal(t, 4, s.Queue.Len())
	assert.Equal(t, 4, s.Flush())
	assert.Equal(t, math32.Vec2(2, 2), got[0].Pos)
	assert.Equal(t, key.Shift, got[1].Mods)
	assert.Equal(t, MouseDown, got[2].Type)
	assert.Equal(t, float32(3), got[3].WheelDelta)

	s.Queue.Compress = false
	s.Post(NewMouse(MouseMove, NoButton, math32.Vec2(1, 1), 0))
	s.Post(NewMouse(MouseMove, NoButton, math32.Vec2(2, 2), 0))
	assert.Equal(t, 2, s.Flush())
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	assert.True(t, r.Contains(math32.Vec2(10, 20)))
	assert.True(t, r.Contains(math32.Vec2(110, 70)))
	assert.False(t, r.Contains(math32.Vec2(9, 30)))
}
