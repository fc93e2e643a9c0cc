// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "cogentcore.org/xyzedit/math32"

// Rect is the bounding rectangle of the render surface in client
// pixel coordinates, like a DOMRect.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

// Contains returns true if the client position is inside the rectangle.
func (r Rect) Contains(pos math32.Vector2) bool {
	return pos.X >= r.X && pos.X <= r.X+r.Width && pos.Y >= r.Y && pos.Y <= r.Y+r.Height
}

// Source is an in-process event platform: it holds listener
// registrations and dispatches events to them, either immediately
// with [Source.Send] or queued with [Source.Post] and drained by
// [Source.Flush]. It is used by the CLI replay and by tests, in
// place of a browser or window system.
type Source struct {
	// Rect is the render surface rectangle.
	Rect Rect

	// Editable is set while an editable text field has keyboard focus.
	Editable bool

	// Queue holds events posted with [Source.Post].
	Queue Queue

	listeners Listeners
	nextID    int
}

// NewSource returns a new source with a render surface of the given
// size at the client origin.
func NewSource(width, height float32) *Source {
	return &Source{Rect: Rect{Width: width, Height: height}}
}

// Subscribe registers fun for events of the given type and returns
// a function that removes it again.
func (s *Source) Subscribe(typ Types, fun func(*Event)) (cancel func()) {
	s.nextID++
	id := s.nextID
	s.listeners.Add(typ, id, fun)
	return func() {
		s.listeners.Remove(typ, id)
	}
}

// Bounds returns the render surface rectangle.
func (s *Source) Bounds() Rect {
	return s.Rect
}

// FocusedEditable returns whether an editable text field has focus.
func (s *Source) FocusedEditable() bool {
	return s.Editable
}

// NumListeners returns the total number of registered listeners.
func (s *Source) NumListeners() int {
	n := 0
	for typ := range s.listeners {
		n += s.listeners.Len(typ)
	}
	return n
}

// Send dispatches the event to its listeners immediately.
func (s *Source) Send(ev *Event) {
	s.listeners.Call(ev)
}

// Post queues the event for the next [Source.Flush]. It is safe to
// call from any goroutine.
func (s *Source) Post(ev *Event) {
	s.Queue.Send(ev)
}

// Flush dispatches all queued events in order and returns how many
// were dispatched.
func (s *Source) Flush() int {
	n := 0
	for ev := s.Queue.NextEvent(); ev != nil; ev = s.Queue.NextEvent() {
		s.Send(ev)
		n++
	}
	return n
}
