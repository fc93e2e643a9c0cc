// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "sync"

// Queue is a FIFO of posted events drained on the editor thread.
// Producers may Send from any goroutine.
//
// When Compress is set, a MouseMove sent directly after another
// MouseMove with the same modifiers replaces it, and consecutive Wheel
// events at the same position are summed, so that a slow consumer
// does not lag behind the pointer.
type Queue struct {
	// Compress enables mouse move and wheel compression.
	Compress bool

	mu     sync.Mutex
	events []*Event
	head   int
}

// Send adds an event to the end of the queue.
func (q *Queue) Send(ev *Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Compress && q.head < len(q.events) {
		last := q.events[len(q.events)-1]
		if compressInto(last, ev) {
			return
		}
	}
	q.events = append(q.events, ev)
}

// compressInto merges ev into last when they can be combined.
func compressInto(last, ev *Event) bool {
	if last.Type != ev.Type || last.Mods != ev.Mods {
		return false
	}
	switch ev.Type {
	case MouseMove:
		last.Pos = ev.Pos
		return true
	case Wheel:
		if last.Pos != ev.Pos {
			return false
		}
		last.WheelDelta += ev.WheelDelta
		return true
	}
	return false
}

// NextEvent removes and returns the next event in the queue.
// It returns nil if the queue is empty.
func (q *Queue) NextEvent() *Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head >= len(q.events) {
		q.events = q.events[:0]
		q.head = 0
		return nil
	}
	ev := q.events[q.head]
	q.events[q.head] = nil
	q.head++
	return ev
}

// Len returns the length of the queue.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events) - q.head
}
