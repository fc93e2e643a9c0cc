// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package history brackets user gestures and coalesces the transform
// writes made during them, so that a gesture reaches the document store
// as one undo entry however many frames it spans.
package history

import (
	"context"
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/errors"
	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/docstore"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Change is the net transform change of one object over a gesture.
type Change struct {
	ID     string
	Before docstore.Transform
	After  docstore.Transform
}

// Entry is the change set of one closed gesture.
type Entry struct {
	Label   string
	Changes []Change

	// IDs are the objects added, removed or reparented by the gesture,
	// as noted with [Bridge.Touch].
	IDs []string
}

// IsEmpty returns whether the entry changed nothing.
func (e *Entry) IsEmpty() bool {
	return len(e.Changes) == 0 && len(e.IDs) == 0
}

// Bridge forwards gesture transforms to a [docstore.Store].
// Within a Begin / End bracket, writes are coalesced per object id and
// flushed to the store at most once per frame; End flushes what is left
// and closes the store batch.
type Bridge struct {
	Store docstore.Store

	// Scheduler defers flushes to the next frame. If nil, every
	// Record is written through immediately.
	Scheduler Scheduler

	// OnEntry, if set, is called with each non-empty closed entry.
	OnEntry func(e *Entry)

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	depth   int
	label   string
	order   []string
	before  map[string]docstore.Transform
	after   map[string]docstore.Transform
	touched []string

	pending map[string]docstore.Transform
	queued  bool

	metrics counters
}

// New returns a bridge writing to store and flushing on sched.
func New(store docstore.Store, sched Scheduler) *Bridge {
	b := &Bridge{Store: store, Scheduler: sched}
	b.metrics = errors.Log1(newCounters())
	return b
}

func (b *Bridge) logger() *slog.Logger {
	return logx.Or(b.Logger)
}

// Begin opens a gesture bracket. Nested calls only count depth; the
// label of the outermost call is kept.
func (b *Bridge) Begin(label string) {
	b.depth++
	if b.depth > 1 {
		return
	}
	b.label = label
	b.order = nil
	b.before = map[string]docstore.Transform{}
	b.after = map[string]docstore.Transform{}
	b.touched = nil
	b.pending = map[string]docstore.Transform{}
	b.Store.BeginBatch()
}

// Touch notes objects that the open gesture changes other than through
// [Bridge.Record], such as added, removed or reparented objects.
// Outside a bracket it does nothing.
func (b *Bridge) Touch(ids ...string) {
	if b.depth == 0 {
		b.logger().Warn("history.Bridge.Touch: no open bracket", "ids", ids)
		return
	}
	for _, id := range ids {
		if !slices.Contains(b.touched, id) {
			b.touched = append(b.touched, id)
		}
	}
}

// IsOpen returns whether a bracket is open.
func (b *Bridge) IsOpen() bool {
	return b.depth > 0
}

// Record notes that object id went from before to after. The first
// before and the last after seen within a bracket are kept. Outside a
// bracket the change is recorded as its own gesture.
func (b *Bridge) Record(id string, before, after docstore.Transform) {
	if b.depth == 0 {
		b.Begin("transform")
		b.Record(id, before, after)
		b.End()
		return
	}
	if _, has := b.before[id]; !has {
		b.before[id] = before
		b.order = append(b.order, id)
	}
	b.after[id] = after
	b.pending[id] = after
	if b.Scheduler == nil {
		b.Flush()
		return
	}
	if !b.queued {
		b.queued = true
		b.Scheduler.NextFrame(b.flushFrame)
	}
}

func (b *Bridge) flushFrame() {
	b.queued = false
	b.Flush()
}

// Flush writes the pending coalesced transforms to the store.
func (b *Bridge) Flush() {
	if len(b.pending) == 0 {
		return
	}
	for _, id := range b.order {
		tr, ok := b.pending[id]
		if !ok {
			continue
		}
		if err := b.Store.UpdateObjectTransform(id, tr); err != nil {
			b.logger().Error("history.Bridge.Flush: update failed", "id", id, "err", err)
		}
	}
	clear(b.pending)
	b.metrics.flushes.Add(context.Background(), 1)
}

// End closes a bracket. Closing the outermost bracket flushes pending
// writes, closes the store batch and returns the entry of the objects
// whose transform changed and of the touched objects; it returns nil
// for nested closes and for gestures that changed nothing.
func (b *Bridge) End() *Entry {
	if b.depth == 0 {
		b.logger().Warn("history.Bridge.End: no open bracket")
		return nil
	}
	b.depth--
	if b.depth > 0 {
		return nil
	}
	b.Flush()
	b.Store.EndBatch()
	e := &Entry{Label: b.label}
	for _, id := range b.order {
		bf, af := b.before[id], b.after[id]
		if bf == af {
			continue
		}
		e.Changes = append(e.Changes, Change{ID: id, Before: bf, After: af})
	}
	e.IDs = b.touched
	b.order, b.touched = nil, nil
	b.before, b.after, b.pending = nil, nil, nil
	if e.IsEmpty() {
		return nil
	}
	b.metrics.entries.Add(context.Background(), 1, metric.WithAttributes(attribute.String("label", e.Label)))
	if b.OnEntry != nil {
		b.OnEntry(e)
	}
	return e
}
