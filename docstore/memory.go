// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package docstore

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/xyzedit/base/errors"
	"cogentcore.org/xyzedit/base/logx"
	"github.com/jinzhu/copier"
)

// DefaultMaxDepth is the default number of undo records kept.
var DefaultMaxDepth = 200

// Rec is one undo record, associated with one action that changed the
// document from Before to After. Only objects and walls are recorded;
// settings and selection are not part of the history.
type Rec struct {
	// Action describes the change, for the user to see.
	Action string

	// IDs are the objects touched by the change, in first-touch order.
	IDs []string

	Before *State
	After  *State
}

// Memory is an in-memory [Store]. It is safe for concurrent use.
type Memory struct {
	// MaxDepth is the maximum number of undo records; 0 means unlimited.
	MaxDepth int

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	// Idx is the index of the record that will be undone next, -1 if none.
	Idx int

	// Recs are the saved records, oldest first.
	Recs []*Rec

	mu    sync.Mutex
	state *State
	gen   uint64

	batch       int
	batchBefore *State
	batchIDs    []string
	batchAction string
}

// NewMemory returns a store holding a copy of st, or an empty document if st is nil.
func NewMemory(st *State) *Memory {
	m := &Memory{MaxDepth: DefaultMaxDepth, Idx: -1}
	if st == nil {
		m.state = NewState()
	} else {
		m.state = clone(st)
	}
	return m
}

func (m *Memory) logger() *slog.Logger {
	return logx.Or(m.Logger)
}

// clone returns a deep copy of the state.
func clone(st *State) *State {
	cp := &State{}
	errors.Log(copier.CopyWithOption(cp, st, copier.Option{DeepCopy: true}))
	return cp
}

// cloneDoc returns a deep copy of only the objects and walls.
func cloneDoc(st *State) *State {
	return clone(&State{Objects: st.Objects, Walls: st.Walls})
}

// mutate applies fun to the state and records it as one undo step,
// or folds it into the open batch.
func (m *Memory) mutate(action, id string, fun func(st *State) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var before *State
	if m.batch == 0 {
		before = cloneDoc(m.state)
	}
	if err := fun(m.state); err != nil {
		return err
	}
	m.gen++
	if m.batch > 0 {
		if !slices.Contains(m.batchIDs, id) {
			m.batchIDs = append(m.batchIDs, id)
		}
		switch m.batchAction {
		case "", action:
			m.batchAction = action
		default:
			m.batchAction = "batch"
		}
		return nil
	}
	m.save(&Rec{Action: action, IDs: []string{id}, Before: before, After: cloneDoc(m.state)})
	return nil
}

// save adds a new record as the next one to be undone, discarding any
// redo records beyond the current index. Must be called under lock.
func (m *Memory) save(r *Rec) {
	m.Recs = append(m.Recs[:m.Idx+1], r)
	m.Idx = len(m.Recs) - 1
	if m.MaxDepth > 0 && len(m.Recs) > m.MaxDepth {
		n := len(m.Recs) - m.MaxDepth
		m.Recs = slices.Delete(m.Recs, 0, n)
		m.Idx -= n
	}
}

func (m *Memory) AddObject(ob *Object) error {
	if ob == nil || ob.ID == "" {
		return errors.New("docstore.Memory.AddObject: object has no id")
	}
	return m.mutate("add", ob.ID, func(st *State) error {
		if st.Object(ob.ID) != nil {
			return fmt.Errorf("docstore.Memory.AddObject %q: %w", ob.ID, ErrDuplicateID)
		}
		if ob.ParentID != "" && st.Object(ob.ParentID) == nil {
			return fmt.Errorf("docstore.Memory.AddObject %q parent %q: %w", ob.ID, ob.ParentID, ErrNotFound)
		}
		cp := &Object{}
		if err := copier.CopyWithOption(cp, ob, copier.Option{DeepCopy: true}); err != nil {
			return err
		}
		cp.Transform.Defaults()
		if cp.IsWall() {
			st.Walls = append(st.Walls, cp)
		} else {
			st.Objects = append(st.Objects, cp)
		}
		return nil
	})
}

// RemoveObjectByID removes the object and all of its descendants.
func (m *Memory) RemoveObjectByID(id string) error {
	return m.mutate("remove", id, func(st *State) error {
		if st.Object(id) == nil {
			return fmt.Errorf("docstore.Memory.RemoveObjectByID %q: %w", id, ErrNotFound)
		}
		st.remove(append([]string{id}, st.Descendants(id)...)...)
		return nil
	})
}

func (m *Memory) SetParent(id, parentID string) error {
	return m.mutate("reparent", id, func(st *State) error {
		ob := st.Object(id)
		if ob == nil {
			return fmt.Errorf("docstore.Memory.SetParent %q: %w", id, ErrNotFound)
		}
		if parentID != "" {
			if st.Object(parentID) == nil {
				return fmt.Errorf("docstore.Memory.SetParent %q parent %q: %w", id, parentID, ErrNotFound)
			}
			if st.IsAncestor(id, parentID) {
				return fmt.Errorf("docstore.Memory.SetParent %q under %q: %w", id, parentID, ErrCycle)
			}
		}
		ob.ParentID = parentID
		return nil
	})
}

func (m *Memory) UpdateObjectTransform(id string, tr Transform) error {
	return m.mutate("transform", id, func(st *State) error {
		ob := st.Object(id)
		if ob == nil {
			return fmt.Errorf("docstore.Memory.UpdateObjectTransform %q: %w", id, ErrNotFound)
		}
		tr.Defaults()
		ob.Transform = tr
		return nil
	})
}

func (m *Memory) SetSelectedObject(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedID = id
	m.gen++
}

func (m *Memory) SetSelectedIDs(ids []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.SelectedIDs = slices.Clone(ids)
	m.gen++
}

func (m *Memory) UpdateSettings(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Settings = s
	m.gen++
}

// BeginBatch opens a batch. Nested calls only count depth.
func (m *Memory) BeginBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batch == 0 {
		m.batchBefore = cloneDoc(m.state)
		m.batchIDs = nil
		m.batchAction = ""
	}
	m.batch++
}

// EndBatch closes a batch. Closing the outermost batch records one undo
// entry covering the objects that differ from before the batch, if any.
func (m *Memory) EndBatch() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batch == 0 {
		m.logger().Warn("docstore.Memory.EndBatch: no open batch")
		return
	}
	m.batch--
	if m.batch > 0 {
		return
	}
	before := m.batchBefore
	ids := slices.DeleteFunc(m.batchIDs, func(id string) bool {
		return before.Object(id).IsEqual(m.state.Object(id))
	})
	m.batchBefore = nil
	m.batchIDs = nil
	if len(ids) == 0 {
		return
	}
	m.save(&Rec{Action: m.batchAction, IDs: ids, Before: before, After: cloneDoc(m.state)})
}

// InBatch returns whether a batch is open.
func (m *Memory) InBatch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.batch > 0
}

// restore replaces the objects and walls with a copy of doc,
// pruning the selection of ids that no longer exist.
func (m *Memory) restore(doc *State) {
	cp := cloneDoc(doc)
	m.state.Objects = cp.Objects
	m.state.Walls = cp.Walls
	m.state.SelectedIDs = slices.DeleteFunc(m.state.SelectedIDs, func(id string) bool { return m.state.Object(id) == nil })
	if m.state.Object(m.state.SelectedID) == nil {
		m.state.SelectedID = ""
	}
	m.gen++
}

func (m *Memory) Undo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batch > 0 {
		m.logger().Warn("docstore.Memory.Undo: batch is open")
		return false
	}
	if m.Idx < 0 {
		return false
	}
	m.restore(m.Recs[m.Idx].Before)
	m.Idx--
	return true
}

func (m *Memory) Redo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.batch > 0 {
		m.logger().Warn("docstore.Memory.Redo: batch is open")
		return false
	}
	if m.Idx >= len(m.Recs)-1 {
		return false
	}
	m.Idx++
	m.restore(m.Recs[m.Idx].After)
	return true
}

// IsUndoAvail returns true if there is at least one undo record available.
func (m *Memory) IsUndoAvail() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Idx >= 0
}

// IsRedoAvail returns true if there is at least one redo record available.
func (m *Memory) IsRedoAvail() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Idx < len(m.Recs)-1
}

func (m *Memory) State() *State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clone(m.state)
}

func (m *Memory) Generation() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Records returns a copy of the record list and the current index.
func (m *Memory) Records() ([]*Rec, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Recs), m.Idx
}
