// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package keymap maps key codes and modifier combinations to named
// editor actions, organized in categories, with single-fire semantics
// for commands that must run once per physical key press.
package keymap

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/events/key"
)

// Binding binds one key combination to an action.
type Binding struct {

	// Code is the physical key.
	Code key.Codes

	// Modifier requires Control or Meta to be held.
	Modifier bool

	// Shift requires Shift to be held. It only distinguishes
	// modifier bindings; plain bindings ignore Shift.
	Shift bool

	Action Actions

	Category Categories

	// SingleFire bindings fire at most once per physical press:
	// auto-repeat is ignored and the combination stays locked until
	// the triggering key is released.
	SingleFire bool
}

// combo identifies the key combination of a binding.
type combo struct {
	code     key.Codes
	modifier bool
	shift    bool
}

func (b Binding) combo() combo {
	return combo{code: b.Code, modifier: b.Modifier, shift: b.Modifier && b.Shift}
}

// Chord returns the binding's combination as a chord, using Control
// for the command modifier.
func (b Binding) Chord() key.Chord {
	var mods key.Modifiers
	if b.Modifier {
		mods |= key.Control
		if b.Shift {
			mods |= key.Shift
		}
	}
	return key.NewChord(b.Code, mods)
}

func (b Binding) String() string {
	return fmt.Sprintf("%v: %v (%v)", b.Chord(), b.Action, b.Category)
}

// Conflict reports one key combination bound in more than one category.
type Conflict struct {
	Chord      key.Chord
	Categories []Categories
}

// Table holds the bindings of each category, the action handlers,
// and the single-fire locks of combinations currently held down.
type Table struct {
	cats     [CategoriesN][]Binding
	handlers map[Actions]func()

	// locks maps each locked combination to the key that releases it.
	locks map[combo]key.Codes

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger
}

// New returns an empty table.
func New() *Table {
	return &Table{handlers: map[Actions]func(){}, locks: map[combo]key.Codes{}}
}

// NewDefault returns a table with the [Defaults] bindings.
func NewDefault() *Table {
	t := New()
	for _, b := range Defaults() {
		t.Register(b)
	}
	return t
}

func (t *Table) logger() *slog.Logger {
	return logx.Or(t.Logger)
}

// Register adds a binding to its category. A binding for the same
// combination already in that category is replaced; other categories
// are left alone.
func (t *Table) Register(b Binding) {
	if b.Category < 0 || b.Category >= CategoriesN {
		t.logger().Error("keymap.Table.Register: invalid category", "binding", b.Chord(), "category", int32(b.Category))
		return
	}
	cat := t.cats[b.Category]
	for i, ob := range cat {
		if ob.combo() == b.combo() {
			t.logger().Debug("keymap.Table.Register: replacing binding", "chord", b.Chord(), "old", ob.Action, "new", b.Action)
			cat[i] = b
			return
		}
	}
	t.cats[b.Category] = append(cat, b)
}

// Unregister removes the binding for the combination from whichever
// categories hold it, and returns whether any was removed.
func (t *Table) Unregister(code key.Codes, modifier, shift bool) bool {
	c := Binding{Code: code, Modifier: modifier, Shift: shift}.combo()
	removed := false
	for ci := range t.cats {
		n := len(t.cats[ci])
		t.cats[ci] = slices.DeleteFunc(t.cats[ci], func(b Binding) bool {
			return b.combo() == c
		})
		removed = removed || len(t.cats[ci]) != n
	}
	delete(t.locks, c)
	return removed
}

// Handle sets the function called when the action fires.
func (t *Table) Handle(a Actions, fun func()) {
	t.handlers[a] = fun
}

// Bindings returns all bindings, ordered by category and then by
// registration.
func (t *Table) Bindings() []Binding {
	var bs []Binding
	for _, cat := range t.cats {
		bs = append(bs, cat...)
	}
	return bs
}

// find returns the first binding, in category order, for the combination.
func (t *Table) find(c combo) (Binding, bool) {
	for _, cat := range t.cats {
		for _, b := range cat {
			if b.combo() == c {
				return b, true
			}
		}
	}
	return Binding{}, false
}

// Lookup returns the binding that a key press with the given modifiers
// resolves to. With Control or Meta held only modifier bindings are
// considered, preferring the shifted variant when Shift is held;
// without them only plain bindings are considered.
func (t *Table) Lookup(code key.Codes, mods key.Modifiers) (Binding, bool) {
	if _, ok := code.IsModifier(); ok {
		return Binding{}, false
	}
	if !mods.HasCommand() {
		return t.find(combo{code: code})
	}
	if mods.HasFlag(key.Shift) {
		if b, ok := t.find(combo{code: code, modifier: true, shift: true}); ok {
			return b, true
		}
	}
	return t.find(combo{code: code, modifier: true})
}

// KeyDown resolves a key press and calls the handler of the bound action.
// It returns the action and whether it fired. Single-fire bindings are
// suppressed for auto-repeat events and while their lock is held.
func (t *Table) KeyDown(code key.Codes, mods key.Modifiers, repeat bool) (Actions, bool) {
	b, ok := t.Lookup(code, mods)
	if !ok {
		return NoAction, false
	}
	if b.SingleFire {
		c := b.combo()
		if _, locked := t.locks[c]; locked || repeat {
			return b.Action, false
		}
		t.locks[c] = code
	}
	if fun := t.handlers[b.Action]; fun != nil {
		fun()
	}
	return b.Action, true
}

// KeyUp releases the single-fire locks triggered by the key.
func (t *Table) KeyUp(code key.Codes) {
	for c, trig := range t.locks {
		if trig == code {
			delete(t.locks, c)
		}
	}
}

// ReleaseAll releases all single-fire locks, for when key up events
// will not arrive (focus loss).
func (t *Table) ReleaseAll() {
	clear(t.locks)
}

// Conflicts reports every combination bound in more than one category.
// It is advisory; lookups still resolve to the first category.
func (t *Table) Conflicts() []Conflict {
	var order []combo
	cats := map[combo][]Categories{}
	chords := map[combo]key.Chord{}
	for ci, cat := range t.cats {
		for _, b := range cat {
			c := b.combo()
			if _, ok := cats[c]; !ok {
				order = append(order, c)
				chords[c] = b.Chord()
			}
			cats[c] = append(cats[c], Categories(ci))
		}
	}
	var cfs []Conflict
	for _, c := range order {
		if len(cats[c]) > 1 {
			cfs = append(cfs, Conflict{Chord: chords[c], Categories: cats[c]})
		}
	}
	return cfs
}

// Defaults returns the default bindings.
func Defaults() []Binding {
	return []Binding{
		{Code: key.CodeW, Action: TranslateMode, Category: TransformMode},
		{Code: key.CodeE, Action: RotateMode, Category: TransformMode},
		{Code: key.CodeR, Action: ScaleMode, Category: TransformMode},
		{Code: key.CodeQ, Action: ToggleSpace, Category: TransformMode},
		{Code: key.CodeX, Action: ToggleGridSnap, Category: TransformMode},

		{Code: key.CodeBracketLeft, Action: RotateLeft, Category: Rotation},
		{Code: key.CodeBracketRight, Action: RotateRight, Category: Rotation},

		{Code: key.CodeEscape, Action: DeselectAll, Category: Selection},
		{Code: key.CodeA, Modifier: true, Action: SelectAll, Category: Selection, SingleFire: true},

		{Code: key.CodeDelete, Action: DeleteSelection, Category: Object},
		{Code: key.CodeBackspace, Action: DeleteSelection, Category: Object},
		{Code: key.CodeD, Modifier: true, Action: Duplicate, Category: Object, SingleFire: true},
		{Code: key.CodeG, Modifier: true, Action: Group, Category: Object, SingleFire: true},
		{Code: key.CodeG, Modifier: true, Shift: true, Action: Ungroup, Category: Object, SingleFire: true},

		{Code: key.CodeF, Action: Focus, Category: Viewport},
		{Code: key.CodeNumpad1, Action: ViewFront, Category: Viewport},
		{Code: key.CodeNumpad3, Action: ViewSide, Category: Viewport},
		{Code: key.CodeNumpad7, Action: ViewTop, Category: Viewport},
		{Code: key.CodeNumpad7, Modifier: true, Action: ViewBottom, Category: Viewport},
		{Code: key.CodeNumpad0, Action: ResetView, Category: Viewport},
		{Code: key.CodeNumpad5, Action: ToggleProjection, Category: Viewport},

		{Code: key.CodeZ, Modifier: true, Action: Undo, Category: System, SingleFire: true},
		{Code: key.CodeZ, Modifier: true, Shift: true, Action: Redo, Category: System, SingleFire: true},
		{Code: key.CodeY, Modifier: true, Action: Redo, Category: System, SingleFire: true},
		{Code: key.CodeS, Modifier: true, Action: Save, Category: System, SingleFire: true},
	}
}
