// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keymap

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/xyzedit/events/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counting(t *Table, actions ...Actions) map[Actions]int {
	counts := map[Actions]int{}
	for _, a := range actions {
		t.Handle(a, func() { counts[a]++ })
	}
	return counts
}

func TestUndoSingleFireUnderRepeat(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, Undo, Redo)

	_, fired := tb.KeyDown(key.CodeZ, key.Control, false)
	assert.True(t, fired)
	for range 5 {
		a, fired := tb.KeyDown(key.CodeZ, key.Control, true)
		assert.Equal(t, Undo, a)
		assert.False(t, fired)
	}
	assert.Equal(t, 1, counts[Undo])

	tb.KeyUp(key.CodeZ)
	tb.KeyDown(key.CodeZ, key.Control, false)
	assert.Equal(t, 2, counts[Undo])
}

func TestLockHeldWithoutRepeatFlag(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, Undo)

	tb.KeyDown(key.CodeZ, key.Control, false)
	// control released and pressed again while Z stays down
	tb.KeyUp(key.CodeControlLeft)
	tb.KeyDown(key.CodeControlLeft, key.Control, false)
	tb.KeyDown(key.CodeZ, key.Control, false)
	assert.Equal(t, 1, counts[Undo])
}

func TestShiftedVariantIsDistinct(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, Undo, Redo, Group, Ungroup)

	tb.KeyDown(key.CodeZ, key.Control|key.Shift, false)
	assert.Equal(t, 1, counts[Redo])
	assert.Equal(t, 0, counts[Undo])
	tb.KeyUp(key.CodeZ)

	tb.KeyDown(key.CodeG, key.Meta|key.Shift, false)
	tb.KeyUp(key.CodeG)
	tb.KeyDown(key.CodeG, key.Meta, false)
	assert.Equal(t, 1, counts[Ungroup])
	assert.Equal(t, 1, counts[Group])
}

func TestCtrlYGuarded(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, Redo)
	for i := range 5 {
		tb.KeyDown(key.CodeY, key.Control, i > 0)
	}
	assert.Equal(t, 1, counts[Redo])
}

func TestModifierTablesAreSeparate(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, SelectAll, DeselectAll, Duplicate)

	// plain A has no binding; Control+A is select all
	a, fired := tb.KeyDown(key.CodeA, 0, false)
	assert.Equal(t, NoAction, a)
	assert.False(t, fired)

	// Control+Escape does not fall through to the plain binding
	_, fired = tb.KeyDown(key.CodeEscape, key.Control, false)
	assert.False(t, fired)
	assert.Equal(t, 0, counts[DeselectAll])

	// plain D does not trigger duplicate
	_, fired = tb.KeyDown(key.CodeD, 0, false)
	assert.False(t, fired)

	// shift on plain keys is ignored
	a, fired = tb.KeyDown(key.CodeW, key.Shift, false)
	assert.Equal(t, TranslateMode, a)
	assert.True(t, fired)

	_, fired = tb.KeyDown(key.CodeControlLeft, key.Control, false)
	assert.False(t, fired)
}

func TestPlainBindingsRepeat(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, RotateLeft)
	tb.KeyDown(key.CodeBracketLeft, 0, false)
	tb.KeyDown(key.CodeBracketLeft, 0, true)
	tb.KeyDown(key.CodeBracketLeft, 0, true)
	assert.Equal(t, 3, counts[RotateLeft])
}

func TestRegisterUnregisterConflicts(t *testing.T) {
	tb := NewDefault()
	assert.Empty(t, tb.Conflicts())

	tb.Register(Binding{Code: key.CodeF, Action: Duplicate, Category: Object})
	cfs := tb.Conflicts()
	require.Len(t, cfs, 1)
	assert.Equal(t, key.Chord("KeyF"), cfs[0].Chord)
	assert.Equal(t, []Categories{Object, Viewport}, cfs[0].Categories)

	// lookups resolve to the first category
	b, ok := tb.Lookup(key.CodeF, 0)
	require.True(t, ok)
	assert.Equal(t, Duplicate, b.Action)

	assert.True(t, tb.Unregister(key.CodeF, false, false))
	_, ok = tb.Lookup(key.CodeF, 0)
	assert.False(t, ok)
	assert.False(t, tb.Unregister(key.CodeF, false, false))

	// replacing within a category keeps one entry
	n := len(tb.Bindings())
	tb.Register(Binding{Code: key.CodeW, Action: ScaleMode, Category: TransformMode})
	assert.Len(t, tb.Bindings(), n)
	b, _ = tb.Lookup(key.CodeW, 0)
	assert.Equal(t, ScaleMode, b.Action)
}

func TestReleaseAll(t *testing.T) {
	tb := NewDefault()
	counts := counting(tb, Save)
	tb.KeyDown(key.CodeS, key.Control, false)
	tb.ReleaseAll()
	tb.KeyDown(key.CodeS, key.Control, false)
	assert.Equal(t, 2, counts[Save])
}

func TestPresetRoundTrip(t *testing.T) {
	tb := NewDefault()
	p := tb.Preset("default")

	var buf bytes.Buffer
	require.NoError(t, WritePreset(&buf, p))
	assert.Contains(t, buf.String(), "chord: Control+Shift+KeyZ")
	assert.Contains(t, buf.String(), "action: Redo")

	rp, err := ReadPreset(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, rp)

	other := New()
	require.NoError(t, other.ApplyPreset(rp))
	assert.Equal(t, tb.Bindings(), other.Bindings())
}

func TestPresetFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "keys.yaml")
	p := Preset{Name: "mini", Items: []PresetItem{
		{Chord: "Meta+KeyZ", Action: Undo, Category: System, SingleFire: true},
		{Chord: "KeyT", Action: TranslateMode, Category: TransformMode},
	}}
	require.NoError(t, SavePreset(p, fn))
	rp, err := OpenPreset(fn)
	require.NoError(t, err)

	tb := New()
	require.NoError(t, tb.ApplyPreset(rp))
	counts := counting(tb, Undo)
	tb.KeyDown(key.CodeZ, key.Control, false)
	assert.Equal(t, 1, counts[Undo], "Meta and Control are both the command modifier")
	_, ok := tb.Lookup(key.CodeW, 0)
	assert.False(t, ok)
}

func TestPresetErrors(t *testing.T) {
	_, err := ReadPreset(strings.NewReader("name: x\nitems:\n  - chord: KeyA\n    action: Fly\n"))
	assert.Error(t, err)

	tb := NewDefault()
	n := len(tb.Bindings())
	err = tb.ApplyPreset(Preset{Name: "bad", Items: []PresetItem{{Chord: "Hyper+KeyA", Action: Undo}}})
	assert.Error(t, err)
	assert.Len(t, tb.Bindings(), n)
}

func TestMarkdownDoc(t *testing.T) {
	km := NewDefault()
	md := km.MarkdownDoc()
	undo := Binding{Code: key.CodeZ, Modifier: true}
	assert.Contains(t, md, "### By action")
	assert.Contains(t, md, "| `"+string(undo.Chord())+"` | Undo | yes |")
	assert.Contains(t, md, "### Viewport")
	assert.NotContains(t, md, "### Conflicts")

	km.Register(Binding{Code: key.CodeF, Action: Duplicate, Category: Object})
	assert.Contains(t, km.MarkdownDoc(), "### Conflicts")
}
