// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func RunChordDecode(t *testing.T, ch Chord) {
	t.Helper()
	code, mods, err := ch.Decode()
	require.NoError(t, err)
	assert.Equal(t, ch, NewChord(code, mods))
}

func TestChordDecode(t *testing.T) {
	RunChordDecode(t, "KeyW")
	RunChordDecode(t, "Control+KeyA")
	RunChordDecode(t, "Control+Shift+KeyZ")
	RunChordDecode(t, "Meta+KeyY")
	RunChordDecode(t, "Numpad5")
	RunChordDecode(t, "Escape")
}

func TestChordDecodeAliases(t *testing.T) {
	code, mods, err := Chord("ctrl+shift+KeyG").Decode()
	require.NoError(t, err)
	assert.Equal(t, CodeG, code)
	assert.True(t, mods.HasFlag(Control|Shift))
	assert.False(t, mods.HasFlag(Meta))
}

func TestChordDecodeErrors(t *testing.T) {
	_, _, err := Chord("").Decode()
	assert.Error(t, err)
	_, _, err = Chord("Hyper+KeyA").Decode()
	assert.Error(t, err)
	_, _, err = Chord("Control+").Decode()
	assert.Error(t, err)
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	m.SetFlag(true, Shift)
	m.SetFlag(true, Meta)
	assert.True(t, m.HasCommand())
	assert.Equal(t, "Meta+Shift", m.String())
	m.SetFlag(false, Meta)
	assert.False(t, m.HasCommand())

	mod, ok := CodeControlRight.IsModifier()
	assert.True(t, ok)
	assert.Equal(t, Control, mod)
	_, ok = CodeZ.IsModifier()
	assert.False(t, ok)
}
