// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"fmt"
	"strings"
)

// Chord represents the key code and modifiers of a key press, as a
// string of the form "Control+Shift+KeyZ". It is used as the stored
// form of key bindings.
type Chord string

// NewChord returns the chord for the given code and modifiers.
func NewChord(code Codes, mods Modifiers) Chord {
	ms := mods.String()
	if ms == "" {
		return Chord(code)
	}
	return Chord(ms + "+" + string(code))
}

func (ch Chord) String() string {
	return string(ch)
}

// Decode decodes the chord into its code and modifiers.
func (ch Chord) Decode() (Codes, Modifiers, error) {
	cs := strings.TrimSpace(string(ch))
	if cs == "" {
		return CodeUnknown, 0, fmt.Errorf("key.Chord.Decode: empty chord")
	}
	parts := strings.Split(cs, "+")
	var mods Modifiers
	for _, p := range parts[:len(parts)-1] {
		m, ok := ModifierFromName(strings.TrimSpace(p))
		if !ok {
			return CodeUnknown, 0, fmt.Errorf("key.Chord.Decode: unknown modifier %q in chord %q", p, ch)
		}
		mods |= m
	}
	code := Codes(strings.TrimSpace(parts[len(parts)-1]))
	if code == CodeUnknown {
		return CodeUnknown, 0, fmt.Errorf("key.Chord.Decode: missing key code in chord %q", ch)
	}
	return code, mods, nil
}
