// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import "strings"

// Modifiers are used as bitflags representing a set of modifier keys.
type Modifiers int32

const (
	// Shift is the shift key
	Shift Modifiers = 1 << iota

	// Control is the control key
	Control

	// Alt is the alt (option) key
	Alt

	// Meta is the command key on macOS and the super/windows key elsewhere
	Meta
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{Control, "Control"},
	{Meta, "Meta"},
	{Alt, "Alt"},
	{Shift, "Shift"},
}

// HasFlag returns true if all of the given flags are set.
func (m Modifiers) HasFlag(flag Modifiers) bool {
	return m&flag == flag
}

// SetFlag sets the given flags on or off.
func (m *Modifiers) SetFlag(on bool, flag Modifiers) {
	if on {
		*m |= flag
	} else {
		*m &^= flag
	}
}

// HasCommand returns true if Control or Meta is set, the two keys
// that act as the command modifier across platforms.
func (m Modifiers) HasCommand() bool {
	return m&(Control|Meta) != 0
}

// String returns the set flags joined with "+" in a fixed order,
// for example "Control+Shift".
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.HasFlag(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

// ModifierFromName returns the modifier with the given name.
func ModifierFromName(name string) (Modifiers, bool) {
	for _, mn := range modifierNames {
		if strings.EqualFold(mn.name, name) {
			return mn.mod, true
		}
	}
	switch strings.ToLower(name) {
	case "ctrl":
		return Control, true
	case "cmd", "command":
		return Meta, true
	}
	return 0, false
}
