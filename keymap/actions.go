// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keymap

import (
	"fmt"
	"strings"
)

// Actions are the named editor actions that key bindings trigger.
type Actions int32

const (
	NoAction Actions = iota

	TranslateMode
	RotateMode
	ScaleMode
	ToggleSpace
	ToggleGridSnap

	RotateLeft
	RotateRight

	DeselectAll
	SelectAll

	DeleteSelection
	Duplicate
	Group
	Ungroup

	Focus
	ViewFront
	ViewSide
	ViewTop
	ViewBottom
	ResetView
	ToggleProjection

	Undo
	Redo
	Save

	ActionsN
)

var actionNames = [...]string{
	"NoAction",
	"TranslateMode", "RotateMode", "ScaleMode", "ToggleSpace", "ToggleGridSnap",
	"RotateLeft", "RotateRight",
	"DeselectAll", "SelectAll",
	"DeleteSelection", "Duplicate", "Group", "Ungroup",
	"Focus", "ViewFront", "ViewSide", "ViewTop", "ViewBottom", "ResetView", "ToggleProjection",
	"Undo", "Redo", "Save",
}

func (a Actions) String() string {
	if a < 0 || a >= ActionsN {
		return fmt.Sprintf("Actions(%d)", int32(a))
	}
	return actionNames[a]
}

// SetString sets the action from its name.
func (a *Actions) SetString(s string) error {
	for i, n := range actionNames {
		if strings.EqualFold(n, s) {
			*a = Actions(i)
			return nil
		}
	}
	return fmt.Errorf("keymap.Actions.SetString: %q is not a valid action", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (a Actions) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (a *Actions) UnmarshalText(text []byte) error {
	return a.SetString(string(text))
}

// Categories group bindings by the kind of action they trigger.
type Categories int32

const (
	TransformMode Categories = iota
	Rotation
	Selection
	Object
	Viewport
	System
	CategoriesN
)

var categoryNames = [...]string{"TransformMode", "Rotation", "Selection", "Object", "Viewport", "System"}

func (c Categories) String() string {
	if c < 0 || c >= CategoriesN {
		return fmt.Sprintf("Categories(%d)", int32(c))
	}
	return categoryNames[c]
}

// SetString sets the category from its name.
func (c *Categories) SetString(s string) error {
	for i, n := range categoryNames {
		if strings.EqualFold(n, s) {
			*c = Categories(i)
			return nil
		}
	}
	return fmt.Errorf("keymap.Categories.SetString: %q is not a valid category", s)
}

// MarshalText implements [encoding.TextMarshaler].
func (c Categories) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Categories) UnmarshalText(text []byte) error {
	return c.SetString(string(text))
}
