// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"

	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/math32"
)

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

// ButtonFromDOM converts a DOM MouseEvent.button number
// (0 main, 1 auxiliary, 2 secondary) to [Buttons].
func ButtonFromDOM(b int) Buttons {
	switch b {
	case 0:
		return Left
	case 1:
		return Middle
	case 2:
		return Right
	}
	return NoButton
}

func (b Buttons) String() string {
	switch b {
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	}
	return "NoButton"
}

// Event is one raw platform event. Only the fields relevant to its
// Type are set. Pos is in pixels relative to the page (client
// coordinates), not the render surface.
type Event struct {
	Type Types

	// Pos is the client pixel position for mouse events.
	Pos math32.Vector2

	// Button is the button that changed for MouseDown / MouseUp.
	Button Buttons

	// Mods are the modifiers reported with the event.
	Mods key.Modifiers

	// Code is the physical key for key events.
	Code key.Codes

	// Repeat is set on KeyDown events generated by OS auto-repeat.
	Repeat bool

	// WheelDelta is the vertical scroll amount; negative scrolls up.
	WheelDelta float32

	handled bool
}

// NewMouse returns a new mouse event.
func NewMouse(typ Types, but Buttons, pos math32.Vector2, mods key.Modifiers) *Event {
	return &Event{Type: typ, Button: but, Pos: pos, Mods: mods}
}

// NewKey returns a new key event.
func NewKey(typ Types, code key.Codes, mods key.Modifiers, repeat bool) *Event {
	return &Event{Type: typ, Code: code, Mods: mods, Repeat: repeat}
}

// NewWheel returns a new wheel event.
func NewWheel(pos math32.Vector2, delta float32, mods key.Modifiers) *Event {
	return &Event{Type: Wheel, Pos: pos, WheelDelta: delta, Mods: mods}
}

// SetHandled marks the event as handled, stopping further listeners.
func (ev *Event) SetHandled() {
	ev.handled = true
}

// IsHandled returns whether the event has been handled.
func (ev *Event) IsHandled() bool {
	return ev.handled
}

func (ev *Event) String() string {
	switch {
	case ev.Type.IsKey():
		return fmt.Sprintf("%v{Code: %v, Mods: %v, Repeat: %v}", ev.Type, ev.Code, ev.Mods, ev.Repeat)
	case ev.Type == Wheel:
		return fmt.Sprintf("%v{Pos: %v, Delta: %g}", ev.Type, ev.Pos, ev.WheelDelta)
	case ev.Type.IsMouse():
		return fmt.Sprintf("%v{Button: %v, Pos: %v, Mods: %v}", ev.Type, ev.Button, ev.Pos, ev.Mods)
	}
	return ev.Type.String()
}
