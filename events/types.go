// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the canonical platform event model consumed by
// the editor input router, and an in-process event [Source] that
// stands in for the browser or window system.
package events

// Types determines the type of platform event. The
// [JavaScript Event](https://developer.mozilla.org/en-US/docs/Web/Events)
// names provide the basis for the canonical names returned by [Types.String].
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// MouseDown happens when a mouse button is pressed down. See Button for which.
	MouseDown

	// MouseMove is sent whenever the pointer moves, with or without
	// a button held.
	MouseMove

	// MouseUp happens when a mouse button is released.
	MouseUp

	// Wheel is a scroll wheel event, with the scroll amount in WheelDelta.
	Wheel

	// Resize is sent when the render surface changes size.
	Resize

	// ContextMenu is sent on a secondary click, before any menu would show.
	ContextMenu

	// KeyDown is sent when a key is pressed, and repeatedly
	// (with Repeat set) while it is held.
	KeyDown

	// KeyUp is sent when a key is released.
	KeyUp

	// Blur is sent when the render surface loses keyboard focus,
	// after which no KeyUp will arrive for keys still held.
	Blur

	TypesN
)

var typeNames = [...]string{
	UnknownType: "unknown",
	MouseDown:   "mousedown",
	MouseMove:   "mousemove",
	MouseUp:     "mouseup",
	Wheel:       "wheel",
	Resize:      "resize",
	ContextMenu: "contextmenu",
	KeyDown:     "keydown",
	KeyUp:       "keyup",
	Blur:        "blur",
}

// String returns the canonical (DOM) name of the event type.
func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return "unknown"
	}
	return typeNames[tp]
}

// TypeFromString returns the event type with the given canonical name.
func TypeFromString(name string) (Types, bool) {
	for i, n := range typeNames {
		if Types(i) != UnknownType && n == name {
			return Types(i), true
		}
	}
	return UnknownType, false
}

// IsMouse returns true for the pointer event types.
func (tp Types) IsMouse() bool {
	switch tp {
	case MouseDown, MouseMove, MouseUp, Wheel, ContextMenu:
		return true
	}
	return false
}

// IsKey returns true for keyboard event types.
func (tp Types) IsKey() bool {
	return tp == KeyDown || tp == KeyUp
}
