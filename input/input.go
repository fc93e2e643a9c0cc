// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import (
	"fmt"

	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/math32"
)

// Intents are the semantic pointer gestures recognized by the [Router].
type Intents int32

const (
	// Click is a button press and release without crossing the drag threshold.
	Click Intents = iota

	// DragStart is sent once, when the pointer first moves past the
	// drag threshold with a button held. Start holds the press position.
	DragStart

	// DragMove is sent for every pointer move while dragging,
	// including the one that started the drag.
	DragMove

	// DragEnd is sent when the button is released after dragging.
	DragEnd

	// Wheel is a scroll wheel step.
	Wheel

	IntentsN
)

var intentNames = [...]string{"click", "dragstart", "dragmove", "dragend", "wheel"}

func (it Intents) String() string {
	if it < 0 || it >= IntentsN {
		return fmt.Sprintf("Intents(%d)", int32(it))
	}
	return intentNames[it]
}

// Input is the canonical input model passed to handlers. Positions are
// pixels relative to the render surface; NDC fields are normalized
// device coordinates in [-1, 1] with +Y up.
type Input struct {
	Type   events.Types
	Intent Intents

	Pos math32.Vector2
	NDC math32.Vector2

	// Delta is the pointer movement since the previous move event.
	Delta math32.Vector2

	// Start and StartNDC are the position of the button press that
	// began the current click or drag.
	Start    math32.Vector2
	StartNDC math32.Vector2

	Button events.Buttons
	Mods   key.Modifiers

	Code   key.Codes
	Repeat bool

	WheelDelta float32
}

// Handler handles one input.
type Handler func(in *Input)

// Names are the canonical raw event names that accept one handler each.
var Names = []string{"mousedown", "mousemove", "mouseup", "wheel", "resize", "contextmenu", "keydown", "keyup", "blur"}

// State is the continuously rebuilt input state: pressed keys, modifier
// flags and pointer button state.
type State struct {
	Keys map[key.Codes]bool
	Mods key.Modifiers

	Pos     math32.Vector2
	Down    bool
	Button  events.Buttons
	DownPos math32.Vector2
	DownNDC math32.Vector2

	// Dragging is set once the drag threshold has been crossed.
	Dragging bool
}

// IsPressed returns whether the key is currently held.
func (st *State) IsPressed(code key.Codes) bool {
	return st.Keys[code]
}
