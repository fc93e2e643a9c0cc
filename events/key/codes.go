// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key defines the canonical keyboard model: physical key
// codes, modifier flags, and chords combining the two.
package key

// Codes are the physical key codes reported by the platform, using the
// layout-independent names of the DOM KeyboardEvent.code property.
// Codes without a named constant are still valid values.
type Codes string

const (
	CodeUnknown Codes = ""

	CodeA Codes = "KeyA"
	CodeB Codes = "KeyB"
	CodeC Codes = "KeyC"
	CodeD Codes = "KeyD"
	CodeE Codes = "KeyE"
	CodeF Codes = "KeyF"
	CodeG Codes = "KeyG"
	CodeQ Codes = "KeyQ"
	CodeR Codes = "KeyR"
	CodeS Codes = "KeyS"
	CodeW Codes = "KeyW"
	CodeX Codes = "KeyX"
	CodeY Codes = "KeyY"
	CodeZ Codes = "KeyZ"

	CodeEscape       Codes = "Escape"
	CodeDelete       Codes = "Delete"
	CodeBackspace    Codes = "Backspace"
	CodeEnter        Codes = "Enter"
	CodeSpace        Codes = "Space"
	CodeTab          Codes = "Tab"
	CodeBracketLeft  Codes = "BracketLeft"
	CodeBracketRight Codes = "BracketRight"

	CodeNumpad0 Codes = "Numpad0"
	CodeNumpad1 Codes = "Numpad1"
	CodeNumpad2 Codes = "Numpad2"
	CodeNumpad3 Codes = "Numpad3"
	CodeNumpad4 Codes = "Numpad4"
	CodeNumpad5 Codes = "Numpad5"
	CodeNumpad6 Codes = "Numpad6"
	CodeNumpad7 Codes = "Numpad7"
	CodeNumpad8 Codes = "Numpad8"
	CodeNumpad9 Codes = "Numpad9"

	CodeShiftLeft    Codes = "ShiftLeft"
	CodeShiftRight   Codes = "ShiftRight"
	CodeControlLeft  Codes = "ControlLeft"
	CodeControlRight Codes = "ControlRight"
	CodeAltLeft      Codes = "AltLeft"
	CodeAltRight     Codes = "AltRight"
	CodeMetaLeft     Codes = "MetaLeft"
	CodeMetaRight    Codes = "MetaRight"
)

func (kc Codes) String() string {
	return string(kc)
}

// IsModifier returns true if the code is one of the modifier keys,
// along with the modifier flag it controls.
func (kc Codes) IsModifier() (Modifiers, bool) {
	switch kc {
	case CodeShiftLeft, CodeShiftRight:
		return Shift, true
	case CodeControlLeft, CodeControlRight:
		return Control, true
	case CodeAltLeft, CodeAltRight:
		return Alt, true
	case CodeMetaLeft, CodeMetaRight:
		return Meta, true
	}
	return 0, false
}
