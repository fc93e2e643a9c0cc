// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gizmo

import (
	"fmt"
	"image/color"
	"strings"
)

// Modes are the manipulation modes of a [Gizmo].
type Modes int32

const (
	Translate Modes = iota
	Rotate
	Scale
	ModesN
)

var modeNames = [...]string{"translate", "rotate", "scale"}

func (m Modes) String() string {
	if m < 0 || m >= ModesN {
		return fmt.Sprintf("Modes(%d)", int32(m))
	}
	return modeNames[m]
}

// ModeFromString returns the mode with the given name, case insensitive.
func ModeFromString(s string) (Modes, bool) {
	for i, nm := range modeNames {
		if strings.EqualFold(nm, s) {
			return Modes(i), true
		}
	}
	return Translate, false
}

// Spaces are the coordinate spaces of the gizmo axes.
type Spaces int32

const (
	// World aligns the axes with the world axes.
	World Spaces = iota

	// Local aligns the axes with the attached node's world rotation.
	Local
)

func (s Spaces) String() string {
	if s == Local {
		return "local"
	}
	return "world"
}

// SpaceFromString returns the space with the given name, case insensitive.
func SpaceFromString(s string) (Spaces, bool) {
	switch {
	case strings.EqualFold(s, "world"):
		return World, true
	case strings.EqualFold(s, "local"):
		return Local, true
	}
	return World, false
}

// Axes are the gizmo handles.
type Axes int32

const (
	NoAxis Axes = iota
	AxisX
	AxisY
	AxisZ
)

func (a Axes) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	}
	return "None"
}

// Snap holds the snapping increments, each independently enabled.
type Snap struct {
	TranslateOn bool
	Translate   float32 `default:"1"`

	RotateOn  bool
	RotateDeg float32 `default:"15"`

	ScaleOn bool
	Scale   float32 `default:"0.1"`
}

// Style is the visual configuration of a gizmo, read when handles are
// laid out. Handle geometry is reported by [Gizmo.Handles] for a
// renderer to draw; the gizmo itself draws nothing.
type Style struct {
	// Size is the handle length (translate, scale) and ring radius (rotate).
	Size float32 `default:"1"`

	// HitTolerance is the pick distance around a handle, as a fraction of Size.
	HitTolerance float32 `default:"0.15"`

	// Colors are the X, Y and Z handle colors.
	Colors [3]color.RGBA

	// HideInactive hides the handles of axes other than the dragged one while dragging.
	HideInactive bool
}

// DefaultStyle returns the default gizmo style.
func DefaultStyle() Style {
	return Style{
		Size:         1,
		HitTolerance: 0.15,
		Colors:       [3]color.RGBA{{230, 60, 60, 255}, {60, 200, 60, 255}, {60, 100, 230, 255}},
		HideInactive: true,
	}
}
