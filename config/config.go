// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config provides the editor settings, stored as TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"cogentcore.org/xyzedit/camera"
	"cogentcore.org/xyzedit/gizmo"
	"cogentcore.org/xyzedit/parts"
	"cogentcore.org/xyzedit/selection"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("config: invalid settings")

// Settings are all of the editor settings.
type Settings struct {
	Input   Input
	Camera  camera.Settings
	Gizmo   Gizmo
	Parts   parts.Settings
	History History
	Keys    Keys
}

// Input configures pointer handling.
type Input struct {

	// DragThreshold is the distance in pixels the pointer must move with
	// a button down before a press becomes a drag.
	DragThreshold float32 `default:"5"`
}

// Gizmo configures both transform gizmos.
type Gizmo struct {

	// Mode is the initial transform mode: translate, rotate or scale.
	Mode string `default:"translate"`

	// Space is the initial transform space: world or local.
	Space string `default:"world"`

	// PivotMode places multi-selection pivots: center, first or last.
	PivotMode string `default:"center"`

	Snap  gizmo.Snap
	Style gizmo.Style
}

// History configures undo.
type History struct {

	// MaxDepth is the number of undo records kept.
	MaxDepth int `default:"200"`
}

// Keys configures the key map.
type Keys struct {

	// Preset is an optional YAML key map file applied over the default bindings.
	Preset string
}

// Default returns the default settings.
func Default() *Settings {
	s := &Settings{Parts: parts.DefaultSettings()}
	s.Gizmo.Style = gizmo.DefaultStyle()
	if err := SetFromDefaults(s); err != nil {
		panic(err)
	}
	return s
}

// Validate returns an error wrapping [ErrInvalid] for every setting out of range.
func (s *Settings) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}
	if s.Input.DragThreshold < 0 {
		bad("Input.DragThreshold %v is negative", s.Input.DragThreshold)
	}
	cs := &s.Camera
	if cs.MinDistance <= 0 || cs.MinDistance > cs.MaxDistance {
		bad("Camera distance range [%v, %v]", cs.MinDistance, cs.MaxDistance)
	}
	if cs.MinOrthoWidth <= 0 || cs.MinOrthoWidth > cs.MaxOrthoWidth {
		bad("Camera ortho width range [%v, %v]", cs.MinOrthoWidth, cs.MaxOrthoWidth)
	}
	if cs.FOV <= 0 || cs.FOV >= 180 {
		bad("Camera.FOV %v", cs.FOV)
	}
	if cs.Near <= 0 || cs.Near >= cs.Far {
		bad("Camera clip range [%v, %v]", cs.Near, cs.Far)
	}
	if _, ok := gizmo.ModeFromString(s.Gizmo.Mode); !ok {
		bad("Gizmo.Mode %q", s.Gizmo.Mode)
	}
	if _, ok := gizmo.SpaceFromString(s.Gizmo.Space); !ok {
		bad("Gizmo.Space %q", s.Gizmo.Space)
	}
	if _, ok := selection.PivotModeFromString(s.Gizmo.PivotMode); !ok {
		bad("Gizmo.PivotMode %q", s.Gizmo.PivotMode)
	}
	if s.Gizmo.Style.Size <= 0 {
		bad("Gizmo.Style.Size %v", s.Gizmo.Style.Size)
	}
	if s.Parts.SampleGrid < 1 {
		bad("Parts.SampleGrid %v", s.Parts.SampleGrid)
	}
	if s.History.MaxDepth < 1 {
		bad("History.MaxDepth %v", s.History.MaxDepth)
	}
	return errors.Join(errs...)
}

// Read decodes settings from r over the defaults and validates them.
func Read(r io.Reader) (*Settings, error) {
	s := Default()
	if err := toml.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("config.Read: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Open reads settings from the TOML file.
func Open(filename string) (*Settings, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// Write encodes the settings to w as TOML.
func (s *Settings) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// Save writes the settings to the TOML file.
func (s *Settings) Save(filename string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}
