// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keymap

import (
	"fmt"
	"io"
	"os"

	"cogentcore.org/xyzedit/events/key"
	"gopkg.in/yaml.v3"
)

// PresetItem records one binding of a [Preset] in its stored form.
type PresetItem struct {

	// the key chord that activates the action, for example "Control+Shift+KeyZ"
	Chord key.Chord `yaml:"chord"`

	// the action of that chord
	Action Actions `yaml:"action"`

	Category Categories `yaml:"category"`

	SingleFire bool `yaml:"single_fire,omitempty"`
}

// Preset is a named, savable set of bindings.
type Preset struct {
	Name string `yaml:"name"`

	// description of the preset; a good idea to include the source it was derived from
	Desc string `yaml:"desc,omitempty"`

	Items []PresetItem `yaml:"items"`
}

// Binding decodes the item into a binding. Control and Meta both
// decode to the command modifier.
func (pi PresetItem) Binding() (Binding, error) {
	code, mods, err := pi.Chord.Decode()
	if err != nil {
		return Binding{}, err
	}
	b := Binding{
		Code:       code,
		Modifier:   mods.HasCommand(),
		Action:     pi.Action,
		Category:   pi.Category,
		SingleFire: pi.SingleFire,
	}
	b.Shift = b.Modifier && mods.HasFlag(key.Shift)
	return b, nil
}

// Preset returns the current bindings as a preset with the given name.
func (t *Table) Preset(name string) Preset {
	p := Preset{Name: name}
	for _, b := range t.Bindings() {
		p.Items = append(p.Items, PresetItem{Chord: b.Chord(), Action: b.Action, Category: b.Category, SingleFire: b.SingleFire})
	}
	return p
}

// ApplyPreset replaces all bindings with those of the preset. Handlers
// are kept. Nothing is changed if any item is invalid.
func (t *Table) ApplyPreset(p Preset) error {
	bs := make([]Binding, 0, len(p.Items))
	for i, it := range p.Items {
		b, err := it.Binding()
		if err != nil {
			return fmt.Errorf("keymap preset %q item %d: %w", p.Name, i, err)
		}
		if b.Action <= NoAction || b.Action >= ActionsN {
			return fmt.Errorf("keymap preset %q item %d: invalid action %v", p.Name, i, b.Action)
		}
		bs = append(bs, b)
	}
	t.cats = [CategoriesN][]Binding{}
	t.ReleaseAll()
	for _, b := range bs {
		t.Register(b)
	}
	return nil
}

// ReadPreset reads a YAML preset.
func ReadPreset(r io.Reader) (Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("keymap.ReadPreset: %w", err)
	}
	return p, nil
}

// WritePreset writes the preset as YAML.
func WritePreset(w io.Writer, p Preset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return err
	}
	return enc.Close()
}

// OpenPreset opens a YAML preset from the given filename.
func OpenPreset(filename string) (Preset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Preset{}, err
	}
	defer f.Close()
	return ReadPreset(f)
}

// SavePreset saves the preset as YAML to the given filename.
func SavePreset(p Preset, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WritePreset(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
