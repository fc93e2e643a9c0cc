// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script replays recorded editing sessions against an editor
// controller: synthetic platform events and editing commands, read
// from YAML. It is used by the xyzedit replay command and by tests.
package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/config"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/editor"
	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/history"
	"cogentcore.org/xyzedit/math32"
	"gopkg.in/yaml.v3"
)

var (
	// ErrBadStep is returned for a step that is neither a valid event nor a command.
	ErrBadStep = errors.New("script: invalid step")

	// ErrUnknownCommand is returned for a step naming an unknown command.
	ErrUnknownCommand = errors.New("script: unknown command")
)

// View is the camera placement at the start of a script.
type View struct {
	Position math32.Vector3 `yaml:"position"`
	Target   math32.Vector3 `yaml:"target"`
}

// Script is a recorded session: the render surface size, an optional
// starting camera view and the steps to replay.
type Script struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	View   *View   `yaml:"view,omitempty"`
	Steps  []Step  `yaml:"steps"`
}

// Step is one platform event or one editing command. Exactly one of
// Event and Command is set.
type Step struct {
	// Event is a canonical event name such as mousedown or keydown.
	Event string `yaml:"event,omitempty"`

	// Button is left, middle or right for mouse events.
	Button string `yaml:"button,omitempty"`

	// X and Y are the client pixel position of mouse events.
	X float32 `yaml:"x,omitempty"`
	Y float32 `yaml:"y,omitempty"`

	// At, if set, places a mouse event at the screen projection of a
	// world point, overriding X and Y.
	At *math32.Vector3 `yaml:"at,omitempty"`

	// Delta is the wheel delta.
	Delta float32 `yaml:"delta,omitempty"`

	// Code is the key code of key events, like KeyZ.
	Code string `yaml:"code,omitempty"`

	// Mods are the held modifiers joined with "+", like Control+Shift.
	Mods string `yaml:"mods,omitempty"`

	// Repeat is the number of auto-repeat key downs sent after a key down.
	Repeat int `yaml:"repeat,omitempty"`

	Command string   `yaml:"command,omitempty"`
	Args    []string `yaml:"args,omitempty"`

	// Frames is the number of editor updates run after the step.
	Frames int `yaml:"frames,omitempty"`
}

// Read reads a script from YAML.
func Read(r io.Reader) (*Script, error) {
	sc := &Script{}
	if err := yaml.NewDecoder(r).Decode(sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		sc.Width, sc.Height = 800, 600
	}
	return sc, nil
}

// Open reads a script from a YAML file.
func Open(filename string) (*Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return sc, nil
}

// ReadState reads a document from YAML.
func ReadState(r io.Reader) (*docstore.State, error) {
	st := docstore.NewState()
	if err := yaml.NewDecoder(r).Decode(st); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	for _, ob := range st.Objects {
		ob.Transform.Defaults()
	}
	for _, ob := range st.Walls {
		ob.Transform.Defaults()
	}
	return st, nil
}

// OpenState reads a document from a YAML file.
func OpenState(filename string) (*docstore.State, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := ReadState(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return st, nil
}

// WriteState writes a document as YAML.
func WriteState(w io.Writer, st *docstore.State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(st); err != nil {
		return err
	}
	return enc.Close()
}

// Player drives an editor controller from script steps.
type Player struct {
	Editor *editor.Controller
	Source *events.Source

	// Entries are the history entries produced so far.
	Entries []*history.Entry

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	commands map[string]func(args []string) error
}

// NewPlayer returns a player with a new controller editing store with
// settings s (nil for defaults), on a surface of the script's size.
func NewPlayer(sc *Script, store docstore.Store, s *config.Settings) *Player {
	p := &Player{Source: events.NewSource(sc.Width, sc.Height)}
	p.Editor = editor.New(p.Source, store, s)
	p.Editor.OnEntry = func(e *history.Entry) {
		p.Entries = append(p.Entries, e)
	}
	if sc.View != nil {
		p.Editor.Rig.Camera.Pos = sc.View.Position
		p.Editor.SetCameraTarget(sc.View.Target)
	}
	p.initCommands()
	return p
}

func (p *Player) logger() *slog.Logger {
	return logx.Or(p.Logger)
}

// Run replays the steps in order, stopping at the first failing step.
// A final editor update is run at the end.
func (p *Player) Run(steps []Step) error {
	for i, st := range steps {
		if err := p.Step(st); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	p.Editor.Update()
	return nil
}

// Step replays one step.
func (p *Player) Step(st Step) error {
	switch {
	case st.Event != "" && st.Command != "":
		return fmt.Errorf("%w: both event %q and command %q", ErrBadStep, st.Event, st.Command)
	case st.Event != "":
		if err := p.event(st); err != nil {
			return err
		}
	case st.Command != "":
		fun, ok := p.commands[st.Command]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCommand, st.Command)
		}
		if err := fun(st.Args); err != nil {
			return fmt.Errorf("%s: %w", st.Command, err)
		}
	default:
		if st.Frames == 0 {
			return fmt.Errorf("%w: no event, command or frames", ErrBadStep)
		}
	}
	for range st.Frames {
		p.Editor.Update()
	}
	return nil
}

func (p *Player) event(st Step) error {
	typ, ok := events.TypeFromString(st.Event)
	if !ok {
		return fmt.Errorf("%w: unknown event %q", ErrBadStep, st.Event)
	}
	mods, err := parseMods(st.Mods)
	if err != nil {
		return err
	}
	pos := math32.Vec2(st.X, st.Y)
	if st.At != nil {
		ndc, ok := p.Editor.Rig.Camera.ProjectToNDC(*st.At)
		if !ok {
			return fmt.Errorf("%w: point %v is behind the camera", ErrBadStep, *st.At)
		}
		r := p.Source.Bounds()
		pos = math32.Vec2(r.X+(ndc.X+1)/2*r.Width, r.Y+(1-ndc.Y)/2*r.Height)
	}
	switch {
	case typ == events.Wheel:
		p.Source.Send(events.NewWheel(pos, st.Delta, mods))
	case typ.IsMouse():
		but, err := parseButton(st.Button)
		if err != nil {
			return err
		}
		p.Source.Send(events.NewMouse(typ, but, pos, mods))
	case typ.IsKey():
		if st.Code == "" {
			return fmt.Errorf("%w: %s without a key code", ErrBadStep, st.Event)
		}
		code := key.Codes(st.Code)
		p.Source.Send(events.NewKey(typ, code, mods, false))
		if typ == events.KeyDown {
			for range st.Repeat {
				p.Source.Send(events.NewKey(typ, code, mods, true))
			}
		}
	default:
		p.Source.Send(&events.Event{Type: typ})
	}
	return nil
}

func parseMods(s string) (key.Modifiers, error) {
	var mods key.Modifiers
	if strings.TrimSpace(s) == "" {
		return mods, nil
	}
	for _, nm := range strings.Split(s, "+") {
		m, ok := key.ModifierFromName(strings.TrimSpace(nm))
		if !ok {
			return 0, fmt.Errorf("%w: unknown modifier %q", ErrBadStep, nm)
		}
		mods |= m
	}
	return mods, nil
}

func parseButton(s string) (events.Buttons, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return events.Left, nil
	case "middle":
		return events.Middle, nil
	case "right":
		return events.Right, nil
	}
	return events.NoButton, fmt.Errorf("%w: unknown button %q", ErrBadStep, s)
}

// Commands returns the names of the commands a step can run.
func (p *Player) Commands() []string {
	names := make([]string, 0, len(p.commands))
	for nm := range p.commands {
		names = append(names, nm)
	}
	return names
}

// initCommands maps the command names to the editing API. Commands that
// the editor rejects return an error.
func (p *Player) initCommands() {
	ed := p.Editor
	check := func(ok bool) error {
		if !ok {
			return errors.New("rejected")
		}
		return nil
	}
	nargs := func(args []string, n int) error {
		if len(args) != n {
			return fmt.Errorf("%w: want %d arguments, got %d", ErrBadStep, n, len(args))
		}
		return nil
	}
	float := func(args []string) (float32, error) {
		if err := nargs(args, 1); err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(args[0], 32)
		return float32(v), err
	}
	p.commands = map[string]func(args []string) error{
		"select": func(args []string) error {
			return check(ed.SelectObjects(args, false))
		},
		"addSelect": func(args []string) error {
			return check(ed.SelectObjects(args, true))
		},
		"selectAll": func(args []string) error {
			return check(ed.SelectAll())
		},
		"deselect": func(args []string) error {
			ed.DeselectAll()
			return nil
		},
		"mode": func(args []string) error {
			if err := nargs(args, 1); err != nil {
				return err
			}
			return check(ed.SetTransformMode(args[0]))
		},
		"space": func(args []string) error {
			ed.ToggleTransformSpace()
			return nil
		},
		"snap": func(args []string) error {
			ed.ToggleGridSnap()
			return nil
		},
		"grid": func(args []string) error {
			v, err := float(args)
			if err != nil {
				return err
			}
			return check(ed.SetGridSize(v))
		},
		"rotate": func(args []string) error {
			v, err := float(args)
			if err != nil {
				return err
			}
			return check(ed.RotateSelection(v))
		},
		"translate": func(args []string) error {
			if err := nargs(args, 3); err != nil {
				return err
			}
			var d math32.Vector3
			for i, a := range args {
				v, err := strconv.ParseFloat(a, 32)
				if err != nil {
					return err
				}
				d.SetDim(math32.Dims(i), float32(v))
			}
			if !ed.Gizmo.IsAttached() {
				return errors.New("nothing selected")
			}
			ed.Gizmo.TranslateBy(d)
			ed.Sync()
			return nil
		},
		"duplicate": func(args []string) error {
			if len(ed.DuplicateSelectedObjects()) == 0 {
				return errors.New("nothing duplicated")
			}
			return nil
		},
		"delete": func(args []string) error {
			ed.DeleteSelectedObjects()
			return nil
		},
		"group": func(args []string) error {
			if ed.GroupSelectedObjects() == "" {
				return errors.New("need at least two selected objects")
			}
			return nil
		},
		"ungroup": func(args []string) error {
			if len(ed.UngroupSelectedObjects()) == 0 {
				return errors.New("no group selected")
			}
			return nil
		},
		"undo": func(args []string) error {
			return check(ed.Undo())
		},
		"redo": func(args []string) error {
			return check(ed.Redo())
		},
		"view": func(args []string) error {
			if err := nargs(args, 1); err != nil {
				return err
			}
			return check(ed.SetCameraView(args[0]))
		},
		"projection": func(args []string) error {
			p.logger().Info("script: projection", "projection", ed.ToggleCameraProjection())
			return nil
		},
		"focus": func(args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return check(ed.FocusOnObject(id))
		},
		"parts": func(args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return check(ed.EnablePartInspection(id))
		},
		"noparts": func(args []string) error {
			ed.DisablePartInspection()
			return nil
		},
		"solo": func(args []string) error {
			return check(ed.Parts.SetSolo(!ed.Parts.IsSolo()))
		},
		"clip": func(args []string) error {
			return check(ed.Parts.SetClipping(!ed.Parts.IsClipping()))
		},
	}
}
