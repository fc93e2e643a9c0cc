// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package input normalizes raw platform pointer and keyboard events into
// the canonical [Input] model, tracks modifier and pressed-key state,
// and recognizes click, drag and wheel intents. It never touches the scene.
package input

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/xyzedit/base/errors"
	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/events"
	"cogentcore.org/xyzedit/events/key"
	"cogentcore.org/xyzedit/math32"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultDragThreshold is the pointer distance in pixels from the press
// position beyond which a press becomes a drag.
const DefaultDragThreshold = 5

// Platform is the source of raw events, such as a browser page or an
// [events.Source].
type Platform interface {
	// Subscribe registers fun for events of the given type and returns
	// a function that removes it.
	Subscribe(typ events.Types, fun func(*events.Event)) (cancel func())

	// Bounds returns the render surface rectangle in client pixels.
	Bounds() events.Rect

	// FocusedEditable returns whether an editable text field has focus.
	FocusedEditable() bool
}

// Router subscribes to a [Platform] once for its lifetime and dispatches
// canonical inputs to at most one handler per raw event name and one
// per intent.
type Router struct {
	// DragThreshold is the click versus drag distance in pixels.
	DragThreshold float32

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger

	State State

	platform Platform
	cancels  []func()
	handlers map[string]Handler
	intents  map[Intents]Handler
	disposed bool

	panics metric.Int64Counter
}

// NewRouter returns a router subscribed to all platform event types.
func NewRouter(p Platform, threshold float32) *Router {
	rt := &Router{
		DragThreshold: threshold,
		platform:      p,
		handlers:      map[string]Handler{},
		intents:       map[Intents]Handler{},
	}
	rt.State.Keys = map[key.Codes]bool{}
	rt.panics = errors.Log1(meter().Int64Counter("xyzedit.input.handler_panics",
		metric.WithDescription("Panics recovered from input handlers")))
	for typ := events.MouseDown; typ < events.TypesN; typ++ {
		rt.cancels = append(rt.cancels, p.Subscribe(typ, rt.dispatch))
	}
	return rt
}

func (rt *Router) logger() *slog.Logger {
	return logx.Or(rt.Logger)
}

// Register sets the handler for a raw event name (see [Names]).
// Registering a name twice warns and keeps the first handler.
func (rt *Router) Register(name string, h Handler) bool {
	if rt.disposed {
		rt.logger().Warn("input.Router.Register: router is disposed", "name", name)
		return false
	}
	if !slices.Contains(Names, name) {
		rt.logger().Warn("input.Router.Register: unknown event name", "name", name)
		return false
	}
	if _, has := rt.handlers[name]; has {
		rt.logger().Warn("input.Router.Register: handler already registered; keeping the first", "name", name)
		return false
	}
	rt.handlers[name] = h
	return true
}

// RegisterIntent sets the handler for an intent. Registering an intent
// twice warns and keeps the first handler.
func (rt *Router) RegisterIntent(it Intents, h Handler) bool {
	if rt.disposed {
		rt.logger().Warn("input.Router.RegisterIntent: router is disposed", "intent", it)
		return false
	}
	if _, has := rt.intents[it]; has {
		rt.logger().Warn("input.Router.RegisterIntent: handler already registered; keeping the first", "intent", it)
		return false
	}
	rt.intents[it] = h
	return true
}

// Dispose removes every platform listener and clears all handlers.
// Calling it again does nothing.
func (rt *Router) Dispose() {
	if rt.disposed {
		return
	}
	rt.disposed = true
	for _, c := range rt.cancels {
		c()
	}
	rt.cancels = nil
	clear(rt.handlers)
	clear(rt.intents)
}

// IsDisposed returns whether Dispose has been called.
func (rt *Router) IsDisposed() bool {
	return rt.disposed
}

// ToNDC converts a client pixel position to surface pixels and
// normalized device coordinates.
func (rt *Router) ToNDC(client math32.Vector2) (pos, ndc math32.Vector2) {
	r := rt.platform.Bounds()
	pos = math32.Vec2(client.X-r.X, client.Y-r.Y)
	if r.Width <= 0 || r.Height <= 0 {
		return pos, ndc
	}
	ndc.X = pos.X/r.Width*2 - 1
	ndc.Y = -(pos.Y/r.Height)*2 + 1
	return pos, ndc
}

// call runs a handler, recovering and logging any panic so that one
// misbehaving handler does not break routing for the rest of the frame.
func (rt *Router) call(name string, h Handler, in *Input) {
	if h == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			rt.logger().Error("input.Router: handler panicked", "handler", name, "panic", fmt.Sprint(r))
			rt.panics.Add(context.Background(), 1, metric.WithAttributes(attribute.String("handler", name)))
		}
	}()
	h(in)
}

func (rt *Router) emit(it Intents, in *Input) {
	in.Intent = it
	rt.call(it.String(), rt.intents[it], in)
}

func (rt *Router) dispatch(ev *events.Event) {
	if rt.disposed {
		return
	}
	st := &rt.State
	in := &Input{Type: ev.Type, Button: ev.Button, Mods: ev.Mods, Code: ev.Code, Repeat: ev.Repeat, WheelDelta: ev.WheelDelta}
	if ev.Type.IsMouse() {
		st.Mods = ev.Mods
		in.Pos, in.NDC = rt.ToNDC(ev.Pos)
		in.Start, in.StartNDC = st.DownPos, st.DownNDC
	}
	name := ev.Type.String()

	switch ev.Type {
	case events.MouseDown:
		st.Down = true
		st.Dragging = false
		st.Button = ev.Button
		st.DownPos, st.DownNDC = in.Pos, in.NDC
		st.Pos = in.Pos
		in.Start, in.StartNDC = in.Pos, in.NDC
		rt.call(name, rt.handlers[name], in)

	case events.MouseMove:
		in.Delta = in.Pos.Sub(st.Pos)
		st.Pos = in.Pos
		in.Button = st.Button
		rt.call(name, rt.handlers[name], in)
		if !st.Down {
			return
		}
		if !st.Dragging && in.Pos.DistanceTo(st.DownPos) >= rt.DragThreshold {
			st.Dragging = true
			rt.emit(DragStart, in)
		}
		if st.Dragging {
			rt.emit(DragMove, in)
		}

	case events.MouseUp:
		in.Delta = in.Pos.Sub(st.Pos)
		st.Pos = in.Pos
		rt.call(name, rt.handlers[name], in)
		if !st.Down {
			return
		}
		wasDragging := st.Dragging
		in.Button = st.Button
		st.Down = false
		st.Dragging = false
		st.Button = events.NoButton
		if wasDragging {
			rt.emit(DragEnd, in)
		} else {
			rt.emit(Click, in)
		}

	case events.Wheel:
		rt.call(name, rt.handlers[name], in)
		rt.emit(Wheel, in)

	case events.ContextMenu:
		ev.SetHandled()
		rt.call(name, rt.handlers[name], in)

	case events.Resize:
		rt.call(name, rt.handlers[name], in)

	case events.KeyDown:
		st.Keys[ev.Code] = true
		st.Mods = ev.Mods
		if m, ok := ev.Code.IsModifier(); ok {
			st.Mods.SetFlag(true, m)
		}
		in.Mods = st.Mods
		if rt.platform.FocusedEditable() {
			return
		}
		rt.call(name, rt.handlers[name], in)

	case events.KeyUp:
		delete(st.Keys, ev.Code)
		st.Mods = ev.Mods
		if m, ok := ev.Code.IsModifier(); ok {
			st.Mods.SetFlag(false, m)
		}
		in.Mods = st.Mods
		rt.call(name, rt.handlers[name], in)

	case events.Blur:
		clear(st.Keys)
		st.Mods = 0
		rt.call(name, rt.handlers[name], in)
	}
}
