// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Listeners registers lists of event listener functions
// to receive different event types. Each listener gets an id
// so that it can be removed again.
type Listeners map[Types][]listener

type listener struct {
	id  int
	fun func(ev *Event)
}

// Init ensures that map is constructed
func (ls *Listeners) Init() {
	if *ls != nil {
		return
	}
	*ls = make(map[Types][]listener)
}

// Add adds a function for given type under the given id.
func (ls *Listeners) Add(typ Types, id int, fun func(*Event)) {
	ls.Init()
	(*ls)[typ] = append((*ls)[typ], listener{id: id, fun: fun})
}

// Remove removes the function with the given id for given type.
func (ls *Listeners) Remove(typ Types, id int) {
	ets := (*ls)[typ]
	for i, l := range ets {
		if l.id == id {
			(*ls)[typ] = append(ets[:i:i], ets[i+1:]...)
			return
		}
	}
}

// Len returns the number of listeners for given type.
func (ls *Listeners) Len(typ Types) int {
	return len((*ls)[typ])
}

// Call calls all functions for given event.
// It goes in _reverse_ order to the last functions added are the first called
// and it stops when the event is marked as Handled.  This allows for a natural
// and optional override behavior, as compared to requiring more complex
// priority-based mechanisms.
func (ls *Listeners) Call(ev *Event) {
	if ev.IsHandled() {
		return
	}
	ets := (*ls)[ev.Type]
	for i := len(ets) - 1; i >= 0; i-- {
		ets[i].fun(ev)
		if ev.IsHandled() {
			break
		}
	}
}
