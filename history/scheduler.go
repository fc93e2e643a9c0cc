// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package history

import "sync"

// Scheduler runs callbacks at the next rendered frame.
type Scheduler interface {
	NextFrame(fun func())
}

// FrameScheduler is a [Scheduler] driven by calling [FrameScheduler.Tick]
// once per frame. Callbacks queued during a Tick run on the next one.
type FrameScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (fs *FrameScheduler) NextFrame(fun func()) {
	fs.mu.Lock()
	fs.pending = append(fs.pending, fun)
	fs.mu.Unlock()
}

// Tick runs the callbacks queued before the call and returns how many ran.
func (fs *FrameScheduler) Tick() int {
	fs.mu.Lock()
	run := fs.pending
	fs.pending = nil
	fs.mu.Unlock()
	for _, fun := range run {
		fun()
	}
	return len(run)
}

// Len returns the number of queued callbacks.
func (fs *FrameScheduler) Len() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.pending)
}
