// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fun with the reloaded settings, or the error reading them,
// whenever the file is written, until ctx is done. The directory is
// watched so that editors replacing the file are seen. fun is called
// from the watcher goroutine.
func Watch(ctx context.Context, filename string, fun func(s *Settings, err error)) error {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				s, err := Open(abs)
				if err != nil {
					slog.Error("config.Watch: cannot reload", "file", abs, "err", err)
				}
				fun(s, err)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("config.Watch", "file", abs, "err", err)
			}
		}
	}()
	return nil
}
