// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"context"

	"cogentcore.org/xyzedit/config"
	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/docstore/sqlstore"
)

// Save writes the document to db under name.
func (ed *Controller) Save(ctx context.Context, db *sqlstore.Store, name string) error {
	return db.Save(ctx, name, ed.Store.State())
}

// SaveTo makes the save key binding write the document to db under name.
func (ed *Controller) SaveTo(db *sqlstore.Store, name string) {
	ed.OnSave = func(st *docstore.State) {
		if err := db.Save(context.Background(), name, st); err != nil {
			ed.logger().Error("editor.Controller: save failed", "document", name, "err", err)
			return
		}
		ed.logger().Info("editor.Controller: saved", "document", name, "objects", len(st.Objects), "walls", len(st.Walls))
	}
}

// WatchConfig reloads the settings whenever the TOML file changes, until
// ctx is done or the controller is disposed. Reloaded settings are
// applied by the next [Controller.Update].
func (ed *Controller) WatchConfig(ctx context.Context, filename string) error {
	ctx, cancel := context.WithCancel(ctx)
	err := config.Watch(ctx, filename, func(s *config.Settings, err error) {
		if err != nil {
			ed.logger().Warn("editor.Controller.WatchConfig: keeping current settings", "file", filename, "err", err)
			return
		}
		ed.settingsMu.Lock()
		ed.nextSettings = s
		ed.settingsMu.Unlock()
	})
	if err != nil {
		cancel()
		return err
	}
	if ed.cancelWatch != nil {
		ed.cancelWatch()
	}
	ed.cancelWatch = cancel
	return nil
}
