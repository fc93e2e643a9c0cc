// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlstore saves and loads documents in a SQLite database
// through gorm. Each object is one row holding its JSON encoding;
// document settings are stored in a single settings row.
package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cogentcore.org/xyzedit/base/logx"
	"cogentcore.org/xyzedit/docstore"
	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ObjectRow is the stored form of one object or wall.
type ObjectRow struct {
	ID       string `gorm:"primaryKey"`
	Document string `gorm:"primaryKey"`
	Seq      int    `gorm:"index"`
	Wall     bool
	ParentID string
	Data     datatypes.JSON
}

// SettingsRow is the stored form of the document settings.
type SettingsRow struct {
	Document string `gorm:"primaryKey"`
	Data     datatypes.JSON
}

// Store is a SQLite document store holding any number of named documents.
type Store struct {
	DB *gorm.DB

	// Logger is used for diagnostics; nil means [slog.Default].
	Logger *slog.Logger
}

// Open opens (creating if needed) the database at path and migrates the
// schema. An empty path opens a private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlstore.Open %q: %w", path, err)
	}
	if err := db.AutoMigrate(&ObjectRow{}, &SettingsRow{}); err != nil {
		return nil, fmt.Errorf("sqlstore.Open %q: migrating: %w", path, err)
	}
	return &Store{DB: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sdb, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sdb.Close()
}

// Save replaces the named document with st in one transaction.
// Selection is not saved.
func (s *Store) Save(ctx context.Context, name string, st *docstore.State) error {
	rows := make([]ObjectRow, 0, len(st.Objects)+len(st.Walls))
	add := func(ob *docstore.Object, wall bool) error {
		data, err := json.Marshal(ob)
		if err != nil {
			return fmt.Errorf("encoding object %q: %w", ob.ID, err)
		}
		rows = append(rows, ObjectRow{ID: ob.ID, Document: name, Seq: len(rows), Wall: wall, ParentID: ob.ParentID, Data: data})
		return nil
	}
	for _, ob := range st.Objects {
		if err := add(ob, false); err != nil {
			return err
		}
	}
	for _, ob := range st.Walls {
		if err := add(ob, true); err != nil {
			return err
		}
	}
	settings, err := json.Marshal(st.Settings)
	if err != nil {
		return fmt.Errorf("sqlstore.Store.Save: encoding settings: %w", err)
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document = ?", name).Delete(&ObjectRow{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Save(&SettingsRow{Document: name, Data: settings}).Error
	})
	if err != nil {
		return fmt.Errorf("sqlstore.Store.Save %q: %w", name, err)
	}
	logx.Or(s.Logger).Debug("sqlstore.Store.Save", "document", name, "objects", len(st.Objects), "walls", len(st.Walls))
	return nil
}

// Load reads the named document. It returns [docstore.ErrNotFound] if
// the document was never saved.
func (s *Store) Load(ctx context.Context, name string) (*docstore.State, error) {
	db := s.DB.WithContext(ctx)
	var srow SettingsRow
	res := db.Where("document = ?", name).Limit(1).Find(&srow)
	if res.Error != nil {
		return nil, fmt.Errorf("sqlstore.Store.Load %q: %w", name, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("sqlstore.Store.Load %q: %w", name, docstore.ErrNotFound)
	}
	st := docstore.NewState()
	if err := json.Unmarshal(srow.Data, &st.Settings); err != nil {
		return nil, fmt.Errorf("sqlstore.Store.Load %q: decoding settings: %w", name, err)
	}

	var rows []ObjectRow
	if err := db.Where("document = ?", name).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.Store.Load %q: %w", name, err)
	}
	for _, r := range rows {
		ob := &docstore.Object{}
		if err := json.Unmarshal(r.Data, ob); err != nil {
			return nil, fmt.Errorf("sqlstore.Store.Load %q: decoding object %q: %w", name, r.ID, err)
		}
		if r.Wall {
			st.Walls = append(st.Walls, ob)
		} else {
			st.Objects = append(st.Objects, ob)
		}
	}
	return st, nil
}

// Documents returns the names of all saved documents.
func (s *Store) Documents(ctx context.Context) ([]string, error) {
	var names []string
	if err := s.DB.WithContext(ctx).Model(&SettingsRow{}).Order("document").Pluck("document", &names).Error; err != nil {
		return nil, fmt.Errorf("sqlstore.Store.Documents: %w", err)
	}
	return names, nil
}
