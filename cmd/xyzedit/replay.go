// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"cogentcore.org/xyzedit/docstore"
	"cogentcore.org/xyzedit/docstore/sqlstore"
	"cogentcore.org/xyzedit/history"
	"cogentcore.org/xyzedit/script"
	"github.com/spf13/cobra"
)

type replayFlags struct {
	db      string
	name    string
	load    bool
	history bool
}

func newReplayCmd(rf *rootFlags) *cobra.Command {
	fl := &replayFlags{}
	cmd := &cobra.Command{
		Use:   "replay <scene.yaml> <script.yaml>",
		Short: "Replay an input script against a scene and print the resulting document",
		Long: `Replay loads the scene document, replays the script's events and
commands against a headless editor, and prints the resulting document as
YAML. With --db the result is also saved to a SQLite database under --name;
with --load the scene is read from that database instead of the scene file,
which is then given as "-".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return replay(cmd.Context(), cmd.OutOrStdout(), rf, fl, args[0], args[1])
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.db, "db", "", "SQLite database file to save the result to")
	f.StringVar(&fl.name, "name", "main", "document name in the database")
	f.BoolVar(&fl.load, "load", false, "load the scene from the database")
	f.BoolVar(&fl.history, "history", true, "print the history entries after the document")
	return cmd
}

func replay(ctx context.Context, out io.Writer, rf *rootFlags, fl *replayFlags, sceneFile, scriptFile string) error {
	s, err := loadSettings(rf.config)
	if err != nil {
		return err
	}
	var db *sqlstore.Store
	if fl.db != "" {
		db, err = sqlstore.Open(fl.db)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	var st *docstore.State
	if fl.load {
		if db == nil {
			return fmt.Errorf("--load needs --db")
		}
		st, err = db.Load(ctx, fl.name)
	} else {
		st, err = script.OpenState(sceneFile)
	}
	if err != nil {
		return err
	}
	sc, err := script.Open(scriptFile)
	if err != nil {
		return err
	}

	p := script.NewPlayer(sc, docstore.NewMemory(st), s)
	defer p.Editor.Dispose()
	if db != nil {
		p.Editor.SaveTo(db, fl.name)
	}
	if err := p.Run(sc.Steps); err != nil {
		return fmt.Errorf("%s: %w", scriptFile, err)
	}
	slog.Info("xyzedit replay: done", "steps", len(sc.Steps), "entries", len(p.Entries))

	if db != nil {
		if err := p.Editor.Save(ctx, db, fl.name); err != nil {
			return err
		}
	}
	if err := script.WriteState(out, p.Editor.Store.State()); err != nil {
		return err
	}
	if fl.history {
		printHistory(out, p.Entries)
	}
	return nil
}

func printHistory(out io.Writer, entries []*history.Entry) {
	for i, e := range entries {
		fmt.Fprintf(out, "# %d %s\n", i+1, e.Label)
		for _, ch := range e.Changes {
			fmt.Fprintf(out, "#   %s: %v -> %v\n", ch.ID, ch.Before.Position, ch.After.Position)
		}
		if len(e.IDs) > 0 {
			fmt.Fprintf(out, "#   objects: %s\n", strings.Join(e.IDs, " "))
		}
	}
}
