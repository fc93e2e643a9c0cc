// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/xyzedit/config"
	"cogentcore.org/xyzedit/keymap"
	"github.com/spf13/cobra"
)

func newKeysCmd(rf *rootFlags) *cobra.Command {
	var markdown bool
	var save string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the key bindings and their conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(rf.config)
			if err != nil {
				return err
			}
			km := keymap.NewDefault()
			if s.Keys.Preset != "" {
				p, err := keymap.OpenPreset(s.Keys.Preset)
				if err != nil {
					return err
				}
				if err := km.ApplyPreset(p); err != nil {
					return err
				}
			}
			if save != "" {
				return keymap.SavePreset(km.Preset("custom"), save)
			}
			out := cmd.OutOrStdout()
			if markdown {
				fmt.Fprint(out, km.MarkdownDoc())
				return nil
			}
			for _, b := range km.Bindings() {
				fmt.Fprintln(out, b)
			}
			for _, cf := range km.Conflicts() {
				fmt.Fprintf(out, "conflict: %v bound in %v\n", cf.Chord, cf.Categories)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&markdown, "markdown", false, "print markdown tables")
	cmd.Flags().StringVar(&save, "save", "", "write the bindings as a YAML preset file instead of printing them")
	return cmd
}

// loadSettings opens the settings file, or returns the defaults if filename is empty.
func loadSettings(filename string) (*config.Settings, error) {
	if filename == "" {
		return config.Default(), nil
	}
	return config.Open(filename)
}
