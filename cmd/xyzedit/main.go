// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command xyzedit runs the scene editor core headless: it replays
// recorded input against a document, prints the key bindings, and
// writes the default settings.
package main

import (
	"context"
	"os"
	"os/signal"

	"cogentcore.org/xyzedit/base/logx"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	verbose bool
	quiet   bool
	config  string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	cmd := &cobra.Command{
		Use:          "xyzedit",
		Short:        "Headless scene editor core",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.SetLevel(logx.LevelFromFlags(rf.verbose, rf.quiet))
			logx.InitWriter(cmd.ErrOrStderr())
		},
	}
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&rf.verbose, "verbose", "v", false, "log debug messages")
	pf.BoolVarP(&rf.quiet, "quiet", "q", false, "only log errors")
	pf.StringVarP(&rf.config, "config", "c", "", "settings TOML file")
	cmd.AddCommand(newReplayCmd(rf), newKeysCmd(rf), newConfigCmd())
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
