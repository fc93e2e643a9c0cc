// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx owns the process-wide log level and installs the
// default structured text handler.
package logx

import (
	"io"
	"log/slog"
	"os"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [SetLevel].
var UserLevel = defaultUserLevel

var level = new(slog.LevelVar)

// SetLevel sets [UserLevel] and updates the level of the default handler.
func SetLevel(lvl slog.Level) {
	UserLevel = lvl
	level.Set(lvl)
}

// LevelFromFlags returns the [slog.Level] object corresponding to the given
// user flag options. The flags are evaluated in the following order:
//   - If verbose is true, it returns [slog.LevelDebug].
//   - If quiet is true, it returns [slog.LevelError].
//   - Otherwise, it returns [slog.LevelInfo].
func LevelFromFlags(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init installs a text handler writing to stderr at [UserLevel]
// as the [slog.Default] logger.
func Init() {
	InitWriter(os.Stderr)
}

// InitWriter installs a text handler writing to w at [UserLevel]
// as the [slog.Default] logger.
func InitWriter(w io.Writer) {
	level.Set(UserLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Or returns l if it is non-nil and [slog.Default] otherwise.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}
