// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"cogentcore.org/xyzedit/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--quiet"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(args...)
	require.NoError(t, err)
	return out
}

func TestConfigCmd(t *testing.T) {
	out := run(t, "config")
	assert.Contains(t, out, "[Camera]")
	assert.Contains(t, out, "DragThreshold = 5")

	fn := filepath.Join(t.TempDir(), "settings.toml")
	run(t, "config", fn)
	s, err := config.Open(fn)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), s)
}

func TestKeysCmd(t *testing.T) {
	out := run(t, "keys")
	assert.Contains(t, out, "Undo")
	assert.NotContains(t, out, "conflict:")

	assert.Contains(t, run(t, "keys", "--markdown"), "### By action")

	fn := filepath.Join(t.TempDir(), "keys.yaml")
	run(t, "keys", "--save", fn)
	assert.FileExists(t, fn)
}

func TestReplayCmd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scene.db")
	out := run(t, "replay", "--db", db, "../../script/testdata/scene.yaml", "../../script/testdata/drag.yaml")
	assert.Contains(t, out, "id: a")
	assert.Contains(t, out, "# 1 translate")

	out = run(t, "replay", "--db", db, "--load", "--history=false", "-", "../../script/testdata/drag.yaml")
	assert.Contains(t, out, "id: w1")
	assert.NotContains(t, out, "# 1")
}

func TestReplayErrors(t *testing.T) {
	_, err := execute("replay", "--load", "-", "../../script/testdata/drag.yaml")
	assert.ErrorContains(t, err, "--load needs --db")

	_, err = execute("replay", "missing.yaml", "../../script/testdata/drag.yaml")
	assert.Error(t, err)

	_, err = execute("replay", "../../script/testdata/scene.yaml")
	assert.Error(t, err)
}
