package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/logging"
	"github.com/oxhq/javalsp/internal/progress"
	"github.com/oxhq/javalsp/internal/server"
)

func TestReloadDependenciesIndexesDiscoveredSources(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Greeter.java"), []byte(
		"package com.example;\n\nclass Greeter {\n    private String name;\n}\n"), 0o644))

	ws := server.NewWorkspace()
	var updates []progress.Update
	reporter := progress.ReporterFunc(func(u progress.Update) { updates = append(updates, u) })

	reload := newReloadDependencies(ws, dir, logging.New(false))
	require.NoError(t, reload(context.Background(), reporter))

	_, ok := ws.Classes.Get("com.example.Greeter")
	assert.True(t, ok)
	require.NotEmpty(t, updates)
	assert.Equal(t, 100, updates[len(updates)-1].Percentage)
}
