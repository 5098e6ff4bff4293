package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/archive"
)

func TestLexCommandReportsIOErrorForMissingFile(t *testing.T) {
	cmd := newLexCmd()
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.java")})
	err := cmd.Execute()
	assert.Error(t, err)
}

func TestLexCommandRunsOverRealSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Sample.java")
	require.NoError(t, os.WriteFile(path, []byte("class Greeter {}\n"), 0o644))

	cmd := newLexCmd()
	cmd.SetArgs([]string{path})
	assert.NoError(t, cmd.Execute())
}

func TestASTCheckDirCommandHonorsIgnoreGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Good.java"), []byte("class Good {}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Bad.java"), []byte("class Bad { public void m( }\n"), 0o644))

	paths, err := archive.DiscoverSources(context.Background(), dir, []string{"Bad.java"})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "Good.java", filepath.Base(paths[0]))
}
