package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scrap2md/internal/cache"
)

func TestInit_CreatesOutputAndCacheDirs(t *testing.T) {
	work := t.TempDir()
	cacheHome := t.TempDir()
	t.Chdir(work)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("HOME", cacheHome)

	cacheDir := cache.DefaultDir()
	require.True(t, strings.HasPrefix(cacheDir, cacheHome), cacheDir)

	require.NoError(t, Init())

	for _, dir := range []string{filepath.Join(work, outputDir), cacheDir} {
		info, err := os.Stat(dir)
		if assert.NoError(t, err, dir) {
			assert.True(t, info.IsDir(), dir)
		}
	}
}

func TestInit_Idempotent(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	require.NoError(t, Init())
	require.NoError(t, Init())
}
