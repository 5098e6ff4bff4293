// Package config builds the server's runtime configuration from the
// environment: a Config struct populated from os.Getenv with defaults, no
// external config library.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const productName = "javalsp"

// Config holds the language server's runtime configuration.
type Config struct {
	// Debug gates internal/logging's Debug-level output.
	Debug bool
	// JDKPath overrides PATH-based discovery of the JDK runtime. Empty
	// means search PATH.
	JDKPath string
	// CacheDir is the root directory on-disk class caches are written
	// under. Empty means resolve via os.UserCacheDir().
	CacheDir string
	// MaxArchiveWorkers bounds archive-loading concurrency: one
	// background task per archive, with an upper bound on how many run
	// at once.
	MaxArchiveWorkers int
}

// Load reads configuration from the environment, first loading a `.env`
// file from the current directory if one is present, for pinning local
// development settings without exporting them into the shell.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Debug:             envBool("JAVALSP_DEBUG", false),
		JDKPath:           os.Getenv("JAVALSP_JDK_PATH"),
		CacheDir:          os.Getenv("JAVALSP_CACHE_DIR"),
		MaxArchiveWorkers: envInt("JAVALSP_MAX_ARCHIVE_WORKERS", 8),
	}
}

// ResolveCacheDir returns the directory on-disk class caches are written
// under, rooted at a fixed product name, honoring an explicit CacheDir
// override first.
func (c *Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, productName), nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
