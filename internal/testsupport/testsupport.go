// Package testsupport provides fixtures shared by framescan tests: per-test
// configuration, sequence file trees, and catalog stores on temp
// directories.
package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"framescan/internal/catalog"
	"framescan/internal/config"
)

// NewConfig produces a config seeded with a unique temp catalog per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join(t.TempDir(), "catalog.db")
	return &cfg
}

// MustOpenStore opens the config's catalog store and closes it when the
// test finishes.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close catalog: %v", err)
		}
	})
	return store
}

// WriteFiles creates empty files with the given names under dir, which is
// created if needed.
func WriteFiles(t testing.TB, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// WriteFrames creates a padded frame sequence prefix.####.ext for every
// frame number given. width pads with leading zeros; width 0 writes the
// bare number.
func WriteFrames(t testing.TB, dir, prefix, ext string, width int, frames ...int) {
	t.Helper()
	names := make([]string, 0, len(frames))
	for _, frame := range frames {
		if width > 0 {
			names = append(names, fmt.Sprintf("%s%0*d%s", prefix, width, frame, ext))
		} else {
			names = append(names, fmt.Sprintf("%s%d%s", prefix, frame, ext))
		}
	}
	WriteFiles(t, dir, names...)
}
