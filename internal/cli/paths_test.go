package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/kitchenrun/pkg/config"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestFileCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	cfg := config.Default()
	if dir, _ := fileCacheDir(cfg); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("default dir = %q", dir)
	}
	cfg.Cache.Dir = "/srv/kitchenrun"
	if dir, _ := fileCacheDir(cfg); dir != "/srv/kitchenrun" {
		t.Errorf("configured dir = %q", dir)
	}
}
