package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/loopchart/internal/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := filepath.Join(t.TempDir(), "custom-cache")
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfiguredCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(os.Stderr, LogInfo)
	dir, err := c.configuredCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("default = %q, want %q", dir, want)
	}

	cfg := config.Default()
	cfg.Cache.Dir = "/srv/loopchart-cache"
	c.cfg = cfg
	if dir, _ := c.configuredCacheDir(); dir != "/srv/loopchart-cache" {
		t.Errorf("configured = %q", dir)
	}
}
