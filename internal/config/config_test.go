package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestSetThenGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)

	Load()
	if err := Set(KeyGitHubURL, "http://mirror.local"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".viewport", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyGitHubURL); got != "http://mirror.local" {
		t.Errorf("Get(%q) = %q, want %q", KeyGitHubURL, got, "http://mirror.local")
	}
}

func TestRCPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	Load()

	got, err := RCPath()
	if err != nil {
		t.Fatalf("RCPath failed: %v", err)
	}
	if want := filepath.Join(home, ".viewportrc"); got != want {
		t.Errorf("RCPath() = %q, want %q", got, want)
	}

	t.Setenv("VIEWPORT_RC_FILE", "/tmp/custom.rc")
	got, err = RCPath()
	if err != nil {
		t.Fatalf("RCPath failed: %v", err)
	}
	if got != "/tmp/custom.rc" {
		t.Errorf("RCPath() with env = %q, want %q", got, "/tmp/custom.rc")
	}
}
