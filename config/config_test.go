package config

import (
	"os"
	"testing"
)

// unset clears an env var for the test while keeping t.Setenv's restore.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadClientDefaults(t *testing.T) {
	unset(t, "SHIPS_SERVER_URL")
	unset(t, "SHIPS_WINDOW_WIDTH")
	unset(t, "SHIPS_WINDOW_HEIGHT")
	c, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if c.ServerURL != "ws://localhost:8080/ws" {
		t.Fatalf("ServerURL = %q", c.ServerURL)
	}
	if c.Width != 800 || c.Height != 600 {
		t.Fatalf("window = %dx%d, want 800x600", c.Width, c.Height)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("SHIPS_LISTEN_ADDR", ":9999")
	t.Setenv("SHIPS_MOVE_STEP", "0.1")
	s, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if s.Addr != ":9999" || s.Step != 0.1 {
		t.Fatalf("unexpected config: %+v", s)
	}
}

func TestLoadServerRejectsBadTickRate(t *testing.T) {
	t.Setenv("SHIPS_TICK_RATE", "0")
	if _, err := LoadServer(); err == nil {
		t.Fatal("want error for zero tick rate")
	}
}
