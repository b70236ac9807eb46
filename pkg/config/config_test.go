package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetters(t *testing.T) {
	t.Setenv("ARENA_TEST_INT", "42")
	t.Setenv("ARENA_TEST_BAD_INT", "forty")
	t.Setenv("ARENA_TEST_FLOAT", "1.5")
	t.Setenv("ARENA_TEST_DUR", "3s")
	t.Setenv("ARENA_TEST_DUR_MS", "1500")
	t.Setenv("ARENA_TEST_BOOL", "yes")

	if got := Int("ARENA_TEST_INT", 1); got != 42 {
		t.Errorf("Int = %d, want 42", got)
	}
	if got := Int("ARENA_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("Int with bad value = %d, want default 7", got)
	}
	if got := Int("ARENA_TEST_MISSING", 9); got != 9 {
		t.Errorf("Int missing = %d, want 9", got)
	}
	if got := Float("ARENA_TEST_FLOAT", 0); got != 1.5 {
		t.Errorf("Float = %v, want 1.5", got)
	}
	if got := Duration("ARENA_TEST_DUR", 0); got != 3*time.Second {
		t.Errorf("Duration = %v, want 3s", got)
	}
	if got := Duration("ARENA_TEST_DUR_MS", 0); got != 1500*time.Millisecond {
		t.Errorf("Duration ms = %v, want 1.5s", got)
	}
	if !Bool("ARENA_TEST_BOOL", false) {
		t.Error("Bool = false, want true")
	}
	if got := String("ARENA_TEST_MISSING", "def"); got != "def" {
		t.Errorf("String missing = %q, want def", got)
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := Load(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("reads values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		if err := os.WriteFile(path, []byte("ARENA_TEST_FROM_FILE=hello\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { os.Unsetenv("ARENA_TEST_FROM_FILE") })

		if err := Load(path); err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := String("ARENA_TEST_FROM_FILE", ""); got != "hello" {
			t.Errorf("String = %q, want hello", got)
		}
	})
}
