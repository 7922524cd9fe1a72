// ABOUTME: Tests for the WAV reader
// ABOUTME: Tests rejection of missing and malformed files
package decode

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadWAVMissingFile(t *testing.T) {
	_, err := ReadWAVInfo(filepath.Join(t.TempDir(), "nope.wav"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestReadWAVGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("definitely not a RIFF file"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	_, err := ReadWAVInfo(path)
	if !errors.Is(err, ErrInvalidWAV) {
		t.Errorf("expected ErrInvalidWAV, got %v", err)
	}
}
