package fileops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.aux")
	dest := filepath.Join(dir, "dest.aux")

	content := []byte("auxiliary file content")
	if err := os.WriteFile(src, content, 0o644); err != nil {
		t.Fatalf("Failed to write source file: %s", err)
	}

	if err := AtomicCopy(src, dest); err != nil {
		t.Fatalf("AtomicCopy failed: %s", err)
	}

	copied, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Failed to read destination: %s", err)
	}
	if string(copied) != string(content) {
		t.Errorf("Content mismatch: expected %q, got %q", content, copied)
	}

	// No temp file left behind.
	if _, err := os.Stat(dest + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be gone, stat err: %v", err)
	}
}

func TestAtomicCopyOverwritesDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.log")
	dest := filepath.Join(dir, "dest.log")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("Failed to write source file: %s", err)
	}
	if err := os.WriteFile(dest, []byte("old"), 0o644); err != nil {
		t.Fatalf("Failed to write destination file: %s", err)
	}

	if err := AtomicCopy(src, dest); err != nil {
		t.Fatalf("AtomicCopy failed: %s", err)
	}

	copied, _ := os.ReadFile(dest)
	if string(copied) != "new" {
		t.Errorf("Expected destination to be overwritten, got %q", copied)
	}
}

func TestAtomicCopyMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := AtomicCopy(filepath.Join(dir, "absent"), filepath.Join(dir, "dest"))
	if err == nil {
		t.Fatal("Expected error for missing source, got nil")
	}

	// Failure must not leave a partial destination or temp file.
	if _, statErr := os.Stat(filepath.Join(dir, "dest")); !os.IsNotExist(statErr) {
		t.Errorf("Expected no destination file, stat err: %v", statErr)
	}
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("EnsureDirectoryExists failed: %s", err)
	}
	if err := EnsureDirectoryExists(nested); err != nil {
		t.Fatalf("EnsureDirectoryExists must be idempotent, got: %s", err)
	}

	info, err := os.Stat(nested)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %s", err)
	}
	if !info.IsDir() {
		t.Error("Expected a directory")
	}
}
