package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output", "nested", "transcript.txt")
	body := "Speaker 1: hi there\n\nSpeaker 2: bob"

	if err := WriteFile(path, body); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != body {
		t.Fatalf("file content = %q, want %q", got, body)
	}
}

func TestWriteFileBarePath(t *testing.T) {
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(old)

	if err := WriteFile("transcript.txt", "hello"); err != nil {
		t.Fatalf("WriteFile without a directory component: %v", err)
	}
}

func TestWriteFileReportsFailure(t *testing.T) {
	dir := t.TempDir()
	// A file standing where the parent directory should go makes MkdirAll fail.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(filepath.Join(blocker, "out.txt"), "body"); err == nil {
		t.Fatal("expected an error when the parent path is a file")
	}
}
