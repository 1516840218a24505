package asset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	v, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile error: %v", err)
	}
	if v.Format != "matroska" {
		t.Fatalf("format = %q, want matroska", v.Format)
	}
	if v.Name() != "clip.mkv" {
		t.Fatalf("name = %q", v.Name())
	}
	if v.ID() != path {
		t.Fatalf("identity should be the absolute path, got %q", v.ID())
	}
}

func TestFromFileErrors(t *testing.T) {
	if _, err := FromFile(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := FromFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := FromFile(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}

func TestContainerFormat(t *testing.T) {
	cases := map[string]string{
		"a.mp4":  "mp4",
		"a.m4v":  "mp4",
		"a.webm": "webm",
		"a.MOV":  "mov",
		"a.ogv":  "ogv",
	}
	for path, want := range cases {
		if got := ContainerFormat(path); got != want {
			t.Fatalf("ContainerFormat(%q) = %q, want %q", path, got, want)
		}
	}
}
