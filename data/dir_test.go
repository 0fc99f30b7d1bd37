package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	names := []string{"a.jpg", "b.png", "c.txt", "d.JPG", "e.jpeg"}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// Directories are ignored even with an image extension.
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}

	files, err := ListImages(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.jpg", "b.png", "d.JPG", "e.jpeg"}
	if len(files) != len(want) {
		t.Fatalf("number of files: want %d, got %d (%v)", len(want), len(files), files)
	}
	for i := range want {
		if files[i] != filepath.Join(dir, want[i]) {
			t.Errorf("at %d: want %q, got %q", i, want[i], files[i])
		}
	}
}

func TestListImagesEmpty(t *testing.T) {
	files, err := ListImages(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("want no files, got %v", files)
	}
}

func TestListImagesMissing(t *testing.T) {
	if _, err := ListImages(filepath.Join(t.TempDir(), "no-such-dir")); err == nil {
		t.Error("want error for missing directory")
	}
}
