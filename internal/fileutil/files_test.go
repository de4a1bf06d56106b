package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsImage(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"photo.png", true},
		{"scan.bmp", true},
		{"anim.gif", true},
		{"clip.mp4", false},
		{"notes.txt", false},
		{"noext", false},
	}

	for _, test := range tests {
		if result := IsImage(test.path); result != test.expected {
			t.Errorf("IsImage(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestIsVideo(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"clip.mp4", true},
		{"clip.MOV", true},
		{"clip.avi", true},
		{"clip.mkv", true},
		{"photo.jpg", false},
		{"clip.webm", false},
	}

	for _, test := range tests {
		if result := IsVideo(test.path); result != test.expected {
			t.Errorf("IsVideo(%q) = %v, expected %v", test.path, result, test.expected)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.jpg"))
	mustWrite(t, filepath.Join(dir, "b.mp4"))
	mustWrite(t, filepath.Join(dir, "notes.txt"))
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, "sub", "c.png"))

	images, videos, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("ScanDirectory: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("got %d images, expected 2: %v", len(images), images)
	}
	if len(videos) != 1 {
		t.Errorf("got %d videos, expected 1: %v", len(videos), videos)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.jpg")
	vid := filepath.Join(dir, "b.mkv")
	mustWrite(t, img)
	mustWrite(t, vid)

	images, videos, err := CollectInputs([]string{img, vid, dir})
	if err != nil {
		t.Fatalf("CollectInputs: %v", err)
	}
	// Explicit files plus the directory scan picking them up again.
	if len(images) != 2 || len(videos) != 2 {
		t.Errorf("got %d images / %d videos, expected 2/2", len(images), len(videos))
	}

	if _, _, err := CollectInputs([]string{filepath.Join(dir, "missing.jpg")}); err == nil {
		t.Error("expected error for missing input")
	}
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.jpg")

	out, err := OutputPath(input, "", "")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	expected := filepath.Join(dir, ProcessedDirName, "photo_nowm.jpg")
	if out != expected {
		t.Errorf("OutputPath = %s, expected %s", out, expected)
	}
	if out == input {
		t.Error("output path must differ from input path")
	}
	if _, err := os.Stat(filepath.Join(dir, ProcessedDirName)); err != nil {
		t.Errorf("processed dir not created: %v", err)
	}
}

func TestOutputPath_CustomDirAndSuffix(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "cleaned")

	out, err := OutputPath(filepath.Join(dir, "clip.mp4"), outDir, "_clean")
	if err != nil {
		t.Fatalf("OutputPath: %v", err)
	}
	expected := filepath.Join(outDir, "clip_clean.mp4")
	if out != expected {
		t.Errorf("OutputPath = %s, expected %s", out, expected)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}
