package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "translation.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	now := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)
	archived, err := ArchiveFile(path, now)
	if err != nil {
		t.Fatalf("ArchiveFile failed: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("original file still exists after archiving")
	}
	want := filepath.Join(tmpDir, Dir, "translation-20240301-123045.txt")
	if archived != want {
		t.Errorf("archived path = %s, want %s", archived, want)
	}
	content, err := os.ReadFile(archived)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(content) != "old\n" {
		t.Errorf("archived content = %q", content)
	}
}

func TestArchiveFileMissing(t *testing.T) {
	archived, err := ArchiveFile(filepath.Join(t.TempDir(), "translation.txt"), time.Now())
	if err != nil {
		t.Errorf("expected no error for missing file, got %v", err)
	}
	if archived != "" {
		t.Errorf("expected empty path, got %s", archived)
	}
}

func TestArchiveFileSameSecond(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "translation.txt")
	now := time.Date(2024, 3, 1, 12, 30, 45, 123456000, time.UTC)

	var paths []string
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte("v"), 0644); err != nil {
			t.Fatal(err)
		}
		p, err := ArchiveFile(path, now)
		if err != nil {
			t.Fatalf("ArchiveFile failed: %v", err)
		}
		paths = append(paths, p)
	}

	if paths[0] == paths[1] {
		t.Fatalf("archives collided: %s", paths[0])
	}
	if !strings.Contains(paths[1], ".123456") {
		t.Errorf("expected microsecond suffix, got %s", paths[1])
	}
	entries, _ := os.ReadDir(filepath.Join(tmpDir, Dir))
	if len(entries) != 2 {
		t.Errorf("expected 2 archived files, got %d", len(entries))
	}
}
