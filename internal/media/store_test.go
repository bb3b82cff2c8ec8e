package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStore_SaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	url, err := s.Save("pump-house.JPG", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url %q missing public prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url %q should keep a lower-cased extension", url)
	}

	key := strings.TrimPrefix(url, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		t.Fatalf("read stored object: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("stored content mismatch: %q", data)
	}
}

func TestDiskStore_SameFilenameDoesNotCollide(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "/uploads")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	a, err := s.Save("flood.png", strings.NewReader("first"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	b, err := s.Save("flood.png", strings.NewReader("second"))
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if a == b {
		t.Fatalf("two uploads of the same filename share key %q", a)
	}
}

func TestDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewDiskStore(dir, "/uploads"); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected upload directory to exist: %v", err)
	}
}
