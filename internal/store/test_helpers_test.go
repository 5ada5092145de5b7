package store

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saved_urls.txt"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func writeURLFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "saved_urls.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write url file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
