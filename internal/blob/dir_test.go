package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDirStorage_Save(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStorage(dir, "http://127.0.0.1:8000/")
	if err != nil {
		t.Fatalf("NewDirStorage failed: %v", err)
	}

	url, err := s.Save(context.Background(), "abc-receipt.jpg", strings.NewReader("jpeg bytes"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if url != "http://127.0.0.1:8000/uploads/abc-receipt.jpg" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, "abc-receipt.jpg"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("stored content = %q", data)
	}
}

func TestDirStorage_FlattensObjectName(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStorage(dir, "http://x")
	if err != nil {
		t.Fatalf("NewDirStorage failed: %v", err)
	}

	url, err := s.Save(context.Background(), "../../etc/passwd", strings.NewReader("nope"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasSuffix(url, "/uploads/passwd") {
		t.Errorf("url = %q", url)
	}
	if _, err := os.Stat(filepath.Join(dir, "passwd")); err != nil {
		t.Errorf("file not written inside the storage dir: %v", err)
	}
}
