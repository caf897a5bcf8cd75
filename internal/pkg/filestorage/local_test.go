package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	ls, err := NewLocalStorage(filepath.Join(root, "store"))
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}

	f, err := ls.SaveBytes("spool", "Leaving_Certificate_Asha.PDF", []byte("%PDF-1.3"))
	if err != nil {
		t.Fatalf("SaveBytes: %v", err)
	}
	if !strings.HasPrefix(f.Path, "spool/") || !strings.HasSuffix(f.Path, ".pdf") {
		t.Errorf("path = %q", f.Path)
	}
	if f.FileSize != 8 || f.Filename != "Leaving_Certificate_Asha.PDF" {
		t.Errorf("stored = %+v", f)
	}

	data, err := os.ReadFile(ls.GetFullPath(f.Path))
	if err != nil || string(data) != "%PDF-1.3" {
		t.Fatalf("read back %q, %v", data, err)
	}

	if err := ls.DeleteFile(f.Path); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if err := ls.DeleteFile(f.Path); err != nil {
		t.Errorf("second delete should be a no-op, got %v", err)
	}
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ls.SaveBytes("../outside", "a.pdf", nil); err == nil {
		t.Error("expected an error for a parent path")
	}
	if got := ls.GetFullPath("../etc/passwd"); got != "" {
		t.Errorf("GetFullPath escaped the root: %q", got)
	}
	if err := ls.DeleteFile(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}
