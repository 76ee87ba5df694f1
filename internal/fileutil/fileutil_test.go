package fileutil_test

// Notes:
// - CopyFile: the io.Copy and Close error branches are not tested because
//   triggering disk write failures is platform-specific.
// - IsWritableDir: read-only directories are not tested because tests may run
//   as root, which ignores permission bits.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/texpub/tex2site/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestFileExists / TestDirExists - Existence checks
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "regular file", path: file, want: true},
		{name: "directory", path: dir, want: false},
		{name: "missing", path: filepath.Join(dir, "missing"), want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileutil.DirExists(dir) {
		t.Error("DirExists(dir) = false, want true")
	}
	if fileutil.DirExists(file) {
		t.Error("DirExists(file) = true, want false")
	}
	if fileutil.DirExists(filepath.Join(dir, "missing")) {
		t.Error("DirExists(missing) = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestIsFilePath - Name vs path detection
// ---------------------------------------------------------------------------

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"site", false},
		{"my-site", false},
		{"./site.yaml", true},
		{"/etc/site.yaml", true},
		{`C:\site.yaml`, true},
		{"sub/dir", true},
	}

	for _, tt := range tests {
		if got := fileutil.IsFilePath(tt.input); got != tt.want {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHasExtension - Case-insensitive extension matching
// ---------------------------------------------------------------------------

func TestHasExtension(t *testing.T) {
	t.Parallel()

	exts := []string{".png", ".jpg"}

	tests := []struct {
		path string
		want bool
	}{
		{"plot.png", true},
		{"PLOT.PNG", true},
		{"photo.Jpg", true},
		{"notes.txt", false},
		{"png", false},
		{"archive.png.zip", false},
	}

	for _, tt := range tests {
		if got := fileutil.HasExtension(tt.path, exts); got != tt.want {
			t.Errorf("HasExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCopyFile - Content, mode and mtime preservation
// ---------------------------------------------------------------------------

func TestCopyFile(t *testing.T) {
	t.Parallel()

	t.Run("copies content and preserves mtime", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src.png")
		dst := filepath.Join(dir, "dst.png")
		if err := os.WriteFile(src, []byte("PNGDATA"), 0o600); err != nil {
			t.Fatal(err)
		}
		mtime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		if err := os.Chtimes(src, mtime, mtime); err != nil {
			t.Fatal(err)
		}

		if err := fileutil.CopyFile(src, dst); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}

		got, err := os.ReadFile(dst)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "PNGDATA" {
			t.Errorf("content = %q, want %q", got, "PNGDATA")
		}

		info, err := os.Stat(dst)
		if err != nil {
			t.Fatal(err)
		}
		if !info.ModTime().Equal(mtime) {
			t.Errorf("mtime = %v, want %v", info.ModTime(), mtime)
		}
	})

	t.Run("overwrites existing destination", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src.svg")
		dst := filepath.Join(dir, "dst.svg")
		if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(dst, []byte("old and longer"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := fileutil.CopyFile(src, dst); err != nil {
			t.Fatalf("CopyFile() error = %v", err)
		}

		got, _ := os.ReadFile(dst)
		if string(got) != "new" {
			t.Errorf("content = %q, want %q", got, "new")
		}
	})

	t.Run("directory source is rejected", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.CopyFile(dir, filepath.Join(dir, "out"))
		if !errors.Is(err, fileutil.ErrNotRegularFile) {
			t.Errorf("error = %v, want ErrNotRegularFile", err)
		}
	})

	t.Run("same file is rejected", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "a.png")
		if err := os.WriteFile(src, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		err := fileutil.CopyFile(src, src)
		if !errors.Is(err, fileutil.ErrSameFile) {
			t.Errorf("error = %v, want ErrSameFile", err)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fileutil.CopyFile(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWriteFile - Parent creation
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "papers", "nested", "page.html")

	if err := fileutil.WriteFile(path, []byte("<h1>x</h1>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "<h1>x</h1>" {
		t.Errorf("content = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestIsWritableDir - Probe file
// ---------------------------------------------------------------------------

func TestIsWritableDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if !fileutil.IsWritableDir(dir) {
		t.Error("IsWritableDir(tempdir) = false, want true")
	}
	if fileutil.IsWritableDir(filepath.Join(dir, "missing")) {
		t.Error("IsWritableDir(missing) = true, want false")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file left behind: %v", entries)
	}
}
