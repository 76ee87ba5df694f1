package tex2site

// Notes:
// - Collision order is part of the contract: allow-listed directories in
//   FigureDirs order, then loose files; the last copy wins.

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	return names
}

// ---------------------------------------------------------------------------
// TestFigureRelocator_Relocate
// ---------------------------------------------------------------------------

func TestFigureRelocator_Relocate(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "papers", "P_figures")
	writeFiles(t, src, map[string]string{
		"main.tex":          `\documentclass{article}`,
		"figures/plot.png":  "png",
		"figures/notes.txt": "skip me",
		"images/photo.JPG":  "jpg",
		"graphics/d.svg":    "svg",
		"other/ignored.png": "not allow-listed",
		"diagram.pdf":       "pdf",
		"figs/nested/x.png": "nested dirs are not searched",
	})

	report, err := (&FigureRelocator{SourceDir: src, DestDir: dest}).Relocate()
	if err != nil {
		t.Fatalf("Relocate() unexpected error: %v", err)
	}

	wantCopied := []string{"d.svg", "diagram.pdf", "photo.JPG", "plot.png"}
	if got := baseNames(report.Copied); !equalStrings(got, wantCopied) {
		t.Errorf("Copied = %v, want %v", got, wantCopied)
	}
	if got := baseNames(report.Skipped); !equalStrings(got, []string{"notes.txt"}) {
		t.Errorf("Skipped = %v, want [notes.txt]", got)
	}
	if len(report.Failed) != 0 {
		t.Errorf("Failed = %v", report.Failed)
	}
	if !report.Found() {
		t.Error("Found() = false")
	}

	for _, name := range wantCopied {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Errorf("%s not copied: %v", name, err)
		}
	}
}

func TestFigureRelocator_CollisionLastWins(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := t.TempDir()
	writeFiles(t, src, map[string]string{
		"figures/fig.png":  "from figures",
		"graphics/fig.png": "from graphics",
		"fig.png":          "loose",
	})

	if _, err := (&FigureRelocator{SourceDir: src, DestDir: dest}).Relocate(); err != nil {
		t.Fatalf("Relocate() unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "fig.png"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "loose" {
		t.Errorf("fig.png = %q, want the loose file to win", data)
	}
}

func TestFigureRelocator_NoFigures(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "P_figures")
	writeFiles(t, src, map[string]string{"main.tex": "x"})

	report, err := (&FigureRelocator{SourceDir: src, DestDir: dest}).Relocate()
	if err != nil {
		t.Fatalf("Relocate() unexpected error: %v", err)
	}
	if report.Found() {
		t.Error("Found() = true without figures")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination directory created without figures")
	}
}

func TestFigureRelocator_MissingSourceDir(t *testing.T) {
	t.Parallel()

	r := &FigureRelocator{SourceDir: filepath.Join(t.TempDir(), "missing"), DestDir: t.TempDir()}
	if _, err := r.Relocate(); err == nil {
		t.Error("Relocate() error = nil for a missing source directory")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
