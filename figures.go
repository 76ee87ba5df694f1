package tex2site

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/texpub/tex2site/internal/fileutil"
)

// FigureDirs are the conventional subdirectory names searched for figures.
var FigureDirs = []string{"figures", "images", "figs", "graphics"}

// FigureExtensions are the file types copied as figures.
var FigureExtensions = []string{".png", ".jpg", ".jpeg", ".pdf", ".svg"}

// FigureRelocator copies figures found next to a source document into a
// per-document directory of the site.
type FigureRelocator struct {
	SourceDir string
	DestDir   string
}

// FigureReport lists what a relocation did. Paths in Copied are destination
// paths; Skipped holds source paths rejected by the extension filter.
type FigureReport struct {
	Copied  []string
	Skipped []string
	Failed  map[string]error
}

// Found reports whether any figure candidate was located.
func (r *FigureReport) Found() bool {
	return len(r.Copied) > 0 || len(r.Failed) > 0
}

// Candidates returns the figure files to copy, in copy order: the allow-listed
// subdirectories first (in FigureDirs order), then loose files next to the
// source. Files with other extensions inside those subdirectories are returned
// as skipped. Later entries overwrite earlier ones with the same name.
func (f *FigureRelocator) Candidates() (files, skipped []string, err error) {
	for _, name := range FigureDirs {
		dir := filepath.Join(f.SourceDir, name)
		if !fileutil.DirExists(dir) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if fileutil.HasExtension(e.Name(), FigureExtensions) {
				files = append(files, path)
			} else {
				skipped = append(skipped, path)
			}
		}
	}

	entries, err := os.ReadDir(f.SourceDir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", f.SourceDir, err)
	}
	var loose []string
	for _, e := range entries {
		if e.IsDir() || !fileutil.HasExtension(e.Name(), FigureExtensions) {
			continue
		}
		loose = append(loose, filepath.Join(f.SourceDir, e.Name()))
	}
	sort.Strings(loose)

	return append(files, loose...), skipped, nil
}

// Relocate copies every candidate into DestDir, preserving file names.
// The destination directory is only created when there is something to copy.
// Individual copy failures are recorded in the report, not returned.
func (f *FigureRelocator) Relocate() (*FigureReport, error) {
	files, skipped, err := f.Candidates()
	if err != nil {
		return nil, err
	}

	report := &FigureReport{Skipped: skipped}
	if len(files) == 0 {
		return report, nil
	}

	if err := os.MkdirAll(f.DestDir, fileutil.DirPermissions); err != nil {
		return nil, fmt.Errorf("creating figures directory: %w", err)
	}

	for _, src := range files {
		dst := filepath.Join(f.DestDir, filepath.Base(src))
		if err := fileutil.CopyFile(src, dst); err != nil {
			if report.Failed == nil {
				report.Failed = make(map[string]error)
			}
			report.Failed[src] = err
			continue
		}
		report.Copied = append(report.Copied, dst)
	}

	return report, nil
}
