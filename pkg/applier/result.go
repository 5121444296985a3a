package applier

import (
	"fmt"
	"log/slog"
	"time"
)

// ManagedFile is one artifact the run produced (or previewed).
type ManagedFile struct {
	Path string `json:"path" yaml:"path"`
	Size int64  `json:"size" yaml:"size"`
}

// Warning is a non-fatal problem encountered during the run.
type Warning struct {
	Message string `json:"message" yaml:"message"`
	Err     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result summarizes an apply run.
type Result struct {
	Files      []ManagedFile `json:"files" yaml:"files"`
	TotalFiles int           `json:"total_files" yaml:"total_files"`
	TotalSize  int64         `json:"total_size" yaml:"total_size"`
	Warnings   []Warning     `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration   time.Duration `json:"duration" yaml:"duration"`
	DryRun     bool          `json:"dry_run" yaml:"dry_run"`
}

// TableHeader returns the table column names.
func (r *Result) TableHeader() []string {
	return []string{"PATH", "SIZE"}
}

// TableRows returns one row per managed file.
func (r *Result) TableRows() [][]string {
	rows := make([][]string, 0, len(r.Files))
	for _, f := range r.Files {
		rows = append(rows, []string{f.Path, fmt.Sprintf("%d", f.Size)})
	}
	return rows
}

func (r *Result) recordFile(path string, size int64) {
	r.Files = append(r.Files, ManagedFile{Path: path, Size: size})
	r.TotalFiles++
	r.TotalSize += size
}

func (r *Result) warn(msg string, err error) {
	w := Warning{Message: msg}
	if err != nil {
		w.Err = err.Error()
		slog.Warn(msg, "error", err)
	} else {
		slog.Warn(msg)
	}
	r.Warnings = append(r.Warnings, w)
}
