package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Release describes where a project keeps its sources, build output and
// release files. Directories are relative to the project root.
type Release struct {
	Project           string // base name of produced artifacts
	Marker            string // file identifying the project root
	BinDir            string // built binaries
	SourceDir         string // QML sources scanned by the deployment tools
	ReleaseDir        string // version files
	OutDir            string // artifacts
	RedistDir         string // staging directory, inside OutDir
	WindowsExecutable string
	MacOSBundle       string
}

// Default returns the layout of the Procyon project.
func Default() *Release {
	return &Release{
		Project:           "procyon",
		Marker:            "procyon.pro",
		BinDir:            "bin",
		SourceDir:         "src",
		ReleaseDir:        "release",
		OutDir:            "out",
		RedistDir:         "redist",
		WindowsExecutable: "procyon.exe",
		MacOSBundle:       "procyon.app",
	}
}

// Validate checks that every name is set and every directory stays inside
// the project root.
func (r *Release) Validate() error {
	names := []struct {
		field string
		value string
	}{
		{"project", r.Project},
		{"marker", r.Marker},
		{"windows_executable", r.WindowsExecutable},
		{"macos_bundle", r.MacOSBundle},
	}
	for _, n := range names {
		if err := validateName(n.value); err != nil {
			return &ValidationError{Field: n.field, Message: err.Error()}
		}
	}

	dirs := []struct {
		field string
		value string
	}{
		{"bin_dir", r.BinDir},
		{"source_dir", r.SourceDir},
		{"release_dir", r.ReleaseDir},
		{"out_dir", r.OutDir},
		{"redist_dir", r.RedistDir},
	}
	for _, d := range dirs {
		if err := validateRelativeDir(d.value); err != nil {
			return &ValidationError{Field: d.field, Message: err.Error()}
		}
	}

	if filepath.Clean(r.RedistDir) == "." {
		return &ValidationError{Field: "redist_dir", Message: "must name a subdirectory of out_dir"}
	}

	// The staging directory is wiped on every run, so it must not overlap
	// any directory holding project files.
	staging := filepath.Join(r.OutDir, r.RedistDir)
	owned := []struct {
		field string
		value string
	}{
		{"bin_dir", r.BinDir},
		{"source_dir", r.SourceDir},
		{"release_dir", r.ReleaseDir},
	}
	for _, d := range owned {
		if overlaps(staging, d.value) {
			return &ValidationError{
				Field:   "redist_dir",
				Message: fmt.Sprintf("staging directory %s overlaps %s %s", filepath.ToSlash(staging), d.field, d.value),
			}
		}
	}

	return nil
}

// overlaps reports whether a and b are the same directory or one contains
// the other. Both are relative to the project root.
func overlaps(a, b string) bool {
	a = filepath.ToSlash(filepath.Clean(a))
	b = filepath.ToSlash(filepath.Clean(b))
	return a == b || contains(a, b) || contains(b, a)
}

func contains(parent, child string) bool {
	return parent == "." || strings.HasPrefix(child, parent+"/")
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

// validateName accepts a single path element.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("cannot be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("must be a file name, not a path: %q", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid name: %q", name)
	}
	return nil
}

// validateRelativeDir rejects absolute paths and paths escaping the root.
func validateRelativeDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("cannot be empty")
	}
	if filepath.IsAbs(dir) || strings.HasPrefix(dir, "/") || strings.HasPrefix(dir, `\`) {
		return fmt.Errorf("absolute paths not allowed: %s", dir)
	}

	cleaned := filepath.ToSlash(filepath.Clean(dir))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("path traversal not allowed: %s", dir)
	}

	return nil
}
