// Package project finds the project root and reads its release marker.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/redist/internal/stamp"
)

// ErrProjectNotFound indicates no directory up to the filesystem root holds the marker.
var ErrProjectNotFound = errors.New("project not found")

// Locate returns the first of start and its ancestors containing marker.
func Locate(start, marker string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && !info.IsDir() {
			return dir, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("check %s: %w", dir, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s in %s or any parent directory", ErrProjectNotFound, marker, start)
		}
		dir = parent
	}
}

// ReadVersion returns the trimmed content of the version marker in releaseDir.
func ReadVersion(releaseDir string) (string, error) {
	path := filepath.Join(releaseDir, stamp.MarkerFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &stamp.MissingArtifactError{Path: path}
		}
		return "", fmt.Errorf("read version marker: %w", err)
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("%s is empty: %w", path, stamp.ErrMissingVersionArtifact)
	}
	return v, nil
}
