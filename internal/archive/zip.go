// Package archive packs a staging directory into a redistributable zip.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
)

// epoch is the modification time stamped on every entry, so that identical
// trees produce identical archives.
var epoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// ZipOptions configures Zip.
type ZipOptions struct {
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	// Description labels the progress bar.
	Description string
}

type entry struct {
	path string
	name string
	info fs.FileInfo
}

// Zip writes every regular file under srcDir to a new archive at dest.
// Entry names are relative to srcDir with forward slashes, in lexical order.
// It returns the number of files written.
func Zip(srcDir, dest string, opts ZipOptions) (int, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return 0, fmt.Errorf("source directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("source path is not a directory: %s", srcDir)
	}

	entries, total, err := collect(srcDir)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create archive: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = newBar(opts.Progress, total, opts.Description)
	}

	if err := write(out, entries, bar); err != nil {
		out.Close()
		os.Remove(dest)
		return 0, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return 0, fmt.Errorf("close archive: %w", err)
	}
	if bar != nil {
		_ = bar.Finish()
	}

	return len(entries), nil
}

// collect walks srcDir in lexical order and returns its regular files.
func collect(srcDir string) ([]entry, int64, error) {
	var entries []entry
	var total int64

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, entry{path: path, name: filepath.ToSlash(rel), info: info})
		total += info.Size()
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walk %s: %w", srcDir, err)
	}

	return entries, total, nil
}

func write(out io.Writer, entries []entry, bar *progressbar.ProgressBar) error {
	zw := zip.NewWriter(out)

	for _, e := range entries {
		header, err := zip.FileInfoHeader(e.info)
		if err != nil {
			return fmt.Errorf("header for %s: %w", e.name, err)
		}
		header.Name = e.name
		header.Method = zip.Deflate
		header.Modified = epoch

		w, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("add %s: %w", e.name, err)
		}

		if err := copyFile(w, e.path, bar); err != nil {
			return fmt.Errorf("add %s: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	return nil
}

func copyFile(w io.Writer, path string, bar *progressbar.ProgressBar) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if bar != nil {
		w = io.MultiWriter(w, bar)
	}
	_, err = io.Copy(w, f)
	return err
}

func newBar(w io.Writer, total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}
