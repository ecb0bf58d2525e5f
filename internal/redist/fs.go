package redist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// TryRemove deletes the file at path. It reports whether a file was removed
// and never fails: absent or undeletable paths return false.
func TryRemove(path string) bool {
	return os.Remove(path) == nil
}

// removeAll applies TryRemove to each path relative to root and returns
// the relative paths that were removed.
func removeAll(root string, rels []string) []string {
	var removed []string
	for _, rel := range rels {
		if TryRemove(filepath.Join(root, filepath.FromSlash(rel))) {
			removed = append(removed, rel)
		}
	}
	return removed
}

// copyFile copies a regular file, keeping its permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyTree copies the directory src to dst, which must not exist.
// Symlinks are recreated rather than followed.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		case d.Type().IsRegular():
			return copyFile(path, target)
		default:
			return fmt.Errorf("unsupported file type: %s", path)
		}
	})
}
