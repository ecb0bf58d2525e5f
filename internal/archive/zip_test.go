package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readZip(t *testing.T, path string) map[string]string {
	t.Helper()
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()

	got := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		got[f.Name] = string(data)
	}
	return got
}

func TestZip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"procyon.exe":              "MZ...",
		"Qt5Core.dll":              "core",
		"platforms/qwindows.dll":   "win",
		"imageformats/qjpeg.dll":   "jpeg",
		"qml/QtQuick/qmldir":       "module QtQuick",
		"qml/QtQuick/Controls.qml": "Item {}",
	})
	if err := os.MkdirAll(filepath.Join(src, "empty"), 0755); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "procyon-1.0.0-win-x64.zip")
	count, err := Zip(src, dest, ZipOptions{})
	if err != nil {
		t.Fatalf("Zip() error = %v", err)
	}
	if count != 6 {
		t.Errorf("count = %d, want 6", count)
	}

	got := readZip(t, dest)
	if got["platforms/qwindows.dll"] != "win" {
		t.Errorf("entries = %v", got)
	}
	if _, ok := got["empty"]; ok {
		t.Error("directories must not be archived")
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
		if f.Method != zip.Deflate {
			t.Errorf("%s method = %d, want Deflate", f.Name, f.Method)
		}
		if !f.Modified.Equal(epoch) {
			t.Errorf("%s modified = %v, want %v", f.Name, f.Modified, epoch)
		}
	}
	want := []string{
		"Qt5Core.dll",
		"imageformats/qjpeg.dll",
		"platforms/qwindows.dll",
		"procyon.exe",
		"qml/QtQuick/Controls.qml",
		"qml/QtQuick/qmldir",
	}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestZip_Deterministic(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"a.dll":     "aaaa",
		"sub/b.dll": "bbbb",
	})

	dir := t.TempDir()
	first := filepath.Join(dir, "first.zip")
	if _, err := Zip(src, first, ZipOptions{}); err != nil {
		t.Fatal(err)
	}

	later := time.Now().Add(48 * time.Hour)
	if err := os.Chtimes(filepath.Join(src, "a.dll"), later, later); err != nil {
		t.Fatal(err)
	}

	second := filepath.Join(dir, "second.zip")
	if _, err := Zip(src, second, ZipOptions{}); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("archives of identical trees differ")
	}
}

func TestZip_SkipsSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	src := t.TempDir()
	writeTree(t, src, map[string]string{"real.dll": "x"})
	if err := os.Symlink("real.dll", filepath.Join(src, "link.dll")); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "out.zip")
	count, err := Zip(src, dest, ZipOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestZip_Progress(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a.dll": "some bytes"})

	var progress bytes.Buffer
	dest := filepath.Join(t.TempDir(), "out.zip")
	if _, err := Zip(src, dest, ZipOptions{Progress: &progress, Description: "packing"}); err != nil {
		t.Fatal(err)
	}
	if progress.Len() == 0 {
		t.Error("expected progress output")
	}
}

func TestZip_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Zip(filepath.Join(dir, "missing"), filepath.Join(dir, "a.zip"), ZipOptions{}); err == nil {
		t.Error("expected error for missing source")
	}
	if _, err := Zip(file, filepath.Join(dir, "b.zip"), ZipOptions{}); err == nil {
		t.Error("expected error for non-directory source")
	}
	if _, err := Zip(dir, filepath.Join(dir, "no", "such", "c.zip"), ZipOptions{}); err == nil {
		t.Error("expected error for unwritable destination")
	}
}
