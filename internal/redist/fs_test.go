package redist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/redist/internal/platform"
)

func TestTryRemove(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "libEGL.dll")
	touch(t, file)
	full := filepath.Join(dir, "sqldrivers")
	touch(t, filepath.Join(full, "qsqlite.dll"))

	if !TryRemove(file) {
		t.Error("TryRemove(existing) = false")
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("file still exists")
	}
	if TryRemove(file) {
		t.Error("TryRemove(absent) = true")
	}
	if TryRemove(full) {
		t.Error("TryRemove(non-empty dir) = true")
	}
}

func TestRemoveAll(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "libEGL.dll"))
	touch(t, filepath.Join(dir, "imageformats", "qtga.dll"))
	touch(t, filepath.Join(dir, "imageformats", "qjpeg.dll"))

	removed := removeAll(dir, windowsDenyList)
	if len(removed) != 2 || removed[0] != "libEGL.dll" || removed[1] != "imageformats/qtga.dll" {
		t.Errorf("removed = %v", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "imageformats", "qjpeg.dll")); err != nil {
		t.Error("kept file removed")
	}
}

func TestPathHint(t *testing.T) {
	tests := map[platform.Platform]string{
		platform.Windows: `set PATH=c:\Qt\5.12.0\mingw73_64\bin;%PATH%`,
		platform.MacOS:   "export PATH=/Users/user/Qt/5.10.0/clang_64/bin:$PATH",
		platform.Linux:   "export PATH=/home/user/Qt/5.10.0/gcc_64/bin:$PATH",
	}
	for p, want := range tests {
		if got := PathHint(p); got != want {
			t.Errorf("PathHint(%s) = %q, want %q", p, got, want)
		}
	}
	if got := PathHint(platform.Platform("plan9")); got != "" {
		t.Errorf("PathHint(unknown) = %q", got)
	}
}
