package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/redist/internal/stamp"
)

func TestLocate(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "procyon.pro"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "src", "ui", "qml")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	want, err := filepath.Abs(root)
	if err != nil {
		t.Fatal(err)
	}

	for _, start := range []string{root, filepath.Join(root, "src"), nested} {
		got, err := Locate(start, "procyon.pro")
		if err != nil {
			t.Fatalf("Locate(%s) error = %v", start, err)
		}
		if got != want {
			t.Errorf("Locate(%s) = %s, want %s", start, got, want)
		}
	}
}

func TestLocate_NotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := Locate(dir, "redist-test-marker-that-does-not-exist.pro")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("Locate() error = %v, want ErrProjectNotFound", err)
	}
}

func TestLocate_MarkerDirectoryIgnored(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "redist-marker-dir.pro"), 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Locate(root, "redist-marker-dir.pro"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("Locate() error = %v, want ErrProjectNotFound", err)
	}
}

func TestReadVersion(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    string
		wantErr bool
	}{
		{name: "exact", content: ptr("0.2.0-alpha2"), want: "0.2.0-alpha2"},
		{name: "trailing newline", content: ptr("1.0.0\r\n"), want: "1.0.0"},
		{name: "surrounding space", content: ptr("  1.0.0  "), want: "1.0.0"},
		{name: "empty", content: ptr("\n"), wantErr: true},
		{name: "missing", content: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				if err := os.WriteFile(filepath.Join(dir, stamp.MarkerFile), []byte(*tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}

			got, err := ReadVersion(dir)
			if tt.wantErr {
				if !errors.Is(err, stamp.ErrMissingVersionArtifact) {
					t.Fatalf("ReadVersion() error = %v, want ErrMissingVersionArtifact", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadVersion() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func ptr(s string) *string { return &s }
