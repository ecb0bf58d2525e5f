// Package testutil provides fixtures for testing the release pipeline in
// isolation.
package testutil

import (
	"path/filepath"
	"testing"
)

// VersionPri is a qmake version settings fixture.
const VersionPri = `APP_VER_MAJOR=0
APP_VER_MINOR=1
APP_VER_PATCH=0
APP_VER_CODENAME=
APP_VER_YEAR=2018
APP_VER=0.1.0
DEFINES += APP_VER=\\\"$$APP_VER\\\"
`

// VersionRCTemplate is a Windows resource script template fixture.
const VersionRCTemplate = `FILEVERSION {v1},{v2},{v3},{v4}
VALUE "LegalCopyright", "Copyright (C) {year}"
VALUE "ProductVersion", "{v1}.{v2}.{v3} {codename}"
`

// NewProject lays out a Procyon project under a fresh temp directory and
// returns its root:
//
//	procyon.pro
//	release/version.pri, release/version.rc.template
//	release/version.txt      (only when version is non-empty)
//	bin/procyon.exe          (64-bit PE image)
//	bin/procyon.app/...      (minimal bundle)
//	src/main.qml
func NewProject(t *testing.T, version string) string {
	t.Helper()

	root := t.TempDir()

	WriteFile(t, filepath.Join(root, "procyon.pro"), []byte("TEMPLATE = app\n"))
	WriteFile(t, filepath.Join(root, "release", "version.pri"), []byte(VersionPri))
	WriteFile(t, filepath.Join(root, "release", "version.rc.template"), []byte(VersionRCTemplate))
	if version != "" {
		WriteFile(t, filepath.Join(root, "release", "version.txt"), []byte(version))
	}

	WritePE(t, filepath.Join(root, "bin", "procyon.exe"), MagicPE32Plus)
	WriteFile(t, filepath.Join(root, "bin", "procyon.app", "Contents", "Info.plist"), []byte("<plist/>\n"))
	WriteFile(t, filepath.Join(root, "bin", "procyon.app", "Contents", "MacOS", "procyon"), []byte("\xcf\xfa\xed\xfe"))
	WriteFile(t, filepath.Join(root, "src", "main.qml"), []byte("import QtQuick 2.0\n"))

	return root
}

// IsolatePath points PATH at an empty directory for the rest of the test,
// so no external tool can be found.
func IsolatePath(t *testing.T) {
	t.Helper()
	t.Setenv("PATH", t.TempDir())
}
