// Package stamp writes a release version into the files that carry it:
// qmake build settings, the Windows resource script and the version marker
// read later by the packager.
//
// All writes go through a go-billy filesystem rooted at the release
// directory, so tests run against memfs and the CLI against osfs.
package stamp
