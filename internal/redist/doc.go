// Package redist assembles the redistributable package of a built Qt
// application.
//
// A run locates the project, reads the version marker written by the stamp
// package, checks that the platform's deployment tool is on PATH, recreates
// the staging directory and hands over to the Strategy of the host platform:
//
//   - Windows: windeployqt into staging, prune unwanted plugins, zip. The
//     zip name carries the executable's word size (procyon-1.0.0-win-x64.zip).
//   - macOS: macdeployqt on a copy of the bundle, prune, build a compressed
//     disk image with hdiutil (procyon-1.0.0.dmg).
//   - Linux: nothing is produced.
//
// The strategy is chosen once from the Platform value; nothing below it
// inspects the host again.
package redist
