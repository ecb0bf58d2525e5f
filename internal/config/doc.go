// Package config loads the optional release description of a project.
//
// A project may ship release/release.lua describing its layout. The file is
// evaluated in a sandboxed gopher-lua VM with the read-only platform table
// injected, and must leave a global "release" table behind:
//
//	release = {
//	  project = "procyon",
//	  bin_dir = platform.is_windows and "bin" or "build/bin",
//	}
//
// Keys that are not set keep the values from Default. A project without a
// release.lua uses Default unchanged.
//
// The sandbox removes os, io, debug and every way of loading further code,
// so a config can only compute values.
package config
