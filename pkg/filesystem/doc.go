// Package filesystem provides filesystem implementations for macgen.
//
// This package contains implementations of the types.FS interface:
// the standard OS filesystem, afero-backed in-memory filesystems used by
// tests, and a read-only adapter over io/fs for embedded templates.
package filesystem
