// Package types defines the interfaces shared across macgen packages,
// most importantly the FS abstraction that lets the materializer run
// against the real filesystem, an in-memory one, or an embedded template.
package types
