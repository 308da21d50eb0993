// Package fileutil copies template files and directories into a project
// while renaming a placeholder token in both paths and contents.
//
// The four entry points mirror the operations a template manifest can
// request:
//
//   - CreateDir: idempotent recursive directory creation
//   - CopyAndReplaceAll: recursive copy with substitution, honoring the
//     overwrite policy
//   - AppendToExistingFile: append substituted content, never truncating
//   - CopyAndReplaceWithChangedCallback: CopyAndReplaceAll plus a callback
//     fired once per file actually written
//
// With overwrite disabled an existing destination file is left untouched.
// Skips are logged: at warn level when the existing file differs from what
// the template would produce, at debug level otherwise.
package fileutil
