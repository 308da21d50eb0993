// Package materialize generates a platform project from a template tree.
//
// A run has three phases:
//
//  1. Validation and planning. The source root, destination root and
//     basename must be non-empty. Paths are derived for the new basename
//     and the template manifest is resolved into concrete entries. Nothing
//     is written during this phase, so every argument or manifest error
//     leaves the destination untouched.
//  2. Directory creation. The platform root, both platform source
//     directories, the project bundle and the schemes directory are
//     created under the destination root. Existing directories are fine.
//  3. Entries. Each manifest entry is applied in order. Replace entries
//     copy with substitution and skip existing files unless Overwrite is
//     set. Append entries add the substituted template to the destination
//     file. Notify entries behave like replace entries and report every
//     file they write to Options.OnChanged.
//
// The first failing entry aborts the run. Entries already applied stay on
// disk; there is no rollback.
package materialize
