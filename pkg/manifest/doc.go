// Package manifest describes which parts of a template are materialized and
// how.
//
// A manifest is a list of records, each pairing an operation kind with a
// path reference. References are resolved through the path deriver twice:
// once with the template's placeholder name to find the source, and once
// with the new basename to find the destination. Resolution happens for the
// whole list before anything touches the filesystem, so a bad record fails
// the run without side effects.
//
// The default manifest is embedded from manifest.yaml. Adding an artifact
// to the template is a one record change there.
package manifest
