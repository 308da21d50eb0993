// Package install prepares a generated project for its first run.
//
// Installing has two steps. The project's package.json gets a start script
// for the platform packager, then the project's package manager installs
// dependencies. The manifest patch is a pure function over the document
// bytes (PatchScripts); reading and writing the file go through a
// ManifestStore so the patch can be tested without touching disk.
//
// The package manager is chosen by a single probe: if the configured lock
// file exists in the project directory the preferred manager runs,
// otherwise the fallback does. Installation runs synchronously and a
// non-zero exit is returned as a SUBPROCESS error. There are no retries.
package install
