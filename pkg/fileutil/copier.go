package fileutil

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/logging"
	"github.com/arthur-debert/macgen/pkg/types"
	"github.com/rs/zerolog"
)

// ChangedFunc is called with the destination path of every file written
type ChangedFunc func(path string)

// Options configures a Copier
type Options struct {
	// Source is read from; defaults to the OS filesystem.
	Source types.FS
	// Dest is written to; defaults to the OS filesystem.
	Dest types.FS
	// Permissions default to the embedded configuration.
	Permissions *config.Permissions
	// Logger defaults to the "fileutil" component logger.
	Logger *zerolog.Logger
}

// Copier performs template copy operations between two filesystems
type Copier struct {
	src    types.FS
	dst    types.FS
	perms  config.Permissions
	logger zerolog.Logger
}

// New creates a Copier
func New(opts Options) *Copier {
	logger := logging.GetLogger("fileutil")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	src := opts.Source
	if src == nil {
		src = filesystem.NewOS()
	}
	dst := opts.Dest
	if dst == nil {
		dst = filesystem.NewOS()
	}

	perms := config.Default().Permissions
	if opts.Permissions != nil {
		perms = *opts.Permissions
	}

	return &Copier{src: src, dst: dst, perms: perms, logger: logger}
}

// Result records what a copy operation did, as destination paths
type Result struct {
	Written  []string
	Skipped  []string
	Appended []string
}

// Merge appends other's entries to r
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Written = append(r.Written, other.Written...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Appended = append(r.Appended, other.Appended...)
}

// CreateDir creates path and any missing parents. Existing directories are
// not an error.
func (c *Copier) CreateDir(path string) error {
	if err := c.dst.MkdirAll(path, c.perms.Directory.Mode()); err != nil {
		return errors.FileSystem(err, "create directory", path)
	}
	c.logger.Trace().Str("path", path).Msg("Directory ensured")
	return nil
}

// CopyAndReplaceAll copies source (a file or a directory tree) to
// destRoot/destRel, substituting tokens in path segments below destRel and
// in text file contents.
func (c *Copier) CopyAndReplaceAll(source, destRoot, destRel string, subs Substitutions, overwrite bool) (*Result, error) {
	return c.CopyAndReplaceWithChangedCallback(source, destRoot, destRel, subs, overwrite, nil)
}

// CopyAndReplaceWithChangedCallback behaves like CopyAndReplaceAll and calls
// onChanged once for every file it writes. Skipped files do not trigger it.
func (c *Copier) CopyAndReplaceWithChangedCallback(source, destRoot, destRel string, subs Substitutions, overwrite bool, onChanged ChangedFunc) (*Result, error) {
	result := &Result{}
	if err := c.copyTree(source, filepath.Join(destRoot, destRel), subs, overwrite, onChanged, result); err != nil {
		return result, err
	}
	return result, nil
}

func (c *Copier) copyTree(source, dest string, subs Substitutions, overwrite bool, onChanged ChangedFunc, result *Result) error {
	info, err := c.src.Stat(source)
	if err != nil {
		return errors.FileSystem(err, "stat template", source)
	}

	if !info.IsDir() {
		return c.copyFile(source, info, dest, subs, overwrite, onChanged, result)
	}

	if err := c.CreateDir(dest); err != nil {
		return err
	}
	entries, err := c.src.ReadDir(source)
	if err != nil {
		return errors.FileSystem(err, "read template directory", source)
	}
	for _, entry := range entries {
		childDest := filepath.Join(dest, subs.ApplyPath(entry.Name()))
		if err := c.copyTree(filepath.Join(source, entry.Name()), childDest, subs, overwrite, onChanged, result); err != nil {
			return err
		}
	}
	return nil
}

func (c *Copier) copyFile(source string, info fs.FileInfo, dest string, subs Substitutions, overwrite bool, onChanged ChangedFunc, result *Result) error {
	content, err := c.render(source, subs)
	if err != nil {
		return err
	}

	existing, err := c.dst.Stat(dest)
	switch {
	case err == nil && existing.IsDir():
		return errors.FileSystem(fs.ErrExist, "destination is a directory", dest)
	case err == nil && !overwrite:
		c.logSkip(dest, content)
		result.Skipped = append(result.Skipped, dest)
		return nil
	case err != nil && !os.IsNotExist(err):
		return errors.FileSystem(err, "stat destination", dest)
	}

	if err := c.CreateDir(filepath.Dir(dest)); err != nil {
		return err
	}
	if err := c.dst.WriteFile(dest, content, c.fileMode(info)); err != nil {
		return errors.FileSystem(err, "write", dest)
	}

	c.logger.Debug().Str("source", source).Str("dest", dest).Int("bytes", len(content)).Msg("File written")
	result.Written = append(result.Written, dest)
	if onChanged != nil {
		onChanged(dest)
	}
	return nil
}

// AppendToExistingFile appends the substituted content of source to
// destRoot/destRel, creating the file when absent. If the destination
// already contains the substituted block nothing is written, which keeps
// repeated runs from duplicating it.
func (c *Copier) AppendToExistingFile(source, destRoot, destRel string, subs Substitutions) (*Result, error) {
	result := &Result{}
	dest := filepath.Join(destRoot, destRel)

	content, err := c.render(source, subs)
	if err != nil {
		return result, err
	}

	current, err := c.dst.ReadFile(dest)
	switch {
	case err == nil && bytes.Contains(current, content):
		c.logger.Debug().Str("dest", dest).Msg("Destination already contains template block, not appending")
		result.Skipped = append(result.Skipped, dest)
		return result, nil
	case err != nil && !os.IsNotExist(err):
		return result, errors.FileSystem(err, "read", dest)
	}

	if err := c.CreateDir(filepath.Dir(dest)); err != nil {
		return result, err
	}
	if err := c.dst.AppendFile(dest, content, c.perms.File.Mode()); err != nil {
		return result, errors.FileSystem(err, "append to", dest)
	}

	c.logger.Debug().Str("source", source).Str("dest", dest).Int("bytes", len(content)).Msg("Template appended")
	result.Appended = append(result.Appended, dest)
	return result, nil
}

// render reads source and substitutes tokens unless it is binary
func (c *Copier) render(source string, subs Substitutions) ([]byte, error) {
	raw, err := c.src.ReadFile(source)
	if err != nil {
		return nil, errors.FileSystem(err, "read template", source)
	}
	if IsBinary(source, raw) {
		return raw, nil
	}
	return []byte(subs.Apply(string(raw))), nil
}

// fileMode uses the configured file mode, keeping executability of the source
func (c *Copier) fileMode(info fs.FileInfo) fs.FileMode {
	mode := c.perms.File.Mode()
	if info.Mode().Perm()&0o111 != 0 {
		mode |= 0o111
	}
	return mode
}

func (c *Copier) logSkip(dest string, want []byte) {
	have, err := c.dst.ReadFile(dest)
	if err != nil || !bytes.Equal(have, want) {
		c.logger.Warn().Str("path", dest).Msg("Existing file differs from template, keeping it (use --overwrite to replace)")
		return
	}
	c.logger.Debug().Str("path", dest).Msg("Existing file matches template, skipping")
}
