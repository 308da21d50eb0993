package install

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/logging"
	"github.com/arthur-debert/macgen/pkg/types"
	"github.com/rs/zerolog"
)

// Installer patches a project manifest and installs its dependencies
type Installer struct {
	fs     types.FS
	runner Runner
	cfg    config.Install
	logger zerolog.Logger
}

// Config configures an Installer. Zero values use the OS filesystem, an
// ExecRunner and the embedded install defaults.
type Config struct {
	FS      types.FS
	Runner  Runner
	Install *config.Install
	Logger  *zerolog.Logger
}

// New creates an Installer
func New(c Config) *Installer {
	in := &Installer{
		fs:     c.FS,
		runner: c.Runner,
		logger: logging.GetLogger("install"),
	}
	if in.fs == nil {
		in.fs = filesystem.NewOS()
	}
	if in.runner == nil {
		in.runner = NewExecRunner()
	}
	if c.Install != nil {
		in.cfg = *c.Install
	} else {
		in.cfg = config.Default().Install
	}
	if c.Logger != nil {
		in.logger = *c.Logger
	}
	return in
}

// Options are the per-call install settings
type Options struct {
	// Dir is the project root holding the manifest and lock file
	Dir string
	// Verbose streams package manager output to the terminal
	Verbose bool
	// SkipDependencies only patches the manifest
	SkipDependencies bool
}

// Result describes a completed install
type Result struct {
	Manifest  string         `json:"manifest"`
	ScriptKey string         `json:"scriptKey"`
	Script    string         `json:"script"`
	Manager   PackageManager `json:"manager"`
	Installed bool           `json:"installed"`
}

// Install adds the start script to the project manifest and runs the
// package manager in opts.Dir.
func (in *Installer) Install(ctx context.Context, opts Options) (*Result, error) {
	if opts.Dir == "" {
		return nil, errors.MissingArgument("dir")
	}
	done := logging.LogOperationStart(in.logger, "install")
	defer done()

	store := NewFileStore(in.fs, filepath.Join(opts.Dir, in.cfg.ProjectManifest))
	if err := in.PatchManifest(store); err != nil {
		return nil, err
	}
	result := &Result{
		Manifest:  store.Path(),
		ScriptKey: in.cfg.ScriptKey,
		Script:    in.cfg.Launcher,
	}

	manager, err := DetectPackageManager(in.fs, opts.Dir, in.cfg)
	if err != nil {
		return result, err
	}
	result.Manager = manager
	if opts.SkipDependencies {
		in.logger.Info().Msg("Skipping dependency installation")
		return result, nil
	}

	in.logger.Info().
		Strs("command", manager.Command).
		Bool("lockfile", manager.Locked).
		Str("dir", opts.Dir).
		Msg("Installing dependencies")
	if err := in.runner.Run(ctx, opts.Dir, manager.Command, opts.Verbose); err != nil {
		return result, err
	}
	result.Installed = true
	return result, nil
}

// PatchManifest sets the configured start script in the store's manifest
func (in *Installer) PatchManifest(store ManifestStore) error {
	doc, err := store.Read()
	if err != nil {
		return err
	}
	patched, err := PatchScripts(doc, in.cfg.ScriptKey, in.cfg.Launcher)
	if err != nil {
		if e, ok := err.(*errors.MacgenError); ok {
			return e.WithDetail(errors.DetailPath, store.Path())
		}
		return err
	}
	if err := store.Write(patched); err != nil {
		return err
	}
	in.logger.Debug().Str("manifest", store.Path()).Str("script", in.cfg.ScriptKey).Msg("Start script set")
	return nil
}
