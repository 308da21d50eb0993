package materialize

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/fileutil"
	"github.com/arthur-debert/macgen/pkg/instructions"
	"github.com/arthur-debert/macgen/pkg/logging"
	"github.com/arthur-debert/macgen/pkg/manifest"
	"github.com/arthur-debert/macgen/pkg/paths"
	"github.com/arthur-debert/macgen/pkg/platform"
	"github.com/arthur-debert/macgen/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a materialization run
type Options struct {
	// SourceRoot is the template root inside SourceFS
	SourceRoot string
	// DestRoot is the project directory inside DestFS
	DestRoot string
	// Basename is the name of the new project
	Basename string
	// Overwrite replaces existing files instead of skipping them
	Overwrite bool
	// OnChanged is called for every file written by a notify entry
	OnChanged fileutil.ChangedFunc

	// SourceFS and DestFS default to the OS filesystem
	SourceFS types.FS
	DestFS   types.FS
	// Config defaults to the embedded defaults
	Config *config.Config
	// Records defaults to the embedded manifest
	Records []manifest.Record
	Logger  *zerolog.Logger
}

// Report describes what a run did. File paths include DestRoot.
type Report struct {
	Basename     string           `json:"basename"`
	DestRoot     string           `json:"destRoot"`
	Paths        *paths.Set       `json:"paths"`
	Directories  []string         `json:"directories"`
	Written      []string         `json:"written"`
	Skipped      []string         `json:"skipped"`
	Appended     []string         `json:"appended"`
	Notified     []string         `json:"notified"`
	Instructions string           `json:"instructions,omitempty"`
	Entries      []manifest.Entry `json:"-"`
}

// Materialize copies the template at opts.SourceRoot into opts.DestRoot
// under the name opts.Basename.
func Materialize(ctx context.Context, opts Options) (*Report, error) {
	logger := logging.GetLogger("materialize")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	// Arguments are validated before the destination is touched.
	switch {
	case opts.SourceRoot == "":
		return nil, errors.MissingArgument("sourceRoot")
	case opts.DestRoot == "":
		return nil, errors.MissingArgument("destRoot")
	case opts.Basename == "":
		return nil, errors.MissingArgument("basename")
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	srcFS := opts.SourceFS
	if srcFS == nil {
		srcFS = filesystem.NewOS()
	}
	dstFS := opts.DestFS
	if dstFS == nil {
		dstFS = filesystem.NewOS()
	}
	records := opts.Records
	if records == nil {
		records = manifest.Default()
	}

	done := logging.LogOperationStart(logger, "materialize")
	defer done()

	deriver := paths.FromConfig(cfg)
	set, err := deriver.Derive(opts.Basename)
	if err != nil {
		return nil, err
	}
	subs := fileutil.Substitutions{cfg.Template.Placeholder: opts.Basename}
	entries, err := manifest.Build(records, deriver, opts.SourceRoot, cfg.Template.Placeholder, opts.Basename)
	if err != nil {
		return nil, err
	}
	if info, err := srcFS.Stat(opts.SourceRoot); err != nil {
		return nil, errors.FileSystem(err, "stat template root", opts.SourceRoot)
	} else if !info.IsDir() {
		return nil, errors.InvalidArgument("sourceRoot", opts.SourceRoot).
			WithDetail(errors.DetailPath, opts.SourceRoot)
	}

	logger.Info().
		Str("source", opts.SourceRoot).
		Str("dest", opts.DestRoot).
		Str("basename", opts.Basename).
		Bool("overwrite", opts.Overwrite).
		Int("entries", len(entries)).
		Msg("Materializing template")

	perms := cfg.Permissions
	copier := fileutil.New(fileutil.Options{
		Source:      srcFS,
		Dest:        dstFS,
		Permissions: &perms,
		Logger:      &logger,
	})

	report := &Report{
		Basename: opts.Basename,
		DestRoot: opts.DestRoot,
		Paths:    set,
		Entries:  entries,
	}

	for _, dir := range set.Directories() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		abs := filepath.Join(opts.DestRoot, dir)
		if err := copier.CreateDir(abs); err != nil {
			return report, err
		}
		report.Directories = append(report.Directories, abs)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := apply(copier, entry, opts, subs, report); err != nil {
			return report, err
		}
	}

	report.Instructions = renderInstructions(set, cfg, logger)

	logger.Info().
		Int("written", len(report.Written)).
		Int("skipped", len(report.Skipped)).
		Int("appended", len(report.Appended)).
		Msg("Template materialized")
	return report, nil
}

func apply(copier *fileutil.Copier, entry manifest.Entry, opts Options, subs fileutil.Substitutions, report *Report) error {
	var (
		result *fileutil.Result
		err    error
	)
	switch entry.Kind {
	case manifest.Replace:
		result, err = copier.CopyAndReplaceAll(entry.Source, opts.DestRoot, entry.Destination, subs, opts.Overwrite)
	case manifest.Append:
		result, err = copier.AppendToExistingFile(entry.Source, opts.DestRoot, entry.Destination, subs)
	case manifest.Notify:
		onChanged := func(path string) {
			report.Notified = append(report.Notified, path)
			if opts.OnChanged != nil {
				opts.OnChanged(path)
			}
		}
		result, err = copier.CopyAndReplaceWithChangedCallback(entry.Source, opts.DestRoot, entry.Destination, subs, opts.Overwrite, onChanged)
	default:
		return errors.InvalidArgument("kind", entry.Kind)
	}

	if result != nil {
		report.Written = append(report.Written, result.Written...)
		report.Skipped = append(report.Skipped, result.Skipped...)
		report.Appended = append(report.Appended, result.Appended...)
	}
	return err
}

// renderInstructions never fails the run; a rendering problem is logged and
// the report goes without instructions.
func renderInstructions(set *paths.Set, cfg *config.Config, logger zerolog.Logger) string {
	md, err := instructions.Markdown(instructions.NewData(set, platform.LabelsFrom(cfg.Platforms), cfg.Install))
	if err != nil {
		logger.Warn().Err(err).Msg("Could not render run instructions")
		return ""
	}
	return md
}
