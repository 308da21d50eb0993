package macgen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/macgen/internal/version"
	"github.com/arthur-debert/macgen/pkg/cobrax/topics"
	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/filesystem"
	"github.com/arthur-debert/macgen/pkg/install"
	"github.com/arthur-debert/macgen/pkg/logging"
	"github.com/arthur-debert/macgen/pkg/manifest"
	"github.com/arthur-debert/macgen/pkg/materialize"
	"github.com/arthur-debert/macgen/pkg/paths"
	"github.com/arthur-debert/macgen/pkg/template"
	"github.com/arthur-debert/macgen/pkg/types"
	"github.com/arthur-debert/macgen/pkg/ui"
	"github.com/arthur-debert/macgen/pkg/ui/display"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// manifestFile is looked up inside a custom template directory when no
// --manifest is given
const manifestFile = "manifest.yaml"

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	format     string
	configPath string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "macgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.Name(), args)
			// Reject a bad --format before any work is done
			_, err := ui.ParseFormat(opts.format)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return errors.New(errors.ErrMissingArgument, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.format, "format", ui.FormatAuto.String(), MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", MsgFlagConfig)

	// Disable automatic help command (the topics one replaces it)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newInstallCmd(opts))
	rootCmd.AddCommand(newPathsCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	topicOpts := topics.Options{
		Extensions: []string{".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if _, err := topics.Initialize(rootCmd, helpTopics(), topicOpts); err != nil {
		log.Warn().Err(err).Msg("Failed to load help topics")
	}

	return rootCmd
}

// loadConfig reads the layered configuration for a project directory
func loadConfig(opts *globalOptions, projectDir string) (*config.Config, error) {
	cfg, err := config.LoadConfiguration(config.LoadOptions{
		ProjectDir:     projectDir,
		UserConfigPath: opts.configPath,
	})
	if err != nil {
		return nil, err
	}
	config.Initialize(cfg)
	return cfg, nil
}

// newRenderer builds the output renderer selected by --format
func newRenderer(cmd *cobra.Command, opts *globalOptions) (ui.Renderer, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// absDir resolves dir against the working directory, defaulting to it
func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.FileSystem(err, "resolve directory", dir)
	}
	return abs, nil
}

// templateSource returns the filesystem and root to read the template from.
// An empty dir selects the embedded template.
func templateSource(dir string) (types.FS, string, error) {
	if dir == "" {
		return filesystem.NewReadOnlyIOFS(template.Default()), ".", nil
	}
	abs, err := absDir(dir)
	if err != nil {
		return nil, "", err
	}
	return filesystem.NewOS(), abs, nil
}

// manifestRecords picks the manifest: an explicit file, the template's own
// manifest.yaml, or the built-in one.
func manifestRecords(fsys types.FS, manifestPath, templateDir string) ([]manifest.Record, error) {
	if manifestPath == "" && templateDir != "" {
		candidate := filepath.Join(templateDir, manifestFile)
		if _, err := fsys.Stat(candidate); err == nil {
			manifestPath = candidate
		}
	}
	if manifestPath == "" {
		return manifest.Default(), nil
	}
	data, err := fsys.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.FileSystem(err, "read template manifest", manifestPath)
	}
	records, err := manifest.Parse(data)
	if err != nil {
		if e, ok := err.(*errors.MacgenError); ok {
			return nil, e.WithDetail(errors.DetailPath, manifestPath)
		}
		return nil, err
	}
	return records, nil
}

func newInitCmd(opts *globalOptions) *cobra.Command {
	var (
		templateDir  string
		manifestPath string
		destDir      string
		overwrite    bool
		runInstall   bool
	)

	cmd := &cobra.Command{
		Use:     "init <name>",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.init")

			dest, err := absDir(destDir)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts, dest)
			if err != nil {
				return err
			}
			srcFS, srcRoot, err := templateSource(templateDir)
			if err != nil {
				return err
			}
			localTemplate := ""
			if templateDir != "" {
				localTemplate = srcRoot
			}
			records, err := manifestRecords(filesystem.NewOS(), manifestPath, localTemplate)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, opts)
			if err != nil {
				return err
			}

			report, err := materialize.Materialize(cmd.Context(), materialize.Options{
				SourceRoot: srcRoot,
				DestRoot:   dest,
				Basename:   args[0],
				Overwrite:  overwrite,
				OnChanged: func(path string) {
					logger.Info().Str("path", path).Msg("Generated config file")
				},
				SourceFS: srcFS,
				DestFS:   filesystem.NewOS(),
				Config:   cfg,
				Records:  records,
			})
			if err != nil {
				return err
			}
			if err := renderer.RenderResult(report); err != nil {
				return err
			}

			if !runInstall {
				return nil
			}
			result, err := install.New(install.Config{Install: &cfg.Install}).Install(cmd.Context(), install.Options{
				Dir:     dest,
				Verbose: opts.verbosity > 0,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringVarP(&templateDir, "template", "t", "", MsgFlagTemplate)
	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", MsgFlagManifest)
	cmd.Flags().StringVarP(&destDir, "dest", "d", "", MsgFlagDest)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	cmd.Flags().BoolVar(&runInstall, "install", false, MsgFlagInstall)
	_ = cmd.MarkFlagDirname("template")
	_ = cmd.MarkFlagDirname("dest")
	_ = cmd.MarkFlagFilename("manifest", "yaml", "yml")

	return cmd
}

func newInstallCmd(opts *globalOptions) *cobra.Command {
	var (
		dir    string
		noDeps bool
	)

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := absDir(dir)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts, projectDir)
			if err != nil {
				return err
			}
			renderer, err := newRenderer(cmd, opts)
			if err != nil {
				return err
			}

			installer := install.New(install.Config{Install: &cfg.Install})
			result, err := installer.Install(cmd.Context(), install.Options{
				Dir:              projectDir,
				Verbose:          opts.verbosity > 0,
				SkipDependencies: noDeps,
			})
			if err != nil {
				return err
			}
			return renderer.RenderResult(result)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", MsgFlagDir)
	cmd.Flags().BoolVar(&noDeps, "no-deps", false, MsgFlagNoDeps)
	_ = cmd.MarkFlagDirname("dir")

	return cmd
}

func newPathsCmd(opts *globalOptions) *cobra.Command {
	var platformName string

	cmd := &cobra.Command{
		Use:     "paths <name>",
		Short:   MsgPathsShort,
		Long:    MsgPathsLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := absDir("")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts, cwd)
			if err != nil {
				return err
			}
			deriver := paths.FromConfig(cfg)
			set, err := deriver.Derive(args[0])
			if err != nil {
				return err
			}
			view := display.PathsView{Set: set, Labels: deriver.Labels()}
			if platformName != "" {
				p, err := deriver.Labels().Parse(platformName)
				if err != nil {
					return err
				}
				view.Platform = p
			}

			renderer, err := newRenderer(cmd, opts)
			if err != nil {
				return err
			}
			return renderer.RenderResult(view)
		},
	}

	cmd.Flags().StringVarP(&platformName, "platform", "p", "", MsgFlagPlatform)
	_ = cmd.RegisterFlagCompletionFunc("platform", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		labels := paths.FromConfig(config.Get()).Labels()
		return []string{labels.Primary, labels.Secondary}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
				return err
			}
			cwd, err := absDir("")
			if err != nil {
				return err
			}
			cfg, err := loadConfig(opts, cwd)
			if err != nil {
				return err
			}
			out, err := config.Render(cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.FileSystem(err, "create man directory", dir)
			}
			header := &doc.GenManHeader{
				Title:   "MACGEN",
				Section: "1",
				Source:  "macgen " + version.Version,
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrapf(err, errors.ErrFileSystem, "failed to write man pages to %s", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgManWritten+"\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "man", MsgFlagManDir)
	_ = cmd.MarkFlagDirname("dir")
	return cmd
}
