package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "macgen"
	// ProjectConfigFile is the per-project override file name
	ProjectConfigFile = ".macgen.toml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "MACGEN_"
)

// LoadOptions controls which layers LoadConfiguration reads
type LoadOptions struct {
	// ProjectDir is searched for ProjectConfigFile. Empty skips the layer.
	ProjectDir string
	// UserConfigPath overrides the XDG user config location.
	UserConfigPath string
	// SkipEnv disables MACGEN_* environment overrides.
	SkipEnv bool
}

// UserConfigPath returns $XDG_CONFIG_HOME/macgen/config.toml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, "config.toml")
}

// LoadConfiguration merges defaults, user config, project config and env vars.
func LoadConfiguration(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = UserConfigPath()
	}
	if err := loadFileIfExists(k, userPath); err != nil {
		return nil, err
	}

	// 3. Project config
	if opts.ProjectDir != "" {
		if err := loadFileIfExists(k, filepath.Join(opts.ProjectDir, ProjectConfigFile)); err != nil {
			return nil, err
		}
	}

	// 4. Env vars: MACGEN_INSTALL__LOCK_FILE -> install.lock_file
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	return unmarshal(k)
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return nil
}

// parse builds a Config from a single TOML document
func parse(data []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse config")
	}
	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every naming convention is set
func (c *Config) Validate() error {
	required := map[string]string{
		"template.placeholder":       c.Template.Placeholder,
		"layout.platform_dir":        c.Layout.PlatformDir,
		"layout.dependency_manifest": c.Layout.DependencyManifest,
		"layout.bundle_ext":          c.Layout.BundleExt,
		"layout.project_descriptor":  c.Layout.ProjectDescriptor,
		"layout.schemes_dir":         c.Layout.SchemesDir,
		"platforms.primary":          c.Platforms.Primary,
		"platforms.secondary":        c.Platforms.Secondary,
	}
	for key, value := range required {
		if value == "" {
			return errors.Newf(errors.ErrConfigParse, "configuration key %s must not be empty", key)
		}
	}
	// Labels are matched case-insensitively when parsed
	if strings.EqualFold(c.Platforms.Primary, c.Platforms.Secondary) {
		return errors.Newf(errors.ErrConfigParse, "platform labels must differ, both are %q", c.Platforms.Primary)
	}
	return nil
}
