package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the complete macgen configuration
type Config struct {
	Template    Template    `koanf:"template" toml:"template"`
	Layout      Layout      `koanf:"layout" toml:"layout"`
	Platforms   Platforms   `koanf:"platforms" toml:"platforms"`
	Install     Install     `koanf:"install" toml:"install"`
	Permissions Permissions `koanf:"permissions" toml:"permissions"`
}

// Template describes the template tree being materialized
type Template struct {
	// Placeholder is the template's own basename, replaced everywhere by
	// the new project name.
	Placeholder string `koanf:"placeholder" toml:"placeholder"`
}

// Layout holds the fixed naming conventions of a generated project
type Layout struct {
	PlatformDir        string `koanf:"platform_dir" toml:"platform_dir"`
	DependencyManifest string `koanf:"dependency_manifest" toml:"dependency_manifest"`
	BundleExt          string `koanf:"bundle_ext" toml:"bundle_ext"`
	WorkspaceExt       string `koanf:"workspace_ext" toml:"workspace_ext"`
	ProjectDescriptor  string `koanf:"project_descriptor" toml:"project_descriptor"`
	SharedDataDir      string `koanf:"shared_data_dir" toml:"shared_data_dir"`
	SchemesDir         string `koanf:"schemes_dir" toml:"schemes_dir"`
	SchemeExt          string `koanf:"scheme_ext" toml:"scheme_ext"`
}

// Platforms holds the display labels of the two platform variants
type Platforms struct {
	Primary   string `koanf:"primary" toml:"primary"`
	Secondary string `koanf:"secondary" toml:"secondary"`
}

// Install configures the dependency installer
type Install struct {
	ProjectManifest string `koanf:"project_manifest" toml:"project_manifest"`
	ScriptKey       string `koanf:"script_key" toml:"script_key"`
	Launcher        string `koanf:"launcher" toml:"launcher"`
	LockFile        string `koanf:"lock_file" toml:"lock_file"`
	Preferred       string `koanf:"preferred" toml:"preferred"`
	Fallback        string `koanf:"fallback" toml:"fallback"`
}

// PreferredCommand returns the preferred package manager invocation split into argv.
func (i Install) PreferredCommand() []string { return strings.Fields(i.Preferred) }

// FallbackCommand returns the fallback package manager invocation split into argv.
func (i Install) FallbackCommand() []string { return strings.Fields(i.Fallback) }

// Permissions holds the modes used for created directories and files
type Permissions struct {
	Directory FileMode `koanf:"directory" toml:"directory"`
	File      FileMode `koanf:"file" toml:"file"`
}

// FileMode is an os.FileMode that reads and writes as an octal string ("0755").
type FileMode os.FileMode

// Mode returns m as an os.FileMode
func (m FileMode) Mode() os.FileMode { return os.FileMode(m) }

// MarshalText implements encoding.TextMarshaler
func (m FileMode) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%04o", uint32(m.Mode().Perm()))), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *FileMode) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(string(text), "0o"), 8, 32)
	if err != nil {
		return fmt.Errorf("invalid file mode %q: %w", string(text), err)
	}
	*m = FileMode(os.FileMode(v).Perm())
	return nil
}

// Default returns the configuration built from the embedded defaults only.
func Default() *Config {
	cfg, err := parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("config: invalid embedded defaults: %v", err))
	}
	return cfg
}
