package macgen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Add macOS and iOS platform projects to a React Native app"
	MsgInitShort       = "Generate the platform project from a template"
	MsgInstallShort    = "Add the start script and install dependencies"
	MsgPathsShort      = "Show the paths derived for a project name"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgManWritten    = "Man pages written to %s"
	MsgVersionFormat = "macgen version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagConfig    = "User config file (default $XDG_CONFIG_HOME/macgen/config.toml)"
	MsgFlagTemplate  = "Template directory (default: built-in template)"
	MsgFlagManifest  = "Template manifest file (default: built-in manifest)"
	MsgFlagDest      = "Project directory to generate into"
	MsgFlagOverwrite = "Replace existing files instead of keeping them"
	MsgFlagInstall   = "Install dependencies after generating"
	MsgFlagDir       = "Project directory holding package.json"
	MsgFlagNoDeps    = "Only patch package.json, do not run the package manager"
	MsgFlagPlatform  = "Only show paths for one platform (iOS or macOS)"
	MsgFlagDefaults  = "Print the built-in defaults instead of the effective configuration"
	MsgFlagManDir    = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/paths-long.txt
	msgPathsLongRaw string
	MsgPathsLong    = strings.TrimSpace(msgPathsLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
