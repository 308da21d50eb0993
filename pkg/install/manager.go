package install

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/macgen/pkg/config"
	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/types"
)

// PackageManager is the install command chosen for a project
type PackageManager struct {
	// Command is the argv to run in the project directory
	Command []string `json:"command"`
	// LockFile is the probed lock file path
	LockFile string `json:"lockFile"`
	// Locked reports whether the lock file was found
	Locked bool `json:"locked"`
}

// Name is the executable of the package manager
func (m PackageManager) Name() string {
	if len(m.Command) == 0 {
		return ""
	}
	return m.Command[0]
}

// DetectPackageManager picks the preferred manager when its lock file exists
// in dir and the fallback otherwise.
func DetectPackageManager(fsys types.FS, dir string, cfg config.Install) (PackageManager, error) {
	lock := filepath.Join(dir, cfg.LockFile)
	m := PackageManager{LockFile: lock}

	_, err := fsys.Stat(lock)
	switch {
	case err == nil:
		m.Locked = true
		m.Command = cfg.PreferredCommand()
	case os.IsNotExist(err):
		m.Command = cfg.FallbackCommand()
	default:
		return m, errors.FileSystem(err, "stat", lock)
	}

	if len(m.Command) == 0 {
		return m, errors.InvalidArgument("install command", m.Command)
	}
	return m, nil
}
