package install

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/logging"
	"github.com/rs/zerolog"
)

// Runner runs a command to completion in a directory
type Runner interface {
	Run(ctx context.Context, dir string, argv []string, verbose bool) error
}

// ExecRunner runs commands with os/exec. Verbose runs stream to Stdout and
// Stderr; quiet runs capture output, which is logged and attached to the
// error on failure.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	logger zerolog.Logger
}

// NewExecRunner returns a runner attached to the process's terminal
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logging.GetLogger("install.exec"),
	}
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, dir string, argv []string, verbose bool) error {
	if len(argv) == 0 {
		return errors.MissingArgument("command")
	}
	command := strings.Join(argv, " ")

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = os.Environ()

	var captured bytes.Buffer
	if verbose {
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	} else {
		cmd.Stdout = &captured
		cmd.Stderr = &captured
	}

	r.logger.Debug().Str("command", command).Str("dir", dir).Bool("verbose", verbose).Msg("Running command")
	err := cmd.Run()
	if captured.Len() > 0 {
		r.logger.Debug().Str("command", command).Str("output", captured.String()).Msg("Command output")
	}
	if err == nil {
		return nil
	}

	exitCode := -1
	if exitErr, ok := err.(*exec.ExitError); ok {
		exitCode = exitErr.ExitCode()
	}
	e := errors.Subprocess(err, command, exitCode)
	if captured.Len() > 0 {
		e = e.WithDetail("output", captured.String())
	}
	return e
}
