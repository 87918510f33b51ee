package checker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/25smoking/upcheck/internal/sys/pkg_mgr"
)

// Result is the captured outcome of one subprocess.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes package manager commands, allowing tests to inject stubs.
// A non-zero exit is reported in Result.ExitCode; err is reserved for
// processes that could not be started or did not exit normally.
type Runner interface {
	Run(ctx context.Context, cmd pkg_mgr.Command) (Result, error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, cmd pkg_mgr.Command) (Result, error)

func (f RunnerFunc) Run(ctx context.Context, cmd pkg_mgr.Command) (Result, error) {
	return f(ctx, cmd)
}

// ExecRunner runs commands with os/exec under the C locale so parsers see
// untranslated output.
type ExecRunner struct {
	// Env is appended to the inherited environment.
	Env []string
}

func (r ExecRunner) Run(ctx context.Context, cmd pkg_mgr.Command) (Result, error) {
	//nolint:gosec // G204: commands come from the fixed manager catalog
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(os.Environ(), "LC_ALL=C")
	c.Env = append(c.Env, r.Env...)

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		res.ExitCode = -1
		return res, err
	}
	return res, nil
}
