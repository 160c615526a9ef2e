// Package shell runs command strings through an embedded POSIX shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Result contains the outcome of a single command
type Result struct {
	Stdout   string
	Stderr   string
	Success  bool
	ExitCode int
}

// Executor runs a shell command string in a working directory
type Executor interface {
	// Run executes command with dir as its working directory. env entries
	// override the inherited process environment for this command only.
	// A non-zero exit is reported through Result, not as an error; the error
	// is reserved for commands that could not be started at all.
	Run(ctx context.Context, dir, command string, env map[string]string) (Result, error)
}

// ShellExecutor runs commands with the mvdan.cc/sh interpreter. The
// working directory belongs to the interpreter, so the process working
// directory is never changed.
type ShellExecutor struct {
	logger zerolog.Logger
}

// NewShellExecutor creates a new shell executor
func NewShellExecutor(logger zerolog.Logger) *ShellExecutor {
	return &ShellExecutor{
		logger: logger,
	}
}

// Run implements Executor
func (e *ShellExecutor) Run(ctx context.Context, dir, command string, env map[string]string) (Result, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return Result{}, fmt.Errorf("failed to parse command: %w", err)
	}

	var stdout, stderr bytes.Buffer

	runner, err := interp.New(
		interp.Dir(dir),
		interp.Env(expand.ListEnviron(environ(env)...)),
		interp.StdIO(nil, &stdout, &stderr),
	)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create interpreter: %w", err)
	}

	start := time.Now()
	e.logger.Debug().Str("command", command).Str("dir", dir).Msg("running command")

	result := Result{Success: true}
	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if !errors.As(err, &status) {
			return Result{}, fmt.Errorf("failed to run command: %w", err)
		}
		result.Success = false
		result.ExitCode = int(status)
	}
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	e.logger.Debug().
		Str("command", command).
		Int("exit_code", result.ExitCode).
		Dur("duration", time.Since(start)).
		Msg("command finished")

	return result, nil
}

// environ returns the process environment with overrides appended; the
// interpreter keeps the last value of a duplicated name.
func environ(overrides map[string]string) []string {
	env := os.Environ()
	for _, key := range slices.Sorted(maps.Keys(overrides)) {
		env = append(env, key+"="+overrides[key])
	}
	return env
}
