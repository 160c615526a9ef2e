package gradle

import (
	"fmt"
)

// CommandError is returned when a Gradle invocation does not succeed
type CommandError struct {
	// Command is the exact command string that was run
	Command string
	// Stderr is the captured standard error, verbatim
	Stderr string
	// Err is set when the command could not be started at all
	Err error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Command '%s' failed to execute: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("Command '%s' failed to execute: %s", e.Command, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ReportError is returned when a license report cannot be parsed
type ReportError struct {
	Path string
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("failed to parse license report %s: %v", e.Path, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}
