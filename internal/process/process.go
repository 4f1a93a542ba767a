// SPDX-License-Identifier: MPL-2.0

package process

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrNilCommand is returned when Run or Capture receives no handle.
var ErrNilCommand = errors.New("process: nil command")

// Result contains the outcome of running a handle.
type Result struct {
	// ExitCode is the exit code of the process.
	ExitCode ExitCode
	// Error is set when the process could not be run to completion.
	Error error
	// Output contains captured stdout (Capture only).
	Output string
	// ErrOutput contains captured stderr (Capture only).
	ErrOutput string
}

// Success returns true if the process ran and exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// Run starts cmd with the given output writers and waits for it. Writers that
// are nil leave the corresponding stream of cmd unchanged.
func Run(cmd *exec.Cmd, stdout, stderr io.Writer) *Result {
	if cmd == nil {
		return &Result{ExitCode: 1, Error: ErrNilCommand}
	}
	if stdout != nil {
		cmd.Stdout = stdout
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}
	return wait(cmd, cmd.Run())
}

// Capture runs cmd and captures stdout and stderr into the Result. Anything
// already assigned to cmd.Stdout/cmd.Stderr still receives a copy.
func Capture(cmd *exec.Cmd) *Result {
	if cmd == nil {
		return &Result{ExitCode: 1, Error: ErrNilCommand}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&stdout, cmd.Stdout)
	cmd.Stderr = tee(&stderr, cmd.Stderr)

	result := wait(cmd, cmd.Run())
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

// CommandLine renders the handle as a copy-pasteable command line.
func CommandLine(cmd *exec.Cmd) string {
	if cmd == nil {
		return ""
	}
	quoted := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\n'\"\\$") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		quoted = append(quoted, arg)
	}
	return strings.Join(quoted, " ")
}

func wait(cmd *exec.Cmd, err error) *Result {
	if err == nil {
		return &Result{}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: ExitCode(exitErr.ExitCode())}
	}
	return &Result{ExitCode: 1, Error: fmt.Errorf("failed to run %s: %w", cmd.Path, err)}
}

func tee(buf *bytes.Buffer, existing io.Writer) io.Writer {
	if existing == nil {
		return buf
	}
	return io.MultiWriter(buf, existing)
}
