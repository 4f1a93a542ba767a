// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/exemd/exemd/internal/process"
)

// ExitError carries the snippet's exit code to Execute without calling
// os.Exit inside RunE handlers.
type ExitError struct {
	Code process.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
