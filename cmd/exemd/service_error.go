// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/exemd/exemd/internal/issue"
)

// ServiceError attaches an issue catalog entry to an error so the CLI can
// print remediation help below the message.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID selects the catalog entry, zero for none.
	IssueID issue.Id
}

// newServiceError panics on a nil err; every construction site has one.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderIssueHelp prints the rendered catalog entry of a service error. Other
// errors print nothing; their message is reported by the command runner.
func renderIssueHelp(w io.Writer, err error, style string, logger *log.Logger) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID == 0 {
		return
	}
	entry := issue.Get(svcErr.IssueID)
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(style)
	if renderErr != nil {
		logger.Warn("failed to render issue catalog entry", "issue", svcErr.IssueID, "err", renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// formatErrorForDisplay uses ActionableError.Format when available, which
// includes suggestions and, in verbose mode, the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
