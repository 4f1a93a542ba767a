// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/exemd/exemd/pkg/directive"
)

// Language identifiers of the supported backends.
const (
	Java   Language = "java"
	Go     Language = "go"
	Rust   Language = "rust"
	Python Language = "python"
	Bash   Language = "bash"
)

// Lifecycle states of an Executor.
const (
	StateUninitialized State = iota
	StateBuilt
	StateDependenciesInstalled
	StateExecuting
)

var (
	// ErrNotBuilt is returned by hooks that need the project on disk first.
	ErrNotBuilt = errors.New("project has not been built")
	// ErrUnsupportedLanguage is the sentinel error wrapped by UnsupportedLanguageError.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	aliases = map[string]Language{
		"java":   Java,
		"go":     Go,
		"golang": Go,
		"rust":   Rust,
		"rs":     Rust,
		"python": Python,
		"py":     Python,
		"bash":   Bash,
		"sh":     Bash,
		"shell":  Bash,
	}

	extensions = map[string]Language{
		".java": Java,
		".go":   Go,
		".rs":   Rust,
		".py":   Python,
		".sh":   Bash,
		".bash": Bash,
	}
)

type (
	// Language identifies a backend. It is also the per-language directory name
	// under the output directory.
	Language string

	// State is the lifecycle state of an Executor.
	State int

	// UnsupportedLanguageError is returned for language names no backend serves.
	// It wraps ErrUnsupportedLanguage for errors.Is() compatibility.
	UnsupportedLanguageError struct {
		Value string
	}

	// Project is the execution context of one build: the parsed metadata and the
	// paths derived from it. It is created fresh by every BuildProject call.
	Project struct {
		// Descriptor is the metadata parsed from the snippet header.
		Descriptor directive.Descriptor
		// Diagnostics lists directives that were skipped while parsing.
		Diagnostics []error
		// RootDir is <base>/<language>/[<name>].
		RootDir string
		// SourcePath is where the snippet was written.
		SourcePath string
		// ManifestPath is the generated manifest, empty for backends without one.
		ManifestPath string
	}

	// Executor is the lifecycle contract every language backend implements.
	Executor interface {
		// Language returns the backend identifier.
		Language() Language
		// State returns the current lifecycle state.
		State() State
		// Binary returns the toolchain binary the handles invoke.
		Binary() string
		// Project returns the execution context of the last build.
		Project() Project
		// BuildProject scaffolds the layout, writes the source file and the
		// manifest. Filesystem errors are returned unretried.
		BuildProject(ctx context.Context) error
		// InstallDependency resolves declared dependencies ahead of execution.
		// Backends whose build tool resolves dependencies itself treat it as a no-op.
		InstallDependency(ctx context.Context) error
		// TryRun validates the built project without running it. Backends without
		// a validation step treat it as a no-op.
		TryRun(ctx context.Context) error
		// Execute builds the project and returns an unstarted handle that
		// compiles and/or runs it. No handle is returned when the build fails.
		Execute(ctx context.Context) (*exec.Cmd, error)
	}

	// Compiler is implemented by backends that invoke a separate build tool.
	Compiler interface {
		// Compile returns the build-tool invocation for the built project.
		// All paths in the command line derive from the project root.
		Compile(ctx context.Context) (*exec.Cmd, error)
	}
)

// String returns the language identifier.
func (l Language) String() string { return string(l) }

// Validate returns nil if a backend exists for l.
func (l Language) Validate() error {
	switch l {
	case Java, Go, Rust, Python, Bash:
		return nil
	default:
		return &UnsupportedLanguageError{Value: string(l)}
	}
}

// ParseLanguage resolves a language name or alias (e.g. "py", "sh", "golang").
func ParseLanguage(name string) (Language, error) {
	if l, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return "", &UnsupportedLanguageError{Value: name}
}

// LanguageForExtension infers the backend from a file extension such as ".java".
func LanguageForExtension(ext string) (Language, bool) {
	l, ok := extensions[strings.ToLower(ext)]
	return l, ok
}

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBuilt:
		return "built"
	case StateDependenciesInstalled:
		return "dependencies-installed"
	case StateExecuting:
		return "executing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Error implements the error interface.
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q (supported: java, go, rust, python, bash)", e.Value)
}

// Unwrap returns ErrUnsupportedLanguage so callers can use errors.Is for programmatic detection.
func (e *UnsupportedLanguageError) Unwrap() error { return ErrUnsupportedLanguage }

// IsCompiled reports whether e invokes a separate build tool.
func IsCompiled(e Executor) bool {
	_, ok := e.(Compiler)
	return ok
}
