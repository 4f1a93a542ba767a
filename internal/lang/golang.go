// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"os/exec"

	"github.com/exemd/exemd/internal/manifest"
)

// GoExecutor builds snippets as a single-package Go module:
//
//	<root>/go.mod
//	<root>/<filename>.go
//
// and runs them with "go -C <root> run -mod=mod .". The module path is the
// snippet name ("main" when unnamed); deps directives become require lines,
// e.g. "// exemd-deps: github.com/google/uuid;version=v1.6.0".
type GoExecutor struct {
	backend
}

// NewGo returns the go backend for source.
func NewGo(source string, opts ...Option) *GoExecutor {
	return &GoExecutor{backend: newBackend(profile{
		lang:      Go,
		ext:       "go",
		binary:    "go",
		manifest:  manifest.GoMod(),
		sourceDir: flat,
	}, source, opts)}
}

// BuildProject scaffolds the module.
func (e *GoExecutor) BuildProject(ctx context.Context) error {
	return e.build(ctx)
}

// InstallDependency downloads the required modules with "go mod download".
// Without declared dependencies it only records the state change.
func (e *GoExecutor) InstallDependency(ctx context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	if e.project.Descriptor.HasDependencies() {
		if err := e.runSync(e.command(ctx, "-C", e.project.RootDir, "mod", "download"), "download modules"); err != nil {
			return err
		}
	}
	return e.markInstalled()
}

// TryRun parses the source file to catch syntax errors before invoking the toolchain.
func (e *GoExecutor) TryRun(_ context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	if _, err := parser.ParseFile(token.NewFileSet(), e.project.SourcePath, e.source, parser.AllErrors); err != nil {
		return fmt.Errorf("go syntax error: %w", err)
	}
	return nil
}

// Execute builds the module and returns the go invocation.
func (e *GoExecutor) Execute(ctx context.Context) (*exec.Cmd, error) {
	if err := e.BuildProject(ctx); err != nil {
		return nil, err
	}
	return e.Compile(ctx)
}

// Compile returns "go -C <root> run -mod=mod .". -mod=mod lets the go command
// complete go.mod and go.sum for the declared requirements.
func (e *GoExecutor) Compile(ctx context.Context) (*exec.Cmd, error) {
	if err := e.requireBuilt(); err != nil {
		return nil, err
	}
	return e.handOff(e.command(ctx, "-C", e.project.RootDir, "run", "-mod=mod", ".")), nil
}
