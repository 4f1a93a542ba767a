// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// BashExecutor runs shell snippets with bash. It has no manifest; deps
// directives are ignored with a warning.
type BashExecutor struct {
	backend
}

// NewBash returns the bash backend for source.
func NewBash(source string, opts ...Option) *BashExecutor {
	return &BashExecutor{backend: newBackend(profile{
		lang:      Bash,
		ext:       "sh",
		binary:    "bash",
		sourceDir: flat,
	}, source, opts)}
}

// BuildProject writes the script.
func (e *BashExecutor) BuildProject(ctx context.Context) error {
	return e.build(ctx)
}

// InstallDependency is a no-op; shell snippets cannot declare packages.
func (e *BashExecutor) InstallDependency(_ context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	if e.project.Descriptor.HasDependencies() {
		e.logger.Warn("bash snippets do not support dependencies", "count", len(e.project.Descriptor.Dependencies))
	}
	return e.markInstalled()
}

// TryRun parses the script with the bash dialect of mvdan/sh.
func (e *BashExecutor) TryRun(_ context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	if _, err := parser.Parse(strings.NewReader(e.source), e.project.SourcePath); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}

// Execute writes the script and returns "bash <script>".
func (e *BashExecutor) Execute(ctx context.Context) (*exec.Cmd, error) {
	if err := e.BuildProject(ctx); err != nil {
		return nil, err
	}
	return e.handOff(e.command(ctx, e.project.SourcePath)), nil
}
