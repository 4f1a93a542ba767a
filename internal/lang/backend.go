// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/exemd/exemd/internal/manifest"
	"github.com/exemd/exemd/internal/process"
	"github.com/exemd/exemd/internal/scaffold"
	"github.com/exemd/exemd/pkg/directive"
)

// profile is the per-backend constant table.
type profile struct {
	lang     Language
	ext      string
	binary   string
	manifest *manifest.Template
	// sourceDir returns the source directory relative to the project root.
	sourceDir func(directive.Descriptor) []string
}

// backend carries the state and the scaffolding shared by every executor.
type backend struct {
	profile    profile
	source     string
	scaffolder *scaffold.Scaffolder
	logger     *log.Logger
	binary     string
	env        []string

	project Project
	state   State
}

func newBackend(s profile, source string, opts []Option) backend {
	o := applyOptions(opts)
	binary := s.binary
	if override, ok := o.binaries[s.lang]; ok {
		binary = override
	}
	return backend{
		profile:    s,
		source:     source,
		scaffolder: o.scaffolder,
		logger:     o.logger.With("lang", s.lang),
		binary:     binary,
		env:        o.env,
	}
}

func (b *backend) Language() Language { return b.profile.lang }

func (b *backend) State() State { return b.state }

func (b *backend) Project() Project { return b.project }

func (b *backend) Binary() string { return b.binary }

// build parses the snippet, scaffolds the layout, writes the source file and
// then the manifest. A failure leaves whatever was already written on disk.
func (b *backend) build(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("build %s project canceled: %w", b.profile.lang, err)
	}

	desc, diags := directive.ParseWithDiagnostics(b.source)
	for _, d := range diags {
		b.logger.Warn("skipping directive", "err", d)
	}

	srcDir := b.profile.sourceDir(desc)
	root, err := b.scaffolder.CreateLayout(string(b.profile.lang), desc.Name, srcDir...)
	if err != nil {
		return err
	}

	srcPath := filepath.Join(append([]string{root}, srcDir...)...)
	srcPath = filepath.Join(srcPath, desc.EntryFilename()+"."+b.profile.ext)
	if _, err := b.scaffolder.WriteFile(b.source, srcPath); err != nil {
		return err
	}

	project := Project{
		Descriptor:  desc,
		Diagnostics: diags,
		RootDir:     root,
		SourcePath:  srcPath,
	}

	if b.profile.manifest != nil {
		_, manifestPath, err := b.profile.manifest.Write(desc, root)
		if err != nil {
			return err
		}
		project.ManifestPath = manifestPath
	}

	b.project = project
	b.state = StateBuilt
	b.logger.Debug("project built", "root", root, "source", srcPath)
	return nil
}

func (b *backend) requireBuilt() error {
	if b.state == StateUninitialized {
		return fmt.Errorf("%s: %w", b.profile.lang, ErrNotBuilt)
	}
	return nil
}

// markInstalled records a (possibly no-op) dependency installation.
func (b *backend) markInstalled() error {
	if err := b.requireBuilt(); err != nil {
		return err
	}
	b.state = StateDependenciesInstalled
	return nil
}

// command builds a handle for the toolchain binary. The working directory is
// the project root, so the handle never depends on the caller's directory.
func (b *backend) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, b.binary, args...)
	cmd.Dir = b.project.RootDir
	if len(b.env) > 0 {
		cmd.Env = append(os.Environ(), b.env...)
	}
	return cmd
}

// runSync runs a helper toolchain step (dependency fetch, syntax check) to
// completion and folds its output into the error on failure.
func (b *backend) runSync(cmd *exec.Cmd, step string) error {
	b.logger.Info(step, "cmd", process.CommandLine(cmd))
	res := process.Capture(cmd)
	if res.Error != nil {
		return fmt.Errorf("%s: %w", step, res.Error)
	}
	if !res.Success() {
		return fmt.Errorf("%s: exit status %s: %s", step, res.ExitCode, res.Output+res.ErrOutput)
	}
	return nil
}

// handOff logs the handle and moves the executor into the Executing state.
func (b *backend) handOff(cmd *exec.Cmd) *exec.Cmd {
	b.logger.Info("invoking toolchain", "cmd", process.CommandLine(cmd))
	b.state = StateExecuting
	return cmd
}

func flat(_ directive.Descriptor) []string { return nil }
