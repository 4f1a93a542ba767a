// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/exemd/exemd/internal/manifest"
)

// depsDir holds packages installed by InstallDependency, relative to the root.
const depsDir = ".deps"

// PythonExecutor runs snippets directly with the interpreter:
//
//	<root>/requirements.txt
//	<root>/<filename>.py
//
// Dependencies are installed into <root>/.deps, which is put on PYTHONPATH.
type PythonExecutor struct {
	backend
}

// NewPython returns the python backend for source.
func NewPython(source string, opts ...Option) *PythonExecutor {
	return &PythonExecutor{backend: newBackend(profile{
		lang:      Python,
		ext:       "py",
		binary:    "python3",
		manifest:  manifest.Requirements(),
		sourceDir: flat,
	}, source, opts)}
}

// BuildProject scaffolds the script and requirements.txt.
func (e *PythonExecutor) BuildProject(ctx context.Context) error {
	return e.build(ctx)
}

// InstallDependency runs "pip install --target <root>/.deps -r requirements.txt"
// when any dependency is declared.
func (e *PythonExecutor) InstallDependency(ctx context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	if e.project.Descriptor.HasDependencies() {
		cmd := e.command(ctx, "-m", "pip", "install", "--quiet",
			"--target", filepath.Join(e.project.RootDir, depsDir),
			"-r", e.project.ManifestPath)
		if err := e.runSync(cmd, "install requirements"); err != nil {
			return err
		}
	}
	return e.markInstalled()
}

// TryRun byte-compiles the script with "python3 -m py_compile".
func (e *PythonExecutor) TryRun(ctx context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	return e.runSync(e.command(ctx, "-m", "py_compile", e.project.SourcePath), "compile check")
}

// Execute builds the project and returns the interpreter invocation.
func (e *PythonExecutor) Execute(ctx context.Context) (*exec.Cmd, error) {
	if err := e.BuildProject(ctx); err != nil {
		return nil, err
	}
	cmd := e.command(ctx, e.project.SourcePath)
	if cmd.Env == nil {
		cmd.Env = cmd.Environ()
	}
	cmd.Env = append(cmd.Env, "PYTHONPATH="+filepath.Join(e.project.RootDir, depsDir))
	return e.handOff(cmd), nil
}
