// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/pelletier/go-toml/v2"

	"github.com/exemd/exemd/internal/manifest"
	"github.com/exemd/exemd/pkg/directive"
)

// RustExecutor builds snippets as a Cargo package:
//
//	<root>/Cargo.toml
//	<root>/src/<filename>.rs
//
// and runs them with "cargo run --quiet --manifest-path <root>/Cargo.toml".
type RustExecutor struct {
	backend
}

// cargoManifest is the subset of Cargo.toml checked by TryRun.
type cargoManifest struct {
	Package struct {
		Name    string `toml:"name"`
		Version string `toml:"version"`
	} `toml:"package"`
	Bin []struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	} `toml:"bin"`
	Dependencies map[string]any `toml:"dependencies"`
}

// NewRust returns the rust backend for source.
func NewRust(source string, opts ...Option) *RustExecutor {
	return &RustExecutor{backend: newBackend(profile{
		lang:     Rust,
		ext:      "rs",
		binary:   "cargo",
		manifest: manifest.Cargo(),
		sourceDir: func(directive.Descriptor) []string {
			return []string{"src"}
		},
	}, source, opts)}
}

// BuildProject scaffolds the Cargo package.
func (e *RustExecutor) BuildProject(ctx context.Context) error {
	return e.build(ctx)
}

// InstallDependency fetches crates with "cargo fetch" when any are declared.
func (e *RustExecutor) InstallDependency(ctx context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	if e.project.Descriptor.HasDependencies() {
		if err := e.runSync(e.command(ctx, "fetch", "--manifest-path", e.project.ManifestPath), "fetch crates"); err != nil {
			return err
		}
	}
	return e.markInstalled()
}

// TryRun decodes the generated Cargo.toml. Duplicate crate declarations and
// values that broke the TOML quoting are reported here instead of by cargo.
func (e *RustExecutor) TryRun(_ context.Context) error {
	if err := e.requireBuilt(); err != nil {
		return err
	}
	data, err := os.ReadFile(e.project.ManifestPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", manifest.CargoFilename, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("invalid %s: %w", manifest.CargoFilename, err)
	}
	if m.Package.Name == "" || len(m.Bin) != 1 {
		return fmt.Errorf("invalid %s: missing package name or binary target", manifest.CargoFilename)
	}
	if got, want := len(m.Dependencies), len(e.project.Descriptor.Dependencies); got != want {
		return fmt.Errorf("invalid %s: %d dependencies declared, %d rendered", manifest.CargoFilename, want, got)
	}
	return nil
}

// Execute builds the package and returns the cargo invocation.
func (e *RustExecutor) Execute(ctx context.Context) (*exec.Cmd, error) {
	if err := e.BuildProject(ctx); err != nil {
		return nil, err
	}
	return e.Compile(ctx)
}

// Compile returns "cargo run --quiet --manifest-path <root>/Cargo.toml".
func (e *RustExecutor) Compile(ctx context.Context) (*exec.Cmd, error) {
	if err := e.requireBuilt(); err != nil {
		return nil, err
	}
	return e.handOff(e.command(ctx, "run", "--quiet", "--manifest-path", e.project.ManifestPath)), nil
}
