// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"os/exec"

	"github.com/exemd/exemd/internal/manifest"
	"github.com/exemd/exemd/pkg/directive"
)

// JavaExecutor builds snippets as a Gradle application project:
//
//	<root>/build.gradle
//	<root>/src/main/java/[<name>/]<filename>.java
//
// and runs them with "gradle -p <root> run".
type JavaExecutor struct {
	backend
}

// NewJava returns the java backend for source.
func NewJava(source string, opts ...Option) *JavaExecutor {
	o := applyOptions(opts)
	return &JavaExecutor{backend: newBackend(profile{
		lang:     Java,
		ext:      "java",
		binary:   "gradle",
		manifest: manifest.Gradle(o.gradleVocab),
		sourceDir: func(d directive.Descriptor) []string {
			dir := []string{"src", "main", "java"}
			if d.IsNamed() {
				dir = append(dir, d.Name)
			}
			return dir
		},
	}, source, opts)}
}

// BuildProject scaffolds the Gradle project.
func (e *JavaExecutor) BuildProject(ctx context.Context) error {
	return e.build(ctx)
}

// InstallDependency is a no-op: Gradle resolves the declared dependencies from
// Maven Central during its own run.
func (e *JavaExecutor) InstallDependency(_ context.Context) error {
	return e.markInstalled()
}

// TryRun only checks that the project was built: Gradle has no cheaper
// validation than the build itself.
func (e *JavaExecutor) TryRun(_ context.Context) error {
	return e.requireBuilt()
}

// Execute builds the project and returns the gradle invocation.
func (e *JavaExecutor) Execute(ctx context.Context) (*exec.Cmd, error) {
	if err := e.BuildProject(ctx); err != nil {
		return nil, err
	}
	return e.Compile(ctx)
}

// Compile returns "gradle -p <root> run".
func (e *JavaExecutor) Compile(ctx context.Context) (*exec.Cmd, error) {
	if err := e.requireBuilt(); err != nil {
		return nil, err
	}
	return e.handOff(e.command(ctx, "-p", e.project.RootDir, "run")), nil
}
