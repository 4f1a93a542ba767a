// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/exemd/exemd/internal/config"
)

type fixedConfigProvider struct {
	cfg *config.Config
	err error
}

func (p *fixedConfigProvider) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	return p.cfg, p.err
}

// testApp returns an App with in-memory streams and a configuration whose
// output directory is a per-test temporary directory.
func testApp(t *testing.T, stdin string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.OutputDir = t.TempDir()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: &fixedConfigProvider{cfg: cfg},
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return app, &stdout, &stderr
}

// execute runs the command tree with args against app.
func execute(t *testing.T, app *App, args ...string) error {
	t.Helper()

	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(t.Context())
}

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-03-01T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-03-01T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t, "")
	root := NewRootCommand(app)

	for _, name := range []string{"run", "doc", "langs", "config"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered (got %v, err %v)", name, cmd, err)
		}
	}
}

func TestAppInit_ConfigLoadFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: &fixedConfigProvider{err: errors.New("broken config")},
		Stdout: io.Discard,
		Stderr: &stderr,
	})
	app.init(t.Context(), &rootFlagValues{})

	if app.cfg == nil || app.cfg.Run.Timeout != config.DefaultConfig().Run.Timeout {
		t.Errorf("cfg = %+v, want defaults", app.cfg)
	}
	if !strings.Contains(stderr.String(), "broken config") {
		t.Errorf("stderr = %q, want the load error", stderr.String())
	}
}

func TestAppInit_VerboseFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.UI.Verbose = true
	app := NewApp(Dependencies{
		Config: &fixedConfigProvider{cfg: cfg},
		Stdout: io.Discard,
		Stderr: io.Discard,
	})
	app.init(t.Context(), &rootFlagValues{})

	if !app.verbose {
		t.Error("verbose = false, want true from ui.verbose")
	}
}

func TestLangsCommand(t *testing.T) {
	t.Parallel()

	app, stdout, _ := testApp(t, "")
	app.cfg.Toolchains = map[string]config.ToolchainConfig{
		"python": {Binary: "/opt/python/bin/python3"},
	}
	app.Config = &fixedConfigProvider{cfg: app.cfg}

	if err := execute(t, app, "langs"); err != nil {
		t.Fatalf("langs: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"java", "go", "rust", "python", "bash", "gradle", "/opt/python/bin/python3", "compiled", "interpreted"} {
		if !strings.Contains(out, want) {
			t.Errorf("langs output missing %q:\n%s", want, out)
		}
	}
}
