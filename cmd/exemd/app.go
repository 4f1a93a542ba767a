// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/exemd/exemd/internal/config"
	"github.com/exemd/exemd/internal/issue"
	"github.com/exemd/exemd/internal/lang"
	"github.com/exemd/exemd/internal/manifest"
)

type (
	// App wires the CLI services. It is created once per process and
	// initialized with the loaded configuration before any command runs.
	App struct {
		Config config.Provider

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		cfg     *config.Config
		logger  *log.Logger
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	return &App{
		Config: deps.Config,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
		cfg:    config.DefaultConfig(),
		logger: newLogger(deps.Stderr, false),
	}
}

// init loads the configuration and sets up logging. The --verbose flag wins
// over ui.verbose. A configuration that fails to load is reported and the
// defaults are used instead.
func (a *App) init(ctx context.Context, flags *rootFlagValues) {
	a.verbose = flags.verbose
	a.logger = newLogger(a.stderr, a.verbose)

	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: flags.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		renderIssueHelp(a.stderr, newServiceError(err, issue.ConfigLoadFailedId), a.cfg.UI.ColorScheme.String(), a.logger)
		return
	}
	a.cfg = cfg
	if cfg.UI.Verbose && !a.verbose {
		a.verbose = true
		a.logger = newLogger(a.stderr, true)
	}
	if cfg.Source != "" {
		a.logger.Debug("configuration loaded", "path", cfg.Source)
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "exemd",
		Level:  level,
	})
}

// registry builds the language registry from the configuration. A non-empty
// outDir overrides output_dir.
func (a *App) registry(outDir string) *lang.Registry {
	if outDir == "" {
		outDir = a.cfg.OutputDir
	}
	if outDir == "" {
		outDir = lang.DefaultOutputDir()
	}

	opts := []lang.Option{
		lang.WithOutputDir(outDir),
		lang.WithLogger(a.logger),
		lang.WithGradleVocabulary(manifest.Vocabulary{
			DependencyVerb:     a.cfg.Java.DependencyVerb,
			EntryPointKey:      a.cfg.Java.EntryPointKey,
			FallbackEntryPoint: a.cfg.Java.FallbackEntryPoint,
		}),
	}
	for name, tc := range a.cfg.Toolchains {
		l, err := lang.ParseLanguage(name)
		if err != nil || tc.Binary == "" {
			continue
		}
		opts = append(opts, lang.WithBinary(l, tc.Binary.String()))
	}
	return lang.NewRegistry(opts...)
}

// fail prints the catalog entry of a ServiceError and, in verbose mode, the
// full actionable error chain. err is returned unchanged.
func (a *App) fail(err error) error {
	renderIssueHelp(a.stderr, err, a.cfg.UI.ColorScheme.String(), a.logger)
	if a.verbose {
		var ae *issue.ActionableError
		if errors.As(err, &ae) {
			_, _ = io.WriteString(a.stderr, formatErrorForDisplay(err, true)+"\n")
		}
	}
	return err
}
