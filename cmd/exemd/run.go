// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/exemd/exemd/internal/config"
	"github.com/exemd/exemd/internal/issue"
	"github.com/exemd/exemd/internal/lang"
	"github.com/exemd/exemd/internal/process"
	"github.com/exemd/exemd/pkg/directive"
)

const (
	// stdinArg selects standard input as the snippet source.
	stdinArg = "-"
	// waitDelay bounds the wait for output pipes held open by orphaned
	// children once the snippet has been killed.
	waitDelay = 2 * time.Second
)

type (
	// runFlagValues holds the flags of the run command.
	runFlagValues struct {
		lang    string
		outDir  string
		timeout string
		dryRun  bool
		install bool
		tryRun  bool
		watch   bool
	}

	// snippetRequest is one pass through the executor lifecycle.
	snippetRequest struct {
		lang    lang.Language
		source  string
		outDir  string
		timeout time.Duration
		install bool
		tryRun  bool
		dryRun  bool
		stdout  io.Writer
		stderr  io.Writer
	}
)

func newRunCommand(app *App) *cobra.Command {
	flags := &runFlagValues{}

	runCmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Build and run a snippet",
		Long: `Build and run a snippet.

The snippet is written into a fresh project under the output directory, the
build manifest is generated from its header directives and the language
toolchain is invoked. The snippet's exit code becomes exemd's exit code.

The language is inferred from the file extension unless --lang is given.
Reading from standard input ("-") requires --lang.`,
		Example: `  exemd run Hello.java
  exemd run --lang python - < script.py
  exemd run --dry-run --out-dir ./build main.go
  exemd run --watch hello.sh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(runCommand(cmd, app, flags, args[0]))
		},
	}

	runCmd.Flags().StringVarP(&flags.lang, "lang", "l", "", "snippet language (java, go, rust, python, bash)")
	runCmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory the project is generated in")
	runCmd.Flags().StringVar(&flags.timeout, "timeout", "", `bound the whole run, e.g. "30s" ("0" disables)`)
	runCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "build and validate the project, print the command without running it")
	runCmd.Flags().BoolVar(&flags.install, "install", true, "install declared dependencies before running")
	runCmd.Flags().BoolVar(&flags.tryRun, "try-run", true, "validate the project before running")
	runCmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "rerun the snippet whenever the file changes")

	return runCmd
}

func runCommand(cmd *cobra.Command, app *App, flags *runFlagValues, arg string) error {
	if flags.watch && flags.dryRun {
		return errors.New("--watch and --dry-run cannot be used together")
	}
	if flags.watch && arg == stdinArg {
		return errors.New("--watch requires a file argument")
	}

	l, err := resolveLanguage(flags.lang, arg)
	if err != nil {
		return err
	}

	req, err := newSnippetRequest(cmd, app, flags, l)
	if err != nil {
		return err
	}

	if flags.watch {
		return runWatchMode(cmd.Context(), app, req, arg)
	}

	source, err := readSnippet(app.stdin, arg)
	if err != nil {
		return err
	}
	req.source = source
	return app.runSnippet(cmd.Context(), req)
}

// newSnippetRequest merges the flags over the run section of the configuration.
func newSnippetRequest(cmd *cobra.Command, app *App, flags *runFlagValues, l lang.Language) (snippetRequest, error) {
	timeout := app.cfg.Run.Timeout
	if flags.timeout != "" {
		timeout = config.Timeout(flags.timeout)
	}
	d, err := timeout.Duration()
	if err != nil {
		return snippetRequest{}, err
	}

	req := snippetRequest{
		lang:    l,
		outDir:  flags.outDir,
		timeout: d,
		install: app.cfg.Run.InstallDependencies,
		tryRun:  app.cfg.Run.TryRun,
		dryRun:  flags.dryRun,
		stdout:  app.stdout,
		stderr:  app.stderr,
	}
	if cmd.Flags().Changed("install") {
		req.install = flags.install
	}
	if cmd.Flags().Changed("try-run") {
		req.tryRun = flags.tryRun
	}
	return req, nil
}

// resolveLanguage uses --lang when set and the file extension otherwise.
func resolveLanguage(name, arg string) (lang.Language, error) {
	if name != "" {
		l, err := lang.ParseLanguage(name)
		if err != nil {
			return "", newServiceError(err, issue.LanguageNotSupportedId)
		}
		return l, nil
	}
	if arg == stdinArg {
		return "", errors.New("--lang is required when reading from standard input")
	}
	ext := filepath.Ext(arg)
	l, ok := lang.LanguageForExtension(ext)
	if !ok {
		err := &lang.UnsupportedLanguageError{Value: ext}
		return "", newServiceError(
			issue.NewErrorContext().
				WithOperation("infer snippet language").
				WithResource(arg).
				WithSuggestion("Pass the language explicitly with --lang").
				Wrap(err).
				BuildError(),
			issue.LanguageNotSupportedId,
		)
	}
	return l, nil
}

func readSnippet(stdin io.Reader, arg string) (string, error) {
	var (
		data []byte
		err  error
	)
	if arg == stdinArg {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return "", newServiceError(
			issue.NewErrorContext().
				WithOperation("read snippet").
				WithResource(arg).
				Wrap(err).
				BuildError(),
			issue.SnippetNotFoundId,
		)
	}
	return string(data), nil
}

// runSnippet drives one executor through build, install, try-run and execute.
// A snippet that exits non-zero yields an *ExitError carrying its code.
func (a *App) runSnippet(ctx context.Context, req snippetRequest) error {
	if req.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.timeout)
		defer cancel()
	}

	exe, err := a.registry(req.outDir).New(req.lang, req.source)
	if err != nil {
		return newServiceError(err, issue.LanguageNotSupportedId)
	}

	if err := exe.BuildProject(ctx); err != nil {
		return classifyBuildError(err)
	}
	for _, diag := range exe.Project().Diagnostics {
		a.logger.Warn("ignored directive", "err", diag)
	}

	if req.install {
		if err := exe.InstallDependency(ctx); err != nil {
			return classifyToolchainError(err, "install dependencies")
		}
	}
	if req.tryRun || req.dryRun {
		if err := exe.TryRun(ctx); err != nil {
			return classifyToolchainError(err, "validate snippet")
		}
	}

	handle, err := exe.Execute(ctx)
	if err != nil {
		return classifyBuildError(err)
	}

	if req.dryRun {
		renderDryRun(req.stdout, exe, handle)
		return nil
	}

	a.logger.Debug("running snippet", "cmd", process.CommandLine(handle))
	handle.Stdin = a.stdin
	handle.WaitDelay = waitDelay
	res := process.Run(handle, req.stdout, req.stderr)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ExitError{Code: 1, Err: fmt.Errorf("snippet timed out after %s", req.timeout)}
	}
	if res.Error != nil {
		return classifyToolchainError(res.Error, "run snippet")
	}
	if !res.ExitCode.IsSuccess() {
		return &ExitError{
			Code: res.ExitCode,
			Err:  newServiceError(fmt.Errorf("snippet exited with status %s", res.ExitCode), issue.SnippetExecutionFailedId),
		}
	}
	return nil
}

// classifyBuildError attaches the catalog entry matching a failed build.
func classifyBuildError(err error) error {
	switch {
	case errors.Is(err, directive.ErrMalformedDirective):
		return newServiceError(err, issue.MalformedDirectiveId)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return newServiceError(err, issue.ScaffoldFailedId)
		}
		return newServiceError(err, issue.ManifestRenderFailedId)
	}
}

// classifyToolchainError reports a missing toolchain binary with its catalog
// entry and wraps anything else with the failed step.
func classifyToolchainError(err error, step string) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return newServiceError(
			issue.NewErrorContext().
				WithOperation(step).
				WithSuggestion("Install the toolchain or set toolchains.<lang>.binary in the configuration").
				Wrap(err).
				BuildError(),
			issue.ToolchainNotFoundId,
		)
	}
	return newServiceError(err, issue.SnippetExecutionFailedId)
}
