// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exemd/exemd/internal/issue"
	"github.com/exemd/exemd/internal/lang"
	"github.com/exemd/exemd/internal/markdown"
)

type (
	// docFlagValues holds the flags of the doc command.
	docFlagValues struct {
		outDir    string
		timeout   string
		keepGoing bool
	}

	// blockResult is the outcome of one code block.
	blockResult struct {
		block markdown.Block
		err   error
	}
)

func newDocCommand(app *App) *cobra.Command {
	flags := &docFlagValues{}

	docCmd := &cobra.Command{
		Use:   "doc <file.md>",
		Short: "Run the code blocks of a Markdown document",
		Long: `Run the code blocks of a Markdown document.

Every fenced code block whose info string names a supported language is run
in document order. Blocks preceded by "<!-- exemd-skip -->" or carrying the
"exemd-skip" info attribute are left out. Without --keep-going the first
failing block stops the run.`,
		Example: `  exemd doc README.md
  exemd doc --keep-going docs/tutorial.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.fail(runDocument(cmd, app, flags, args[0]))
		},
	}

	docCmd.Flags().StringVar(&flags.outDir, "out-dir", "", "directory the projects are generated in")
	docCmd.Flags().StringVar(&flags.timeout, "timeout", "", `bound each block's run, e.g. "30s" ("0" disables)`)
	docCmd.Flags().BoolVar(&flags.keepGoing, "keep-going", false, "run the remaining blocks after a failure")

	return docCmd
}

func runDocument(cmd *cobra.Command, app *App, flags *docFlagValues, path string) error {
	doc, err := markdown.ReadFile(path)
	if err != nil {
		return newServiceError(err, issue.SnippetNotFoundId)
	}

	blocks := doc.Runnable(isSupportedLanguage)
	if len(blocks) == 0 {
		fmt.Fprintf(app.stdout, "%s no runnable code blocks in %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	results := app.runBlocks(cmd.Context(), cmd, flags, doc, blocks)
	renderDocSummary(app, doc, results)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d code blocks failed", failed, len(blocks))}
	}
	return nil
}

func (a *App) runBlocks(ctx context.Context, cmd *cobra.Command, flags *docFlagValues, doc *markdown.Document, blocks []markdown.Block) []blockResult {
	runFlags := &runFlagValues{outDir: flags.outDir, timeout: flags.timeout}

	results := make([]blockResult, 0, len(blocks))
	for _, b := range blocks {
		res := blockResult{block: b}
		l, err := lang.ParseLanguage(b.Lang)
		if err == nil {
			var req snippetRequest
			req, err = newSnippetRequest(cmd, a, runFlags, l)
			if err == nil {
				req.source = b.Code
				fmt.Fprintf(a.stdout, "%s %s\n", CmdStyle.Render("→"), b.Location(doc.Source))
				err = a.runSnippet(ctx, req)
			}
		}
		res.err = err
		results = append(results, res)

		if err != nil && (!flags.keepGoing || errors.Is(err, context.Canceled)) {
			break
		}
	}
	return results
}

func renderDocSummary(app *App, doc *markdown.Document, results []blockResult) {
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, TitleStyle.Render("Summary"))
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(app.stdout, "  %s %s\n", SuccessStyle.Render("✓"), r.block.Location(doc.Source))
			continue
		}
		fmt.Fprintf(app.stdout, "  %s %s: %s\n", ErrorStyle.Render("✗"), r.block.Location(doc.Source), formatErrorForDisplay(r.err, app.verbose))
	}
}

func isSupportedLanguage(name string) bool {
	_, err := lang.ParseLanguage(name)
	return err == nil
}
