// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/exemd/exemd/internal/watch"
)

// runWatchMode runs the snippet once, then again after every change to path,
// until ctx is canceled. Failed runs are reported and do not stop watching.
func runWatchMode(ctx context.Context, app *App, req snippetRequest, path string) error {
	rerun := func(ctx context.Context, _ []string) error {
		source, err := readSnippet(app.stdin, path)
		if err != nil {
			return err
		}
		req.source = source
		return app.runSnippet(ctx, req)
	}

	fmt.Fprintf(app.stdout, "%s Watch mode: initial run of '%s'\n", CmdStyle.Render("→"), path)
	if err := rerun(ctx, nil); err != nil {
		fmt.Fprintf(app.stderr, "%s Run failed: %v\n", WarningStyle.Render("!"), err)
	}
	fmt.Fprintf(app.stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", CmdStyle.Render("→"))

	cfg := watch.FileConfig(path, func(ctx context.Context, changed []string) error {
		fmt.Fprintf(app.stdout, "%s Detected change in %s. Rerunning...\n", CmdStyle.Render("→"), changed[0])
		if err := rerun(ctx, changed); err != nil {
			fmt.Fprintf(app.stderr, "%s Run failed: %v\n", WarningStyle.Render("!"), err)
		}
		fmt.Fprintf(app.stdout, "\n%s Watching for changes...\n\n", CmdStyle.Render("→"))
		return nil
	})
	cfg.Stdout = app.stdout
	cfg.Logger = app.logger

	w, err := watch.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
