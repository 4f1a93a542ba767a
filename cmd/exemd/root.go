// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "exemd",
		Short: "Run code snippets from files and Markdown documents",
		Long: TitleStyle.Render("exemd") + SubtitleStyle.Render(" - Run code snippets from files and Markdown documents") + `

exemd turns a single source snippet into a throwaway project, generates the
build manifest its language needs and runs it with the local toolchain.
Dependencies are declared in a comment header at the top of the snippet:

  // exemd-name: hello
  // exemd-filename: Main
  // exemd-deps: joda-time:joda-time;version=2.9.9

` + SubtitleStyle.Render("Examples:") + `
  exemd run Hello.java          Build and run a Java snippet with Gradle
  exemd run -l python - < x.py  Run a snippet read from standard input
  exemd run --dry-run main.go   Show the generated project without running it
  exemd doc README.md           Run every fenced code block of a document
  exemd langs                   List the supported languages`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.init(cmd.Context(), flags)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/exemd/config.cue)")

	rootCmd.AddCommand(
		newRunCommand(app),
		newDocCommand(app),
		newLangsCommand(app),
		newConfigCommand(app, flags),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits with the snippet's exit code when one was
// propagated. It is called by main.main().
func Execute() {
	rootCmd := NewRootCommand(NewApp(Dependencies{}))
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
