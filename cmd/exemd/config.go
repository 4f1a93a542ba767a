// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/exemd/exemd/internal/config"
)

const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `exemd config` command tree. Subcommands read
// the configuration loaded by the root command.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage exemd configuration",
		Long: `Manage exemd configuration.

Configuration is stored in:
  - Linux: ~/.config/exemd/config.cue
  - macOS: ~/Library/Application Support/exemd/config.cue
  - Windows: %APPDATA%\exemd\config.cue

A .exemd.cue file in the working directory is used when no user
configuration exists. EXEMD_* environment variables override both,
e.g. EXEMD_OUTPUT_DIR or EXEMD_RUN_TIMEOUT.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.fail(showConfig(app.stdout, app.cfg, format))
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue, toml)")

	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.fail(initConfig(app.stdout, dir))
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to create config.cue in (default is the user config directory)")

	cfgCmd.AddCommand(
		showCmd,
		initCmd,
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.fail(showConfigPath(app.stdout, app.cfg, rootFlags.configPath))
			},
		},
	)
	return cfgCmd
}

func showConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case formatCUE:
		if cfg.Source != "" {
			fmt.Fprintf(w, "// loaded from %s\n", cfg.Source)
		}
		fmt.Fprint(w, config.GenerateCUE(cfg))
		return nil
	case formatTOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode configuration: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q (supported: %s, %s)", format, formatCUE, formatTOML)
	}
}

func initConfig(w io.Writer, dir string) error {
	path, err := config.CreateDefaultConfig(dir)
	if errors.Is(err, config.ErrConfigExists) {
		fmt.Fprintf(w, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), CmdStyle.Render(path))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(path))
	return nil
}

// showConfigPath prints the file the configuration was loaded from, or where
// config init would create it.
func showConfigPath(w io.Writer, cfg *config.Config, explicit string) error {
	switch {
	case cfg.Source != "":
		fmt.Fprintln(w, cfg.Source)
	case explicit != "":
		fmt.Fprintln(w, explicit)
	default:
		dir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
		fmt.Fprintf(w, "%s %s\n", path, SubtitleStyle.Render("(not created, using defaults)"))
	}
	return nil
}
