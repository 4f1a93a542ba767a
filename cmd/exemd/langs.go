// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exemd/exemd/internal/lang"
)

func newLangsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List the supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listLanguages(app)
			return nil
		},
	}
}

// listLanguages prints every registered backend with its kind and the
// toolchain binary it invokes.
func listLanguages(app *App) {
	reg := app.registry("")

	fmt.Fprintln(app.stdout, TitleStyle.Render("Supported languages"))
	fmt.Fprintln(app.stdout)
	for _, l := range reg.Languages() {
		exe, err := reg.New(l, "")
		if err != nil {
			continue
		}
		kind := "interpreted"
		if lang.IsCompiled(exe) {
			kind = "compiled"
		}
		fmt.Fprintf(app.stdout, "  %s %-12s %s\n", labelStyle.Render(string(l)), kind, CmdStyle.Render(exe.Binary()))
	}
}
