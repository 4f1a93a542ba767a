// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/exemd/exemd/internal/lang"
	"github.com/exemd/exemd/internal/process"
)

// renderDryRun prints the generated project and the command that would run
// it, without starting the process.
func renderDryRun(w io.Writer, exe lang.Executor, handle *exec.Cmd) {
	project := exe.Project()
	desc := project.Descriptor

	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Language:"), exe.Language())
	if desc.IsNamed() {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Name:"), desc.Name)
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Project:"), project.RootDir)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Source:"), project.SourcePath)
	if project.ManifestPath != "" {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Manifest:"), project.ManifestPath)
	}

	if len(desc.Dependencies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, SubtitleStyle.Render("  Dependencies:"))
		for _, dep := range desc.Dependencies {
			fmt.Fprintf(w, "    %s\n", dep)
		}
	}

	if len(project.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, WarningStyle.Render("  Ignored directives:"))
		for _, diag := range project.Diagnostics {
			fmt.Fprintf(w, "    %v\n", diag)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Command:"), CmdStyle.Render(process.CommandLine(handle)))
	fmt.Fprintln(w)
}
