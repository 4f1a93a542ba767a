// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/exemd/exemd/internal/scaffold"
	"github.com/exemd/exemd/pkg/directive"
)

type (
	// Vocabulary is the per-build-tool keyword table used to fill the slots.
	Vocabulary struct {
		// DependencyVerb is the dependency-declaration keyword (e.g., "compile").
		DependencyVerb string
		// EntryPointKey is the key naming the entry point (e.g., "mainClassName").
		EntryPointKey string
		// FallbackEntryPoint is used when the snippet declares no name.
		FallbackEntryPoint string
	}

	// Template renders one manifest file.
	Template struct {
		filename  string
		vocab     Vocabulary
		skeleton  *template.Template
		depLine   func(Vocabulary, directive.Dependency) string
		entryLine func(Vocabulary, directive.Descriptor) string
	}

	// slots is the data handed to the skeleton.
	slots struct {
		Dependencies    string
		EntryPoint      string
		Filename        string
		HasDependencies bool
	}
)

// Filename returns the manifest file name written at the project root.
func (t *Template) Filename() string {
	return t.filename
}

// Vocabulary returns the keyword table of the template.
func (t *Template) Vocabulary() Vocabulary {
	return t.vocab
}

// Render renders the manifest for desc without touching disk.
// Dependency lines are joined by a single newline and appear in declaration order.
func (t *Template) Render(desc directive.Descriptor) (string, error) {
	lines := make([]string, 0, len(desc.Dependencies))
	for _, dep := range desc.Dependencies {
		lines = append(lines, t.depLine(t.vocab, dep))
	}

	var out strings.Builder
	err := t.skeleton.Execute(&out, slots{
		Dependencies:    strings.Join(lines, "\n"),
		EntryPoint:      t.entryLine(t.vocab, desc),
		Filename:        desc.EntryFilename(),
		HasDependencies: desc.HasDependencies(),
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", t.filename, err)
	}
	return out.String(), nil
}

// Write renders the manifest and writes it to <rootDir>/<Filename()>, replacing
// any previous version. It returns the rendered text and the written path.
func (t *Template) Write(desc directive.Descriptor, rootDir string) (string, string, error) {
	text, err := t.Render(desc)
	if err != nil {
		return "", "", err
	}
	path, err := scaffold.WriteFile(text, filepath.Join(rootDir, t.filename))
	if err != nil {
		return "", "", err
	}
	return text, path, nil
}

// newTemplate parses skeleton; a broken skeleton is a programming error.
func newTemplate(
	filename string,
	vocab Vocabulary,
	skeleton string,
	depLine func(Vocabulary, directive.Dependency) string,
	entryLine func(Vocabulary, directive.Descriptor) string,
) *Template {
	return &Template{
		filename:  filename,
		vocab:     vocab,
		skeleton:  template.Must(template.New(filename).Option("missingkey=error").Parse(skeleton)),
		depLine:   depLine,
		entryLine: entryLine,
	}
}

// qualifiedEntryPoint renders "<key> = '<name>.<filename>'" for named snippets
// and "<key> = '<fallback>'" otherwise.
func qualifiedEntryPoint(v Vocabulary, d directive.Descriptor) string {
	if d.IsNamed() {
		return fmt.Sprintf("%s = '%s.%s'", v.EntryPointKey, d.Name, d.EntryFilename())
	}
	return fmt.Sprintf("%s = '%s'", v.EntryPointKey, v.FallbackEntryPoint)
}

// projectName returns the snippet name or the fallback token.
func projectName(v Vocabulary, d directive.Descriptor) string {
	if d.IsNamed() {
		return d.Name
	}
	return v.FallbackEntryPoint
}
