// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	SnippetNotFoundId Id = iota + 1
	LanguageNotSupportedId
	ToolchainNotFoundId
	ScaffoldFailedId
	ManifestRenderFailedId
	MalformedDirectiveId
	SnippetExecutionFailedId
	ConfigLoadFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue Markdown for the terminal using the given glamour
// style ("dark", "light", "notty", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	snippetNotFoundIssue = &Issue{
		id: SnippetNotFoundId,
		mdMsg: `
# Snippet not found!

The file you asked exemd to run does not exist or could not be read.

## Things you can try:
- Check the path and try again
- Pipe the snippet through standard input instead:
~~~
$ cat Hello.java | exemd run --lang java -
~~~`,
	}

	languageNotSupportedIssue = &Issue{
		id: LanguageNotSupportedId,
		mdMsg: `
# Language not supported!

exemd has no backend for the requested language.

## Things you can try:
- List the available backends:
~~~
$ exemd langs
~~~

- Pass the language explicitly with ` + "`--lang`" + ` when the file extension is ambiguous`,
	}

	toolchainNotFoundIssue = &Issue{
		id: ToolchainNotFoundId,
		mdMsg: `
# Toolchain not found!

The build tool or interpreter for this language is not on your PATH.
exemd does not install toolchains; it only invokes them.

## Things you can try:
- Install the toolchain (gradle, go, cargo, python3, bash)
- Point exemd at a specific binary in your config file:
~~~cue
toolchains: java: binary: "/opt/gradle/bin/gradle"
~~~`,
	}

	scaffoldFailedIssue = &Issue{
		id: ScaffoldFailedId,
		mdMsg: `
# Could not scaffold the project!

exemd writes every snippet into a small project under its output directory
before building it. Creating that directory or writing a file failed.

## Things you can try:
- Check that the output directory is writable
- Choose another output directory:
~~~
$ exemd run --out-dir ./build/exemd Hello.java
~~~`,
	}

	manifestRenderFailedIssue = &Issue{
		id: ManifestRenderFailedId,
		mdMsg: `
# Could not render the build manifest!

The dependency/build manifest for this snippet could not be generated.

## Things you can try:
- Check the ` + "`exemd-deps`" + ` directives at the top of the snippet
- Run with ` + "`--verbose`" + ` to see the full error chain`,
	}

	malformedDirectiveIssue = &Issue{
		id: MalformedDirectiveId,
		mdMsg: `
# Malformed directive skipped

A metadata directive in the snippet header could not be understood and was ignored.
The rest of the snippet was still built.

## Directive syntax:
~~~java
// exemd-name: joda
// exemd-filename: HelloWorld
// exemd-deps: joda-time:joda-time;version=2.2
~~~`,
	}

	snippetExecutionFailedIssue = &Issue{
		id: SnippetExecutionFailedId,
		mdMsg: `
# Snippet exited with an error

The toolchain ran but the snippet (or its build) exited with a non-zero status.
The toolchain output above is shown unmodified.

## Things you can try:
- Reproduce the build by hand with the command printed in verbose mode
- Use ` + "`exemd run --dry-run`" + ` to inspect the generated project`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Check the CUE syntax of your config file
- Print the effective configuration:
~~~
$ exemd config show
~~~

- Recreate the default config:
~~~
$ exemd config init
~~~`,
	}

	issues = map[Id]*Issue{
		snippetNotFoundIssue.Id():        snippetNotFoundIssue,
		languageNotSupportedIssue.Id():   languageNotSupportedIssue,
		toolchainNotFoundIssue.Id():      toolchainNotFoundIssue,
		scaffoldFailedIssue.Id():         scaffoldFailedIssue,
		manifestRenderFailedIssue.Id():   manifestRenderFailedIssue,
		malformedDirectiveIssue.Id():     malformedDirectiveIssue,
		snippetExecutionFailedIssue.Id(): snippetExecutionFailedIssue,
		configLoadFailedIssue.Id():       configLoadFailedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
