// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exemd/exemd/internal/testutil"
)

const tutorial = "# Tutorial\n" +
	"\n" +
	"```bash\n" +
	"echo first block\n" +
	"```\n" +
	"\n" +
	"```sh\n" +
	"exit 3\n" +
	"```\n" +
	"\n" +
	"<!-- exemd-skip -->\n" +
	"```bash\n" +
	"echo skipped block\n" +
	"```\n" +
	"\n" +
	"```bash\n" +
	"echo last block\n" +
	"```\n" +
	"\n" +
	"```text\n" +
	"not code\n" +
	"```\n"

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	return testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "README.md"), content)
}

func TestDocCommand_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	testutil.RequireToolchain(t, "bash")

	app, stdout, _ := testApp(t, "")
	err := execute(t, app, "doc", writeDoc(t, tutorial))

	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("err = %v, want *ExitError with code 1", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "first block") {
		t.Errorf("first block did not run:\n%s", out)
	}
	if strings.Contains(out, "last block") {
		t.Errorf("run continued after a failure:\n%s", out)
	}
	if strings.Contains(out, "skipped block") {
		t.Errorf("skipped block ran:\n%s", out)
	}
}

func TestDocCommand_KeepGoing(t *testing.T) {
	t.Parallel()
	testutil.RequireToolchain(t, "bash")

	app, stdout, _ := testApp(t, "")
	err := execute(t, app, "doc", "--keep-going", writeDoc(t, tutorial))
	if err == nil || !strings.Contains(err.Error(), "1 of 3 code blocks failed") {
		t.Fatalf("err = %v, want one failed block of three", err)
	}

	out := stdout.String()
	for _, want := range []string{"first block", "last block", "Summary", "README.md:3 (bash)", "README.md:7 (sh)", "README.md:16 (bash)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDocCommand_NoRunnableBlocks(t *testing.T) {
	t.Parallel()

	app, stdout, _ := testApp(t, "")
	if err := execute(t, app, "doc", writeDoc(t, "# Title\n\n```text\nplain\n```\n")); err != nil {
		t.Fatalf("doc: %v", err)
	}
	if !strings.Contains(stdout.String(), "no runnable code blocks") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestDocCommand_MissingFile(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t, "")
	err := execute(t, app, "doc", filepath.Join(t.TempDir(), "missing.md"))

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
}
