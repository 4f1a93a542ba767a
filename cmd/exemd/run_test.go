// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exemd/exemd/internal/config"
	"github.com/exemd/exemd/internal/issue"
	"github.com/exemd/exemd/internal/lang"
	"github.com/exemd/exemd/internal/testutil"
)

const helloScript = `# exemd-name: greet
echo "Hello from $(basename "$(pwd)")"
`

func TestResolveLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    string
		arg     string
		want    lang.Language
		wantErr bool
	}{
		{name: "flag wins over extension", flag: "py", arg: "main.go", want: lang.Python},
		{name: "extension", arg: "Hello.java", want: lang.Java},
		{name: "shell extension", arg: "dir/run.sh", want: lang.Bash},
		{name: "stdin requires flag", arg: stdinArg, wantErr: true},
		{name: "unknown extension", arg: "notes.txt", wantErr: true},
		{name: "unknown flag", flag: "cobol", arg: "x.cob", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveLanguage(tt.flag, tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveLanguage(%q, %q) error = %v, wantErr %v", tt.flag, tt.arg, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveLanguage(%q, %q) = %q, want %q", tt.flag, tt.arg, got, tt.want)
			}
		})
	}
}

func TestResolveLanguage_UnknownExtensionIssue(t *testing.T) {
	t.Parallel()

	_, err := resolveLanguage("", "notes.txt")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.LanguageNotSupportedId {
		t.Fatalf("err = %v, want ServiceError with LanguageNotSupportedId", err)
	}
	if !errors.Is(err, lang.ErrUnsupportedLanguage) {
		t.Errorf("errors.Is(err, ErrUnsupportedLanguage) = false for %v", err)
	}
}

func TestReadSnippet(t *testing.T) {
	t.Parallel()

	t.Run("stdin", func(t *testing.T) {
		t.Parallel()
		got, err := readSnippet(strings.NewReader("echo hi\n"), stdinArg)
		if err != nil || got != "echo hi\n" {
			t.Errorf("readSnippet(stdin) = %q, %v", got, err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := readSnippet(nil, filepath.Join(t.TempDir(), "missing.sh"))

		var svcErr *ServiceError
		if !errors.As(err, &svcErr) || svcErr.IssueID != issue.SnippetNotFoundId {
			t.Fatalf("err = %v, want ServiceError with SnippetNotFoundId", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("errors.Is(err, os.ErrNotExist) = false for %v", err)
		}
	})
}

func TestRunCommand_DryRun(t *testing.T) {
	t.Parallel()

	app, stdout, _ := testApp(t, helloScript)
	if err := execute(t, app, "run", "--lang", "bash", "--dry-run", "-"); err != nil {
		t.Fatalf("run --dry-run: %v", err)
	}

	root := filepath.Join(app.cfg.OutputDir, "bash", "greet")
	script := filepath.Join(root, "main.sh")
	if _, err := os.Stat(script); err != nil {
		t.Fatalf("dry run did not build the project: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Dry Run", "greet", root, "bash " + script} {
		if !strings.Contains(out, want) {
			t.Errorf("dry run output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Hello from") {
		t.Error("dry run executed the snippet")
	}
}

func TestRunCommand_DryRunRejectsSyntaxError(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t, "if then fi (\n")
	err := execute(t, app, "run", "--lang", "bash", "--dry-run", "-")
	if err == nil {
		t.Fatal("run --dry-run succeeded for a broken script")
	}
}

func TestRunCommand_WatchAndDryRunConflict(t *testing.T) {
	t.Parallel()

	app, _, _ := testApp(t, "")
	err := execute(t, app, "run", "--watch", "--dry-run", "x.sh")
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Errorf("err = %v, want conflict error", err)
	}
}

func TestRunCommand_Bash(t *testing.T) {
	t.Parallel()
	testutil.RequireToolchain(t, "bash")

	path := testutil.MustWriteFile(t, filepath.Join(t.TempDir(), "hello.sh"), helloScript)

	app, stdout, _ := testApp(t, "")
	if err := execute(t, app, "run", path); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := stdout.String(); !strings.Contains(got, "Hello from greet") {
		t.Errorf("stdout = %q, want the snippet output run from its project root", got)
	}
}

func TestRunCommand_PropagatesExitCode(t *testing.T) {
	t.Parallel()
	testutil.RequireToolchain(t, "bash")

	app, _, _ := testApp(t, "exit 7\n")
	err := execute(t, app, "run", "--lang", "sh", "-")

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("err = %v, want *ExitError", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("exit code = %d, want 7", exitErr.Code)
	}

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.SnippetExecutionFailedId {
		t.Errorf("err = %v, want SnippetExecutionFailedId", err)
	}
}

func TestRunCommand_Timeout(t *testing.T) {
	t.Parallel()
	testutil.RequireToolchain(t, "bash")

	app, _, _ := testApp(t, "sleep 10\n")
	err := execute(t, app, "run", "--lang", "bash", "--timeout", "200ms", "-")
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Errorf("err = %v, want timeout", err)
	}
}

func TestRunCommand_MissingToolchain(t *testing.T) {
	t.Parallel()

	app, _, stderr := testApp(t, "echo hi\n")
	app.cfg.Toolchains = map[string]config.ToolchainConfig{
		"bash": {Binary: config.BinaryPath(filepath.Join(t.TempDir(), "no-such-bash"))},
	}

	err := execute(t, app, "run", "--lang", "bash", "-")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ToolchainNotFoundId {
		t.Fatalf("err = %v, want ServiceError with ToolchainNotFoundId", err)
	}
	if stderr.Len() == 0 {
		t.Error("expected the catalog entry on stderr")
	}
}

func TestClassifyBuildError(t *testing.T) {
	t.Parallel()

	pathErr := &os.PathError{Op: "mkdir", Path: "/x", Err: os.ErrPermission}
	err := classifyBuildError(pathErr)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.IssueID != issue.ScaffoldFailedId {
		t.Errorf("classifyBuildError(PathError) = %v, want ScaffoldFailedId", err)
	}
}
