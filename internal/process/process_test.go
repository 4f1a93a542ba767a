// SPDX-License-Identifier: MPL-2.0

package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestCapture_Success(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	res := Capture(exec.CommandContext(context.Background(), sh, "-c", "echo out; echo err >&2"))
	if !res.Success() {
		t.Fatalf("expected success, got %+v", res)
	}
	if strings.TrimSpace(res.Output) != "out" {
		t.Errorf("Output = %q", res.Output)
	}
	if strings.TrimSpace(res.ErrOutput) != "err" {
		t.Errorf("ErrOutput = %q", res.ErrOutput)
	}
}

func TestCapture_NonZeroExit(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	res := Capture(exec.CommandContext(context.Background(), sh, "-c", "echo boom >&2; exit 3"))
	if res.Error != nil {
		t.Fatalf("non-zero exit must not be an Error, got %v", res.Error)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.ErrOutput, "boom") {
		t.Errorf("stderr not captured verbatim: %q", res.ErrOutput)
	}
}

func TestCapture_TeesExistingWriter(t *testing.T) {
	t.Parallel()
	sh := requireShell(t)

	var live bytes.Buffer
	cmd := exec.CommandContext(context.Background(), sh, "-c", "echo hi")
	cmd.Stdout = &live

	res := Capture(cmd)
	if live.String() != res.Output || res.Output == "" {
		t.Errorf("live = %q, captured = %q", live.String(), res.Output)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	t.Parallel()

	res := Run(exec.CommandContext(context.Background(), "exemd-definitely-not-a-binary"), nil, nil)
	if res.Error == nil {
		t.Fatal("expected an error for a missing binary")
	}
	if res.Success() {
		t.Error("missing binary must not be reported as success")
	}
}

func TestRun_Nil(t *testing.T) {
	t.Parallel()

	if res := Run(nil, nil, nil); !errors.Is(res.Error, ErrNilCommand) {
		t.Errorf("expected ErrNilCommand, got %v", res.Error)
	}
	if res := Capture(nil); !errors.Is(res.Error, ErrNilCommand) {
		t.Errorf("expected ErrNilCommand, got %v", res.Error)
	}
}

func TestCommandLine(t *testing.T) {
	t.Parallel()

	cmd := exec.CommandContext(context.Background(), "gradle", "-p", "/tmp/my project", "run")
	if got, want := CommandLine(cmd), "gradle -p '/tmp/my project' run"; got != want {
		t.Errorf("CommandLine() = %q, want %q", got, want)
	}
}

func TestExitCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []ExitCode{-1, 0, 1, 255} {
		if ok, _ := c.IsValid(); !ok {
			t.Errorf("%d should be valid", c)
		}
	}
	ok, errs := ExitCode(256).IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidExitCode) {
		t.Errorf("256 should be invalid, got %v %v", ok, errs)
	}
}
