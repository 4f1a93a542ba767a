// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// RequireToolchain skips the test in -short mode or when binary is not on
// PATH. It returns the resolved path.
func RequireToolchain(t testing.TB, binary string) string {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping %s toolchain test in short mode", binary)
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		t.Skipf("%s not installed", binary)
	}
	return path
}

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the write fails.
func MustWriteFile(t testing.TB, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// MustReadFile returns the content of path.
// The test fails immediately if the read fails.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}
