// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/exemd/exemd/internal/testutil"
)

const (
	// gradleImage is the last Gradle line that still accepts the "compile" verb.
	gradleImage      = "gradle:6.9.4-jdk11"
	containerProject = "/project"
)

// checkTestcontainersAvailable safely checks if testcontainers can be used.
// Returns true if containers are available, false otherwise.
func checkTestcontainersAvailable() (available bool) {
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	provider, err := testcontainers.ProviderDocker.GetProvider()
	if err != nil {
		return false
	}
	defer provider.Close()
	return true
}

// TestJava_GradleInContainer builds a snippet on the host and runs the
// generated gradle invocation inside a Gradle image.
func TestJava_GradleInContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !checkTestcontainersAvailable() {
		t.Skip("skipping container integration tests: testcontainers provider not available")
	}

	sem := testutil.ContainerSemaphore()
	sem <- struct{}{}
	defer func() { <-sem }()

	_, opts := testOptions(t)
	e := NewJava(helloSnippet, opts...)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cmd, err := e.Execute(ctx)
	if err != nil {
		t.Fatal(err)
	}
	root := e.Project().RootDir

	// Same invocation as on the host, with the root remapped.
	containerCmd := make([]string, 0, len(cmd.Args)+2)
	for _, arg := range cmd.Args {
		if arg == root {
			arg = containerProject
		}
		containerCmd = append(containerCmd, arg)
	}
	containerCmd = append(containerCmd, "--no-daemon", "--quiet")

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:      gradleImage,
			Cmd:        containerCmd,
			Files:      projectFiles(t, root),
			WaitingFor: wait.ForExit().WithExitTimeout(8 * time.Minute),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("failed to run gradle container: %v", err)
	}

	state, err := ctr.State(ctx)
	if err != nil {
		t.Fatal(err)
	}

	logs, err := ctr.Logs(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer logs.Close()
	out, err := io.ReadAll(logs)
	if err != nil {
		t.Fatal(err)
	}

	if state.ExitCode != 0 {
		t.Fatalf("gradle exited with %d:\n%s", state.ExitCode, out)
	}
	if !strings.Contains(string(out), "Hello, World!") {
		t.Errorf("container output does not contain the snippet output:\n%s", out)
	}
}

// projectFiles lists every file under root as a container file below /project.
func projectFiles(t *testing.T, root string) []testcontainers.ContainerFile {
	t.Helper()

	var files []testcontainers.ContainerFile
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, testcontainers.ContainerFile{
			HostFilePath:      path,
			ContainerFilePath: containerProject + "/" + filepath.ToSlash(rel),
			FileMode:          0o644,
		})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return files
}
