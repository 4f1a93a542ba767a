// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/exemd/exemd/internal/config"
)

func TestShowConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.OutputDir = "/tmp/exemd-out"
	cfg.Source = "/etc/exemd/config.cue"

	tests := []struct {
		format string
		want   []string
	}{
		{format: "cue", want: []string{"// loaded from /etc/exemd/config.cue", `output_dir: "/tmp/exemd-out"`}},
		{format: "toml", want: []string{"output_dir = ", "/tmp/exemd-out", "[run]", "[java]"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := showConfig(&buf, cfg, tt.format); err != nil {
				t.Fatalf("showConfig(%s): %v", tt.format, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		if err := showConfig(&bytes.Buffer{}, cfg, "yaml"); err == nil {
			t.Error("expected an error for an unknown format")
		}
	})
}

func TestInitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var first bytes.Buffer
	if err := initConfig(&first, dir); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	if !strings.Contains(first.String(), filepath.Join(dir, "config.cue")) {
		t.Errorf("output = %q, want the created path", first.String())
	}

	var second bytes.Buffer
	if err := initConfig(&second, dir); err != nil {
		t.Fatalf("second initConfig: %v", err)
	}
	if !strings.Contains(second.String(), "already exists") {
		t.Errorf("output = %q, want an already-exists notice", second.String())
	}
}

func TestShowConfigPath(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Source = "/home/u/.exemd.cue"

	var buf bytes.Buffer
	if err := showConfigPath(&buf, cfg, ""); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "/home/u/.exemd.cue" {
		t.Errorf("path = %q", got)
	}
}
