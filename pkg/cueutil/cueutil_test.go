// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Toolchain: {
	lang:     "java" | "go" | "rust"
	binary:   string
	retries?: int & >=0
}
`

type toolchain struct {
	Lang    string `json:"lang"`
	Binary  string `json:"binary"`
	Retries int    `json:"retries,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    toolchain
		wantErr string
	}{
		{
			name: "valid",
			data: "lang: \"java\"\nbinary: \"gradle\"\nretries: 2\n",
			want: toolchain{Lang: "java", Binary: "gradle", Retries: 2},
		},
		{
			name: "optional field omitted",
			data: "lang: \"go\"\nbinary: \"go\"\n",
			want: toolchain{Lang: "go", Binary: "go"},
		},
		{
			name:    "disallowed enum value",
			data:    "lang: \"cobol\"\nbinary: \"cobc\"\n",
			wantErr: "lang",
		},
		{
			name:    "constraint violation",
			data:    "lang: \"rust\"\nbinary: \"cargo\"\nretries: -1\n",
			wantErr: "retries",
		},
		{
			name:    "missing required field",
			data:    "lang: \"rust\"\n",
			wantErr: "binary",
		},
		{
			name:    "syntax error",
			data:    "lang: \"rust\n",
			wantErr: "toolchain.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := ParseAndDecode[toolchain]([]byte(testSchema), []byte(tt.data), "#Toolchain",
				WithFilename("toolchain.cue"))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q should mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAndDecode() error: %v", err)
			}
			if *res.Value != tt.want {
				t.Errorf("got %+v, want %+v", *res.Value, tt.want)
			}
		})
	}
}

func TestParseAndDecode_NonConcrete(t *testing.T) {
	t.Parallel()

	schema := "#Partial: {\n\tname?: string\n\tcount?: int\n}\n"
	res, err := ParseAndDecode[map[string]any]([]byte(schema), []byte("name: \"x\"\n"), "#Partial",
		WithConcrete(false))
	if err != nil {
		t.Fatalf("ParseAndDecode() error: %v", err)
	}
	if (*res.Value)["name"] != "x" {
		t.Errorf("decoded map = %v", *res.Value)
	}
	if _, ok := (*res.Value)["count"]; ok {
		t.Error("unset optional fields must not be decoded")
	}
}

func TestParseAndDecode_MissingDefinition(t *testing.T) {
	t.Parallel()

	_, err := ParseAndDecode[toolchain]([]byte(testSchema), []byte("{}"), "#Nope")
	if err == nil || !strings.Contains(err.Error(), "#Nope") {
		t.Errorf("expected missing definition error, got %v", err)
	}
}

func TestParseAndDecode_FileSize(t *testing.T) {
	t.Parallel()

	data := []byte("lang: \"go\"\nbinary: \"go\"\n")
	_, err := ParseAndDecode[toolchain]([]byte(testSchema), data, "#Toolchain",
		WithMaxFileSize(4), WithFilename("big.cue"))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("expected size error, got %v", err)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "x.cue") != nil {
		t.Error("nil error should stay nil")
	}

	base := errors.New("boom")
	err := FormatError(base, "x.cue")
	if !errors.Is(err, base) {
		t.Error("non-CUE errors should be wrapped")
	}
	if !strings.HasPrefix(err.Error(), "x.cue: ") {
		t.Errorf("missing file prefix: %v", err)
	}
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path []string
		want string
	}{
		{nil, ""},
		{[]string{"output_dir"}, "output_dir"},
		{[]string{"toolchains", "java", "binary"}, "toolchains.java.binary"},
		{[]string{"langs", "0", "name"}, "langs[0].name"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f.cue"); err != nil {
		t.Errorf("size at the limit should pass: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f.cue"); err == nil {
		t.Error("size above the limit should fail")
	}
}
