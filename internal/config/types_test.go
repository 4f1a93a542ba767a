// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
	"time"
)

func TestTimeout_Duration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      Timeout
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"0", 0, false},
		{"1m30s", 90 * time.Second, false},
		{"250ms", 250 * time.Millisecond, false},
		{"-5s", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		got, err := tt.in.Duration()
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("Timeout(%q).Duration() = %v, %v", tt.in, got, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("Timeout(%q) error does not wrap ErrInvalidTimeout", tt.in)
		}
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if ok, errs := cs.IsValid(); !ok {
			t.Errorf("%s should be valid: %v", cs, errs)
		}
	}
	ok, errs := ColorScheme("sepia").IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("sepia: ok=%v errs=%v", ok, errs)
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.UI.ColorScheme = "sepia"
	cfg.Run.Timeout = "soon"
	cfg.Toolchains["go"] = ToolchainConfig{Binary: "  "}
	cfg.Java.DependencyVerb = ""

	err := cfg.Validate()
	var ice *InvalidConfigError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InvalidConfigError, got %T", err)
	}
	if len(ice.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %d: %v", len(ice.FieldErrors), ice.FieldErrors)
	}
	for _, target := range []error{ErrInvalidConfig, ErrInvalidColorScheme, ErrInvalidTimeout, ErrInvalidBinaryPath} {
		if target == ErrInvalidConfig {
			if !errors.Is(err, target) {
				t.Errorf("error should wrap %v", target)
			}
			continue
		}
		found := false
		for _, fe := range ice.FieldErrors {
			if errors.Is(fe, target) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing field error %v", target)
		}
	}
}
