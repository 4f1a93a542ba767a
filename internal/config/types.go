// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultDependencyVerb is the Gradle configuration used for snippet dependencies.
	DefaultDependencyVerb = "compile"
	// DefaultEntryPointKey is the Gradle application property naming the main class.
	DefaultEntryPointKey = "mainClassName"
	// DefaultFallbackEntryPoint is the main class of unnamed snippets.
	DefaultFallbackEntryPoint = "main"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidTimeout is returned when a Timeout is not a Go duration.
	ErrInvalidTimeout = errors.New("invalid timeout")
	// ErrInvalidBinaryPath is returned when a BinaryPath is whitespace-only.
	ErrInvalidBinaryPath = errors.New("invalid binary path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")

	// defaultBinaries mirrors the toolchains the language backends invoke.
	defaultBinaries = map[string]BinaryPath{
		"java":   "gradle",
		"go":     "go",
		"rust":   "cargo",
		"python": "python3",
		"bash":   "bash",
	}
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// Timeout is a Go duration string such as "90s" or "5m". "" and "0" disable it.
	Timeout string

	// InvalidTimeoutError is returned when a Timeout cannot be parsed.
	InvalidTimeoutError struct {
		Value Timeout
		Err   error
	}

	// BinaryPath names a toolchain executable, either on PATH or absolute.
	BinaryPath string

	// InvalidBinaryPathError is returned for a whitespace-only BinaryPath.
	InvalidBinaryPathError struct {
		Lang  string
		Value BinaryPath
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OutputDir is the base directory for generated projects.
		OutputDir string `json:"output_dir" mapstructure:"output_dir" toml:"output_dir"`
		// Toolchains overrides the binary invoked per language.
		Toolchains map[string]ToolchainConfig `json:"toolchains" mapstructure:"toolchains" toml:"toolchains"`
		// Java configures the Gradle build file vocabulary.
		Java JavaConfig `json:"java" mapstructure:"java" toml:"java"`
		// Run configures the execution lifecycle.
		Run RunConfig `json:"run" mapstructure:"run" toml:"run"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui" toml:"ui"`

		// Source is the file the configuration was loaded from, empty for defaults.
		Source string `json:"-" mapstructure:"-" toml:"-"`
	}

	// ToolchainConfig configures one language toolchain.
	ToolchainConfig struct {
		Binary BinaryPath `json:"binary" mapstructure:"binary" toml:"binary"`
	}

	// JavaConfig holds the keywords written into build.gradle.
	JavaConfig struct {
		DependencyVerb     string `json:"dependency_verb" mapstructure:"dependency_verb" toml:"dependency_verb"`
		EntryPointKey      string `json:"entry_point_key" mapstructure:"entry_point_key" toml:"entry_point_key"`
		FallbackEntryPoint string `json:"fallback_entry_point" mapstructure:"fallback_entry_point" toml:"fallback_entry_point"`
	}

	// RunConfig configures the execution lifecycle.
	RunConfig struct {
		// Timeout bounds a whole snippet run, build included.
		Timeout Timeout `json:"timeout" mapstructure:"timeout" toml:"timeout"`
		// InstallDependencies runs InstallDependency before executing.
		InstallDependencies bool `json:"install_dependencies" mapstructure:"install_dependencies" toml:"install_dependencies"`
		// TryRun validates the project before executing.
		TryRun bool `json:"try_run" mapstructure:"try_run" toml:"try_run"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
		// ColorScheme sets the color scheme.
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	toolchains := make(map[string]ToolchainConfig, len(defaultBinaries))
	for lang, bin := range defaultBinaries {
		toolchains[lang] = ToolchainConfig{Binary: bin}
	}
	return &Config{
		OutputDir:  "",
		Toolchains: toolchains,
		Java: JavaConfig{
			DependencyVerb:     DefaultDependencyVerb,
			EntryPointKey:      DefaultEntryPointKey,
			FallbackEntryPoint: DefaultFallbackEntryPoint,
		},
		Run: RunConfig{
			Timeout:             "0",
			InstallDependencies: true,
			TryRun:              true,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Binary returns the configured toolchain binary for lang, or "" when unset.
func (c *Config) Binary(lang string) BinaryPath {
	return c.Toolchains[lang].Binary
}

// IsValid checks the fields CUE cannot fully express (duration parsing) and
// every typed value, returning all field errors.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if ok, fieldErrs := c.UI.ColorScheme.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if ok, fieldErrs := c.Run.Timeout.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	for lang, tc := range c.Toolchains {
		if strings.TrimSpace(string(tc.Binary)) == "" && tc.Binary != "" {
			errs = append(errs, &InvalidBinaryPathError{Lang: lang, Value: tc.Binary})
		}
	}
	if strings.TrimSpace(c.Java.DependencyVerb) == "" {
		errs = append(errs, errors.New("java.dependency_verb must not be empty"))
	}
	return len(errs) == 0, errs
}

// Validate returns an *InvalidConfigError when IsValid fails.
func (c *Config) Validate() error {
	if ok, errs := c.IsValid(); !ok {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Duration parses the timeout. Empty and "0" mean no timeout.
func (t Timeout) Duration() (time.Duration, error) {
	if t == "" || t == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(string(t))
	if err != nil {
		return 0, &InvalidTimeoutError{Value: t, Err: err}
	}
	if d < 0 {
		return 0, &InvalidTimeoutError{Value: t, Err: errors.New("negative duration")}
	}
	return d, nil
}

// IsValid reports whether the timeout parses.
func (t Timeout) IsValid() (bool, []error) {
	if _, err := t.Duration(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid run timeout %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidTimeout.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// String returns the binary path.
func (p BinaryPath) String() string { return string(p) }

// Error implements the error interface.
func (e *InvalidBinaryPathError) Error() string {
	return fmt.Sprintf("invalid binary path %q for toolchain %s", e.Value, e.Lang)
}

// Unwrap returns ErrInvalidBinaryPath.
func (e *InvalidBinaryPathError) Unwrap() error { return ErrInvalidBinaryPath }
