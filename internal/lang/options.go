// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/exemd/exemd/internal/manifest"
	"github.com/exemd/exemd/internal/scaffold"
)

// Option configures an executor.
type Option func(*options)

type options struct {
	scaffolder  *scaffold.Scaffolder
	logger      *log.Logger
	binaries    map[Language]string
	gradleVocab manifest.Vocabulary
	env         []string
}

// DefaultOutputDir is the base output directory used when none is configured.
func DefaultOutputDir() string {
	return filepath.Join(os.TempDir(), "exemd")
}

func defaultOptions() options {
	return options{
		scaffolder:  scaffold.New(DefaultOutputDir()),
		logger:      log.Default().WithPrefix("exemd"),
		binaries:    map[Language]string{},
		gradleVocab: manifest.DefaultGradleVocabulary,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithOutputDir scaffolds projects under dir.
func WithOutputDir(dir string) Option {
	return func(o *options) {
		o.scaffolder = scaffold.New(dir)
	}
}

// WithScaffolder uses a preconfigured scaffolder.
func WithScaffolder(s *scaffold.Scaffolder) Option {
	return func(o *options) {
		if s != nil {
			o.scaffolder = s
		}
	}
}

// WithLogger sets the logger that receives command lines and diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithBinary overrides the toolchain binary of a language (e.g. a gradle wrapper).
func WithBinary(lang Language, binary string) Option {
	return func(o *options) {
		if binary != "" {
			o.binaries[lang] = binary
		}
	}
}

// WithGradleVocabulary overrides the Gradle keyword table of the java backend.
func WithGradleVocabulary(v manifest.Vocabulary) Option {
	return func(o *options) {
		o.gradleVocab = v
	}
}

// WithEnv appends KEY=VALUE entries to the environment of every handle.
func WithEnv(env ...string) Option {
	return func(o *options) {
		o.env = append(o.env, env...)
	}
}
