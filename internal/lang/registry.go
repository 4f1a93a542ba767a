// SPDX-License-Identifier: MPL-2.0

package lang

import (
	"maps"
	"slices"
)

type (
	// Factory creates an executor for a snippet.
	Factory func(source string, opts ...Option) Executor

	// Registry holds the closed set of backends and the options shared by every
	// executor it creates.
	Registry struct {
		factories map[Language]Factory
		opts      []Option
	}
)

// NewRegistry creates a registry with every built-in backend registered.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		factories: make(map[Language]Factory),
		opts:      opts,
	}
	r.Register(Java, func(src string, o ...Option) Executor { return NewJava(src, o...) })
	r.Register(Go, func(src string, o ...Option) Executor { return NewGo(src, o...) })
	r.Register(Rust, func(src string, o ...Option) Executor { return NewRust(src, o...) })
	r.Register(Python, func(src string, o ...Option) Executor { return NewPython(src, o...) })
	r.Register(Bash, func(src string, o ...Option) Executor { return NewBash(src, o...) })
	return r
}

// Register adds or replaces the backend for lang.
func (r *Registry) Register(lang Language, f Factory) {
	r.factories[lang] = f
}

// New returns a fresh executor for source. Executors are never shared
// between snippets.
func (r *Registry) New(lang Language, source string) (Executor, error) {
	f, ok := r.factories[lang]
	if !ok {
		return nil, &UnsupportedLanguageError{Value: string(lang)}
	}
	return f(source, r.opts...), nil
}

// Languages returns the registered languages in lexical order.
func (r *Registry) Languages() []Language {
	return slices.Sorted(maps.Keys(r.factories))
}

var (
	_ Compiler = (*JavaExecutor)(nil)
	_ Compiler = (*GoExecutor)(nil)
	_ Compiler = (*RustExecutor)(nil)
	_ Executor = (*PythonExecutor)(nil)
	_ Executor = (*BashExecutor)(nil)
)
