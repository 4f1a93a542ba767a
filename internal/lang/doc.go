// SPDX-License-Identifier: MPL-2.0

// Package lang implements the per-language snippet executors.
//
// Every backend implements Executor, a four-state lifecycle driven by explicit
// calls only:
//
//	Uninitialized -> Built -> (DependenciesInstalled) -> Executing
//
// BuildProject scaffolds the project (source file + manifest), InstallDependency
// and TryRun are optional backend-specific hooks, and Execute rebuilds the
// project and returns a configured but unstarted *exec.Cmd. Starting it,
// capturing its output and waiting for it belong to the caller (see package
// process).
//
// Backends that need a separate build-tool invocation (java, go, rust) also
// implement Compiler; interpreted backends (python, bash) do not. Callers
// obtain executors through a Registry keyed by Language instead of switching
// on the language themselves.
package lang
