// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the exemd test suites:
// toolchain gating (RequireToolchain), config directory isolation
// (SetConfigHome), file fixtures (MustWriteFile) and a process-wide limit on
// concurrent container tests (ContainerSemaphore).
package testutil
