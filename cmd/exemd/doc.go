// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for exemd.
//
// The App type is the composition root: it owns the configuration provider,
// the output streams and the language registry built from the loaded
// configuration. Every cobra handler receives the App and delegates to it.
package cmd
