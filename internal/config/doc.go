// SPDX-License-Identifier: MPL-2.0

// Package config loads exemd settings with Viper, using CUE as the file format.
//
// Values are layered in this order, later layers winning:
//
//  1. built-in defaults (DefaultConfig)
//  2. the CUE file: an explicit --config path, else <ConfigDir>/config.cue,
//     else ./.exemd.cue
//  3. EXEMD_* environment variables (e.g. EXEMD_JAVA_DEPENDENCY_VERB,
//     EXEMD_TOOLCHAINS_RUST_BINARY)
//
// The file is validated against the embedded #Config schema (config_schema.cue)
// before it is merged, so type errors are reported with the offending field path.
package config
