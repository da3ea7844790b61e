// Copyright 2026 The AIProg Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the aiprog
// tools.
//
// Configuration is loaded from a single file specified by either the
// AIPROG_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search; an unset AIPROG_CONFIG simply means
// [Default], since the tools are fully usable on the bundled lookup
// tables alone.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- table override paths plus viewer preferences
//   - [Default] -- the no-config-file configuration
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other aiprog packages.
package config
