// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.momo/momo.toml or OS-specific config directory)
// 3. Project config file (momo.toml or .momo.toml in the current directory)
// 4. Environment variables (MOMO_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// Config files are validated against an embedded JSON Schema before they
// are applied; unknown keys and out-of-range values are load errors.
//
// User-level config locations:
// - ~/.momo/momo.toml (preferred)
// - Windows: %APPDATA%\momo\momo.toml
// - macOS: ~/Library/Application Support/momo/momo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/momo/momo.toml or ~/.config/momo/momo.toml
//
// Project-level config locations (overrides user config):
// - ./momo.toml (preferred)
// - ./.momo.toml
package config
