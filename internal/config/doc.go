// Package config loads and validates pitcount's TOML configuration.
//
// Configuration is resolved from an explicit --config path, then
// ~/.config/pitcount/config.toml, then a project-local pitcount.toml, and
// finally built-in defaults when no file exists. Loaded values are
// normalized (paths expanded, defaults filled) before validation so every
// consumer sees a usable Config.
package config
