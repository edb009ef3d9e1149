// Package config loads, validates, and normalizes mvw configuration.
//
// Configuration comes from a TOML file (~/.config/mvw/config.toml by
// default, or ./mvw.toml for project-local runs) layered over built-in
// defaults. All path fields are expanded to absolute paths during load, so
// downstream code never needs to resolve ~ or relative segments.
package config
