// Package config handles configuration loading for the hardback
// application.
//
// # Overview
//
// Configuration is resolved in three layers, each overriding the last:
//
//  1. Built-in defaults (public volumes endpoint, fiction shelf, info logs)
//  2. An optional TOML file, by default ~/.config/hardback/config.toml
//  3. HARDBACK_* environment variables
//
// A missing file is not an error; the defaults are enough to run against
// the public API without a key.
//
// # Paths
//
// Values that name filesystem locations accept a leading ~ and are
// expanded against the current user's home directory. The diagnostic log
// is written next to the config file, see LogPath.
package config
