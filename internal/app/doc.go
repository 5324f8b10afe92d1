// Package app provides the orchestration layer for the hardback application.
//
// It is the composition root: Run loads configuration, opens the diagnostic
// log, builds the Google Books client, and hands everything to the UI.
//
// Startup sequence:
//
//  1. Load configuration from ~/.config/hardback/config.toml, with
//     HARDBACK_* environment variables overriding file values
//  2. Open the diagnostic log file (degrades to a discard logger)
//  3. Initialize the HTTP client for the volumes API
//  4. Run the terminal UI until quit or context cancellation
//
// Business logic lives in the domain packages (googlebooks, query, config,
// ui); this package only wires them together.
package app
