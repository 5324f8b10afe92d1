// Package ui provides the terminal user interface for the hardback
// application.
//
// # Overview
//
// The UI is built on Bubble Tea. A single root Model owns three screens
// and routes messages between them:
//
//   - home.go: the popular shelf shown on startup, with spinner and retry
//   - search.go: the live search screen, debounced through internal/query
//   - detail.go: a scrollable view of one volume, fetched by id or opened
//     directly from a list selection
//
// Supporting files:
//
//   - app.go: root model, screen switching, and the Run entry point
//   - keys.go: key bindings surfaced through the help footer
//   - styles.go: lipgloss styles shared by all screens
//   - helpers.go: list adapters and text shaping for volume rows
//
// # Staleness
//
// Network results arrive as messages and may outlive the screen state that
// requested them. The search screen gates every result on a generation
// token from its query controller; the detail screen tags each lookup with
// a per-instance token. A message whose token no longer matches is
// dropped, so superseded calls can finish in the background without
// touching the screen.
package ui
