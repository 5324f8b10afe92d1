// Package query owns the debounced search-input state machine. The
// controller holds no timers of its own; the owning screen schedules the
// quiescence tick and routes it back in, so the state walk stays testable
// without any clock.
package query

import (
	"strings"
	"time"
)

// Quiescence is the delay after the last keystroke before a search fires.
const Quiescence = 400 * time.Millisecond

// State describes where the controller is in the input-to-result cycle.
type State int

const (
	// StateIdle means no query text is present.
	StateIdle State = iota
	// StatePending means text is present and the quiescence timer is running.
	StatePending
	// StateInFlight means a search has been dispatched for the current text.
	StateInFlight
	// StateSettled means the current query's result has been applied.
	StateSettled
)

// Action tells the owning screen what a text change requires.
type Action int

const (
	// ActionNone requires nothing.
	ActionNone Action = iota
	// ActionClearResults means the text went blank: drop results now.
	ActionClearResults
	// ActionStartTimer means a quiescence timer must be (re)started for the
	// current generation.
	ActionStartTimer
)

// Controller tracks the search text and a generation counter. Every text
// change bumps the generation, which invalidates pending timers and any
// result still in flight for older text. Superseded network calls are never
// aborted, only ignored on arrival.
type Controller struct {
	state State
	text  string
	gen   int
	done  bool
}

// New returns an idle controller.
func New() *Controller {
	return &Controller{}
}

// SetText records a keystroke. Whitespace-only input counts as blank and
// never dispatches a search.
func (c *Controller) SetText(text string) Action {
	if c.done {
		return ActionNone
	}
	c.gen++
	c.text = strings.TrimSpace(text)
	if c.text == "" {
		c.state = StateIdle
		return ActionClearResults
	}
	c.state = StatePending
	return ActionStartTimer
}

// TimerFired handles an elapsed quiescence timer. It returns the query to
// dispatch and true when the timer belongs to the current generation and a
// search is still wanted; stale timers report false and change nothing.
// A true return moves the controller to StateInFlight: the caller must
// dispatch exactly one search for the returned text.
func (c *Controller) TimerFired(gen int) (string, bool) {
	if c.done || gen != c.gen || c.state != StatePending {
		return "", false
	}
	c.state = StateInFlight
	return c.text, true
}

// Retry re-arms the settled query for another dispatch after a failure. It
// bumps the generation, so a late result from the failed call can no longer
// be applied, and moves straight to StateInFlight: the caller must dispatch
// exactly one search for the returned text. Retry reports false when there
// is nothing settled to retry, such as after new keystrokes have put the
// controller back in StatePending.
func (c *Controller) Retry() (string, bool) {
	if c.done || c.state != StateSettled || c.text == "" {
		return "", false
	}
	c.gen++
	c.state = StateInFlight
	return c.text, true
}

// Accept reports whether a result for the given generation may be applied
// to screen state. Results for superseded queries or a torn-down screen
// must be discarded.
func (c *Controller) Accept(gen int) bool {
	return !c.done && gen == c.gen
}

// Resolve marks the current query settled once its result has been applied.
func (c *Controller) Resolve(gen int) {
	if c.Accept(gen) && c.state == StateInFlight {
		c.state = StateSettled
	}
}

// Teardown permanently suppresses state updates from any call still in
// flight. Idempotent.
func (c *Controller) Teardown() {
	c.done = true
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Text returns the current trimmed query text.
func (c *Controller) Text() string {
	return c.text
}

// Generation returns the token to capture when scheduling a timer or
// dispatching a search.
func (c *Controller) Generation() int {
	return c.gen
}
