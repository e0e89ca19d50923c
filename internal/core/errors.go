package core

import "errors"

// Engine error taxonomy. Invalid actions and steps after termination are
// caller mistakes surfaced as errors; invariant violations inside the
// engine are programming defects and panic instead.
var (
	// ErrInvalidAction reports an action outside the game's declared
	// discrete range. The engine fails fast rather than clamping: silently
	// accepting out-of-range actions would corrupt replay determinism.
	ErrInvalidAction = errors.New("core: action outside the game's action space")

	// ErrTerminated reports a Step call on an episode that already ended.
	// The engine never auto-resets; the caller must call Reset.
	ErrTerminated = errors.New("core: step on a terminated episode")

	// ErrNotReset reports a Step call before the first Reset.
	ErrNotReset = errors.New("core: step before reset")
)
