package core

// Action is a platform-level input. Each game declares its discrete action
// space as an ordered subset of these; the integer passed to Step indexes
// into that subset.
type Action int

const (
	ActionNoOp Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionShoot
)

// String returns the action's display name.
func (a Action) String() string {
	switch a {
	case ActionNoOp:
		return "noop"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionShoot:
		return "shoot"
	}
	return "unknown"
}

// Config carries the engine-level options into a game's Reset. Zero-valued
// fields fall back to the game's configured defaults.
type Config struct {
	Rows    int   // board rows (default 10)
	Cols    int   // board columns (default 10)
	NoTrail bool  // collapse observations to plain presence
	Seed    int64 // RNG seed; 0 means time-based
	Tier    int   // starting difficulty tier override
}

// DefaultConfig returns the standard 10x10 configuration.
func DefaultConfig() Config {
	return Config{Rows: 10, Cols: 10}
}

// WithDefaults fills zero-valued dimensions from the standard board size.
func (c Config) WithDefaults() Config {
	if c.Rows == 0 {
		c.Rows = 10
	}
	if c.Cols == 0 {
		c.Cols = 10
	}
	return c
}
