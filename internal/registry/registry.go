// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Env is the interface every game implements. Games contain pure
// simulation logic with no external dependencies (especially no Bubble
// Tea); the platform handles input mapping, timing, and rendering.
//
// An instance is single-episode state: Reset starts an episode, Step
// advances it one tick. Calling Step before Reset or after termination
// is a caller error, never a silent restart.
type Env interface {
	// ID returns a unique identifier for this game (e.g., "breakout").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Actions returns the game's discrete action space in index order.
	// The integer handed to Step indexes into this slice.
	Actions() []core.Action

	// Channels returns the observation channel names in index order.
	Channels() []string

	// Reset initializes an episode from the configuration and returns
	// the initial observation.
	Reset(cfg core.Config) (*core.Observation, error)

	// Step advances the simulation by one fixed tick. It returns the
	// resulting observation, the reward earned this tick, and whether
	// the episode terminated. Out-of-range actions fail with
	// core.ErrInvalidAction before any state changes; stepping a
	// terminated or never-reset instance fails with core.ErrTerminated
	// or core.ErrNotReset.
	Step(action int) (*core.Observation, float64, bool, error)
}

// Info contains metadata about a registered game.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Env

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Env, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
