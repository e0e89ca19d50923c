// Package freeway implements the lane-crossing game. The player starts at
// the bottom of the board and must reach the top row through lanes of
// wrapping traffic; each crossing speeds the cars up.
package freeway

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Observation channels
const (
	chPlayer = 0
	chCars   = 1
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Freeway simulation.
type Game struct {
	cfg     config.FreewayConfig
	runtime core.Config
	rng     *rand.Rand

	board *core.Board
	reg   *core.Registry
	enc   *core.Encoder
	prog  *core.Progression

	player *core.Entity
	cars   []*core.Entity

	started bool
	over    bool
}

// New creates a new Freeway instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "freeway" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Freeway" }

// Actions returns the action space: NOOP, UP, DOWN.
func (g *Game) Actions() []core.Action {
	return []core.Action{core.ActionNoOp, core.ActionUp, core.ActionDown}
}

// Channels returns the observation channel names.
func (g *Game) Channels() []string {
	return []string{"player", "cars"}
}

// Reset initializes an episode.
func (g *Game) Reset(cfg core.Config) (*core.Observation, error) {
	runtime := cfg.WithDefaults()

	gameCfg, err := config.LoadFreeway(configPath)
	if err != nil {
		gameCfg = config.DefaultFreewayConfig()
	}

	if runtime.Rows < 3 || runtime.Cols < 3 {
		return nil, fmt.Errorf("freeway: board too small (%dx%d)", runtime.Rows, runtime.Cols)
	}

	g.cfg = gameCfg
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.board = core.NewBoard(runtime.Rows, runtime.Cols)
	g.board.SetPolicy(core.KindCar, core.PolicyWrap)
	g.enc = core.NewEncoder(runtime.Rows, runtime.Cols, g.Channels(), runtime.NoTrail)
	g.prog = core.NewProgression(gameCfg.Cars.Period, gameCfg.Cars.MinPeriod, 0, 0)
	g.prog.SetTier(runtime.Tier)

	g.buildBoard()
	g.started = true
	g.over = false

	return g.observe(), nil
}

// buildBoard places the player at the bottom and one car per interior
// lane. Car periods are drawn from [fastest, fastest+range] at the
// current tier; the first and last rows carry no traffic.
func (g *Game) buildBoard() {
	g.reg = core.NewRegistry(g.board)
	g.player = g.reg.SpawnMoving(core.KindPlayer, g.runtime.Rows-1, g.runtime.Cols/2, 0, 1)

	g.cars = g.cars[:0]
	for lane := 1; lane < g.runtime.Rows-1; lane++ {
		col := g.rng.Intn(g.runtime.Cols)
		dir := core.RandSign(g.rng)
		g.cars = append(g.cars, g.reg.SpawnMoving(core.KindCar, lane, col, dir, g.rollPeriod()))
	}
}

// rollPeriod draws a car period from the tier's range. The whole range
// shifts down one tick per round, clamped at the configured floor.
func (g *Game) rollPeriod() int {
	lo := g.cfg.Cars.Period - g.prog.Tier()
	p := core.RandBetween(g.rng, lo, lo+g.cfg.Cars.PeriodRange)
	if p < g.cfg.Cars.MinPeriod {
		p = g.cfg.Cars.MinPeriod
	}
	if p < 1 {
		p = 1
	}
	return p
}

// Step advances the simulation by one tick.
func (g *Game) Step(action int) (*core.Observation, float64, bool, error) {
	if !g.started {
		return nil, 0, false, core.ErrNotReset
	}
	if g.over {
		return nil, 0, true, core.ErrTerminated
	}
	if action < 0 || action >= len(g.Actions()) {
		return nil, 0, false, core.ErrInvalidAction
	}

	reward := 0.0

	switch g.Actions()[action] {
	case core.ActionUp:
		g.player.Row = g.board.ClampRow(g.player.Row - 1)
	case core.ActionDown:
		g.player.Row = g.board.ClampRow(g.player.Row + 1)
	}

	// Cars wrap around the board; a car on the player's cell after the
	// move pass is a hit whether the car drove into the player or the
	// player stepped into the lane.
	for _, car := range g.cars {
		if car.Advance() {
			g.board.Shift(car, 0, car.Dir)
		}
		if car.Row == g.player.Row && car.Col == g.player.Col {
			g.over = true
			return g.observe(), 0, true, nil
		}
	}

	if g.player.Row == 0 {
		reward = 1
		g.prog.Advance()
		g.buildBoard()
	}

	return g.observe(), reward, g.over, nil
}

func (g *Game) observe() *core.Observation {
	ob := g.enc.New()
	ob.SetPresence(chPlayer, g.player.Row, g.player.Col)
	for _, car := range g.cars {
		ob.SetTrail(chCars, car.Row, car.Col, car.Trail)
	}
	return ob
}

func init() {
	registry.Register("freeway", func() registry.Env {
		return New()
	})
}
