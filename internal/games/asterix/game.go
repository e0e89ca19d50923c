// Package asterix implements the collect-and-avoid game. Enemies and
// treasures stream across the interior lanes; the player roams the board
// collecting treasures and dodging enemies. Difficulty rises on a fixed
// tick interval rather than on a clear condition.
package asterix

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Observation channels
const (
	chPlayer    = 0
	chEnemies   = 1
	chTreasures = 2
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Asterix simulation.
type Game struct {
	cfg     config.AsterixConfig
	runtime core.Config
	rng     *rand.Rand

	board   *core.Board
	reg     *core.Registry
	enc     *core.Encoder
	prog    *core.Progression
	spawner *core.LaneSpawner

	player *core.Entity
	lanes  []*core.Entity // one slot per interior lane, nil while respawning

	// Previous player cell, for the step-over check: an entity landing
	// on the cell the player just left horizontally still counts as
	// contact.
	prevRow, prevCol int
	sideways         bool

	ticks   int
	started bool
	over    bool
}

// New creates a new Asterix instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "asterix" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Asterix" }

// Actions returns the action space: NOOP, LEFT, RIGHT, UP, DOWN.
func (g *Game) Actions() []core.Action {
	return []core.Action{
		core.ActionNoOp, core.ActionLeft, core.ActionRight,
		core.ActionUp, core.ActionDown,
	}
}

// Channels returns the observation channel names.
func (g *Game) Channels() []string {
	return []string{"player", "enemies", "treasures"}
}

// Reset initializes an episode.
func (g *Game) Reset(cfg core.Config) (*core.Observation, error) {
	runtime := cfg.WithDefaults()

	gameCfg, err := config.LoadAsterix(configPath)
	if err != nil {
		gameCfg = config.DefaultAsterixConfig()
	}

	if runtime.Rows < 3 || runtime.Cols < 3 {
		return nil, fmt.Errorf("asterix: board too small (%dx%d)", runtime.Rows, runtime.Cols)
	}

	g.cfg = gameCfg
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.board = core.NewBoard(runtime.Rows, runtime.Cols)
	g.enc = core.NewEncoder(runtime.Rows, runtime.Cols, g.Channels(), runtime.NoTrail)
	g.prog = core.NewProgression(gameCfg.Entities.Period, gameCfg.Entities.MinPeriod,
		gameCfg.Entities.RespawnWait, gameCfg.Entities.MinRespawnWait)
	g.prog.SetTier(runtime.Tier)
	g.spawner = core.NewLaneSpawner(g.prog.Wait())

	g.reg = core.NewRegistry(g.board)
	g.player = g.reg.SpawnMoving(core.KindPlayer, runtime.Rows-1, runtime.Cols/2, 0, 1)
	g.prevRow, g.prevCol = g.player.Row, g.player.Col

	// One entity per interior lane, already in flight.
	g.lanes = make([]*core.Entity, runtime.Rows)
	for lane := 1; lane < runtime.Rows-1; lane++ {
		col := g.rng.Intn(runtime.Cols)
		dir := core.RandSign(g.rng)
		g.lanes[lane] = g.reg.SpawnMoving(g.rollKind(), lane, col, dir, g.rollPeriod())
	}

	g.ticks = 0
	g.started = true
	g.over = false

	return g.observe(), nil
}

// rollKind picks enemy or treasure for a spawn.
func (g *Game) rollKind() core.Kind {
	if g.rng.Float64() < g.cfg.Entities.TreasureChance {
		return core.KindTreasure
	}
	return core.KindEnemy
}

// rollPeriod draws an entity period from the tier's range. The whole
// range shifts down one tick per round advance, clamped at the floor.
func (g *Game) rollPeriod() int {
	lo := g.cfg.Entities.Period - g.prog.Tier()
	p := core.RandBetween(g.rng, lo, lo+g.cfg.Entities.PeriodRange)
	if p < g.cfg.Entities.MinPeriod {
		p = g.cfg.Entities.MinPeriod
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

	g.ticks++
	if g.ticks%g.cfg.Difficulty.AdvanceEvery == 0 {
		g.prog.Advance()
		g.spawner.SetWait(g.prog.Wait())
	}

	g.prevRow, g.prevCol = g.player.Row, g.player.Col
	act := g.Actions()[action]
	g.sideways = act == core.ActionLeft || act == core.ActionRight
	switch act {
	case core.ActionLeft:
		g.player.Col = g.board.ClampCol(g.player.Col - 1)
	case core.ActionRight:
		g.player.Col = g.board.ClampCol(g.player.Col + 1)
	case core.ActionUp:
		g.player.Row = g.board.ClampRow(g.player.Row - 1)
	case core.ActionDown:
		g.player.Row = g.board.ClampRow(g.player.Row + 1)
	}

	// Empty lanes whose wait expired get a fresh entity at an edge.
	for _, lane := range g.spawner.Tick() {
		col, dir := core.RandEdge(g.rng, g.runtime.Cols)
		g.lanes[lane] = g.reg.Spawn(g.rollKind(), lane, col, dir, g.rollPeriod())
	}

	// Advance lane traffic and resolve contact with the player.
	for lane, e := range g.lanes {
		if e == nil {
			continue
		}
		if e.Advance() {
			if !g.board.Shift(e, 0, e.Dir) {
				g.despawn(lane)
				continue
			}
		}
		if g.touchesPlayer(e) {
			if e.Kind == core.KindTreasure {
				g.despawn(lane)
				reward++
			} else {
				g.over = true
				break
			}
		}
	}

	return g.observe(), reward, g.over, nil
}

// touchesPlayer reports contact on the post-move board, including the
// step-over case where the player and an entity swapped cells this tick.
func (g *Game) touchesPlayer(e *core.Entity) bool {
	if e.Row == g.player.Row && e.Col == g.player.Col {
		return true
	}
	return g.sideways && e.Row == g.prevRow && e.Col == g.prevCol
}

// despawn removes a lane's entity and arms its respawn timer.
func (g *Game) despawn(lane int) {
	g.reg.Remove(g.lanes[lane])
	g.lanes[lane] = nil
	g.spawner.Arm(lane)
}

func (g *Game) observe() *core.Observation {
	ob := g.enc.New()
	ob.SetPresence(chPlayer, g.player.Row, g.player.Col)
	for _, e := range g.lanes {
		if e == nil {
			continue
		}
		ch := chEnemies
		if e.Kind == core.KindTreasure {
			ch = chTreasures
		}
		ob.SetTrail(ch, e.Row, e.Col, e.Trail)
	}
	return ob
}

func init() {
	registry.Register("asterix", func() registry.Env {
		return New()
	})
}
