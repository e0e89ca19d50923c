// Package spaceinvaders implements the alien-shooter game. A formation of
// aliens sweeps across the board and descends at the edges, speeding up as
// it gets lower; the player shoots from the bottom row. Clearing the
// formation starts the next wave one row closer.
package spaceinvaders

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Observation channels
const (
	chPlayer  = 0
	chAliens  = 1
	chBullets = 2 // friendly
	chVolleys = 3 // hostile
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Space Invaders simulation.
type Game struct {
	cfg     config.SpaceInvadersConfig
	runtime core.Config
	rng     *rand.Rand

	board *core.Board
	reg   *core.Registry
	enc   *core.Encoder
	prog  *core.Progression

	player   *core.Entity
	alienDir int
	ticker   core.Ticker // formation move schedule
	moveDown bool

	// The formation speeds up by descent depth, not by round: periods
	// holds the schedule per depth level, lowest tracks the deepest row
	// any alien has reached.
	periods []int
	lowest  int

	playerShotTimer int
	alienShotTimer  int

	started bool
	over    bool
}

// New creates a new Space Invaders instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "spaceinvaders" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Space Invaders" }

// Actions returns the action space. UP and DOWN are accepted and ignored:
// the ship only moves along the bottom row.
func (g *Game) Actions() []core.Action {
	return []core.Action{
		core.ActionNoOp, core.ActionLeft, core.ActionRight,
		core.ActionUp, core.ActionDown, core.ActionShoot,
	}
}

// Channels returns the observation channel names.
func (g *Game) Channels() []string {
	return []string{"player", "aliens", "friendly_bullets", "hostile_bullets"}
}

// Reset initializes an episode.
func (g *Game) Reset(cfg core.Config) (*core.Observation, error) {
	runtime := cfg.WithDefaults()

	gameCfg, err := config.LoadSpaceInvaders(configPath)
	if err != nil {
		gameCfg = config.DefaultSpaceInvadersConfig()
	}

	if runtime.Cols <= 2*gameCfg.Aliens.EdgeMargin {
		return nil, fmt.Errorf("spaceinvaders: board too small (%d columns)", runtime.Cols)
	}
	if runtime.Rows < gameCfg.Aliens.Rows+2 {
		return nil, fmt.Errorf("spaceinvaders: cannot fit %d alien rows in %d board rows",
			gameCfg.Aliens.Rows, runtime.Rows)
	}

	g.cfg = gameCfg
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.board = core.NewBoard(runtime.Rows, runtime.Cols)
	g.enc = core.NewEncoder(runtime.Rows, runtime.Cols, g.Channels(), runtime.NoTrail)
	g.prog = core.NewProgression(0, 0, 0, 0)
	g.prog.SetTier(runtime.Tier)

	// One period per descent depth level, fastest last. For a 10-row
	// board with 3 alien rows this yields 7, 4, 1: the formation moves
	// every 7th tick at the top and every tick near the bottom.
	levels := runtime.Rows / gameCfg.Aliens.Rows
	g.periods = make([]int, levels)
	for i := range levels {
		g.periods[i] = (levels-1-i)*gameCfg.Aliens.Rows + 1
	}

	g.buildWave()
	g.started = true
	g.over = false

	return g.observe(), nil
}

// startRow returns the formation's top row for the current round. Each
// cleared wave starts one row closer to the player.
func (g *Game) startRow() int {
	row := g.prog.Tier()
	if max := g.runtime.Rows - g.cfg.Aliens.Rows - 1; row > max {
		row = max
	}
	return row
}

// buildWave places the player and a fresh alien formation.
func (g *Game) buildWave() {
	g.reg = core.NewRegistry(g.board)
	g.player = g.reg.SpawnMoving(core.KindPlayer, g.runtime.Rows-1, g.rng.Intn(g.runtime.Cols), 0, 1)

	g.alienDir = core.RandSign(g.rng)
	start := g.startRow()
	margin := g.cfg.Aliens.EdgeMargin
	for row := start; row < start+g.cfg.Aliens.Rows; row++ {
		for col := margin; col < g.runtime.Cols-margin; col++ {
			g.reg.SpawnMoving(core.KindAlien, row, col, 0, 1)
		}
	}

	g.lowest = start + g.cfg.Aliens.Rows - 1
	g.moveDown = false
	g.ticker = core.Ticker{Period: g.periods[0]}
	g.playerShotTimer = 0
	g.alienShotTimer = 0
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

	// Cooldowns. The formation volleys as one entity: whenever its
	// cooldown runs out, a random alien fires.
	if g.playerShotTimer > 0 {
		g.playerShotTimer--
	}
	if g.alienShotTimer > 0 {
		g.alienShotTimer--
	} else {
		g.volley()
	}

	switch g.Actions()[action] {
	case core.ActionLeft:
		g.player.Col = g.board.ClampCol(g.player.Col - 1)
	case core.ActionRight:
		g.player.Col = g.board.ClampCol(g.player.Col + 1)
	case core.ActionShoot:
		g.shoot()
	}

	// Hostile bullets, then the formation, then friendly bullets.
	for _, b := range g.reg.ByKind(core.KindHostileBullet) {
		b.Advance()
		if !g.board.Shift(b, b.Dir, 0) {
			g.reg.Remove(b)
		}
	}
	if g.ticker.Fire() {
		g.moveFormation()
	}
	for _, b := range g.reg.ByKind(core.KindFriendlyBullet) {
		b.Advance()
		if !g.board.Shift(b, b.Dir, 0) {
			g.reg.Remove(b)
		}
	}

	// Interactions on the post-move board.
	for _, b := range g.reg.ByKind(core.KindFriendlyBullet) {
		for _, a := range g.reg.ByKind(core.KindAlien) {
			if b.Row == a.Row && b.Col == a.Col {
				g.reg.Remove(b)
				g.reg.Remove(a)
				reward++
				break
			}
		}
	}

	if g.reg.Count(core.KindAlien) == 0 {
		g.prog.Advance()
		g.buildWave()
		return g.observe(), reward, false, nil
	}

	for _, b := range g.reg.ByKind(core.KindHostileBullet) {
		if b.Row == g.player.Row && b.Col == g.player.Col {
			g.over = true
		}
	}
	for _, a := range g.reg.ByKind(core.KindAlien) {
		if a.Row == g.player.Row {
			g.over = true
			break
		}
	}

	return g.observe(), reward, g.over, nil
}

// shoot fires a friendly bullet from the ship's cell. The bullet spawns
// armed, so it leaves the cell on this very tick.
func (g *Game) shoot() {
	if g.playerShotTimer > 0 {
		return
	}
	g.playerShotTimer = g.cfg.Shooting.PlayerCooldown
	g.reg.SpawnArmed(core.KindFriendlyBullet, g.player.Row, g.player.Col, -1, 1)
}

// volley fires a hostile bullet from a random alien.
func (g *Game) volley() {
	aliens := g.reg.ByKind(core.KindAlien)
	if len(aliens) == 0 {
		return
	}
	g.alienShotTimer = g.cfg.Shooting.AlienCooldown
	a := aliens[g.rng.Intn(len(aliens))]
	g.reg.SpawnArmed(core.KindHostileBullet, a.Row, a.Col, 1, 1)
}

// moveFormation advances every alien one step: sideways until the
// formation touches an edge, then one row down on its next move. Descent
// tightens the move period, keyed by the deepest row ever reached.
func (g *Game) moveFormation() {
	aliens := g.reg.ByKind(core.KindAlien)

	if g.moveDown {
		g.moveDown = false
		for _, a := range aliens {
			a.Row++
		}
		for _, a := range aliens {
			if a.Row > g.lowest {
				g.lowest = a.Row
			}
		}
		level := (g.lowest+g.cfg.Aliens.Rows)/g.cfg.Aliens.Rows - 2
		if level < 0 {
			level = 0
		}
		if level >= len(g.periods) {
			level = len(g.periods) - 1
		}
		g.ticker.Period = g.periods[level]
		return
	}

	atEdge := false
	for _, a := range aliens {
		a.Col += g.alienDir
		if a.Col == 0 || a.Col == g.runtime.Cols-1 {
			atEdge = true
		}
	}
	if atEdge {
		g.alienDir = -g.alienDir
		g.moveDown = true
	}
}

func (g *Game) observe() *core.Observation {
	ob := g.enc.New()
	ob.SetPresence(chPlayer, g.player.Row, g.player.Col)
	for _, a := range g.reg.ByKind(core.KindAlien) {
		ob.SetSign(chAliens, a.Row, a.Col, g.alienDir)
	}
	for _, b := range g.reg.ByKind(core.KindFriendlyBullet) {
		ob.SetSign(chBullets, b.Row, b.Col, -1)
	}
	for _, b := range g.reg.ByKind(core.KindHostileBullet) {
		ob.SetSign(chVolleys, b.Row, b.Col, 1)
	}
	return ob
}

func init() {
	registry.Register("spaceinvaders", func() registry.Env {
		return New()
	})
}
