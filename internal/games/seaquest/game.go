// Package seaquest implements the shoot-and-rescue game. The player's
// submarine dodges fish and enemy submarines, shoots them, collects
// divers, and must surface before its oxygen runs out. Surfacing with no
// divers aboard sinks the boat; every surface/submerge cycle raises the
// difficulty.
package seaquest

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Observation channels
const (
	chPlayer     = 0 // player and its bullets
	chFish       = 1
	chSubs       = 2 // enemy submarines and their bullets
	chDivers     = 3
	chOxygen     = 4 // gauge bar on the bottom row
	chDiverGauge = 5 // gauge bar on the bottom row
)

// SubmarineRearmTicks is how long a submarine waits before firing again
// once its previous bullet has left the board or died with a target.
const SubmarineRearmTicks = 1

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// laneSlot tracks one interior lane: its swimming occupant, and for
// submarines the bullet in flight plus the re-arm countdown.
type laneSlot struct {
	e      *core.Entity
	bullet *core.Entity
	rearm  int
}

// Game implements the Seaquest simulation.
type Game struct {
	cfg     config.SeaquestConfig
	runtime core.Config
	rng     *rand.Rand

	board   *core.Board
	reg     *core.Registry
	enc     *core.Encoder
	prog    *core.Progression
	spawner *core.LaneSpawner

	player *core.Entity // Dir holds the facing
	lanes  []laneSlot

	prevRow, prevCol int
	sideways         bool

	oxygen        int
	oxygenCounter int
	divers        int
	shootTimer    int

	started bool
	over    bool
}

// New creates a new Seaquest instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "seaquest" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Seaquest" }

// Actions returns the action space: NOOP, LEFT, RIGHT, UP, DOWN, SHOOT.
func (g *Game) Actions() []core.Action {
	return []core.Action{
		core.ActionNoOp, core.ActionLeft, core.ActionRight,
		core.ActionUp, core.ActionDown, core.ActionShoot,
	}
}

// Channels returns the observation channel names.
func (g *Game) Channels() []string {
	return []string{"player", "fish", "submarines", "divers", "oxygen", "divers_carried"}
}

// Reset initializes an episode.
func (g *Game) Reset(cfg core.Config) (*core.Observation, error) {
	runtime := cfg.WithDefaults()

	gameCfg, err := config.LoadSeaquest(configPath)
	if err != nil {
		gameCfg = config.DefaultSeaquestConfig()
	}

	// Top row is the surface, bottom row carries the gauges.
	if runtime.Rows < 4 || runtime.Cols < 3 {
		return nil, fmt.Errorf("seaquest: board too small (%dx%d)", runtime.Rows, runtime.Cols)
	}

	g.cfg = gameCfg
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.board = core.NewBoard(runtime.Rows, runtime.Cols)
	g.enc = core.NewEncoder(runtime.Rows, runtime.Cols, g.Channels(), runtime.NoTrail)
	g.prog = core.NewProgression(gameCfg.Enemies.Period, gameCfg.Enemies.MinPeriod,
		gameCfg.Enemies.RespawnWait, gameCfg.Enemies.MinRespawnWait)
	g.prog.SetTier(runtime.Tier)
	g.spawner = core.NewLaneSpawner(g.prog.Wait())

	g.reg = core.NewRegistry(g.board)
	g.player = g.reg.SpawnMoving(core.KindPlayer, runtime.Rows-2,
		g.rng.Intn(runtime.Cols), core.RandSign(g.rng), 1)
	g.prevRow, g.prevCol = g.player.Row, g.player.Col

	// The water starts empty; lanes fill little by little on staggered
	// timers.
	g.lanes = make([]laneSlot, runtime.Rows)
	for lane := 1; lane < runtime.Rows-1; lane++ {
		wait := 0
		if g.spawner.Wait() > 0 {
			wait = g.rng.Intn(g.spawner.Wait())
		}
		g.spawner.ArmFor(lane, wait)
	}

	g.oxygen = gameCfg.Oxygen.Max
	g.oxygenCounter = 0
	g.divers = 0
	g.shootTimer = 0
	g.started = true
	g.over = false

	return g.observe(), nil
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

	if g.shootTimer > 0 {
		g.shootTimer--
	}

	g.oxygenCounter++
	if g.oxygenCounter == g.cfg.Oxygen.DecayEvery {
		g.oxygenCounter = 0
		g.oxygen--
	}
	if g.oxygen <= 0 {
		g.over = true
		return g.observe(), 0, true, nil
	}

	// Friendly bullets already in flight move later this tick; one fired
	// now stays at its spawn cell until the next.
	inFlight := g.reg.ByKind(core.KindFriendlyBullet)

	g.prevRow, g.prevCol = g.player.Row, g.player.Col
	act := g.Actions()[action]
	g.sideways = act == core.ActionLeft || act == core.ActionRight
	switch act {
	case core.ActionLeft:
		g.player.Col = g.board.ClampCol(g.player.Col - 1)
		g.player.Dir = -1
	case core.ActionRight:
		g.player.Col = g.board.ClampCol(g.player.Col + 1)
		g.player.Dir = 1
	case core.ActionUp:
		if g.player.Row > 0 {
			g.player.Row--
		}
	case core.ActionDown:
		if g.player.Row < g.runtime.Rows-2 {
			g.player.Row++
		}
	case core.ActionShoot:
		reward += g.shoot()
	}

	if g.player.Row == 0 {
		reward += g.surface()
		if g.over {
			return g.observe(), reward, true, nil
		}
	}

	// Hostile bullets.
	for lane := range g.lanes {
		slot := &g.lanes[lane]
		if slot.bullet == nil {
			continue
		}
		slot.bullet.Advance()
		if !g.board.Shift(slot.bullet, 0, slot.bullet.Dir) {
			g.reg.Remove(slot.bullet)
			slot.bullet = nil
			slot.rearm = SubmarineRearmTicks
		}
	}

	// Lane traffic: respawns, submarine fire, movement.
	g.advanceLanes()

	// Friendly bullets.
	for _, b := range inFlight {
		if !b.Alive {
			continue
		}
		b.Advance()
		if !g.board.Shift(b, 0, b.Dir) {
			g.reg.Remove(b)
		}
	}

	// Interactions on the post-move board.
	reward += g.resolveContacts()

	return g.observe(), reward, g.over, nil
}

// shoot fires a bullet from the cell in front of the player. A target
// already sitting on that cell is destroyed point-blank instead.
func (g *Game) shoot() float64 {
	if g.shootTimer > 0 {
		return 0
	}
	g.shootTimer = g.cfg.Shooting.Cooldown
	col := g.player.Col + g.player.Dir
	if col < 0 || col >= g.runtime.Cols {
		return 0
	}
	slot := &g.lanes[g.player.Row]
	if slot.e != nil && slot.e.Kind != core.KindDiver && slot.e.Col == col {
		g.killLaneEntity(g.player.Row)
		return 1
	}
	g.reg.SpawnMoving(core.KindFriendlyBullet, g.player.Row, col, g.player.Dir, 1)
	return 0
}

// surface handles the player sitting on the surface row: oxygen is
// pinned to full, and the arrival tick settles the rescue. Surfacing
// with no divers aboard is terminal; otherwise the remaining oxygen is
// paid out as a bonus, the divers disembark, and the next dive is harder.
func (g *Game) surface() float64 {
	bonus := 0.0
	if g.prevRow != 0 {
		if g.divers == 0 {
			g.over = true
			return 0
		}
		bonus = float64(g.oxygen)
		g.divers = 0
		g.prog.Advance()
		g.spawner.SetWait(g.prog.Wait())
	}
	g.oxygen = g.cfg.Oxygen.Max
	g.oxygenCounter = 0
	return bonus
}

// advanceLanes runs the per-lane traffic pass: due respawn timers fill
// empty lanes, submarines fire (standing still on their fire tick), and
// everything else swims one step on its schedule.
func (g *Game) advanceLanes() {
	for _, lane := range g.spawner.Tick() {
		col, dir := core.RandEdge(g.rng, g.runtime.Cols)
		g.lanes[lane].e = g.reg.Spawn(g.rollKind(), lane, col, dir, g.rollPeriod())
	}

	for lane := 1; lane < g.runtime.Rows-1; lane++ {
		slot := &g.lanes[lane]
		if slot.e == nil {
			continue
		}

		// A submarine fires once it is past its spawn-idle tick and has
		// no bullet in flight.
		if slot.e.Kind == core.KindSubmarine && slot.bullet == nil && slot.e.Phase > 0 {
			if slot.rearm > 0 {
				slot.rearm--
			} else if c := slot.e.Col + slot.e.Dir; c >= 0 && c < g.runtime.Cols {
				slot.bullet = g.reg.SpawnMoving(core.KindHostileBullet, lane, c, slot.e.Dir, 1)
				continue // a firing submarine holds position
			}
		}

		if slot.e.Advance() {
			if !g.board.Shift(slot.e, 0, slot.e.Dir) {
				g.killLaneEntity(lane)
			}
		}
	}
}

// resolveContacts evaluates the pairwise interactions after all moves:
// friendly bullets against fish and submarines, then everything hostile
// against the player, then diver pickups.
func (g *Game) resolveContacts() float64 {
	reward := 0.0

	for _, b := range g.reg.ByKind(core.KindFriendlyBullet) {
		for lane := 1; lane < g.runtime.Rows-1; lane++ {
			slot := &g.lanes[lane]
			if slot.e == nil || slot.e.Kind == core.KindDiver {
				continue
			}
			if b.Row == slot.e.Row && b.Col == slot.e.Col {
				g.reg.Remove(b)
				g.killLaneEntity(lane)
				reward++
				break
			}
		}
	}

	for lane := 1; lane < g.runtime.Rows-1; lane++ {
		slot := &g.lanes[lane]
		if slot.bullet != nil && g.touchesPlayer(slot.bullet) {
			g.over = true
			return reward
		}
		if slot.e == nil || !g.touchesPlayer(slot.e) {
			continue
		}
		if slot.e.Kind == core.KindDiver {
			if g.divers < g.cfg.Divers.CarryMax {
				g.killLaneEntity(lane)
				g.divers++
			}
			continue
		}
		g.over = true
		return reward
	}

	return reward
}

// touchesPlayer reports contact on the post-move board, including the
// step-over case where the player and the entity swapped cells.
func (g *Game) touchesPlayer(e *core.Entity) bool {
	if e.Row == g.player.Row && e.Col == g.player.Col {
		return true
	}
	return g.sideways && e.Row == g.prevRow && e.Col == g.prevCol
}

// killLaneEntity removes a lane's occupant and arms the respawn timer.
// A submarine's bullet dies with it.
func (g *Game) killLaneEntity(lane int) {
	slot := &g.lanes[lane]
	g.reg.Remove(slot.e)
	slot.e = nil
	if slot.bullet != nil {
		g.reg.Remove(slot.bullet)
		slot.bullet = nil
	}
	slot.rearm = 0
	g.spawner.Arm(lane)
}

// rollKind picks the next spawn: fish, submarine, or diver.
func (g *Game) rollKind() core.Kind {
	r := g.rng.Float64()
	switch {
	case r < g.cfg.Enemies.FishChance:
		return core.KindFish
	case r < g.cfg.Enemies.FishChance+g.cfg.Enemies.SubmarineChance:
		return core.KindSubmarine
	default:
		return core.KindDiver
	}
}

// rollPeriod draws an entity period from the tier's range. The whole
// range shifts down one tick per surface cycle, clamped at the floor.
func (g *Game) rollPeriod() int {
	lo := g.cfg.Enemies.Period - g.prog.Tier()
	p := core.RandBetween(g.rng, lo, lo+g.cfg.Enemies.PeriodRange)
	if p < g.cfg.Enemies.MinPeriod {
		p = g.cfg.Enemies.MinPeriod
	}
	if p < 1 {
		p = 1
	}
	return p
}

func (g *Game) observe() *core.Observation {
	ob := g.enc.New()
	ob.SetSign(chPlayer, g.player.Row, g.player.Col, g.player.Dir)
	for _, b := range g.reg.ByKind(core.KindFriendlyBullet) {
		ob.SetSign(chPlayer, b.Row, b.Col, b.Dir)
	}

	for lane := 1; lane < g.runtime.Rows-1; lane++ {
		slot := g.lanes[lane]
		if slot.bullet != nil {
			ob.SetSign(chSubs, slot.bullet.Row, slot.bullet.Col, slot.bullet.Dir)
		}
		if slot.e == nil {
			continue
		}
		switch slot.e.Kind {
		case core.KindFish:
			ob.SetTrail(chFish, slot.e.Row, slot.e.Col, slot.e.Trail)
		case core.KindSubmarine:
			ob.SetTrail(chSubs, slot.e.Row, slot.e.Col, slot.e.Trail)
		case core.KindDiver:
			ob.SetTrail(chDivers, slot.e.Row, slot.e.Col, slot.e.Trail)
		}
	}

	gaugeRow := g.runtime.Rows - 1
	ob.FillBar(chOxygen, gaugeRow, float64(g.oxygen)/float64(g.cfg.Oxygen.Max))
	ob.FillBar(chDiverGauge, gaugeRow, float64(g.divers)/float64(g.cfg.Divers.CarryMax))
	return ob
}

func init() {
	registry.Register("seaquest", func() registry.Env {
		return New()
	})
}
