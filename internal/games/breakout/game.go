// Package breakout implements the ball-and-paddle game. The player moves
// a paddle along the bottom row to bounce a ball into a wall of bricks;
// clearing the wall advances the round and speeds the ball up.
package breakout

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
)

// Observation channels
const (
	chPlayer = 0
	chBricks = 1
	chBall   = 2
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the Breakout simulation.
type Game struct {
	cfg     config.BreakoutConfig
	runtime core.Config
	rng     *rand.Rand

	board *core.Board
	reg   *core.Registry
	enc   *core.Encoder
	prog  *core.Progression

	paddle  *core.Entity
	ball    *core.Entity
	colDir  int // horizontal heading, the entity holds the vertical one
	bricks  [][]bool
	left    int // bricks remaining
	contact struct {
		row, col int
		ok       bool
	}

	started bool
	over    bool
}

// New creates a new Breakout instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "breakout" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Breakout" }

// Actions returns the action space: NOOP, LEFT, RIGHT.
func (g *Game) Actions() []core.Action {
	return []core.Action{core.ActionNoOp, core.ActionLeft, core.ActionRight}
}

// Channels returns the observation channel names.
func (g *Game) Channels() []string {
	return []string{"player", "bricks", "ball"}
}

// Reset initializes an episode.
func (g *Game) Reset(cfg core.Config) (*core.Observation, error) {
	runtime := cfg.WithDefaults()

	gameCfg, err := config.LoadBreakout(configPath)
	if err != nil {
		gameCfg = config.DefaultBreakoutConfig()
	}

	if runtime.Cols < 3 {
		return nil, fmt.Errorf("breakout: board too small (%d columns)", runtime.Cols)
	}
	if gameCfg.Bricks.StartRow+gameCfg.Bricks.Rows+2 >= runtime.Rows {
		return nil, fmt.Errorf("breakout: cannot fit %d brick rows in %d board rows",
			gameCfg.Bricks.Rows, runtime.Rows)
	}

	g.cfg = gameCfg
	g.runtime = runtime
	g.rng = core.NewRand(runtime.Seed)
	g.board = core.NewBoard(runtime.Rows, runtime.Cols)
	g.enc = core.NewEncoder(runtime.Rows, runtime.Cols, g.Channels(), runtime.NoTrail)
	g.prog = core.NewProgression(gameCfg.Ball.Period, gameCfg.Ball.MinPeriod, 0, 0)
	g.prog.SetTier(runtime.Tier)

	g.buildBoard()
	g.started = true
	g.over = false

	return g.observe(), nil
}

// buildBoard places the bricks, paddle and ball for a fresh round.
func (g *Game) buildBoard() {
	g.reg = core.NewRegistry(g.board)
	g.contact.ok = false

	g.bricks = make([][]bool, g.runtime.Rows)
	for r := range g.bricks {
		g.bricks[r] = make([]bool, g.runtime.Cols)
	}
	for r := g.cfg.Bricks.StartRow; r < g.cfg.Bricks.StartRow+g.cfg.Bricks.Rows; r++ {
		for c := range g.runtime.Cols {
			g.bricks[r][c] = true
		}
	}
	g.left = g.cfg.Bricks.Rows * g.runtime.Cols

	g.paddle = g.reg.SpawnMoving(core.KindPlayer, g.runtime.Rows-1, g.rng.Intn(g.runtime.Cols), 0, 1)

	// The ball spawns between the bricks and the paddle, heading up.
	ballRow := core.RandBetween(g.rng, g.cfg.Bricks.StartRow+g.cfg.Bricks.Rows, g.runtime.Rows-2)
	g.ball = g.reg.SpawnMoving(core.KindBall, ballRow, g.rng.Intn(g.runtime.Cols), -1, g.prog.Period())
	g.colDir = core.RandSign(g.rng)
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

	g.contact.ok = false
	reward := 0.0

	switch g.Actions()[action] {
	case core.ActionLeft:
		g.paddle.Col = g.board.ClampCol(g.paddle.Col - 1)
	case core.ActionRight:
		g.paddle.Col = g.board.ClampCol(g.paddle.Col + 1)
	}

	if g.ball.Advance() {
		reward += g.moveBall()
	}

	if !g.over && g.left == 0 {
		g.prog.Advance()
		g.buildBoard()
	}

	return g.observe(), reward, g.over, nil
}

// moveBall resolves one tile of ball movement: wall bounces, the paddle
// save check on the bottom row, and brick hits.
func (g *Game) moveBall() float64 {
	reward := 0.0
	row, col := g.ball.Row, g.ball.Col
	newRow := row + g.ball.Dir
	newCol := col + g.colDir

	// Side walls
	if newCol < 0 || newCol >= g.runtime.Cols {
		newCol = g.board.ClampCol(newCol)
		g.colDir = -g.colDir
	}

	checkBricks := true

	switch {
	case newRow < 0: // Ceiling
		newRow = 0
		g.flipRowDir()
		checkBricks = false

	case newRow == g.runtime.Rows-1: // Floor: paddle or miss
		checkBricks = false
		front := [2]int{row + g.ball.Dir, col}
		diag := [2]int{row + g.ball.Dir, col + g.colDir}
		side := [2]int{row, col + g.colDir}
		paddle := [2]int{g.paddle.Row, g.paddle.Col}

		switch paddle {
		case front: // Bounce straight up, keep horizontal heading
			newRow, newCol = row, col
			g.flipRowDir()
			g.setContact(front)
		case diag: // Bounce back diagonally
			newRow, newCol = row, col
			g.flipRowDir()
			g.colDir = -g.colDir
			g.setContact(diag)
		case side: // A side hit deflects the ball but does not save it
			newRow, newCol = row, col
			g.colDir = -g.colDir
			g.setContact(side)
			g.over = true
		default:
			g.over = true
		}
	}

	if checkBricks {
		front := [2]int{row + g.ball.Dir, col}
		diag := [2]int{row + g.ball.Dir, col + g.colDir}
		side := [2]int{row, col + g.colDir}

		switch {
		case g.brickAt(front):
			reward = g.breakBrick(front)
			newRow, newCol = row, col
			g.flipRowDir()
		case g.brickAt(diag):
			reward = g.breakBrick(diag)
			newRow, newCol = row, col
			g.flipRowDir()
			g.colDir = -g.colDir
		case g.brickAt(side):
			reward = g.breakBrick(side)
			newRow, newCol = row, col
			g.colDir = -g.colDir
		}
	}

	g.ball.Row, g.ball.Col = newRow, newCol
	return reward
}

func (g *Game) flipRowDir() {
	g.ball.Dir = -g.ball.Dir
	g.ball.Trail = float64(g.ball.Dir) * math.Abs(g.ball.Trail)
}

func (g *Game) setContact(cell [2]int) {
	g.contact.row, g.contact.col = cell[0], cell[1]
	g.contact.ok = true
}

func (g *Game) brickAt(cell [2]int) bool {
	if !g.board.Inside(cell[0], cell[1]) {
		return false
	}
	return g.bricks[cell[0]][cell[1]]
}

func (g *Game) breakBrick(cell [2]int) float64 {
	g.bricks[cell[0]][cell[1]] = false
	g.left--
	g.setContact(cell)
	return 1
}

func (g *Game) observe() *core.Observation {
	ob := g.enc.New()
	for r := range g.runtime.Rows {
		for c := range g.runtime.Cols {
			if g.bricks[r][c] {
				ob.SetPresence(chBricks, r, c)
			}
		}
	}
	ob.SetPresence(chPlayer, g.paddle.Row, g.paddle.Col)
	ob.SetTrail(chBall, g.ball.Row, g.ball.Col, g.ball.Trail)
	if g.contact.ok {
		ob.SetSign(chBall, g.contact.row, g.contact.col, g.ball.Dir)
	}
	return ob
}

func init() {
	registry.Register("breakout", func() registry.Env {
		return New()
	})
}
