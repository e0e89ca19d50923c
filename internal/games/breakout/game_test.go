package breakout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	if _, err := g.Reset(cfg); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return g
}

func TestResetLayout(t *testing.T) {
	g := newGame(t, 1)

	ob, _ := g.Reset(core.Config{Seed: 1})
	if ob.Rows != 10 || ob.Cols != 10 || ob.Channels != 3 {
		t.Fatalf("observation shape = %dx%dx%d", ob.Rows, ob.Cols, ob.Channels)
	}

	// Three full brick rows starting at row 1.
	for r := 1; r <= 3; r++ {
		for c := range 10 {
			if ob.At(r, c, chBricks) != 1 {
				t.Errorf("missing brick at (%d,%d)", r, c)
			}
		}
	}
	if g.left != 30 {
		t.Errorf("bricks remaining = %d, want 30", g.left)
	}

	if g.paddle.Row != 9 {
		t.Errorf("paddle row = %d, want 9", g.paddle.Row)
	}
	if g.ball.Dir != -1 {
		t.Errorf("ball spawned heading %d, want up", g.ball.Dir)
	}
	if g.ball.Row < 4 || g.ball.Row > 8 {
		t.Errorf("ball spawned in row %d", g.ball.Row)
	}
}

func TestStepErrors(t *testing.T) {
	g := New()
	if _, _, _, err := g.Step(0); !errors.Is(err, core.ErrNotReset) {
		t.Errorf("step before reset: %v", err)
	}

	g = newGame(t, 1)
	if _, _, _, err := g.Step(3); !errors.Is(err, core.ErrInvalidAction) {
		t.Errorf("out-of-range action: %v", err)
	}
	if _, _, _, err := g.Step(-1); !errors.Is(err, core.ErrInvalidAction) {
		t.Errorf("negative action: %v", err)
	}
}

func TestPaddleMovement(t *testing.T) {
	g := newGame(t, 1)
	g.paddle.Col = 5

	g.Step(1) // left
	if g.paddle.Col != 4 {
		t.Errorf("paddle col after left = %d, want 4", g.paddle.Col)
	}
	g.Step(2) // right
	if g.paddle.Col != 5 {
		t.Errorf("paddle col after right = %d, want 5", g.paddle.Col)
	}

	g.paddle.Col = 0
	g.Step(1)
	if g.paddle.Col != 0 {
		t.Errorf("paddle left clamp failed: col %d", g.paddle.Col)
	}
}

func TestBrickBreakRewards(t *testing.T) {
	g := newGame(t, 1)

	// Park the ball directly under the brick wall, heading straight up
	// on a move tick.
	g.ball.Row, g.ball.Col = 4, 5
	g.ball.Dir = -1
	g.ball.Period, g.ball.Phase = 1, 1
	g.colDir = 1
	g.paddle.Col = 0

	_, reward, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if terminated {
		t.Fatal("episode terminated on a brick hit")
	}
	if reward != 1 {
		t.Errorf("reward = %v, want 1", reward)
	}
	if g.left != 29 {
		t.Errorf("bricks remaining = %d, want 29", g.left)
	}
	// The ball bounced off the brick without entering its cell.
	if g.ball.Row != 4 || g.ball.Dir != 1 {
		t.Errorf("ball after brick bounce: row %d dir %d", g.ball.Row, g.ball.Dir)
	}
}

func TestMissTerminates(t *testing.T) {
	g := newGame(t, 1)

	g.ball.Row, g.ball.Col = 8, 5
	g.ball.Dir = 1
	g.ball.Period, g.ball.Phase = 1, 1
	g.colDir = 1
	g.paddle.Col = 0 // nowhere near the ball

	_, _, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Fatal("ball reached the floor but episode did not terminate")
	}

	if _, _, _, err := g.Step(0); !errors.Is(err, core.ErrTerminated) {
		t.Errorf("step after termination: %v", err)
	}
}

func TestPaddleSave(t *testing.T) {
	g := newGame(t, 1)

	g.ball.Row, g.ball.Col = 8, 5
	g.ball.Dir = 1
	g.ball.Period, g.ball.Phase = 1, 1
	g.colDir = 1
	g.paddle.Col = 5 // directly beneath

	_, _, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if terminated {
		t.Fatal("front paddle hit did not save the ball")
	}
	if g.ball.Dir != -1 {
		t.Errorf("ball dir after save = %d, want -1", g.ball.Dir)
	}
}

func TestRoundAdvanceTightensBallPeriod(t *testing.T) {
	g := newGame(t, 1)

	if g.prog.Period() != 2 {
		t.Fatalf("round-one ball period = %d, want 2", g.prog.Period())
	}

	// Clear the wall down to one brick, then break it.
	for r := 1; r <= 3; r++ {
		for c := range 10 {
			g.bricks[r][c] = false
		}
	}
	g.bricks[3][5] = true
	g.left = 1

	g.ball.Row, g.ball.Col = 4, 5
	g.ball.Dir = -1
	g.ball.Period, g.ball.Phase = 1, 1
	g.colDir = 1
	g.paddle.Col = 0

	_, reward, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if terminated {
		t.Fatal("round advance terminated the episode")
	}
	if reward != 1 {
		t.Errorf("reward = %v, want 1", reward)
	}
	if g.prog.Round != 1 {
		t.Errorf("round = %d, want 1", g.prog.Round)
	}
	if g.prog.Period() != 1 {
		t.Errorf("round-two ball period = %d, want 1", g.prog.Period())
	}
	if g.left != 30 {
		t.Errorf("rebuilt wall has %d bricks, want 30", g.left)
	}
}

func TestDeterministicReplay(t *testing.T) {
	actions := []int{0, 1, 1, 2, 0, 2, 1, 0, 0, 2, 1, 1, 0, 2, 2, 0, 1, 0, 2, 1}

	run := func() []*core.Observation {
		g := newGame(t, 99)
		var seq []*core.Observation
		for _, a := range actions {
			ob, _, terminated, err := g.Step(a)
			if err != nil {
				t.Fatalf("Step: %v", err)
			}
			seq = append(seq, ob)
			if terminated {
				break
			}
		}
		return seq
	}

	first, second := run(), run()
	if len(first) != len(second) {
		t.Fatalf("replay lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("replay diverged at tick %d", i)
		}
	}
}
