package seaquest

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

// quietLanes empties the water and pushes every respawn timer far out so
// a test can stage its own entities.
func quietLanes(g *Game) {
	for lane := 1; lane < g.runtime.Rows-1; lane++ {
		if g.lanes[lane].e != nil {
			g.killLaneEntity(lane)
		}
		g.spawner.ArmFor(lane, 1000)
	}
}

func TestResetLayout(t *testing.T) {
	g := newGame(t, 7)

	if g.player.Row != 8 {
		t.Errorf("player row = %d, want 8", g.player.Row)
	}
	if g.player.Dir != 1 && g.player.Dir != -1 {
		t.Errorf("player facing = %d, want a sign", g.player.Dir)
	}
	if g.oxygen != 20 || g.divers != 0 {
		t.Errorf("oxygen=%d divers=%d at reset, want 20 and 0", g.oxygen, g.divers)
	}
	for lane := 1; lane < 9; lane++ {
		if g.lanes[lane].e != nil {
			t.Errorf("lane %d occupied at reset", lane)
		}
		if !g.spawner.Armed(lane) {
			t.Errorf("lane %d respawn timer not armed at reset", lane)
		}
	}

	ob := g.observe()
	for c := range 10 {
		if ob.At(9, c, chOxygen) != 1 {
			t.Errorf("oxygen gauge cell %d = %v, want 1", c, ob.At(9, c, chOxygen))
		}
		if ob.At(9, c, chDiverGauge) != 0 {
			t.Errorf("diver gauge cell %d = %v, want 0", c, ob.At(9, c, chDiverGauge))
		}
	}
	if got := ob.At(g.player.Row, g.player.Col, chPlayer); got != float64(g.player.Dir) {
		t.Errorf("player cell = %v, want facing %d", got, g.player.Dir)
	}
}

func TestStepErrors(t *testing.T) {
	g := New()
	if _, _, _, err := g.Step(0); !errors.Is(err, core.ErrNotReset) {
		t.Errorf("step before reset: %v", err)
	}

	g = newGame(t, 7)
	if _, _, _, err := g.Step(6); !errors.Is(err, core.ErrInvalidAction) {
		t.Errorf("out-of-range action: %v", err)
	}
}

func TestShootSpawnsBulletInFront(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col, g.player.Dir = 8, 5, 1

	if _, _, _, err := g.Step(5); err != nil {
		t.Fatalf("Step: %v", err)
	}
	bullets := g.reg.ByKind(core.KindFriendlyBullet)
	if len(bullets) != 1 {
		t.Fatalf("%d bullets after shot, want 1", len(bullets))
	}
	if bullets[0].Row != 8 || bullets[0].Col != 6 {
		t.Errorf("bullet at (%d,%d), want (8,6)", bullets[0].Row, bullets[0].Col)
	}
	if g.shootTimer != 3 {
		t.Errorf("shoot timer = %d, want 3", g.shootTimer)
	}

	// A bullet fired this tick starts moving on the next one.
	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if bullets[0].Col != 7 {
		t.Errorf("bullet column = %d after a tick, want 7", bullets[0].Col)
	}

	// Cooldown blocks a second shot.
	if _, _, _, err := g.Step(5); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := len(g.reg.ByKind(core.KindFriendlyBullet)); got != 1 {
		t.Errorf("%d bullets during cooldown, want 1", got)
	}
}

func TestPointBlankShot(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col, g.player.Dir = 8, 5, 1
	fish := g.reg.Spawn(core.KindFish, 8, 6, -1, 3)
	g.lanes[8].e = fish

	_, reward, terminated, err := g.Step(5)
	if err != nil || terminated {
		t.Fatalf("Step: terminated=%v err=%v", terminated, err)
	}
	if reward != 1 {
		t.Errorf("reward = %v, want 1", reward)
	}
	if fish.Alive || g.lanes[8].e != nil {
		t.Error("point-blank target not removed")
	}
	if got := g.reg.Count(core.KindFriendlyBullet); got != 0 {
		t.Errorf("%d bullets spawned on a point-blank kill, want 0", got)
	}
	if !g.spawner.Armed(8) {
		t.Error("respawn timer not armed after the kill")
	}
}

func TestBulletDestroysEnemy(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 1, 0
	fish := g.reg.Spawn(core.KindFish, 8, 8, -1, 3)
	g.lanes[8].e = fish
	b := g.reg.SpawnMoving(core.KindFriendlyBullet, 8, 7, 1, 1)

	_, reward, _, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if reward != 1 {
		t.Errorf("reward = %v, want 1", reward)
	}
	if fish.Alive || b.Alive {
		t.Error("bullet and fish not mutually removed")
	}
}

func TestDiversImmuneToBullets(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 1, 0
	diver := g.reg.Spawn(core.KindDiver, 8, 7, -1, 3)
	g.lanes[8].e = diver
	b := g.reg.SpawnMoving(core.KindFriendlyBullet, 8, 6, 1, 1)

	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !diver.Alive {
		t.Fatal("bullet destroyed a diver")
	}
	if !b.Alive || b.Col != 7 {
		t.Fatalf("bullet at column %d alive=%v, want 7 and alive", b.Col, b.Alive)
	}

	// The bullet keeps flying straight through.
	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !diver.Alive || b.Col != 8 {
		t.Errorf("after pass-through: diver alive=%v bullet col=%d", diver.Alive, b.Col)
	}
}

func TestDiverCollection(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 8, 5
	diver := g.reg.Spawn(core.KindDiver, 7, 5, 1, 3)
	g.lanes[7].e = diver

	_, reward, terminated, err := g.Step(3) // up, onto the diver
	if err != nil || terminated {
		t.Fatalf("Step: terminated=%v err=%v", terminated, err)
	}
	if reward != 0 {
		t.Errorf("pickup reward = %v, want 0", reward)
	}
	if g.divers != 1 {
		t.Errorf("divers carried = %d, want 1", g.divers)
	}
	if diver.Alive || g.lanes[7].e != nil {
		t.Error("collected diver still in the lane")
	}
}

func TestDiverNotCollectedWhenFull(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 8, 5
	g.divers = g.cfg.Divers.CarryMax
	diver := g.reg.Spawn(core.KindDiver, 7, 5, 1, 3)
	g.lanes[7].e = diver

	_, _, terminated, err := g.Step(3)
	if err != nil || terminated {
		t.Fatalf("Step: terminated=%v err=%v", terminated, err)
	}
	if !diver.Alive {
		t.Error("diver collected past the carry limit")
	}
	if g.divers != g.cfg.Divers.CarryMax {
		t.Errorf("divers carried = %d, want %d", g.divers, g.cfg.Divers.CarryMax)
	}
}

func TestEnemyContactTerminates(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 8, 5
	g.lanes[8].e = g.reg.SpawnMoving(core.KindFish, 8, 4, 1, 1)

	_, _, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Fatal("fish swam into the player without terminating")
	}
	if _, _, _, err := g.Step(0); !errors.Is(err, core.ErrTerminated) {
		t.Errorf("step after termination: %v", err)
	}
}

func TestStepOverCollision(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)

	// Player and fish swap cells in the same tick: the fish lands on the
	// cell the player just left, which still counts as a hit.
	g.player.Row, g.player.Col = 8, 5
	g.lanes[8].e = g.reg.SpawnMoving(core.KindFish, 8, 6, -1, 1)

	_, _, terminated, err := g.Step(2) // right, through the fish
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Error("cell swap with a fish was not detected")
	}
}

func TestSubmarineFiresAndHolds(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 8, 9
	sub := g.reg.Spawn(core.KindSubmarine, 5, 0, 1, 3)
	g.lanes[5].e = sub

	// Spawn tick is idle; the submarine fires on its first active tick
	// and holds position while doing so.
	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if g.lanes[5].bullet != nil {
		t.Fatal("submarine fired during its spawn tick")
	}
	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	b := g.lanes[5].bullet
	if b == nil {
		t.Fatal("submarine did not fire on its first active tick")
	}
	if b.Row != 5 || b.Col != 1 {
		t.Errorf("bullet at (%d,%d), want (5,1)", b.Row, b.Col)
	}
	if sub.Col != 0 {
		t.Errorf("submarine moved to column %d on its fire tick", sub.Col)
	}

	// The bullet advances one column per tick from here.
	if _, _, _, err := g.Step(0); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if b.Col != 2 {
		t.Errorf("bullet column = %d, want 2", b.Col)
	}
}

func TestSubmarineBulletHitTerminates(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 5, 4
	sub := g.reg.Spawn(core.KindSubmarine, 5, 0, 1, 1000)
	sub.Phase = 1
	g.lanes[5].e = sub
	g.lanes[5].bullet = g.reg.SpawnMoving(core.KindHostileBullet, 5, 3, 1, 1)

	_, _, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Fatal("submarine bullet reached the player without terminating")
	}
}

func TestBulletDiesWithSubmarine(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 1, 0
	sub := g.reg.Spawn(core.KindSubmarine, 5, 8, -1, 1000)
	sub.Phase = 1
	g.lanes[5].e = sub
	hostile := g.reg.SpawnMoving(core.KindHostileBullet, 5, 6, -1, 1)
	g.lanes[5].bullet = hostile
	friendly := g.reg.SpawnMoving(core.KindFriendlyBullet, 5, 7, 1, 1)

	if _, reward, _, err := g.Step(0); err != nil || reward != 1 {
		t.Fatalf("Step: reward=%v err=%v, want 1 and nil", reward, err)
	}
	if sub.Alive {
		t.Error("submarine not destroyed")
	}
	if friendly.Alive {
		t.Error("friendly bullet survived the hit")
	}
	if hostile.Alive {
		t.Error("submarine's bullet survived its submarine")
	}
	if g.lanes[5].bullet != nil {
		t.Error("bullet slot not cleared with the submarine")
	}
}

func TestBulletStopsEnemyBesidePlayer(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 5, 4
	fish := g.reg.SpawnMoving(core.KindFish, 5, 6, -1, 1)
	g.lanes[5].e = fish
	bullet := g.reg.SpawnMoving(core.KindFriendlyBullet, 5, 4, 1, 1)

	// Fish and bullet both move onto (5,5), one cell from the player.
	// The bullet's kill is settled first, so the fish never gets there.
	_, reward, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if terminated {
		t.Fatal("game ended although the bullet intercepted the fish")
	}
	if reward != 1 {
		t.Errorf("reward = %v, want 1", reward)
	}
	if fish.Alive || g.lanes[5].e != nil {
		t.Error("fish not removed by the intercepting bullet")
	}
	if bullet.Alive {
		t.Error("bullet survived the intercept")
	}
}

func TestOxygenDepletionTerminates(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 8, 0

	// Oxygen drops by one every 10 ticks; 20 units last 200 ticks.
	for i := range 199 {
		if _, _, terminated, err := g.Step(0); err != nil || terminated {
			t.Fatalf("tick %d: terminated=%v err=%v", i, terminated, err)
		}
	}
	_, _, terminated, err := g.Step(0)
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Fatal("empty oxygen did not terminate")
	}
	if g.oxygen != 0 {
		t.Errorf("oxygen = %d at termination, want 0", g.oxygen)
	}
}

func TestSurfaceWithoutDiversTerminates(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 1, 0

	_, reward, terminated, err := g.Step(3) // up, to the surface
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !terminated {
		t.Fatal("surfacing with no divers did not terminate")
	}
	if reward != 0 {
		t.Errorf("reward = %v, want 0", reward)
	}
}

func TestSurfaceRescue(t *testing.T) {
	g := newGame(t, 7)
	quietLanes(g)
	g.player.Row, g.player.Col = 1, 0
	g.divers = 6
	g.oxygen = 13

	ob, reward, terminated, err := g.Step(3) // up, to the surface
	if err != nil || terminated {
		t.Fatalf("Step: terminated=%v err=%v", terminated, err)
	}
	if reward != 13 {
		t.Errorf("surfacing bonus = %v, want the remaining oxygen 13", reward)
	}
	if g.divers != 0 {
		t.Errorf("divers carried = %d after rescue, want 0", g.divers)
	}
	if g.oxygen != 20 {
		t.Errorf("oxygen = %d after rescue, want 20", g.oxygen)
	}
	if g.prog.Round != 1 {
		t.Errorf("round = %d after rescue, want 1", g.prog.Round)
	}
	for c := range 10 {
		if ob.At(9, c, chDiverGauge) != 0 {
			t.Fatalf("diver gauge cell %d = %v after rescue, want 0", c, ob.At(9, c, chDiverGauge))
		}
		if ob.At(9, c, chOxygen) != 1 {
			t.Fatalf("oxygen gauge cell %d = %v after rescue, want 1", c, ob.At(9, c, chOxygen))
		}
	}

	// Sitting on the surface pays nothing more and keeps the tank full.
	_, reward, terminated, err = g.Step(0)
	if err != nil || terminated {
		t.Fatalf("Step: terminated=%v err=%v", terminated, err)
	}
	if reward != 0 {
		t.Errorf("reward while sitting on the surface = %v, want 0", reward)
	}
	if g.oxygen != 20 {
		t.Errorf("oxygen = %d while surfaced, want 20", g.oxygen)
	}
}

func TestDeterministicReplay(t *testing.T) {
	actions := []int{0, 4, 1, 5, 2, 0, 3, 5, 1, 0, 2, 4, 5, 0, 1, 3, 2, 5, 0, 4}

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
