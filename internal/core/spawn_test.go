package core

import "testing"

func TestLaneSpawnerTiming(t *testing.T) {
	s := NewLaneSpawner(3)
	s.Arm(2)

	for tick := 1; tick <= 2; tick++ {
		if due := s.Tick(); len(due) != 0 {
			t.Fatalf("tick %d: lane fired early: %v", tick, due)
		}
	}
	due := s.Tick()
	if len(due) != 1 || due[0] != 2 {
		t.Fatalf("tick 3: due = %v, want [2]", due)
	}
	if s.Armed(2) {
		t.Error("fired lane still armed")
	}
}

func TestLaneSpawnerImmediate(t *testing.T) {
	s := NewLaneSpawner(0)
	s.Arm(4)
	if due := s.Tick(); len(due) != 1 || due[0] != 4 {
		t.Errorf("zero-wait lane due = %v, want [4]", due)
	}
}

func TestLaneSpawnerSortedOutput(t *testing.T) {
	s := NewLaneSpawner(1)
	s.Arm(7)
	s.Arm(1)
	s.Arm(4)
	due := s.Tick()
	if len(due) != 3 || due[0] != 1 || due[1] != 4 || due[2] != 7 {
		t.Errorf("due = %v, want [1 4 7]", due)
	}
}

func TestLaneSpawnerWaitTightening(t *testing.T) {
	s := NewLaneSpawner(5)
	s.Arm(0)
	s.SetWait(2)
	s.Arm(3) // picks up the tightened wait

	s.Tick()
	due := s.Tick()
	if len(due) != 1 || due[0] != 3 {
		t.Errorf("tightened lane due = %v, want [3]", due)
	}
	// Lane 0 keeps its original countdown.
	for tick := 3; tick <= 4; tick++ {
		if due := s.Tick(); len(due) != 0 {
			t.Fatalf("tick %d: due = %v, want none", tick, due)
		}
	}
	due = s.Tick()
	if len(due) != 1 || due[0] != 0 {
		t.Errorf("original lane due = %v, want [0]", due)
	}
}

func TestProgressionFloors(t *testing.T) {
	p := NewProgression(6, 2, 10, 3)
	if p.Period() != 6 || p.Wait() != 10 {
		t.Fatalf("base period/wait = %d/%d", p.Period(), p.Wait())
	}

	for range 20 {
		p.Advance()
	}
	if p.Period() != 2 {
		t.Errorf("period = %d, want floor 2", p.Period())
	}
	if p.Wait() != 3 {
		t.Errorf("wait = %d, want floor 3", p.Wait())
	}
	if p.Round != 20 {
		t.Errorf("round = %d, want 20", p.Round)
	}
}

func TestProgressionPeriodNeverBelowOne(t *testing.T) {
	p := NewProgression(2, 0, 0, 0)
	for range 5 {
		p.Advance()
	}
	if p.Period() != 1 {
		t.Errorf("period = %d, want 1", p.Period())
	}
}

func TestProgressionSetTier(t *testing.T) {
	p := NewProgression(8, 2, 12, 4)
	p.SetTier(3)
	if p.Period() != 5 {
		t.Errorf("period at tier 3 = %d, want 5", p.Period())
	}
	if p.Wait() != 9 {
		t.Errorf("wait at tier 3 = %d, want 9", p.Wait())
	}
}
