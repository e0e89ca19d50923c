package core

import "sort"

// LaneSpawner tracks per-lane respawn timers for entity kinds that despawn
// off the board and come back later. A lane is armed when its entity leaves
// (or is collected/destroyed); once the timer runs out the lane is reported
// as due and the game decides what to spawn there.
type LaneSpawner struct {
	timers map[int]int
	wait   int
}

// NewLaneSpawner creates a spawner whose future arms use the given wait.
func NewLaneSpawner(wait int) *LaneSpawner {
	return &LaneSpawner{
		timers: make(map[int]int),
		wait:   wait,
	}
}

// SetWait changes the wait used by future Arm calls. Difficulty progression
// calls this after each round advance; timers already running are not
// shortened retroactively.
func (s *LaneSpawner) SetWait(wait int) {
	s.wait = wait
}

// Wait returns the wait applied to future arms.
func (s *LaneSpawner) Wait() int {
	return s.wait
}

// Arm schedules a spawn attempt on the lane after the current wait.
func (s *LaneSpawner) Arm(lane int) {
	s.timers[lane] = s.wait
}

// ArmFor schedules a spawn attempt after an explicit number of ticks.
// Games use this to stagger the initial board fill.
func (s *LaneSpawner) ArmFor(lane, ticks int) {
	s.timers[lane] = ticks
}

// Armed reports whether the lane has a pending timer.
func (s *LaneSpawner) Armed(lane int) bool {
	_, ok := s.timers[lane]
	return ok
}

// Tick decrements every timer and returns the lanes that became due this
// tick, in ascending lane order so replays stay deterministic. Due lanes
// are cleared; the game re-arms them after the spawned entity leaves.
func (s *LaneSpawner) Tick() []int {
	var due []int
	for lane, t := range s.timers {
		t--
		if t <= 0 {
			due = append(due, lane)
			continue
		}
		s.timers[lane] = t
	}
	sort.Ints(due)
	for _, lane := range due {
		delete(s.timers, lane)
	}
	return due
}
