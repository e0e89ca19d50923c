// Package core provides the simulation substrate shared by all grid-arcade
// games: entities with fractional-speed motion, the board, the entity
// registry, lane spawners, difficulty progression, and the observation
// encoder. It contains no external dependencies (especially no Bubble Tea)
// to keep game logic pure and testable.
package core

// Kind identifies what an entity is. Games only create the kinds that
// belong to them; the substrate treats all kinds uniformly.
type Kind int

const (
	KindPlayer Kind = iota
	KindBall
	KindAlien
	KindFriendlyBullet
	KindHostileBullet
	KindCar
	KindEnemy
	KindTreasure
	KindDiver
	KindSubmarine
	KindFish
)

// String returns a short name for the kind, used in logs and test output.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBall:
		return "ball"
	case KindAlien:
		return "alien"
	case KindFriendlyBullet:
		return "friendly_bullet"
	case KindHostileBullet:
		return "hostile_bullet"
	case KindCar:
		return "car"
	case KindEnemy:
		return "enemy"
	case KindTreasure:
		return "treasure"
	case KindDiver:
		return "diver"
	case KindSubmarine:
		return "submarine"
	case KindFish:
		return "fish"
	}
	return "unknown"
}

// Entity is a single object on the board. Movement is fractional: an entity
// with period P advances one tile every P ticks, and its phase counts the
// ticks elapsed since its last move. The trail value exposes that phase to
// observers as dir*(phase/P), so an almost-due entity reads close to ±1 and
// one that just moved reads close to 0.
type Entity struct {
	Kind   Kind
	Row    int
	Col    int
	Dir    int // -1, 0 or +1 along the entity's movement axis
	Period int // ticks per tile, >= 1
	Phase  int // in [1, Period]; 0 only while just spawned

	// Trail is this tick's trail value, recorded by Advance. Entities that
	// have not moved since spawning carry no history and read 0.
	Trail float64

	Alive       bool
	JustSpawned bool
}

// Advance runs one tick of the motion schedule: it records this tick's
// trail value and reports whether the entity crosses into a new tile. The
// caller applies the actual position change (the axis is game-specific).
//
// With period P and a fresh phase the trail runs 1/P, 2/P, ..., 1 over P
// ticks, and the entity moves on the tick where the trail reaches full
// magnitude. A just-spawned entity idles one tick with a zero trail.
func (e *Entity) Advance() (moved bool) {
	if e.Period < 1 {
		panic("core: entity period must be >= 1")
	}
	if e.JustSpawned && e.Phase == 0 {
		e.Trail = 0
		e.Phase = 1
		return false
	}
	e.Trail = float64(e.Dir) * float64(e.Phase) / float64(e.Period)
	e.Phase++
	if e.Phase > e.Period {
		e.Phase = 1
		e.JustSpawned = false
		moved = true
	}
	return moved
}

// Static reports whether the entity has no movement axis.
func (e *Entity) Static() bool {
	return e.Dir == 0
}

// Ticker is a bare period counter used for group clocks, shot cooldowns and
// gauge decay. Fire returns true every Period ticks; a Period of 0 never
// fires.
type Ticker struct {
	Period int
	Phase  int
}

// Fire advances the ticker by one tick and reports whether it elapsed.
func (t *Ticker) Fire() bool {
	if t.Period <= 0 {
		return false
	}
	t.Phase++
	if t.Phase >= t.Period {
		t.Phase = 0
		return true
	}
	return false
}

// Reset rewinds the ticker to the start of its period.
func (t *Ticker) Reset() {
	t.Phase = 0
}
