package core

import "fmt"

// Registry owns every live entity of a simulation instance. Entities are
// created through Spawn/SpawnArmed, mutated by the motion scheduler and the
// game's interaction pass, and removed on collision, collection or despawn.
//
// The registry enforces the structural invariants of the data model: at
// most one player exists, and non-wrapping kinds are never placed out of
// bounds. Violations are programming defects and panic rather than being
// recovered silently.
type Registry struct {
	board    *Board
	entities []*Entity
	player   *Entity
}

// NewRegistry creates an empty registry bound to a board.
func NewRegistry(b *Board) *Registry {
	return &Registry{board: b}
}

// Spawn creates a just-spawned entity. It idles one tick with a zero trail
// before entering its motion schedule.
func (r *Registry) Spawn(kind Kind, row, col, dir, period int) *Entity {
	e := &Entity{
		Kind:        kind,
		Row:         row,
		Col:         col,
		Dir:         dir,
		Period:      period,
		Phase:       0,
		Alive:       true,
		JustSpawned: true,
	}
	r.add(e)
	return e
}

// SpawnArmed creates an entity whose phase is already at the end of its
// period, so it completes a move on its first Advance. Bullets spawn armed:
// they leave the shooter's cell in the same tick they are fired.
func (r *Registry) SpawnArmed(kind Kind, row, col, dir, period int) *Entity {
	e := &Entity{
		Kind:   kind,
		Row:    row,
		Col:    col,
		Dir:    dir,
		Period: period,
		Phase:  period,
		Alive:  true,
	}
	r.add(e)
	return e
}

// SpawnMoving creates an entity already on its motion schedule, used for
// entities placed at episode reset. Its trail is primed to the first phase
// value so the reset observation shows its heading.
func (r *Registry) SpawnMoving(kind Kind, row, col, dir, period int) *Entity {
	e := &Entity{
		Kind:   kind,
		Row:    row,
		Col:    col,
		Dir:    dir,
		Period: period,
		Phase:  1,
		Alive:  true,
	}
	if dir != 0 && period > 0 {
		e.Trail = float64(dir) / float64(period)
	}
	r.add(e)
	return e
}

func (r *Registry) add(e *Entity) {
	if e.Kind == KindPlayer {
		if r.player != nil && r.player.Alive {
			panic("core: second player spawned during an active episode")
		}
		r.player = e
	}
	if r.board.Policy(e.Kind) != PolicyWrap && !r.board.Inside(e.Row, e.Col) {
		panic(fmt.Sprintf("core: %s spawned out of bounds at (%d,%d)", e.Kind, e.Row, e.Col))
	}
	r.entities = append(r.entities, e)
}

// Remove marks the entity dead and drops it from the registry. Removed
// entities cannot participate in later interaction checks within the same
// tick.
func (r *Registry) Remove(e *Entity) {
	e.Alive = false
	for i, cand := range r.entities {
		if cand == e {
			r.entities = append(r.entities[:i], r.entities[i+1:]...)
			break
		}
	}
	if r.player == e {
		r.player = nil
	}
}

// Player returns the player entity. Exactly one player exists during an
// active episode; a missing player is an internal defect.
func (r *Registry) Player() *Entity {
	if r.player == nil {
		panic("core: no player entity in registry")
	}
	return r.player
}

// ByKind returns the live entities of one kind, in spawn order. Spawn order
// is deterministic, so iterating the result keeps replays byte-identical.
func (r *Registry) ByKind(kind Kind) []*Entity {
	var out []*Entity
	for _, e := range r.entities {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many live entities of one kind exist.
func (r *Registry) Count(kind Kind) int {
	n := 0
	for _, e := range r.entities {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// At returns the live entities occupying a cell, in spawn order.
func (r *Registry) At(row, col int) []*Entity {
	var out []*Entity
	for _, e := range r.entities {
		if e.Row == row && e.Col == col {
			out = append(out, e)
		}
	}
	return out
}

// All returns every live entity in spawn order.
func (r *Registry) All() []*Entity {
	return r.entities
}

// Clear removes all entities. Used when a round advance rebuilds the board.
func (r *Registry) Clear() {
	for _, e := range r.entities {
		e.Alive = false
	}
	r.entities = r.entities[:0]
	r.player = nil
}
