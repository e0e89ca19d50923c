package core

// WrapPolicy controls what happens when an entity steps over a board edge.
type WrapPolicy int

const (
	// PolicyDespawn destroys the entity; a lane timer respawns a
	// replacement later.
	PolicyDespawn WrapPolicy = iota

	// PolicyWrap re-enters the entity at the opposite edge in the same
	// tick, preserving its phase and period. Wrapping is a position
	// transform only, never a destroy/respawn cycle.
	PolicyWrap
)

// Board is the fixed-size playing grid. Each game selects its own
// dimensions and declares, per entity kind, whether that kind wraps around
// the edges or despawns off them.
type Board struct {
	Rows int
	Cols int

	policies map[Kind]WrapPolicy
}

// NewBoard creates a board with the given dimensions. All kinds default to
// PolicyDespawn until overridden with SetPolicy.
func NewBoard(rows, cols int) *Board {
	return &Board{
		Rows:     rows,
		Cols:     cols,
		policies: make(map[Kind]WrapPolicy),
	}
}

// SetPolicy declares the wraparound behavior for a kind.
func (b *Board) SetPolicy(k Kind, p WrapPolicy) {
	b.policies[k] = p
}

// Policy returns the wraparound behavior for a kind.
func (b *Board) Policy(k Kind) WrapPolicy {
	return b.policies[k]
}

// Inside reports whether the cell is on the board.
func (b *Board) Inside(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// ClampRow restricts a row to the board.
func (b *Board) ClampRow(row int) int {
	return clamp(row, 0, b.Rows-1)
}

// ClampCol restricts a column to the board.
func (b *Board) ClampCol(col int) int {
	return clamp(col, 0, b.Cols-1)
}

// Shift moves the entity one tile by (dr, dc), applying the board's wrap
// policy for its kind. It reports whether the entity is still on the board;
// false means it stepped over a despawning edge and the caller must remove
// it (and arm a respawn timer if the lane respawns).
func (b *Board) Shift(e *Entity, dr, dc int) bool {
	row, col := e.Row+dr, e.Col+dc
	if b.Policy(e.Kind) == PolicyWrap {
		e.Row = (row + b.Rows) % b.Rows
		e.Col = (col + b.Cols) % b.Cols
		return true
	}
	if !b.Inside(row, col) {
		return false
	}
	e.Row, e.Col = row, col
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
