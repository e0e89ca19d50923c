package core

// Observation is a dense rows x cols x channels tensor with values in
// [-1, 1]. A fresh observation is all zeros; games write entity trails,
// presence bits and gauge bars into it each tick.
type Observation struct {
	Rows     int
	Cols     int
	Channels int
	Data     []float64

	noTrail bool
}

// Encoder builds observations for one game configuration. Channel names
// are fixed per game and indexed in declaration order.
type Encoder struct {
	rows     int
	cols     int
	channels []string
	noTrail  bool
}

// NewEncoder creates an encoder. With noTrail set, every non-zero write
// collapses to plain presence (1), discarding sign and magnitude; the
// internal move schedule is unaffected.
func NewEncoder(rows, cols int, channels []string, noTrail bool) *Encoder {
	return &Encoder{
		rows:     rows,
		cols:     cols,
		channels: channels,
		noTrail:  noTrail,
	}
}

// Channels returns the channel names in index order.
func (enc *Encoder) Channels() []string {
	return enc.channels
}

// New returns a zeroed observation shaped for this encoder.
func (enc *Encoder) New() *Observation {
	return &Observation{
		Rows:     enc.rows,
		Cols:     enc.cols,
		Channels: len(enc.channels),
		Data:     make([]float64, enc.rows*enc.cols*len(enc.channels)),
		noTrail:  enc.noTrail,
	}
}

func (ob *Observation) index(row, col, ch int) int {
	return (row*ob.Cols+col)*ob.Channels + ch
}

// At returns the value at (row, col) on the given channel.
func (ob *Observation) At(row, col, ch int) float64 {
	return ob.Data[ob.index(row, col, ch)]
}

// SetTrail writes a trail value. Zero trails leave the cell untouched so a
// just-spawned entity stays invisible until its first completed move.
func (ob *Observation) SetTrail(ch, row, col int, trail float64) {
	if trail == 0 {
		return
	}
	if ob.noTrail {
		ob.Data[ob.index(row, col, ch)] = 1
		return
	}
	ob.Data[ob.index(row, col, ch)] = trail
}

// SetPresence writes a constant 1, used for the player and static terrain.
func (ob *Observation) SetPresence(ch, row, col int) {
	ob.Data[ob.index(row, col, ch)] = 1
}

// SetSign writes the entity's direction as +-1. Binary-state entities with
// no trail concept (the alien block, bullets) use this.
func (ob *Observation) SetSign(ch, row, col, dir int) {
	if dir == 0 {
		return
	}
	if ob.noTrail {
		ob.Data[ob.index(row, col, ch)] = 1
		return
	}
	ob.Data[ob.index(row, col, ch)] = float64(sign(dir))
}

// FillBar renders a gauge as a contiguous prefix of 1s in the given row.
// The prefix length is cols*fraction rounded down, but a non-empty gauge
// always lights at least one cell so it cannot alias with an empty one.
func (ob *Observation) FillBar(ch, row int, fraction float64) {
	if fraction <= 0 {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	n := int(float64(ob.Cols) * fraction)
	if n < 1 {
		n = 1
	}
	for col := range n {
		ob.Data[ob.index(row, col, ch)] = 1
	}
}

// Clone returns a deep copy of the observation.
func (ob *Observation) Clone() *Observation {
	data := make([]float64, len(ob.Data))
	copy(data, ob.Data)
	return &Observation{
		Rows:     ob.Rows,
		Cols:     ob.Cols,
		Channels: ob.Channels,
		Data:     data,
		noTrail:  ob.noTrail,
	}
}

// Equal reports whether two observations have identical shape and values.
func (ob *Observation) Equal(other *Observation) bool {
	if ob.Rows != other.Rows || ob.Cols != other.Cols || ob.Channels != other.Channels {
		return false
	}
	for i, v := range ob.Data {
		if v != other.Data[i] {
			return false
		}
	}
	return true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
