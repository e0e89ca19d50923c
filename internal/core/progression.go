package core

// Progression is the per-episode difficulty record. It is owned by the
// simulation instance and handed to the game's rule code by reference;
// there is no process-wide difficulty state.
//
// Each round advance raises the speed tier, shrinking the period handed to
// newly spawned entities and the respawn wait handed to lane spawners.
// Both are clamped at configured minimums and never loosen within an
// episode.
type Progression struct {
	Round int

	tier       int
	basePeriod int
	minPeriod  int
	baseWait   int
	minWait    int
}

// NewProgression creates a progression record at tier zero.
func NewProgression(basePeriod, minPeriod, baseWait, minWait int) *Progression {
	return &Progression{
		basePeriod: basePeriod,
		minPeriod:  minPeriod,
		baseWait:   baseWait,
		minWait:    minWait,
	}
}

// Advance registers a round-advance event: the round index increments and
// the speed tier tightens by one.
func (p *Progression) Advance() {
	p.Round++
	p.tier++
}

// SetTier jumps straight to a tier. Used for starting-difficulty overrides
// at reset; it does not touch the round index.
func (p *Progression) SetTier(tier int) {
	if tier < 0 {
		tier = 0
	}
	p.tier = tier
}

// Tier returns the current speed tier.
func (p *Progression) Tier() int {
	return p.tier
}

// Period returns the movement period for entities spawned at the current
// tier, floored at the configured minimum. The floor is 1 at the lowest:
// an entity cannot move more than once per tick in this model.
func (p *Progression) Period() int {
	period := p.basePeriod - p.tier
	if period < p.minPeriod {
		period = p.minPeriod
	}
	if period < 1 {
		period = 1
	}
	return period
}

// Wait returns the respawn wait at the current tier, floored at the
// configured minimum.
func (p *Progression) Wait() int {
	wait := p.baseWait - p.tier
	if wait < p.minWait {
		wait = p.minWait
	}
	return wait
}
