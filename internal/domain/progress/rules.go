package progress

// Rules holds the tunable constants of the hearts/points economy.
type Rules struct {
	MaxHearts          int
	PointsPerChallenge int
	PointsToRefill     int
}

func DefaultRules() Rules {
	return Rules{
		MaxHearts:          5,
		PointsPerChallenge: 10,
		PointsToRefill:     10,
	}
}

// WithDefaults fills non-positive fields from DefaultRules.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if r.MaxHearts <= 0 {
		r.MaxHearts = d.MaxHearts
	}
	if r.PointsPerChallenge <= 0 {
		r.PointsPerChallenge = d.PointsPerChallenge
	}
	if r.PointsToRefill <= 0 {
		r.PointsToRefill = d.PointsToRefill
	}
	return r
}

func (r Rules) ClampHearts(h int) int {
	if h < 0 {
		return 0
	}
	if h > r.MaxHearts {
		return r.MaxHearts
	}
	return h
}

// RestoreHeart is the practice reward: one heart, capped at MaxHearts.
func (r Rules) RestoreHeart(h int) int { return r.ClampHearts(h + 1) }

// LoseHeart is the wrong-answer penalty, floored at zero.
func (r Rules) LoseHeart(h int) int { return r.ClampHearts(h - 1) }
