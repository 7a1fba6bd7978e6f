package transition

import "github.com/milk9111/undercroft/common"

// DefaultLevelTolerance keeps the level from creeping toward a bound
// forever.
const DefaultLevelTolerance = 0.01

// Mode is what a Level is currently doing.
type Mode int

const (
	Idle Mode = iota
	Filling
	Draining
)

func (m Mode) String() string {
	switch m {
	case Filling:
		return "filling"
	case Draining:
		return "draining"
	default:
		return "idle"
	}
}

// Level is a bounded linear accumulator that fills toward Max and drains
// toward Min at independent rates.
type Level struct {
	Min       float64
	Max       float64
	Current   float64
	FillRate  float64
	DrainRate float64
	Tolerance float64

	mode Mode
}

// NewLevel starts idle at min.
func NewLevel(min, max, fillRate, drainRate float64) (*Level, error) {
	if !finite(min) || !finite(max) || min > max {
		return nil, ErrInvalidBounds
	}
	if !positive(fillRate) || !positive(drainRate) {
		return nil, ErrInvalidRate
	}
	return &Level{
		Min:       min,
		Max:       max,
		Current:   min,
		FillRate:  fillRate,
		DrainRate: drainRate,
		Tolerance: DefaultLevelTolerance,
	}, nil
}

func (l *Level) Mode() Mode {
	return l.mode
}

// StartFilling switches to filling from wherever the level sits.
func (l *Level) StartFilling() {
	l.mode = Filling
}

// StartDraining switches to draining from wherever the level sits.
func (l *Level) StartDraining() {
	l.mode = Draining
}

// Step moves the level by at most rate*dt toward the active bound. When the
// bound is reached it snaps, goes idle and returns the mode that completed
// (Filling means full, Draining means drained). Otherwise it returns Idle.
func (l *Level) Step(dt float64) Mode {
	var target, rate float64
	switch l.mode {
	case Filling:
		target, rate = l.Max, l.FillRate
	case Draining:
		target, rate = l.Min, l.DrainRate
	default:
		return Idle
	}

	l.Current = common.MoveTowards(l.Current, target, rate*dt)
	if !common.Approximately(l.Current, target, l.tolerance()) {
		return Idle
	}

	done := l.mode
	l.Current = target
	l.mode = Idle
	return done
}

// Fraction is how full the level is in [0, 1].
func (l *Level) Fraction() float64 {
	span := l.Max - l.Min
	if span <= 0 {
		return 0
	}
	return common.Clamp01((l.Current - l.Min) / span)
}

func (l *Level) tolerance() float64 {
	if l.Tolerance <= 0 {
		return DefaultLevelTolerance
	}
	return l.Tolerance
}
