package transition

import (
	"errors"
	"math"

	"github.com/milk9111/undercroft/common"
)

var (
	ErrInvalidDuration = errors.New("transition: duration must be > 0")
	ErrInvalidBounds   = errors.New("transition: min must be <= max")
	ErrInvalidRate     = errors.New("transition: rate must be > 0")
)

// completionTolerance absorbs float drift when a dt sequence sums to the
// duration (e.g. ten steps of 0.1s).
const completionTolerance = 1e-9

// Clock accumulates elapsed time against a fixed duration.
type Clock struct {
	Duration float64
	Elapsed  float64
}

func NewClock(duration float64) (Clock, error) {
	if !positive(duration) {
		return Clock{}, ErrInvalidDuration
	}
	return Clock{Duration: duration}, nil
}

// positive reports whether v is finite and above zero.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Advance adds dt and reports the clamped progress and whether the clock
// has reached its duration. Negative dt is ignored.
func (c *Clock) Advance(dt float64) (float64, bool) {
	if dt > 0 {
		c.Elapsed += dt
	}
	if c.Elapsed >= c.Duration-completionTolerance {
		c.Elapsed = c.Duration
		return 1, true
	}
	return c.Progress(), false
}

// Progress returns Elapsed/Duration clamped to [0, 1].
func (c Clock) Progress() float64 {
	if c.Duration <= 0 {
		return 1
	}
	return common.Clamp01(c.Elapsed / c.Duration)
}

func (c *Clock) Reset() {
	c.Elapsed = 0
}
