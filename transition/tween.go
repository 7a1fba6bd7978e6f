package transition

import "github.com/milk9111/undercroft/common"

// Direction picks which endpoint a tween runs toward.
type Direction int

const (
	Forward Direction = iota // From -> To
	Reverse                  // To -> From
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// LerpFunc interpolates between a and b at t in [0, 1].
type LerpFunc[T any] func(a, b T, t float64) T

// LerpFloat and LerpVec3 are the interpolators used by the scene.
var (
	LerpFloat LerpFunc[float64]     = common.Lerp
	LerpVec3  LerpFunc[common.Vec3] = common.LerpVec3
)

// Tween is one in-flight interpolation between From and To.
type Tween[T any] struct {
	From      T
	To        T
	Clock     Clock
	Direction Direction

	lerp LerpFunc[T]
}

func NewTween[T any](from, to T, duration float64, dir Direction, lerp LerpFunc[T]) (Tween[T], error) {
	clock, err := NewClock(duration)
	if err != nil {
		return Tween[T]{}, err
	}
	return Tween[T]{From: from, To: to, Clock: clock, Direction: dir, lerp: lerp}, nil
}

func (tw Tween[T]) endpoints() (T, T) {
	if tw.Direction == Reverse {
		return tw.To, tw.From
	}
	return tw.From, tw.To
}

// Start is the value the tween leaves from.
func (tw Tween[T]) Start() T {
	start, _ := tw.endpoints()
	return start
}

// Target is the value the tween settles on.
func (tw Tween[T]) Target() T {
	_, target := tw.endpoints()
	return target
}

// Value is the interpolated value at the current progress.
func (tw Tween[T]) Value() T {
	start, target := tw.endpoints()
	if tw.lerp == nil {
		return start
	}
	return tw.lerp(start, target, tw.Clock.Progress())
}

// Step advances by dt. On completion it returns the exact target, resets
// the clock and reports done in the same call.
func (tw *Tween[T]) Step(dt float64) (T, bool) {
	if _, done := tw.Clock.Advance(dt); done {
		tw.Clock.Reset()
		return tw.Target(), true
	}
	return tw.Value(), false
}
