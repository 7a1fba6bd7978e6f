package transition

// Edge reports a toggle transition starting or finishing.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeOpening
	EdgeClosing
)

func (e Edge) String() string {
	switch e {
	case EdgeOpening:
		return "opening"
	case EdgeClosing:
		return "closing"
	default:
		return "none"
	}
}

// Phase is the state of a Toggle: either Resting or Moving[T].
type Phase interface {
	phase()
}

// Resting is an idle toggle sitting at one of its two ends.
type Resting struct {
	Open bool
}

// Moving is a toggle in flight. CompletesTo is the open state it lands in.
type Moving[T any] struct {
	Tween       Tween[T]
	CompletesTo bool
}

func (Resting) phase()   {}
func (Moving[T]) phase() {}

// Toggle is a two-state (closed/open) value with a timed transition between
// the two ends. Interact is ignored while a transition is in flight.
type Toggle[T any] struct {
	Closed   T
	Opened   T
	Duration float64

	phase Phase
	value T
	lerp  LerpFunc[T]
}

func NewToggle[T any](closed, opened T, duration float64, lerp LerpFunc[T]) (*Toggle[T], error) {
	if !positive(duration) {
		return nil, ErrInvalidDuration
	}
	return &Toggle[T]{
		Closed:   closed,
		Opened:   opened,
		Duration: duration,
		phase:    Resting{},
		value:    closed,
		lerp:     lerp,
	}, nil
}

func (t *Toggle[T]) Phase() Phase {
	if t.phase == nil {
		return Resting{}
	}
	return t.phase
}

// IsOpen is the discrete state; it only changes when a transition completes.
func (t *Toggle[T]) IsOpen() bool {
	switch p := t.Phase().(type) {
	case Moving[T]:
		return !p.CompletesTo
	case Resting:
		return p.Open
	}
	return false
}

func (t *Toggle[T]) IsTransitioning() bool {
	_, ok := t.Phase().(Moving[T])
	return ok
}

// Value is the current interpolated value.
func (t *Toggle[T]) Value() T {
	return t.value
}

// Interact starts a transition toward the opposite end. It returns the edge
// that started, or EdgeNone when a transition is already running.
func (t *Toggle[T]) Interact() Edge {
	rest, ok := t.Phase().(Resting)
	if !ok {
		return EdgeNone
	}
	dir, edge := Forward, EdgeOpening
	if rest.Open {
		dir, edge = Reverse, EdgeClosing
	}
	tw, err := NewTween(t.Closed, t.Opened, t.Duration, dir, t.lerp)
	if err != nil {
		return EdgeNone
	}
	t.phase = Moving[T]{Tween: tw, CompletesTo: !rest.Open}
	return edge
}

// Step advances an in-flight transition by dt. It returns the edge that
// completed during this step, or EdgeNone.
func (t *Toggle[T]) Step(dt float64) (T, Edge) {
	mv, ok := t.Phase().(Moving[T])
	if !ok {
		return t.value, EdgeNone
	}
	v, done := mv.Tween.Step(dt)
	t.value = v
	if !done {
		t.phase = mv
		return v, EdgeNone
	}
	t.phase = Resting{Open: mv.CompletesTo}
	if mv.CompletesTo {
		return v, EdgeOpening
	}
	return v, EdgeClosing
}

// Reset snaps back to a resting end without running a transition.
func (t *Toggle[T]) Reset(open bool) {
	t.phase = Resting{Open: open}
	if open {
		t.value = t.Opened
		return
	}
	t.value = t.Closed
}
