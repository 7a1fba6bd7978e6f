package component

// Focus is what the entity's view ray currently rests on.
type Focus struct {
	MaxDistance float64

	Target    uint64
	Distance  float64
	HasTarget bool
}

var FocusComponent = NewComponent[Focus]()
