package component

// Router dispatches the interact edge to the interactable on the same
// entity when the player is inside its trigger volume and focused on it.
type Router struct {
	Range         float64
	RequireVolume bool
	Armed         bool
}

var RouterComponent = NewComponent[Router]()

// Highlight is the affordance shown while a router is armed. Changes counts
// actual on/off flips.
type Highlight struct {
	Enabled bool
	Changes int
}

var HighlightComponent = NewComponent[Highlight]()

// Trigger is a proximity volume on the floor plane, centered on the
// entity's transform.
type Trigger struct {
	Width float64
	Depth float64
}

var TriggerComponent = NewComponent[Trigger]()

// Collider is a solid box on the floor plane, centered on the entity's
// transform plus the offset.
type Collider struct {
	Width   float64
	Depth   float64
	OffsetX float64
	OffsetZ float64
	// Focusable colliders stop the focus ray without blocking movement.
	Focusable bool
}

var ColliderComponent = NewComponent[Collider]()
