package component

// Input stores per-frame input state for an entity. The bool edges are true
// only on the tick the key went down.
type Input struct {
	MoveX  float64
	MoveZ  float64
	LookX  float64
	Sprint bool

	Interact   bool
	Primary    bool
	Crouch     bool
	Flashlight bool
	Jump       bool
}

var InputComponent = NewComponent[Input]()
