package component

// Valve couples an interactable to a water level and its pipe effects.
type Valve struct {
	// Water is the linked water entity; zero when unlinked.
	Water uint64

	Flow     string
	TurnClip string
	LoopClip string
}

var ValveComponent = NewComponent[Valve]()
