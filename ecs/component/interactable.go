package component

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/transition"
)

type InteractableKind string

const (
	InteractableDoor  InteractableKind = "door"
	InteractableValve InteractableKind = "valve"
)

// Interactable is a two-state entity whose rotation moves between a closed
// and an open pose. The transform rotation is Base plus the toggle value.
type Interactable struct {
	Kind   InteractableKind
	Toggle *transition.Toggle[common.Vec3]
	Base   common.Vec3

	// OpenClip plays when an opening transition starts, CloseClip when a
	// closing transition completes. Both name clips of the entity's Audio.
	OpenClip  string
	CloseClip string
}

var InteractableComponent = NewComponent[Interactable]()

// Actuator is a dependent part (door knob, valve wheel) with its own tween,
// restarted by every accepted interaction of its entity.
type Actuator struct {
	From     common.Vec3
	To       common.Vec3
	Duration float64

	Tween  transition.Tween[common.Vec3]
	Value  common.Vec3
	Active bool
}

var ActuatorComponent = NewComponent[Actuator]()
