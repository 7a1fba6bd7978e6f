package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/transition"
)

// Interact starts the transition of e toward its other end, restarts its
// actuator, queues the open clip and publishes opening or closing with the
// transition duration. It reports false when e is not interactable or is
// already moving; nothing changes in that case.
func Interact(w *ecs.World, e ecs.Entity) bool {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || it.Toggle == nil {
		return false
	}

	edge := it.Toggle.Interact()
	if edge == transition.EdgeNone {
		return false
	}

	StartActuator(w, e)

	kind := ecs.EventClosing
	if edge == transition.EdgeOpening {
		kind = ecs.EventOpening
		PlayClip(w, e, it.OpenClip)
	}
	w.Bus().Publish(ecs.Event{Kind: kind, Source: e, Duration: it.Toggle.Duration})
	return true
}

// InteractableSystem advances door and valve transitions, writes the pose
// to the transform and publishes opened or closed on completion.
type InteractableSystem struct{}

func NewInteractableSystem() *InteractableSystem {
	return &InteractableSystem{}
}

func (s *InteractableSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta

	ecs.ForEach(w, component.InteractableComponent.Kind(), func(e ecs.Entity, it *component.Interactable) {
		if it.Toggle == nil || !it.Toggle.IsTransitioning() {
			return
		}

		value, edge := it.Toggle.Step(dt)
		setRotation(w, e, it.Base.Add(value))

		switch edge {
		case transition.EdgeOpening:
			w.Bus().Publish(ecs.Event{Kind: ecs.EventOpened, Source: e, Duration: it.Toggle.Duration})
		case transition.EdgeClosing:
			PlayClip(w, e, it.CloseClip)
			w.Bus().Publish(ecs.Event{Kind: ecs.EventClosed, Source: e, Duration: it.Toggle.Duration})
		}
	})
}

func setRotation(w *ecs.World, e ecs.Entity, rot common.Vec3) {
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tr.Rotation = rot
	}
}
