package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// ValveSystem reacts to opening and closing of valve entities: it drives
// the linked water level, the flow emitter and the pipe sounds. The wheel
// itself is moved by InteractableSystem.
type ValveSystem struct {
	subs []ecs.Subscription
}

func NewValveSystem() *ValveSystem {
	return &ValveSystem{}
}

func (s *ValveSystem) Activate(w *ecs.World) {
	bus := w.Bus()
	s.subs = append(s.subs,
		bus.Subscribe(ecs.EventOpening, func(evt ecs.Event) { s.onTurn(w, evt.Source, true) }),
		bus.Subscribe(ecs.EventClosing, func(evt ecs.Event) { s.onTurn(w, evt.Source, false) }),
	)
}

func (s *ValveSystem) Deactivate(w *ecs.World) {
	for _, sub := range s.subs {
		w.Bus().Unsubscribe(sub)
	}
	s.subs = nil
}

func (s *ValveSystem) Update(*ecs.World) {}

func (s *ValveSystem) onTurn(w *ecs.World, e ecs.Entity, opening bool) {
	valve, ok := ecs.Get(w, e, component.ValveComponent.Kind())
	if !ok {
		return
	}
	water := ecs.Entity(valve.Water)

	PlayClip(w, e, valve.TurnClip)
	if opening {
		StartEmission(w, e, valve.Flow)
		PlayClip(w, e, valve.LoopClip)
		if valve.Water != 0 {
			StartFilling(w, water)
		}
		return
	}

	StopEmission(w, e, valve.Flow, true)
	StopClip(w, e, valve.LoopClip)
	if valve.Water != 0 {
		StartDraining(w, water)
	}
}
