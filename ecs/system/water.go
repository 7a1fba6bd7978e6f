package system

import (
	"log"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/transition"
)

// StartFilling switches the water of e to filling from its current height,
// starts the debris emitter and the rising-water loop.
func StartFilling(w *ecs.World, e ecs.Entity) bool {
	water, ok := ecs.Get(w, e, component.WaterComponent.Kind())
	if !ok || water.Level == nil {
		return false
	}
	water.Level.StartFilling()
	StartEmission(w, e, water.Debris)
	PlayClip(w, e, water.LoopClip)
	return true
}

// StartDraining switches the water of e to draining from its current
// height. The rising-water loop keeps playing until the level settles.
func StartDraining(w *ecs.World, e ecs.Entity) bool {
	water, ok := ecs.Get(w, e, component.WaterComponent.Kind())
	if !ok || water.Level == nil {
		return false
	}
	water.Level.StartDraining()
	PlayClip(w, e, water.LoopClip)
	return true
}

// WaterSystem moves water levels toward their active bound and publishes
// full or drained once when a bound is reached.
type WaterSystem struct{}

func NewWaterSystem() *WaterSystem {
	return &WaterSystem{}
}

func (s *WaterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta

	ecs.ForEach(w, component.WaterComponent.Kind(), func(e ecs.Entity, water *component.Water) {
		if water.Level == nil || water.Level.Mode() == transition.Idle {
			return
		}

		done := water.Level.Step(dt)
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tr.Position.Y = water.Level.Current
		}

		switch done {
		case transition.Filling:
			StopClip(w, e, water.LoopClip)
			log.Printf("water: entity=%s full at %.2f", e, water.Level.Current)
			w.Bus().Publish(ecs.Event{Kind: ecs.EventFull, Source: e})
		case transition.Draining:
			StopEmission(w, e, water.Debris, true)
			StopClip(w, e, water.LoopClip)
			log.Printf("water: entity=%s drained at %.2f", e, water.Level.Current)
			w.Bus().Publish(ecs.Event{Kind: ecs.EventDrained, Source: e})
		}
	})
}
