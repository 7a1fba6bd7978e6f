package system

import (
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

const defaultFocusDistance = 50.0

// FocusSystem casts the player's view ray through the physics world and
// stores the first solid it hits. A focus event is published when the
// target changes to a new entity.
type FocusSystem struct{}

func NewFocusSystem() *FocusSystem {
	return &FocusSystem{}
}

func (s *FocusSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach(w, component.FocusComponent.Kind(), func(e ecs.Entity, focus *component.Focus) {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			return
		}

		maxDist := focus.MaxDistance
		if maxDist <= 0 {
			maxDist = defaultFocusDistance
		}
		dx, dz := common.YawDir(player.Yaw)
		hit, dist, ok := pw.Raycast(tr.Position.X, tr.Position.Z, dx, dz, maxDist)
		SetFocus(w, e, hit, dist, ok)
	})
}

// SetFocus records what e is looking at. Hosts without a physics world
// call it directly.
func SetFocus(w *ecs.World, e, target ecs.Entity, distance float64, hit bool) {
	focus, ok := ecs.Get(w, e, component.FocusComponent.Kind())
	if !ok {
		return
	}
	if !hit {
		focus.HasTarget = false
		focus.Target = 0
		focus.Distance = 0
		return
	}

	changed := !focus.HasTarget || focus.Target != uint64(target)
	focus.HasTarget = true
	focus.Target = uint64(target)
	focus.Distance = distance
	if changed {
		w.Bus().Publish(ecs.Event{Kind: ecs.EventFocus, Source: target, Distance: distance})
	}
}
