package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// RouterSystem calls Interact on a routed entity when the player is in its
// volume, focused on it within range and pressed interact or the primary
// action this tick.
type RouterSystem struct{}

func NewRouterSystem() *RouterSystem {
	return &RouterSystem{}
}

func (s *RouterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok || !(input.Interact || input.Primary) {
		return
	}
	focus, ok := ecs.Get(w, player, component.FocusComponent.Kind())
	if !ok || !focus.HasTarget {
		return
	}

	target := ecs.Entity(focus.Target)
	router, ok := ecs.Get(w, target, component.RouterComponent.Kind())
	if !ok {
		return
	}
	if router.RequireVolume && !router.Armed {
		return
	}
	if router.Range > 0 && focus.Distance > router.Range {
		return
	}
	Interact(w, target)
}

// NotifyTriggerEnter arms the router of volume when the player enters it
// and turns its highlight on.
func NotifyTriggerEnter(w *ecs.World, volume, actor ecs.Entity) {
	setArmed(w, volume, actor, true)
}

// NotifyTriggerExit disarms the router of volume and turns its highlight
// off.
func NotifyTriggerExit(w *ecs.World, volume, actor ecs.Entity) {
	setArmed(w, volume, actor, false)
}

func setArmed(w *ecs.World, volume, actor ecs.Entity, armed bool) {
	if !ecs.Has(w, actor, component.PlayerTagComponent.Kind()) {
		return
	}
	router, ok := ecs.Get(w, volume, component.RouterComponent.Kind())
	if !ok {
		return
	}
	router.Armed = armed
	SetHighlight(w, volume, armed)
}

// SetHighlight switches the affordance of e. Setting the state it already
// has is a no-op.
func SetHighlight(w *ecs.World, e ecs.Entity, on bool) {
	h, ok := ecs.Get(w, e, component.HighlightComponent.Kind())
	if !ok || h.Enabled == on {
		return
	}
	h.Enabled = on
	h.Changes++
}
