package system

import (
	"slices"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// NotifySurfaceEnter records that the player stepped onto surface.
func NotifySurfaceEnter(w *ecs.World, surface, actor ecs.Entity) {
	player, ok := surfacePlayer(w, surface, actor)
	if !ok {
		return
	}
	id := uint64(surface)
	player.Surfaces = slices.DeleteFunc(player.Surfaces, func(s uint64) bool { return s == id })
	player.Surfaces = append(player.Surfaces, id)
}

// NotifySurfaceExit records that the player left surface.
func NotifySurfaceExit(w *ecs.World, surface, actor ecs.Entity) {
	player, ok := surfacePlayer(w, surface, actor)
	if !ok {
		return
	}
	id := uint64(surface)
	player.Surfaces = slices.DeleteFunc(player.Surfaces, func(s uint64) bool { return s == id })
}

func surfacePlayer(w *ecs.World, surface, actor ecs.Entity) (*component.Player, bool) {
	if !ecs.Has(w, surface, component.SurfaceComponent.Kind()) {
		return nil, false
	}
	return ecs.Get(w, actor, component.PlayerComponent.Kind())
}

// currentSurface returns the surface under the player, if any.
func currentSurface(w *ecs.World) (*component.Surface, ecs.Entity, bool) {
	e, ok := ecs.First(w, component.PlayerComponent.Kind())
	if !ok {
		return nil, 0, false
	}
	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	id, ok := player.CurrentSurface()
	if !ok {
		return nil, 0, false
	}
	surface, ok := ecs.Get(w, ecs.Entity(id), component.SurfaceComponent.Kind())
	if !ok {
		return nil, 0, false
	}
	return surface, ecs.Entity(id), true
}

// RoomSystem marks a room occupied while the surface under the player
// belongs to it. Rooms keep their last state while the player is airborne
// off every surface.
type RoomSystem struct{}

func NewRoomSystem() *RoomSystem {
	return &RoomSystem{}
}

func (s *RoomSystem) Update(w *ecs.World) {
	surface, _, ok := currentSurface(w)
	if !ok {
		return
	}
	ecs.ForEach(w, component.RoomComponent.Kind(), func(e ecs.Entity, room *component.Room) {
		room.Occupied = surface.Room == uint64(e)
	})
}
