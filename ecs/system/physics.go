package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

type shapeSet uint8

const (
	shapeCollider shapeSet = 1 << iota
	shapeTrigger
	shapeActor
)

// PhysicsSystem mirrors colliders, triggers and the player body into the
// world's physics space, steps it and routes trigger contacts.
type PhysicsSystem struct {
	registered map[ecs.Entity]shapeSet
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{registered: make(map[ecs.Entity]shapeSet)}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if ps == nil || pw == nil {
		return
	}

	ps.sync(w, pw)
	pw.Step(w.Time().Delta)

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, _ *component.Player) {
		x, z, ok := pw.ActorPosition(e)
		if !ok {
			return
		}
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tr.Position.X = x
			tr.Position.Z = z
		}
	})

	for _, evt := range pw.DrainTriggers() {
		if evt.Entered {
			NotifyTriggerEnter(w, evt.Volume, evt.Actor)
			NotifySurfaceEnter(w, evt.Volume, evt.Actor)
			continue
		}
		NotifyTriggerExit(w, evt.Volume, evt.Actor)
		NotifySurfaceExit(w, evt.Volume, evt.Actor)
	}
}

func (ps *PhysicsSystem) sync(w *ecs.World, pw *ecs.PhysicsWorld) {
	if ps.registered == nil {
		ps.registered = make(map[ecs.Entity]shapeSet)
	}
	for e := range ps.registered {
		if !w.IsAlive(e) {
			pw.RemoveEntity(e)
			delete(ps.registered, e)
		}
	}

	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if ps.registered[e]&shapeCollider != 0 {
			return
		}
		x, z := floorPosition(w, e)
		if c.Focusable {
			pw.AddFocusable(e, x+c.OffsetX, z+c.OffsetZ, c.Width, c.Depth)
		} else {
			pw.AddSolid(e, x+c.OffsetX, z+c.OffsetZ, c.Width, c.Depth)
		}
		ps.registered[e] |= shapeCollider
	})

	ecs.ForEach(w, component.TriggerComponent.Kind(), func(e ecs.Entity, t *component.Trigger) {
		if ps.registered[e]&shapeTrigger != 0 {
			return
		}
		x, z := floorPosition(w, e)
		pw.AddTrigger(e, x, z, t.Width, t.Depth)
		ps.registered[e] |= shapeTrigger
	})

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		if ps.registered[e]&shapeActor != 0 {
			return
		}
		x, z := floorPosition(w, e)
		pw.AddActor(e, x, z, p.Radius)
		ps.registered[e] |= shapeActor
	})
}

func floorPosition(w *ecs.World, e ecs.Entity) (x, z float64) {
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return tr.Position.X, tr.Position.Z
	}
	return 0, 0
}
