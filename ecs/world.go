package ecs

import "github.com/milk9111/undercroft/ecs/component"

// Time is the frame clock seen by systems.
type Time struct {
	// Delta is the seconds since the previous step.
	Delta   float64
	Elapsed float64
	Frame   uint64
}

// World owns entities, component stores, the system order, the event bus
// and the optional physics world.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]*SparseSet
	scheduler *Scheduler
	bus       *Bus
	time      Time

	physicsWorld *PhysicsWorld
}

// NewWorld creates an empty world with its own event bus.
func NewWorld() *World {
	return &World{
		stores:    make(map[component.ComponentID]*SparseSet),
		scheduler: NewScheduler(),
		bus:       NewBus(),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// AddSystem appends a system to the update order. Systems implementing
// Activator are activated here.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.scheduler.Add(s)
	if a, ok := s.(Activator); ok {
		a.Activate(w)
	}
}

// RemoveSystem drops a system from the update order and deactivates it.
func (w *World) RemoveSystem(s System) bool {
	if w == nil || !w.scheduler.Remove(s) {
		return false
	}
	if a, ok := s.(Activator); ok {
		a.Deactivate(w)
	}
	return true
}

// Step advances the frame clock by dt seconds and runs all systems once.
// A zero dt still runs systems but moves no transition.
func (w *World) Step(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.time.Delta = dt
	w.time.Elapsed += dt
	w.time.Frame++
	w.scheduler.Update(w)
}

// Time returns the clock of the current step.
func (w *World) Time() Time {
	if w == nil {
		return Time{}
	}
	return w.time
}

// Bus returns the world event bus.
func (w *World) Bus() *Bus {
	if w == nil {
		return nil
	}
	return w.bus
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
