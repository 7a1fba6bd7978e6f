package ecs

// System updates a world each step.
type System interface {
	Update(w *World)
}

// Activator is implemented by systems that hold subscriptions. Activate runs
// when the system joins a world, Deactivate when it leaves.
type Activator interface {
	Activate(w *World)
	Deactivate(w *World)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Remove drops the first occurrence of system.
func (s *Scheduler) Remove(system System) bool {
	for i, existing := range s.systems {
		if existing == system {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
