package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/transition"
)

// StartActuator restarts the actuator of e from its From pose. Entities
// without an actuator are skipped.
func StartActuator(w *ecs.World, e ecs.Entity) bool {
	a, ok := ecs.Get(w, e, component.ActuatorComponent.Kind())
	if !ok {
		return false
	}
	tw, err := transition.NewTween(a.From, a.To, a.Duration, transition.Forward, transition.LerpVec3)
	if err != nil {
		return false
	}
	a.Tween = tw
	a.Value = a.From
	a.Active = true
	return true
}

// ActuatorSystem advances actuator tweens independently of the primary
// transition of their entity.
type ActuatorSystem struct{}

func NewActuatorSystem() *ActuatorSystem {
	return &ActuatorSystem{}
}

func (s *ActuatorSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta

	ecs.ForEach(w, component.ActuatorComponent.Kind(), func(_ ecs.Entity, a *component.Actuator) {
		if !a.Active {
			return
		}
		v, done := a.Tween.Step(dt)
		a.Value = v
		if done {
			a.Active = false
		}
	})
}
