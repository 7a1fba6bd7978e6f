package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/levels"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/transition"
)

// retuneFn validates one component entry against the live entity and
// returns the change to apply. A nil apply means the entity has no such
// component.
type retuneFn func(w *ecs.World, e ecs.Entity, raw any) (apply func(), err error)

var componentRetuners = map[string]retuneFn{
	"interactable": retuneInteractable,
	"actuator":     retuneActuator,
	"water":        retuneWater,
	"router":       retuneRouter,
}

// RetunePlaced reloads the prefab of placed, applies the scene overrides and
// retunes the live entity e with the result.
func RetunePlaced(w *ecs.World, e ecs.Entity, placed levels.Entity) error {
	spec, err := placedSpec(placed)
	if err != nil {
		return fmt.Errorf("retune %s: %w", placed.Prefab, err)
	}
	return Retune(w, e, spec)
}

// Retune copies the tunable values of spec onto e: transition durations and
// poses, water rates and rise, router range. Components, clips and links are
// left as built. Either every entry applies or none does.
func Retune(w *ecs.World, e ecs.Entity, spec entityPrefabSpec) error {
	if w == nil || !w.IsAlive(e) {
		return fmt.Errorf("retune %s: %w", e, component.ErrEntityNotAlive)
	}

	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRetuners[name]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var applies []func()
	for _, name := range names {
		apply, err := componentRetuners[name](w, e, spec.Components[name])
		if err != nil {
			return fmt.Errorf("retune %s %s: %w", e, name, err)
		}
		if apply != nil {
			applies = append(applies, apply)
		}
	}
	for _, apply := range applies {
		apply()
	}
	return nil
}

func retuneInteractable(w *ecs.World, e ecs.Entity, raw any) (func(), error) {
	it, ok := ecs.Get(w, e, component.InteractableComponent.Kind())
	if !ok || it.Toggle == nil {
		return nil, nil
	}
	spec, err := decodeComponent[interactableSpec](raw, "interactable")
	if err != nil {
		return nil, err
	}
	if _, err := transition.NewClock(spec.Duration); err != nil {
		return nil, err
	}
	return func() {
		tg := it.Toggle
		tg.Duration = spec.Duration
		tg.Opened = vec3(spec.Opened)
		if tg.IsTransitioning() {
			return
		}
		tg.Reset(tg.IsOpen())
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tr.Rotation = it.Base.Add(tg.Value())
		}
	}, nil
}

func retuneActuator(w *ecs.World, e ecs.Entity, raw any) (func(), error) {
	act, ok := ecs.Get(w, e, component.ActuatorComponent.Kind())
	if !ok {
		return nil, nil
	}
	spec, err := decodeComponent[actuatorSpec](raw, "actuator")
	if err != nil {
		return nil, err
	}
	if _, err := transition.NewClock(spec.Duration); err != nil {
		return nil, err
	}
	return func() {
		act.From = vec3(spec.From)
		act.To = vec3(spec.To)
		act.Duration = spec.Duration
	}, nil
}

func retuneWater(w *ecs.World, e ecs.Entity, raw any) (func(), error) {
	wc, ok := ecs.Get(w, e, component.WaterComponent.Kind())
	if !ok || wc.Level == nil {
		return nil, nil
	}
	spec, err := decodeComponent[waterSpec](raw, "water")
	if err != nil {
		return nil, err
	}
	l := wc.Level
	if _, err := transition.NewLevel(l.Min, l.Min+spec.Rise, spec.FillRate, spec.DrainRate); err != nil {
		return nil, err
	}
	return func() {
		l.Max = l.Min + spec.Rise
		l.FillRate = spec.FillRate
		l.DrainRate = spec.DrainRate
		if spec.Tolerance > 0 {
			l.Tolerance = spec.Tolerance
		}
		if l.Current > l.Max {
			l.Current = l.Max
		}
	}, nil
}

func retuneRouter(w *ecs.World, e ecs.Entity, raw any) (func(), error) {
	r, ok := ecs.Get(w, e, component.RouterComponent.Kind())
	if !ok {
		return nil, nil
	}
	spec, err := decodeComponent[routerSpec](raw, "router")
	if err != nil {
		return nil, err
	}
	if err := checkRange(spec.Range); err != nil {
		return nil, err
	}
	return func() {
		r.Range = spec.Range
		r.RequireVolume = spec.RequireVolume
	}, nil
}

func decodeComponent[T any](raw any, name string) (T, error) {
	spec, err := prefabs.DecodeComponentSpec[T](raw)
	if err != nil {
		return spec, fmt.Errorf("decode %s spec: %w", name, err)
	}
	return spec, nil
}

func checkRange(r float64) error {
	if !(r >= 0) || math.IsInf(r, 1) {
		return fmt.Errorf("router range %v is invalid", r)
	}
	return nil
}
