package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// ScriptLoader returns the source of a prop script by path.
type ScriptLoader func(path string) ([]byte, error)

type propScript struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	broken   bool
}

// ScriptSystem runs a tengo script per prop each tick. Scripts see `dt`,
// `params`, a persistent `state` map and the last focus change (`focus_event`,
// `focus_self`, `focus_distance`); they export through the `out` map:
// `rotation` ([x, y, z] degrees) and `emission` (bool).
type ScriptSystem struct {
	load    ScriptLoader
	cache   map[ecs.Entity]*propScript
	sub     ecs.Subscription
	focus   ecs.Event
	focused bool
}

func NewScriptSystem(load ScriptLoader) *ScriptSystem {
	return &ScriptSystem{load: load, cache: make(map[ecs.Entity]*propScript)}
}

func (s *ScriptSystem) Activate(w *ecs.World) {
	s.sub = w.Bus().Subscribe(ecs.EventFocus, func(evt ecs.Event) {
		s.focus = evt
		s.focused = true
	})
}

func (s *ScriptSystem) Deactivate(w *ecs.World) {
	w.Bus().Unsubscribe(s.sub)
	s.sub = ecs.Subscription{}
}

// Reload drops compiled scripts loaded from path so they are rebuilt on the
// next tick. Script state is kept.
func (s *ScriptSystem) Reload(path string) {
	for _, rt := range s.cache {
		if rt != nil && samePath(rt.path, path) {
			rt.compiled = nil
			rt.broken = false
		}
	}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta

	for e := range s.cache {
		if !w.IsAlive(e) {
			delete(s.cache, e)
		}
	}

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, sc *component.Script) {
		rt, err := s.runtime(e, sc)
		if err != nil {
			log.Printf("script: entity=%s load %q: %v", e, sc.Path, err)
			return
		}
		if rt == nil {
			return
		}
		if err := s.run(rt, e, sc, dt); err != nil {
			rt.broken = true
			log.Printf("script: entity=%s run %q: %v", e, sc.Path, err)
			return
		}
		s.apply(w, e, sc)
	})

	s.focused = false
}

func (s *ScriptSystem) runtime(e ecs.Entity, sc *component.Script) (*propScript, error) {
	if strings.TrimSpace(sc.Path) == "" || s.load == nil {
		return nil, nil
	}
	rt, ok := s.cache[e]
	if ok && rt.path != sc.Path {
		rt = nil
	}
	if rt != nil && rt.broken {
		return nil, nil
	}
	if rt != nil && rt.compiled != nil {
		return rt, nil
	}

	if rt == nil {
		rt = &propScript{path: sc.Path}
		s.cache[e] = rt
	}

	src, err := s.load(sc.Path)
	if err != nil {
		rt.broken = true
		return nil, err
	}

	script := tengo.NewScript(src)
	_ = script.Add("dt", 0.0)
	_ = script.Add("params", map[string]any{})
	_ = script.Add("state", map[string]any{})
	_ = script.Add("focus_event", false)
	_ = script.Add("focus_self", false)
	_ = script.Add("focus_distance", 0.0)
	_ = script.Add("out", map[string]any{})
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		rt.broken = true
		return nil, fmt.Errorf("compile: %w", err)
	}

	if rt.state == nil {
		rt.state = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	rt.compiled = compiled
	return rt, nil
}

func (s *ScriptSystem) run(rt *propScript, e ecs.Entity, sc *component.Script, dt float64) error {
	params := sc.Params
	if params == nil {
		params = map[string]any{}
	}
	vars := map[string]any{
		"dt":             dt,
		"params":         params,
		"state":          rt.state,
		"focus_event":    s.focused,
		"focus_self":     s.focused && s.focus.Source == e,
		"focus_distance": s.focus.Distance,
		"out":            map[string]any{},
	}
	for name, v := range vars {
		if err := rt.compiled.Set(name, v); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := rt.compiled.Run(); err != nil {
		return err
	}
	sc.Outputs = rt.compiled.Get("out").Map()
	return nil
}

func (s *ScriptSystem) apply(w *ecs.World, e ecs.Entity, sc *component.Script) {
	if rot, ok := sc.Outputs["rotation"].([]any); ok && len(rot) == 3 {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			tr.Rotation.X = toFloat(rot[0])
			tr.Rotation.Y = toFloat(rot[1])
			tr.Rotation.Z = toFloat(rot[2])
		}
	}
	if on, ok := sc.Outputs["emission"].(bool); ok {
		if em, ok := ecs.Get(w, e, component.EmissionComponent.Kind()); ok {
			em.Enabled = on
		}
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func samePath(a, b string) bool {
	clean := func(p string) string {
		p = strings.ReplaceAll(p, "\\", "/")
		if i := strings.LastIndex(p, "scripts/"); i >= 0 {
			p = p[i+len("scripts/"):]
		}
		return p
	}
	return clean(a) == clean(b)
}
