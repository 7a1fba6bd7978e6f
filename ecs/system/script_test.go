package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const spinScript = `
angle := state.angle
if is_undefined(angle) {
	angle = 0.0
}
angle += params.speed * dt
state.angle = angle
out.rotation = [0, angle, 0]
`

const phoneScript = `
if focus_event {
	if focus_self && focus_distance <= params.activation_distance {
		out.emission = true
	} else if !focus_self {
		out.emission = false
	}
}
`

type scriptSources map[string]string

func (s scriptSources) load(path string) ([]byte, error) {
	src, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("no script %q", path)
	}
	return []byte(src), nil
}

func addScript(t *testing.T, w *ecs.World, path string, params map[string]any) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.EmissionComponent.Kind(), &component.Emission{}))
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: path, Params: params}))
	return e
}

func TestScriptStateSurvivesTicks(t *testing.T) {
	src := scriptSources{"scripts/spin.tengo": spinScript}
	w := ecs.NewWorld()
	w.AddSystem(NewScriptSystem(src.load))
	e := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 90.0})

	w.Step(0.5)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 45, tr.Rotation.Y, 1e-9)

	w.Step(0.5)
	assert.InDelta(t, 90, tr.Rotation.Y, 1e-9)

	sc, _ := ecs.Get(w, e, component.ScriptComponent.Kind())
	assert.Contains(t, sc.Outputs, "rotation")
}

func TestScriptStateIsPerEntity(t *testing.T) {
	src := scriptSources{"scripts/spin.tengo": spinScript}
	w := ecs.NewWorld()
	w.AddSystem(NewScriptSystem(src.load))
	slow := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 10.0})
	fast := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 100})

	stepN(w, 2, 0.5)

	slowTr, _ := ecs.Get(w, slow, component.TransformComponent.Kind())
	fastTr, _ := ecs.Get(w, fast, component.TransformComponent.Kind())
	assert.InDelta(t, 10, slowTr.Rotation.Y, 1e-9)
	assert.InDelta(t, 100, fastTr.Rotation.Y, 1e-9)
}

func TestScriptReactsToFocus(t *testing.T) {
	src := scriptSources{"scripts/phone.tengo": phoneScript}
	w := ecs.NewWorld()
	w.AddSystem(NewScriptSystem(src.load))
	player := newPlayer(t, w)
	phone := addScript(t, w, "scripts/phone.tengo", map[string]any{"activation_distance": 2.0})
	other := w.CreateEntity()
	em, _ := ecs.Get(w, phone, component.EmissionComponent.Kind())

	w.Step(0.1)
	assert.False(t, em.Enabled)

	SetFocus(w, player, phone, 3, true)
	w.Step(0.1)
	assert.False(t, em.Enabled, "too far")

	SetFocus(w, player, other, 1, true)
	SetFocus(w, player, phone, 1.5, true)
	w.Step(0.1)
	assert.True(t, em.Enabled)

	w.Step(0.1)
	assert.True(t, em.Enabled, "no focus change keeps emission")

	SetFocus(w, player, other, 1, true)
	w.Step(0.1)
	assert.False(t, em.Enabled)
}

func TestBrokenScriptIsSkippedUntilReload(t *testing.T) {
	src := scriptSources{"scripts/spin.tengo": "angle := ("}
	w := ecs.NewWorld()
	ss := NewScriptSystem(src.load)
	w.AddSystem(ss)
	e := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 90.0})

	assert.NotPanics(t, func() { stepN(w, 2, 0.5) })
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Zero(t, tr.Rotation.Y)

	src["scripts/spin.tengo"] = spinScript
	w.Step(0.5)
	assert.Zero(t, tr.Rotation.Y, "not reloaded yet")

	ss.Reload("assets/scripts/spin.tengo")
	w.Step(0.5)
	assert.InDelta(t, 45, tr.Rotation.Y, 1e-9)
}

func TestReloadKeepsState(t *testing.T) {
	src := scriptSources{"scripts/spin.tengo": spinScript}
	w := ecs.NewWorld()
	ss := NewScriptSystem(src.load)
	w.AddSystem(ss)
	e := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 90.0})

	w.Step(0.5)
	src["scripts/spin.tengo"] = spinScript + "\nout.rotation = [0, angle * 2, 0]\n"
	ss.Reload("scripts/spin.tengo")
	w.Step(0.5)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.InDelta(t, 180, tr.Rotation.Y, 1e-9)
}

func TestRuntimeErrorMarksScriptBroken(t *testing.T) {
	src := scriptSources{"scripts/bad.tengo": `out.rotation = [0, params.missing + 1, 0]`}
	w := ecs.NewWorld()
	w.AddSystem(NewScriptSystem(src.load))
	e := addScript(t, w, "scripts/bad.tengo", nil)

	assert.NotPanics(t, func() { stepN(w, 3, 0.1) })
	sc, _ := ecs.Get(w, e, component.ScriptComponent.Kind())
	assert.Empty(t, sc.Outputs)
}

func TestMissingScriptSource(t *testing.T) {
	buf := captureLog(t)
	w := ecs.NewWorld()
	w.AddSystem(NewScriptSystem(scriptSources{}.load))
	addScript(t, w, "scripts/none.tengo", nil)

	assert.NotPanics(t, func() { stepN(w, 2, 0.1) })
	assert.Contains(t, buf.String(), `script: entity=1/0 load "scripts/none.tengo"`)
}

func TestScriptCacheDropsDestroyedEntities(t *testing.T) {
	src := scriptSources{"scripts/spin.tengo": spinScript}
	w := ecs.NewWorld()
	ss := NewScriptSystem(src.load)
	w.AddSystem(ss)
	e := addScript(t, w, "scripts/spin.tengo", map[string]any{"speed": 1.0})

	w.Step(0.1)
	require.Len(t, ss.cache, 1)

	w.DestroyEntity(e)
	w.Step(0.1)
	assert.Empty(t, ss.cache)
}
