package system

import (
	"bytes"
	"log"
	"testing"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/transition"
	"github.com/stretchr/testify/require"
)

type fakeClip struct {
	playing bool
	plays   int
	pauses  int
	volume  float64
	pitch   float64
}

func (c *fakeClip) Play() { c.playing = true; c.plays++ }
func (c *fakeClip) Pause() { c.playing = false; c.pauses++ }
func (c *fakeClip) Rewind() error { return nil }
func (c *fakeClip) IsPlaying() bool { return c.playing }
func (c *fakeClip) SetVolume(v float64) { c.volume = v }
func (c *fakeClip) SetPitch(ratio float64) { c.pitch = ratio }

type recorder struct {
	events []ecs.Event
}

func record(w *ecs.World, kinds ...ecs.EventKind) *recorder {
	r := &recorder{}
	for _, k := range kinds {
		w.Bus().Subscribe(k, func(evt ecs.Event) { r.events = append(r.events, evt) })
	}
	return r
}

func (r *recorder) kinds() []ecs.EventKind {
	out := make([]ecs.EventKind, 0, len(r.events))
	for _, evt := range r.events {
		out = append(out, evt.Kind)
	}
	return out
}

func (r *recorder) count(kind ecs.EventKind) int {
	n := 0
	for _, evt := range r.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

func addAudio(t *testing.T, w *ecs.World, e ecs.Entity, names ...string) map[string]*fakeClip {
	t.Helper()
	a := &component.Audio{
		Names:   names,
		Players: make([]component.ClipPlayer, len(names)),
		Volume:  make([]float64, len(names)),
		Pitch:   make([]float64, len(names)),
		Play:    make([]bool, len(names)),
		Stop:    make([]bool, len(names)),
	}
	clips := make(map[string]*fakeClip, len(names))
	for i, n := range names {
		c := &fakeClip{}
		a.Players[i] = c
		a.Volume[i] = 1
		clips[n] = c
	}
	require.NoError(t, ecs.Add(w, e, component.AudioComponent.Kind(), a))
	return clips
}

func addParticles(t *testing.T, w *ecs.World, e ecs.Entity, emitters map[string]component.Emitter) {
	t.Helper()
	p := &component.Particles{}
	for name, em := range emitters {
		p.Names = append(p.Names, name)
		p.Emitters = append(p.Emitters, em)
	}
	p.Start = make([]bool, len(p.Names))
	p.Stop = make([]bool, len(p.Names))
	p.Clear = make([]bool, len(p.Names))
	require.NoError(t, ecs.Add(w, e, component.ParticlesComponent.Kind(), p))
}

var doorOpenRotation = common.Vec3{Y: 115}

func newDoor(t *testing.T, w *ecs.World, duration float64) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	toggle, err := transition.NewToggle(common.Vec3{}, doorOpenRotation, duration, transition.LerpVec3)
	require.NoError(t, err)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Kind:      component.InteractableDoor,
		Toggle:    toggle,
		OpenClip:  "open",
		CloseClip: "close",
	}))
	return e
}

func newPlayer(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.FocusComponent.Kind(), &component.Focus{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		WalkSpeed:        3,
		CrouchWalkSpeed:  1,
		SprintMultiplier: 2,
		JumpForce:        5,
		Gravity:          9.81,
		MouseSensitivity: 2,
		Radius:           0.3,
		Grounded:         true,
	}))
	return e
}

func stepN(w *ecs.World, n int, dt float64) {
	for i := 0; i < n; i++ {
		w.Step(dt)
	}
}

// captureLog redirects the standard logger into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prev)
		log.SetFlags(flags)
	})
	return &buf
}
