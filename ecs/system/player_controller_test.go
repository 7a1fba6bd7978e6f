package system

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newControllerWorld(t *testing.T) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	w.AddSystem(NewPlayerControllerSystem(rand.New(rand.NewPCG(1, 2))))
	return w, newPlayer(t, w)
}

func playerParts(w *ecs.World, e ecs.Entity) (*component.Player, *component.Input, *component.Transform) {
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	return p, in, tr
}

func TestPlayerMovement(t *testing.T) {
	tests := []struct {
		name  string
		input component.Input
		wantX float64
		wantZ float64
	}{
		{name: "forward", input: component.Input{MoveZ: 1}, wantZ: 1.5},
		{name: "backward", input: component.Input{MoveZ: -1}, wantZ: -1.5},
		{name: "strafe right", input: component.Input{MoveX: 1}, wantX: 1.5},
		{name: "sprint", input: component.Input{MoveZ: 1, Sprint: true}, wantZ: 3},
		{name: "idle", input: component.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, e := newControllerWorld(t)
			p, in, tr := playerParts(w, e)
			*in = tt.input

			w.Step(0.5)

			assert.InDelta(t, tt.wantX, tr.Position.X, 1e-9)
			assert.InDelta(t, tt.wantZ, tr.Position.Z, 1e-9)
			assert.Equal(t, tt.wantX != 0 || tt.wantZ != 0, p.Moving)
		})
	}
}

func TestPlayerLookTurnsYaw(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, tr := playerParts(w, e)
	in.LookX = 45

	w.Step(0.1)
	assert.Equal(t, 90.0, p.Yaw)
	assert.Equal(t, 90.0, tr.Rotation.Y)

	in.LookX = 0
	in.MoveZ = 1
	w.Step(0.5)
	assert.InDelta(t, 1.5, tr.Position.X, 1e-9)
	assert.InDelta(t, 0, tr.Position.Z, 1e-9)
}

func addCrouch(t *testing.T, p *component.Player) {
	t.Helper()
	crouch, err := transition.NewToggle(1.0, 0.5, 0.25, transition.LerpFloat)
	require.NoError(t, err)
	p.Crouch = crouch
	p.CameraHeight = 1.0
}

func TestPlayerCrouchSlowsAndLowersCamera(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, tr := playerParts(w, e)
	addCrouch(t, p)

	in.Crouch = true
	w.Step(0.125)
	assert.InDelta(t, 0.75, p.CameraHeight, 1e-9)

	in.Crouch = false
	w.Step(0.125)
	require.True(t, p.Crouch.IsOpen())
	assert.Equal(t, 0.5, p.CameraHeight)

	in.MoveZ = 1
	in.Sprint = true
	w.Step(1.0)
	assert.InDelta(t, 1.0, tr.Position.Z, 1e-9, "crouch speed ignores sprint")

	in.MoveZ = 0
	in.Crouch = true
	w.Step(0.25)
	assert.False(t, p.Crouch.IsOpen())
	assert.Equal(t, 1.0, p.CameraHeight)
}

func TestPlayerJump(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, tr := playerParts(w, e)

	in.Jump = true
	w.Step(0.1)
	assert.True(t, p.Grounded, "jump disabled")
	assert.Zero(t, tr.Position.Y)

	p.JumpEnabled = true
	w.Step(0.1)
	assert.False(t, p.Grounded)
	assert.InDelta(t, 0.5, tr.Position.Y, 1e-9)

	in.Jump = false
	stepN(w, 20, 0.1)
	assert.True(t, p.Grounded)
	assert.Zero(t, p.Height)
	assert.Zero(t, tr.Position.Y)
}

func TestPlayerCannotJumpWhileCrouched(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, _ := playerParts(w, e)
	p.JumpEnabled = true
	addCrouch(t, p)

	in.Crouch = true
	w.Step(0.125)
	in.Crouch = false
	in.Jump = true
	w.Step(0.125)
	assert.True(t, p.Grounded, "mid crouch")

	w.Step(0.125)
	assert.True(t, p.Crouch.IsOpen())
	assert.True(t, p.Grounded, "crouched")
}

func TestPlayerFlashlight(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, _ := playerParts(w, e)

	in.Flashlight = true
	w.Step(0.1)
	assert.False(t, p.Flashlight, "flashlight disabled")

	p.FlashlightEnabled = true
	w.Step(0.1)
	assert.True(t, p.Flashlight)
	w.Step(0.1)
	assert.False(t, p.Flashlight)
}

func TestPlayerMovesThroughPhysics(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	w.AddSystem(NewPlayerControllerSystem(rand.New(rand.NewPCG(1, 2))))
	w.AddSystem(NewPhysicsSystem())
	e := newPlayer(t, w)
	_, in, tr := playerParts(w, e)
	in.MoveZ = 1

	w.Step(1.0 / 60.0)
	stepN(w, 60, 1.0/60.0)

	assert.InDelta(t, 3.0, tr.Position.Z, 0.1)
	assert.InDelta(t, 0, tr.Position.X, 1e-6)
}

func addFootsteps(t *testing.T, w *ecs.World, e ecs.Entity, clips ...string) *component.Footsteps {
	t.Helper()
	addAudio(t, w, e, clips...)
	require.NoError(t, ecs.Add(w, e, component.FootstepsComponent.Kind(), &component.Footsteps{
		Enabled:           true,
		Clips:             clips,
		WalkInterval:      0.5,
		SprintInterval:    0.25,
		VelocityThreshold: 2,
		MinPitch:          0.8,
		MaxPitch:          1.2,
		LastIndex:         -1,
	}))
	f, _ := ecs.Get(w, e, component.FootstepsComponent.Kind())
	return f
}

// drainSteps returns the clip indexes queued since the last call.
func drainSteps(w *ecs.World, e ecs.Entity) []int {
	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	var out []int
	for i := range a.Play {
		if a.Play[i] {
			out = append(out, i)
			a.Play[i] = false
		}
	}
	return out
}

func TestFootstepsOnInterval(t *testing.T) {
	w, e := newControllerWorld(t)
	_, in, _ := playerParts(w, e)
	addFootsteps(t, w, e, "step1", "step2", "step3")
	in.MoveZ = 1

	var played []int
	for i := 0; i < 16; i++ {
		w.Step(0.125)
		played = append(played, drainSteps(w, e)...)
	}

	require.Len(t, played, 4)
	for i := 1; i < len(played); i++ {
		assert.NotEqual(t, played[i-1], played[i], "step %d repeats", i)
	}

	a, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	for _, i := range played {
		assert.GreaterOrEqual(t, a.Pitch[i], 0.8)
		assert.LessOrEqual(t, a.Pitch[i], 1.2)
	}
}

func TestFootstepsSprintShortensInterval(t *testing.T) {
	w, e := newControllerWorld(t)
	_, in, _ := playerParts(w, e)
	addFootsteps(t, w, e, "step1", "step2")
	in.MoveZ = 1
	in.Sprint = true

	count := 0
	for i := 0; i < 16; i++ {
		w.Step(0.125)
		count += len(drainSteps(w, e))
	}
	assert.Equal(t, 6, count)
}

func TestFootstepsSilentWhenSlowOrAirborne(t *testing.T) {
	w, e := newControllerWorld(t)
	p, in, _ := playerParts(w, e)
	f := addFootsteps(t, w, e, "step1", "step2")

	in.MoveZ = 1
	f.VelocityThreshold = 5
	stepN(w, 8, 0.125)
	assert.Empty(t, drainSteps(w, e))

	f.VelocityThreshold = 2
	p.JumpEnabled = true
	in.Jump = true
	w.Step(0.125)
	in.Jump = false
	w.Step(0.125)
	assert.False(t, p.Grounded)
	assert.Empty(t, drainSteps(w, e))
}

func TestFootstepsWithoutClipsDoNothing(t *testing.T) {
	w, e := newControllerWorld(t)
	_, in, _ := playerParts(w, e)
	f := addFootsteps(t, w, e)
	in.MoveZ = 1

	assert.NotPanics(t, func() { stepN(w, 8, 0.125) })
	assert.Equal(t, -1, f.LastIndex)
}

func TestNextFootstepNeverRepeats(t *testing.T) {
	s := NewPlayerControllerSystem(rand.New(rand.NewPCG(7, 7)))

	for n := 1; n <= 4; n++ {
		f := &component.Footsteps{Clips: make([]string, n), LastIndex: -1}
		prev := -1
		for i := 0; i < 200; i++ {
			idx := s.nextFootstep(f)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, n)
			if n > 1 {
				require.NotEqual(t, prev, idx)
			}
			prev = idx
		}
	}
}
