package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// PlayerControllerSystem turns input into player motion: yaw, walking,
// sprinting, crouching, jumping, the flashlight and footsteps.
type PlayerControllerSystem struct {
	rng *rand.Rand
}

func NewPlayerControllerSystem(rng *rand.Rand) *PlayerControllerSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &PlayerControllerSystem{rng: rng}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Time().Delta

	ecs.ForEach2(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, p *component.Player, in *component.Input) {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return
		}

		p.Yaw = math.Mod(p.Yaw+in.LookX*p.MouseSensitivity, 360)
		tr.Rotation.Y = p.Yaw

		vx, vz := s.move(p, in)
		s.jump(p, in, dt)
		s.crouch(p, in, dt)

		if p.FlashlightEnabled && in.Flashlight {
			p.Flashlight = !p.Flashlight
		}

		if pw := w.PhysicsWorld(); pw != nil {
			pw.SetActorVelocity(e, vx, vz)
		} else {
			tr.Position.X += vx * dt
			tr.Position.Z += vz * dt
		}
		tr.Position.Y = p.Height

		if steps, ok := ecs.Get(w, e, component.FootstepsComponent.Kind()); ok {
			s.footsteps(w, e, p, in, steps)
		}
	})
}

func (s *PlayerControllerSystem) move(p *component.Player, in *component.Input) (vx, vz float64) {
	speed := p.WalkSpeed
	switch {
	case s.crouched(p):
		speed = p.CrouchWalkSpeed
	case in.Sprint && p.SprintMultiplier > 0:
		speed *= p.SprintMultiplier
	}

	fx, fz := common.YawDir(p.Yaw)
	rx, rz := fz, -fx
	vx = (in.MoveX*rx + in.MoveZ*fx) * speed
	vz = (in.MoveX*rz + in.MoveZ*fz) * speed

	p.Moving = in.MoveX != 0 || in.MoveZ != 0
	p.Speed = math.Hypot(vx, vz)
	return vx, vz
}

func (s *PlayerControllerSystem) jump(p *component.Player, in *component.Input, dt float64) {
	if p.Grounded {
		crouching := p.Crouch != nil && p.Crouch.IsTransitioning()
		if p.JumpEnabled && in.Jump && !s.crouched(p) && !crouching {
			p.VerticalSpeed = p.JumpForce
			p.Grounded = false
		}
	} else {
		p.VerticalSpeed -= p.Gravity * dt
	}

	p.Height += p.VerticalSpeed * dt
	if p.Height <= 0 && p.VerticalSpeed <= 0 {
		p.Height = 0
		p.VerticalSpeed = 0
		p.Grounded = true
	}
}

func (s *PlayerControllerSystem) crouch(p *component.Player, in *component.Input, dt float64) {
	if p.Crouch == nil || !p.Grounded {
		return
	}
	if in.Crouch {
		p.Crouch.Interact()
	}
	p.CameraHeight, _ = p.Crouch.Step(dt)
}

func (s *PlayerControllerSystem) crouched(p *component.Player) bool {
	return p.Crouch != nil && p.Crouch.IsOpen()
}

func (s *PlayerControllerSystem) footsteps(w *ecs.World, e ecs.Entity, p *component.Player, in *component.Input, f *component.Footsteps) {
	if !f.Enabled || len(f.Clips) == 0 {
		return
	}
	interval := f.WalkInterval
	if in.Sprint {
		interval = f.SprintInterval
	}
	now := w.Time().Elapsed
	if !p.Grounded || !p.Moving || now <= f.NextStep || p.Speed <= f.VelocityThreshold {
		return
	}

	idx := s.nextFootstep(f)
	clip := f.Clips[idx]
	pitch := f.MinPitch + s.rng.Float64()*(f.MaxPitch-f.MinPitch)
	SetClipPitch(w, e, clip, pitch)
	PlayClip(w, e, clip)
	f.NextStep = now + interval
}

// nextFootstep picks a random clip index that differs from the last one.
func (s *PlayerControllerSystem) nextFootstep(f *component.Footsteps) int {
	n := len(f.Clips)
	if n == 1 {
		f.LastIndex = 0
		return 0
	}
	idx := s.rng.IntN(n - 1)
	if f.LastIndex >= 0 && idx >= f.LastIndex {
		idx++
	}
	f.LastIndex = idx
	return idx
}
