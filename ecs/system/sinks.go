package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// PlayClip queues a clip of e to start on the next audio flush. It reports
// false when e has no such clip; callers treat that as a configuration gap.
func PlayClip(w *ecs.World, e ecs.Entity, name string) bool {
	a, i := clipSlot(w, e, name)
	if i < 0 {
		return false
	}
	a.Play[i] = true
	a.Stop[i] = false
	return true
}

// StopClip queues a clip of e to stop on the next audio flush.
func StopClip(w *ecs.World, e ecs.Entity, name string) bool {
	a, i := clipSlot(w, e, name)
	if i < 0 {
		return false
	}
	a.Stop[i] = true
	a.Play[i] = false
	return true
}

// SetClipPitch sets the playback rate used the next time the clip starts.
func SetClipPitch(w *ecs.World, e ecs.Entity, name string, pitch float64) bool {
	a, i := clipSlot(w, e, name)
	if i < 0 || i >= len(a.Pitch) {
		return false
	}
	a.Pitch[i] = pitch
	return true
}

func clipSlot(w *ecs.World, e ecs.Entity, name string) (*component.Audio, int) {
	a, ok := ecs.Get(w, e, component.AudioComponent.Kind())
	if !ok {
		return nil, -1
	}
	i := a.Index(name)
	if i < 0 || i >= len(a.Play) || i >= len(a.Stop) {
		return nil, -1
	}
	return a, i
}

// StartEmission queues an emitter of e to start emitting.
func StartEmission(w *ecs.World, e ecs.Entity, name string) bool {
	p, i := emitterSlot(w, e, name)
	if i < 0 {
		return false
	}
	p.Start[i] = true
	p.Stop[i] = false
	p.Clear[i] = false
	return true
}

// StopEmission queues an emitter of e to stop. With clear set the live
// particles are removed as well.
func StopEmission(w *ecs.World, e ecs.Entity, name string, clear bool) bool {
	p, i := emitterSlot(w, e, name)
	if i < 0 {
		return false
	}
	p.Stop[i] = true
	p.Clear[i] = p.Clear[i] || clear
	p.Start[i] = false
	return true
}

func emitterSlot(w *ecs.World, e ecs.Entity, name string) (*component.Particles, int) {
	p, ok := ecs.Get(w, e, component.ParticlesComponent.Kind())
	if !ok {
		return nil, -1
	}
	i := p.Index(name)
	if i < 0 || i >= len(p.Start) || i >= len(p.Stop) || i >= len(p.Clear) {
		return nil, -1
	}
	return p, i
}
