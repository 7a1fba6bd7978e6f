package system

import (
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// ParticleSystem flushes queued emitter requests.
type ParticleSystem struct{}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

func (s *ParticleSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.ParticlesComponent.Kind(), func(_ ecs.Entity, p *component.Particles) {
		count := min(len(p.Emitters), len(p.Start), len(p.Stop), len(p.Clear))
		for i := 0; i < count; i++ {
			em := p.Emitters[i]
			switch {
			case p.Stop[i]:
				if em != nil {
					em.Stop(p.Clear[i])
				}
			case p.Start[i]:
				if em != nil && !em.IsPlaying() {
					em.Play()
				}
			}
			p.Start[i], p.Stop[i], p.Clear[i] = false, false, false
		}
	})
}
