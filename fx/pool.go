package fx

import (
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/prefabs"
)

// Pool owns every emitter of a scene and shares one random source.
type Pool struct {
	rng      *rand.Rand
	emitters []*Emitter
}

func NewPool(rng *rand.Rand) *Pool {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &Pool{rng: rng}
}

// New creates an emitter and keeps it for Update and Draw.
func (p *Pool) New(spec prefabs.EmitterSpec, origin common.Vec3) (*Emitter, error) {
	e, err := NewEmitter(spec, origin, p.rng)
	if err != nil {
		return nil, err
	}
	p.emitters = append(p.emitters, e)
	return e, nil
}

func (p *Pool) Emitters() []*Emitter {
	return p.emitters
}

func (p *Pool) Update(dt float64) {
	for _, e := range p.emitters {
		e.Update(dt)
	}
}

func (p *Pool) Draw(screen *ebiten.Image, project Projector) {
	for _, e := range p.emitters {
		e.Draw(screen, project)
	}
}

// Live counts live particles across all emitters.
func (p *Pool) Live() int {
	n := 0
	for _, e := range p.emitters {
		n += len(e.particles)
	}
	return n
}
