// Package fx holds the particle emitters behind component.Emitter.
package fx

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/prefabs"
)

const defaultMaxParticles = 64

type Particle struct {
	Pos common.Vec3
	Vel common.Vec3
	Age float64
}

// Emitter spawns particles at a fixed origin while playing. Rate is in
// particles per second; Burst particles are spawned on every Play.
type Emitter struct {
	Name     string
	Origin   common.Vec3
	Rate     float64
	Burst    int
	Lifetime float64
	Speed    float64
	Spread   float64
	Gravity  float64
	Size     float64
	Max      int
	Color    color.Color

	rng       *rand.Rand
	playing   bool
	carry     float64
	particles []Particle
}

// NewEmitter builds an emitter from spec placed at origin.
func NewEmitter(spec prefabs.EmitterSpec, origin common.Vec3, rng *rand.Rand) (*Emitter, error) {
	if !(spec.Lifetime > 0) || math.IsInf(spec.Lifetime, 1) {
		return nil, fmt.Errorf("fx: emitter %q: lifetime must be > 0", spec.Name)
	}
	if !(spec.Rate >= 0) || math.IsInf(spec.Rate, 1) || spec.Burst < 0 {
		return nil, fmt.Errorf("fx: emitter %q: rate and burst must not be negative", spec.Name)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	e := &Emitter{
		Name:     spec.Name,
		Origin:   origin,
		Rate:     spec.Rate,
		Burst:    spec.Burst,
		Lifetime: spec.Lifetime,
		Speed:    spec.Speed,
		Spread:   spec.Spread,
		Gravity:  spec.Gravity,
		Size:     spec.Size,
		Max:      spec.Max,
		Color:    color.White,
		rng:      rng,
	}
	if e.Max <= 0 {
		e.Max = defaultMaxParticles
	}
	if e.Size <= 0 {
		e.Size = 1
	}
	if spec.Color != nil && spec.Color.Color != nil {
		e.Color = spec.Color.Color
	}
	return e, nil
}

func (e *Emitter) Play() {
	if e.playing {
		return
	}
	e.playing = true
	e.carry = 0
	for range e.Burst {
		e.spawn()
	}
}

// Stop halts emission. With clear set, live particles are removed too;
// otherwise they live out their lifetime.
func (e *Emitter) Stop(clear bool) {
	e.playing = false
	e.carry = 0
	if clear {
		e.particles = e.particles[:0]
	}
}

func (e *Emitter) IsPlaying() bool {
	return e.playing
}

// Live returns the particles currently alive.
func (e *Emitter) Live() []Particle {
	return e.particles
}

func (e *Emitter) Update(dt float64) {
	if dt <= 0 {
		return
	}

	alive := e.particles[:0]
	for _, p := range e.particles {
		p.Age += dt
		if p.Age >= e.Lifetime {
			continue
		}
		p.Vel.Y -= e.Gravity * dt
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		alive = append(alive, p)
	}
	e.particles = alive

	if !e.playing || e.Rate <= 0 {
		return
	}
	e.carry += e.Rate * dt
	for e.carry >= 1 {
		e.carry--
		e.spawn()
	}
}

func (e *Emitter) spawn() {
	if len(e.particles) >= e.Max {
		return
	}
	jitter := func() float64 { return (e.rng.Float64()*2 - 1) * e.Spread }
	e.particles = append(e.particles, Particle{
		Pos: e.Origin,
		Vel: common.Vec3{X: jitter(), Y: e.Speed, Z: jitter()},
	})
}

// particleColor is the straight-alpha emitter color with alpha faded by
// the particle's age.
func (e *Emitter) particleColor(p Particle) color.NRGBA {
	c := color.NRGBAModel.Convert(e.Color).(color.NRGBA)
	fade := common.Clamp01(1 - p.Age/e.Lifetime)
	c.A = uint8(float64(c.A) * fade)
	return c
}

// Projector maps a scene position to screen space.
type Projector func(common.Vec3) (x, y float64, ok bool)

// Draw renders the live particles as squares fading with age.
func (e *Emitter) Draw(screen *ebiten.Image, project Projector) {
	if screen == nil || project == nil {
		return
	}
	for _, p := range e.particles {
		x, y, ok := project(p.Pos)
		if !ok {
			continue
		}
		c := e.particleColor(p)
		half := e.Size / 2
		vector.FillRect(screen, float32(x-half), float32(y-half), float32(e.Size), float32(e.Size), c, false)
	}
}
