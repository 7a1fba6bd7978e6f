package component

// Emitter is a particle system handle.
type Emitter interface {
	Play()
	// Stop halts emission. With clear set, live particles are removed too.
	Stop(clear bool)
	IsPlaying() bool
}

// Particles holds the named emitters of an entity and their pending
// requests, flushed by the particle system once per tick.
type Particles struct {
	Names    []string
	Emitters []Emitter
	Start    []bool
	Stop     []bool
	Clear    []bool
}

var ParticlesComponent = NewComponent[Particles]()

// Index returns the slot of an emitter name, or -1.
func (p *Particles) Index(name string) int {
	if p == nil || name == "" {
		return -1
	}
	for i, n := range p.Names {
		if n == name {
			return i
		}
	}
	return -1
}
