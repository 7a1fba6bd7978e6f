package component

// ClipPlayer is the playback handle of one clip. *audio.Player from ebiten
// and mixer voices both satisfy it.
type ClipPlayer interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
	SetVolume(volume float64)
}

// Pitcher is implemented by players that can change playback rate.
type Pitcher interface {
	SetPitch(ratio float64)
}

//go:generate go tool mockgen -destination=mocks/mock_sinks.go -package=mocks github.com/milk9111/undercroft/ecs/component ClipPlayer,Emitter

// Audio holds the named clips of an entity and their pending requests,
// flushed by the audio system once per tick.
type Audio struct {
	Names   []string
	Players []ClipPlayer
	Volume  []float64
	Pitch   []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

// Index returns the slot of a clip name, or -1.
func (a *Audio) Index(name string) int {
	if a == nil || name == "" {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}
