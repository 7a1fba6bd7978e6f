package system

import (
	"log"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// AudioSystem flushes queued clip requests to their players. A clip that is
// already playing is not restarted.
type AudioSystem struct{}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(e ecs.Entity, audioComp *component.Audio) {
		count := len(audioComp.Play)
		if len(audioComp.Players) < count {
			count = len(audioComp.Players)
		}

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && !player.IsPlaying() {
				if i < len(audioComp.Volume) {
					player.SetVolume(audioComp.Volume[i])
				}
				if p, ok := player.(component.Pitcher); ok && i < len(audioComp.Pitch) && audioComp.Pitch[i] > 0 {
					p.SetPitch(audioComp.Pitch[i])
				}
				if err := player.Rewind(); err != nil {
					log.Printf("audio: entity=%s rewind %q: %v", e, audioComp.Names[i], err)
				}
				player.Play()
			}

			audioComp.Play[i] = false
		}
	})
}
