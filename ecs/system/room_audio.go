package system

import (
	"log"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
)

// FootstepCutoffParam is the mixer parameter holding the footstep low-pass
// cutoff in Hz.
const FootstepCutoffParam = "footstepCutoff"

//go:generate go tool mockgen -destination=mocks/mock_mixer.go -package=mocks github.com/milk9111/undercroft/ecs/system SnapshotMixer

// SnapshotMixer blends between named mixer snapshots and exposes named
// parameters.
type SnapshotMixer interface {
	TransitionTo(snapshot string, duration float64) error
	SetFloat(param string, value float64) error
}

// RoomAudioSystem moves the mixer to a room's snapshot when the player
// enters it, switches corridor snapshots when the room's door starts to
// open or close, and sets the footstep cutoff from the surface underfoot.
type RoomAudioSystem struct {
	mixer SnapshotMixer
	subs  []ecs.Subscription

	cutoff    float64
	cutoffSet bool
}

func NewRoomAudioSystem(mixer SnapshotMixer) *RoomAudioSystem {
	return &RoomAudioSystem{mixer: mixer}
}

func (s *RoomAudioSystem) Activate(w *ecs.World) {
	bus := w.Bus()
	s.subs = append(s.subs,
		bus.Subscribe(ecs.EventOpening, func(evt ecs.Event) { s.onDoor(w, evt, true) }),
		bus.Subscribe(ecs.EventClosing, func(evt ecs.Event) { s.onDoor(w, evt, false) }),
	)
}

func (s *RoomAudioSystem) Deactivate(w *ecs.World) {
	for _, sub := range s.subs {
		w.Bus().Unsubscribe(sub)
	}
	s.subs = nil
}

func (s *RoomAudioSystem) onDoor(w *ecs.World, evt ecs.Event, opening bool) {
	if s.mixer == nil {
		return
	}
	ecs.ForEach2(w, component.RoomComponent.Kind(), component.RoomAudioComponent.Kind(), func(_ ecs.Entity, room *component.Room, ra *component.RoomAudio) {
		if room.Door != uint64(evt.Source) {
			return
		}
		snapshot := ra.DoorClosedSnapshot
		if opening {
			snapshot = ra.DoorOpenSnapshot
		}
		s.transition(snapshot, evt.Duration)
	})
}

func (s *RoomAudioSystem) Update(w *ecs.World) {
	if s.mixer == nil {
		return
	}
	surface, _, ok := currentSurface(w)
	if !ok {
		return
	}

	var (
		cutoff     float64
		haveCutoff bool
	)
	ecs.ForEach2(w, component.RoomComponent.Kind(), component.RoomAudioComponent.Kind(), func(_ ecs.Entity, room *component.Room, ra *component.RoomAudio) {
		if room.Occupied && !ra.Entered {
			s.transition(ra.Snapshot, ra.TransitionTime)
		}
		ra.Entered = room.Occupied

		c := ra.RugCutoff
		if room.Occupied && !surface.Rug {
			c = ra.FloorCutoff
		}
		ra.Cutoff = c
		if room.Occupied || !haveCutoff {
			cutoff, haveCutoff = c, true
		}
	})

	if !haveCutoff || (s.cutoffSet && s.cutoff == cutoff) {
		return
	}
	if err := s.mixer.SetFloat(FootstepCutoffParam, cutoff); err != nil {
		log.Printf("room audio: set %s: %v", FootstepCutoffParam, err)
		return
	}
	s.cutoff, s.cutoffSet = cutoff, true
}

func (s *RoomAudioSystem) transition(snapshot string, duration float64) {
	if snapshot == "" {
		return
	}
	if err := s.mixer.TransitionTo(snapshot, duration); err != nil {
		log.Printf("room audio: transition to %q: %v", snapshot, err)
	}
}
