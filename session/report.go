package session

import (
	"sort"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"gopkg.in/yaml.v3"
)

type Report struct {
	Scene    string  `yaml:"scene"`
	ID       string  `yaml:"id"`
	Time     float64 `yaml:"time"`
	Frame    uint64  `yaml:"frame"`
	Snapshot string  `yaml:"snapshot,omitempty"`

	Player        *PlayerReport        `yaml:"player,omitempty"`
	Interactables []InteractableReport `yaml:"interactables,omitempty"`
	Water         []WaterReport        `yaml:"water,omitempty"`
	Rooms         []RoomReport         `yaml:"rooms,omitempty"`
}

type PlayerReport struct {
	Position   [3]float64 `yaml:"position,flow"`
	Yaw        float64    `yaml:"yaw"`
	Crouched   bool       `yaml:"crouched"`
	Flashlight bool       `yaml:"flashlight"`
	Focus      string     `yaml:"focus,omitempty"`
	Distance   float64    `yaml:"distance,omitempty"`
	Surface    string     `yaml:"surface,omitempty"`
}

type InteractableReport struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	State    string     `yaml:"state"`
	Rotation [3]float64 `yaml:"rotation,flow"`
	Armed    bool       `yaml:"armed,omitempty"`
}

type WaterReport struct {
	Name  string  `yaml:"name"`
	Level float64 `yaml:"level"`
	Mode  string  `yaml:"mode"`
}

type RoomReport struct {
	Name     string `yaml:"name"`
	Occupied bool   `yaml:"occupied"`
}

type snapshotNamer interface {
	Snapshot() string
}

// Report captures the scene state. Entries are sorted by name.
func (s *Session) Report() Report {
	w := s.world
	byID := make(map[ecs.Entity]string, len(s.names))
	for name, e := range s.names {
		byID[e] = name
	}
	nameOf := func(e ecs.Entity) string {
		if n, ok := byID[e]; ok {
			return n
		}
		return e.String()
	}

	t := w.Time()
	r := Report{Scene: s.scene.Name, ID: s.scene.ID, Time: t.Elapsed, Frame: t.Frame}
	if m, ok := s.mixer.(snapshotNamer); ok {
		r.Snapshot = m.Snapshot()
	}

	if p, ok := s.Player(); ok {
		pr := &PlayerReport{}
		if tr, ok := ecs.Get(w, p, component.TransformComponent.Kind()); ok {
			pr.Position = [3]float64{tr.Position.X, tr.Position.Y, tr.Position.Z}
		}
		if pc, ok := ecs.Get(w, p, component.PlayerComponent.Kind()); ok {
			pr.Yaw = pc.Yaw
			pr.Crouched = pc.Crouch != nil && pc.Crouch.IsOpen()
			pr.Flashlight = pc.Flashlight
			if surf, ok := pc.CurrentSurface(); ok {
				pr.Surface = nameOf(ecs.Entity(surf))
			}
		}
		if f, ok := ecs.Get(w, p, component.FocusComponent.Kind()); ok && f.HasTarget {
			pr.Focus = nameOf(ecs.Entity(f.Target))
			pr.Distance = f.Distance
		}
		r.Player = pr
	}

	ecs.ForEach(w, component.InteractableComponent.Kind(), func(e ecs.Entity, it *component.Interactable) {
		ir := InteractableReport{Name: nameOf(e), Kind: string(it.Kind), State: toggleState(it)}
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			ir.Rotation = [3]float64{tr.Rotation.X, tr.Rotation.Y, tr.Rotation.Z}
		}
		if rt, ok := ecs.Get(w, e, component.RouterComponent.Kind()); ok {
			ir.Armed = rt.Armed
		}
		r.Interactables = append(r.Interactables, ir)
	})
	ecs.ForEach(w, component.WaterComponent.Kind(), func(e ecs.Entity, wc *component.Water) {
		if wc.Level == nil {
			return
		}
		r.Water = append(r.Water, WaterReport{Name: nameOf(e), Level: wc.Level.Current, Mode: wc.Level.Mode().String()})
	})
	ecs.ForEach(w, component.RoomComponent.Kind(), func(e ecs.Entity, room *component.Room) {
		r.Rooms = append(r.Rooms, RoomReport{Name: nameOf(e), Occupied: room.Occupied})
	})

	sort.Slice(r.Interactables, func(i, j int) bool { return r.Interactables[i].Name < r.Interactables[j].Name })
	sort.Slice(r.Water, func(i, j int) bool { return r.Water[i].Name < r.Water[j].Name })
	sort.Slice(r.Rooms, func(i, j int) bool { return r.Rooms[i].Name < r.Rooms[j].Name })
	return r
}

// ReportYAML is Report marshalled for the clipboard.
func (s *Session) ReportYAML() ([]byte, error) {
	return yaml.Marshal(s.Report())
}

func toggleState(it *component.Interactable) string {
	if it.Toggle == nil {
		return "unknown"
	}
	open := it.Toggle.IsOpen()
	switch {
	case it.Toggle.IsTransitioning() && open:
		return "closing"
	case it.Toggle.IsTransitioning():
		return "opening"
	case open:
		return "open"
	}
	return "closed"
}
