package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position Vec3Spec  `yaml:"position"`
	Rotation Vec3Spec  `yaml:"rotation"`
	Scale    *Vec3Spec `yaml:"scale"`
}

type PlayerComponentSpec struct {
	WalkSpeed         float64 `yaml:"walk_speed"`
	CrouchWalkSpeed   float64 `yaml:"crouch_walk_speed"`
	SprintMultiplier  float64 `yaml:"sprint_multiplier"`
	JumpEnabled       bool    `yaml:"jump_enabled"`
	JumpForce         float64 `yaml:"jump_force"`
	Gravity           float64 `yaml:"gravity"`
	MouseSensitivity  float64 `yaml:"mouse_sensitivity"`
	Radius            float64 `yaml:"radius"`
	CameraHeight      float64 `yaml:"camera_height"`
	CrouchHeight      float64 `yaml:"crouch_height"`
	CrouchDuration    float64 `yaml:"crouch_duration"`
	FlashlightEnabled bool    `yaml:"flashlight_enabled"`
}

type FocusComponentSpec struct {
	MaxDistance float64 `yaml:"max_distance"`
}

type FootstepsComponentSpec struct {
	Enabled           bool     `yaml:"enabled"`
	Clips             []string `yaml:"clips"`
	WalkInterval      float64  `yaml:"walk_interval"`
	SprintInterval    float64  `yaml:"sprint_interval"`
	VelocityThreshold float64  `yaml:"velocity_threshold"`
	MinPitch          float64  `yaml:"min_pitch"`
	MaxPitch          float64  `yaml:"max_pitch"`
}

// InteractableComponentSpec describes a two-state prop. Opened is the
// offset from the placed rotation reached when fully open.
type InteractableComponentSpec struct {
	Kind      string    `yaml:"kind"`
	Opened    Vec3Spec  `yaml:"opened"`
	Duration  float64   `yaml:"duration"`
	Base      *Vec3Spec `yaml:"base"`
	OpenClip  string    `yaml:"open_clip"`
	CloseClip string    `yaml:"close_clip"`
	StartOpen bool      `yaml:"start_open"`
}

type ActuatorComponentSpec struct {
	From     Vec3Spec `yaml:"from"`
	To       Vec3Spec `yaml:"to"`
	Duration float64  `yaml:"duration"`
}

type ValveComponentSpec struct {
	Water    string `yaml:"water"`
	Flow     string `yaml:"flow"`
	TurnClip string `yaml:"turn_clip"`
	LoopClip string `yaml:"loop_clip"`
}

// WaterComponentSpec places the level bounds relative to the water's
// resting height.
type WaterComponentSpec struct {
	Rise      float64 `yaml:"rise"`
	FillRate  float64 `yaml:"fill_rate"`
	DrainRate float64 `yaml:"drain_rate"`
	Tolerance float64 `yaml:"tolerance"`
	Debris    string  `yaml:"debris"`
	LoopClip  string  `yaml:"loop_clip"`
}

type RouterComponentSpec struct {
	Range         float64 `yaml:"range"`
	RequireVolume bool    `yaml:"require_volume"`
}

type TriggerComponentSpec struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
}

type ColliderComponentSpec struct {
	Width     float64 `yaml:"width"`
	Depth     float64 `yaml:"depth"`
	OffsetX   float64 `yaml:"offset_x"`
	OffsetZ   float64 `yaml:"offset_z"`
	Focusable bool    `yaml:"focusable"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
	Group  string  `yaml:"group"`
}

type AudioComponentSpec struct {
	Clips    []AudioClipSpec `yaml:"clips"`
	Autoplay []string        `yaml:"autoplay"`
}

// EmitterSpec configures one particle emitter. Rate is particles per
// second; Burst spawns once on Play.
type EmitterSpec struct {
	Name     string     `yaml:"name"`
	Rate     float64    `yaml:"rate"`
	Burst    int        `yaml:"burst"`
	Lifetime float64    `yaml:"lifetime"`
	Speed    float64    `yaml:"speed"`
	Spread   float64    `yaml:"spread"`
	Gravity  float64    `yaml:"gravity"`
	Size     float64    `yaml:"size"`
	Max      int        `yaml:"max"`
	Color    *YAMLColor `yaml:"color"`
	Offset   Vec3Spec   `yaml:"offset"`
}

type ParticlesComponentSpec struct {
	Emitters []EmitterSpec `yaml:"emitters"`
	Autoplay []string      `yaml:"autoplay"`
}

type RoomComponentSpec struct {
	Door string `yaml:"door"`
}

type RoomAudioComponentSpec struct {
	Snapshot           string  `yaml:"snapshot"`
	DoorOpenSnapshot   string  `yaml:"door_open_snapshot"`
	DoorClosedSnapshot string  `yaml:"door_closed_snapshot"`
	TransitionTime     float64 `yaml:"transition_time"`
	RugCutoff          float64 `yaml:"rug_cutoff"`
	FloorCutoff        float64 `yaml:"floor_cutoff"`
}

type SurfaceComponentSpec struct {
	Room string `yaml:"room"`
	Rug  bool   `yaml:"rug"`
}

type ScriptComponentSpec struct {
	Path   string         `yaml:"path"`
	Params map[string]any `yaml:"params"`
}

type EmissionComponentSpec struct {
	Enabled bool `yaml:"enabled"`
}
