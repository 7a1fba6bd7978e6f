package entity

import (
	"fmt"
	"log"
	"sort"

	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/prefabs"
	"github.com/milk9111/undercroft/transition"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// Sinks creates the playback handles prefabs ask for. A nil Sinks builds
// audio and particle components with empty slots; systems skip those.
type Sinks interface {
	Clip(spec prefabs.AudioClipSpec) (component.ClipPlayer, error)
	Emitter(spec prefabs.EmitterSpec, at common.Vec3) (component.Emitter, error)
}

type buildContext struct {
	PrefabPath string
	Sinks      Sinks
	links      []pendingLink
}

// pendingLink is a reference to another entity by scene name, resolved
// once every entity of the scene exists.
type pendingLink struct {
	owner  ecs.Entity
	field  string
	target string
	set    func(ecs.Entity)
}

func (ctx *buildContext) link(owner ecs.Entity, field, target string, set func(ecs.Entity)) {
	if target == "" {
		return
	}
	ctx.links = append(ctx.links, pendingLink{owner: owner, field: field, target: target, set: set})
}

// resolve applies pending links against names. Links to missing names are
// left unset and logged.
func (ctx *buildContext) resolve(names map[string]ecs.Entity) {
	for _, l := range ctx.links {
		target, ok := names[l.target]
		if !ok {
			log.Printf("build entity: %s of entity %s: no entity named %q", l.field, l.owner, l.target)
			continue
		}
		l.set(target)
	}
	ctx.links = nil
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":         addName,
	"player_tag":   addPlayerTag,
	"solid_tag":    addSolidTag,
	"transform":    addTransform,
	"input":        addInput,
	"player":       addPlayer,
	"focus":        addFocus,
	"footsteps":    addFootsteps,
	"interactable": addInteractable,
	"actuator":     addActuator,
	"valve":        addValve,
	"water":        addWater,
	"router":       addRouter,
	"highlight":    addHighlight,
	"trigger":      addTrigger,
	"collider":     addCollider,
	"audio":        addAudio,
	"particles":    addParticles,
	"room":         addRoom,
	"room_audio":   addRoomAudio,
	"surface":      addSurface,
	"script":       addScript,
	"emission":     addEmission,
}

// componentBuildOrder builds transforms first: interactables, water and
// emitters read the placed pose.
var componentBuildOrder = []string{
	"name",
	"player_tag",
	"solid_tag",
	"transform",
	"input",
	"player",
	"focus",
	"footsteps",
	"interactable",
	"actuator",
	"valve",
	"water",
	"router",
	"highlight",
	"trigger",
	"collider",
	"audio",
	"particles",
	"room",
	"room_audio",
	"surface",
	"script",
	"emission",
}

// BuildEntity creates one entity from a prefab. Links to other entities
// are resolved against the names already in w.
func BuildEntity(w *ecs.World, prefabPath string, sinks Sinks) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}

	ctx := &buildContext{PrefabPath: prefabPath, Sinks: sinks}
	e, err := buildFromSpec(w, spec, ctx)
	if err != nil {
		return 0, err
	}
	ctx.resolve(Names(w))
	return e, nil
}

func buildFromSpec(w *ecs.World, spec entityPrefabSpec, ctx *buildContext) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", ctx.PrefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, names[0])
	}

	if spec.Name != "" && !ecs.Has(w, e, component.NameComponent.Kind()) {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add name: %w", ctx.PrefabPath, err)
		}
	}

	return e, nil
}

// Names maps scene names to entities.
func Names(w *ecs.World) map[string]ecs.Entity {
	out := make(map[string]ecs.Entity)
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value != "" {
			out[n.Value] = e
		}
	})
	return out
}

// SetEntityTransform places e, keeping its scale.
func SetEntityTransform(w *ecs.World, e ecs.Entity, position, rotation common.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{Scale: common.Vec3{X: 1, Y: 1, Z: 1}}
	}
	t.Position = position
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func vec3(s prefabs.Vec3Spec) common.Vec3 {
	return common.Vec3{X: s.X, Y: s.Y, Z: s.Z}
}

func transformOf(w *ecs.World, e ecs.Entity) component.Transform {
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return *tr
	}
	return component.Transform{}
}

type nameSpec struct {
	Value string `yaml:"value"`
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	if s, ok := raw.(string); ok {
		return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: s})
	}
	spec, err := prefabs.DecodeComponentSpec[nameSpec](raw)
	if err != nil {
		return fmt.Errorf("decode name spec: %w", err)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addSolidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.SolidTagComponent.Kind(), &component.SolidTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	scale := common.Vec3{X: 1, Y: 1, Z: 1}
	if spec.Scale != nil {
		scale = vec3(*spec.Scale)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: vec3(spec.Position),
		Rotation: vec3(spec.Rotation),
		Scale:    scale,
	})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.Radius <= 0 {
		spec.Radius = 0.3
	}

	p := &component.Player{
		WalkSpeed:         spec.WalkSpeed,
		CrouchWalkSpeed:   spec.CrouchWalkSpeed,
		SprintMultiplier:  spec.SprintMultiplier,
		JumpEnabled:       spec.JumpEnabled,
		JumpForce:         spec.JumpForce,
		Gravity:           spec.Gravity,
		MouseSensitivity:  spec.MouseSensitivity,
		Radius:            spec.Radius,
		Grounded:          true,
		CameraHeight:      spec.CameraHeight,
		FlashlightEnabled: spec.FlashlightEnabled,
	}
	if spec.CrouchDuration > 0 {
		crouch, err := transition.NewToggle(spec.CameraHeight, spec.CrouchHeight, spec.CrouchDuration, transition.LerpFloat)
		if err != nil {
			return fmt.Errorf("crouch: %w", err)
		}
		p.Crouch = crouch
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), p)
}

type focusSpec = prefabs.FocusComponentSpec

func addFocus(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[focusSpec](raw)
	if err != nil {
		return fmt.Errorf("decode focus spec: %w", err)
	}
	return ecs.Add(w, e, component.FocusComponent.Kind(), &component.Focus{MaxDistance: spec.MaxDistance})
}

type footstepsSpec = prefabs.FootstepsComponentSpec

func addFootsteps(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[footstepsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode footsteps spec: %w", err)
	}
	if spec.MaxPitch < spec.MinPitch {
		return fmt.Errorf("pitch range [%v, %v] is empty", spec.MinPitch, spec.MaxPitch)
	}
	return ecs.Add(w, e, component.FootstepsComponent.Kind(), &component.Footsteps{
		Enabled:           spec.Enabled,
		Clips:             spec.Clips,
		WalkInterval:      spec.WalkInterval,
		SprintInterval:    spec.SprintInterval,
		VelocityThreshold: spec.VelocityThreshold,
		MinPitch:          spec.MinPitch,
		MaxPitch:          spec.MaxPitch,
		LastIndex:         -1,
	})
}

type interactableSpec = prefabs.InteractableComponentSpec

func addInteractable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[interactableSpec](raw)
	if err != nil {
		return fmt.Errorf("decode interactable spec: %w", err)
	}

	kind := component.InteractableKind(spec.Kind)
	switch kind {
	case component.InteractableDoor, component.InteractableValve:
	default:
		return fmt.Errorf("unknown interactable kind %q", spec.Kind)
	}

	toggle, err := transition.NewToggle(common.Vec3{}, vec3(spec.Opened), spec.Duration, transition.LerpVec3)
	if err != nil {
		return fmt.Errorf("toggle: %w", err)
	}
	toggle.Reset(spec.StartOpen)

	base := transformOf(w, e).Rotation
	if spec.Base != nil {
		base = vec3(*spec.Base)
	}
	if err := ecs.Add(w, e, component.InteractableComponent.Kind(), &component.Interactable{
		Kind:      kind,
		Toggle:    toggle,
		Base:      base,
		OpenClip:  spec.OpenClip,
		CloseClip: spec.CloseClip,
	}); err != nil {
		return err
	}

	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		tr.Rotation = base.Add(toggle.Value())
	}
	return nil
}

type actuatorSpec = prefabs.ActuatorComponentSpec

func addActuator(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[actuatorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actuator spec: %w", err)
	}
	if _, err := transition.NewClock(spec.Duration); err != nil {
		return fmt.Errorf("actuator: %w", err)
	}
	return ecs.Add(w, e, component.ActuatorComponent.Kind(), &component.Actuator{
		From:     vec3(spec.From),
		To:       vec3(spec.To),
		Duration: spec.Duration,
		Value:    vec3(spec.To),
	})
}

type valveSpec = prefabs.ValveComponentSpec

func addValve(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[valveSpec](raw)
	if err != nil {
		return fmt.Errorf("decode valve spec: %w", err)
	}
	valve := &component.Valve{
		Flow:     spec.Flow,
		TurnClip: spec.TurnClip,
		LoopClip: spec.LoopClip,
	}
	if err := ecs.Add(w, e, component.ValveComponent.Kind(), valve); err != nil {
		return err
	}
	ctx.link(e, "valve water", spec.Water, func(target ecs.Entity) {
		valve.Water = uint64(target)
	})
	return nil
}

type waterSpec = prefabs.WaterComponentSpec

func addWater(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[waterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode water spec: %w", err)
	}
	rest := transformOf(w, e).Position.Y
	level, err := transition.NewLevel(rest, rest+spec.Rise, spec.FillRate, spec.DrainRate)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}
	if spec.Tolerance > 0 {
		level.Tolerance = spec.Tolerance
	}
	return ecs.Add(w, e, component.WaterComponent.Kind(), &component.Water{
		Level:    level,
		Debris:   spec.Debris,
		LoopClip: spec.LoopClip,
	})
}

type routerSpec = prefabs.RouterComponentSpec

func addRouter(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[routerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode router spec: %w", err)
	}
	if err := checkRange(spec.Range); err != nil {
		return err
	}
	return ecs.Add(w, e, component.RouterComponent.Kind(), &component.Router{
		Range:         spec.Range,
		RequireVolume: spec.RequireVolume,
	})
}

func addHighlight(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{})
}

type triggerSpec = prefabs.TriggerComponentSpec

func addTrigger(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[triggerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger spec: %w", err)
	}
	if spec.Width <= 0 || spec.Depth <= 0 {
		return fmt.Errorf("trigger size %vx%v must be positive", spec.Width, spec.Depth)
	}
	return ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{Width: spec.Width, Depth: spec.Depth})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width <= 0 || spec.Depth <= 0 {
		return fmt.Errorf("collider size %vx%v must be positive", spec.Width, spec.Depth)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Width:     spec.Width,
		Depth:     spec.Depth,
		OffsetX:   spec.OffsetX,
		OffsetZ:   spec.OffsetZ,
		Focusable: spec.Focusable,
	})
}

type audioClipSpec = prefabs.AudioClipSpec

type audioSpec = prefabs.AudioComponentSpec

func addAudio(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[audioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if len(spec.Clips) == 0 {
		return nil
	}
	comp, err := buildAudioComponentFromSpec(spec.Clips, ctx.Sinks)
	if err != nil {
		return fmt.Errorf("build audio component from spec: %w", err)
	}
	for _, name := range spec.Autoplay {
		for i := range comp.Names {
			if comp.Names[i] == name {
				comp.Play[i] = true
			}
		}
	}
	return ecs.Add(w, e, component.AudioComponent.Kind(), comp)
}

func buildAudioComponentFromSpec(audioSpecs []audioClipSpec, sinks Sinks) (*component.Audio, error) {
	n := len(audioSpecs)
	comp := &component.Audio{
		Names:   make([]string, 0, n),
		Players: make([]component.ClipPlayer, 0, n),
		Volume:  make([]float64, 0, n),
		Pitch:   make([]float64, 0, n),
		Play:    make([]bool, 0, n),
		Stop:    make([]bool, 0, n),
	}

	for i, clip := range audioSpecs {
		if clip.Name == "" {
			return nil, fmt.Errorf("audio clip %d has no name", i)
		}
		var player component.ClipPlayer
		if sinks != nil {
			p, err := sinks.Clip(clip)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
			}
			player = p
		}
		volume := clip.Volume
		if volume == 0 {
			volume = 1
		}
		comp.Names = append(comp.Names, clip.Name)
		comp.Players = append(comp.Players, player)
		comp.Volume = append(comp.Volume, volume)
		comp.Pitch = append(comp.Pitch, 1)
		comp.Play = append(comp.Play, false)
		comp.Stop = append(comp.Stop, false)
	}

	return comp, nil
}

type particlesSpec = prefabs.ParticlesComponentSpec

func addParticles(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[particlesSpec](raw)
	if err != nil {
		return fmt.Errorf("decode particles spec: %w", err)
	}
	if len(spec.Emitters) == 0 {
		return nil
	}

	at := transformOf(w, e).Position
	n := len(spec.Emitters)
	comp := &component.Particles{
		Names:    make([]string, 0, n),
		Emitters: make([]component.Emitter, 0, n),
		Start:    make([]bool, n),
		Stop:     make([]bool, n),
		Clear:    make([]bool, n),
	}
	for i, em := range spec.Emitters {
		if em.Name == "" {
			return fmt.Errorf("emitter %d has no name", i)
		}
		var emitter component.Emitter
		if ctx.Sinks != nil {
			out, err := ctx.Sinks.Emitter(em, at.Add(vec3(em.Offset)))
			if err != nil {
				return fmt.Errorf("emitter %d (%q): %w", i, em.Name, err)
			}
			emitter = out
		}
		comp.Names = append(comp.Names, em.Name)
		comp.Emitters = append(comp.Emitters, emitter)
	}
	for _, name := range spec.Autoplay {
		if i := comp.Index(name); i >= 0 {
			comp.Start[i] = true
		}
	}
	return ecs.Add(w, e, component.ParticlesComponent.Kind(), comp)
}

type roomSpec = prefabs.RoomComponentSpec

func addRoom(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[roomSpec](raw)
	if err != nil {
		return fmt.Errorf("decode room spec: %w", err)
	}
	room := &component.Room{}
	if err := ecs.Add(w, e, component.RoomComponent.Kind(), room); err != nil {
		return err
	}
	ctx.link(e, "room door", spec.Door, func(target ecs.Entity) {
		room.Door = uint64(target)
	})
	return nil
}

type roomAudioSpec = prefabs.RoomAudioComponentSpec

func addRoomAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[roomAudioSpec](raw)
	if err != nil {
		return fmt.Errorf("decode room audio spec: %w", err)
	}
	if spec.TransitionTime < 0 {
		return fmt.Errorf("room audio transition time %v is negative", spec.TransitionTime)
	}
	return ecs.Add(w, e, component.RoomAudioComponent.Kind(), &component.RoomAudio{
		Snapshot:           spec.Snapshot,
		DoorOpenSnapshot:   spec.DoorOpenSnapshot,
		DoorClosedSnapshot: spec.DoorClosedSnapshot,
		TransitionTime:     spec.TransitionTime,
		RugCutoff:          spec.RugCutoff,
		FloorCutoff:        spec.FloorCutoff,
	})
}

type surfaceSpec = prefabs.SurfaceComponentSpec

func addSurface(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[surfaceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode surface spec: %w", err)
	}
	surface := &component.Surface{Rug: spec.Rug}
	if err := ecs.Add(w, e, component.SurfaceComponent.Kind(), surface); err != nil {
		return err
	}
	ctx.link(e, "surface room", spec.Room, func(target ecs.Entity) {
		surface.Room = uint64(target)
	})
	return nil
}

type scriptSpec = prefabs.ScriptComponentSpec

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script path is empty")
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Path, Params: spec.Params})
}

type emissionSpec = prefabs.EmissionComponentSpec

func addEmission(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[emissionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode emission spec: %w", err)
	}
	return ecs.Add(w, e, component.EmissionComponent.Kind(), &component.Emission{Enabled: spec.Enabled})
}
