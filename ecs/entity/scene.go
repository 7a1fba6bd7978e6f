package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/levels"
	"github.com/milk9111/undercroft/prefabs"
)

// LoadScene builds every entity of scene into w and resolves the links
// between them by name. It returns the scene names of the built entities.
func LoadScene(w *ecs.World, scene *levels.Scene, sinks Sinks) (map[string]ecs.Entity, error) {
	if w == nil {
		return nil, fmt.Errorf("load scene: world is nil")
	}
	if scene == nil {
		return nil, fmt.Errorf("load scene: scene is nil")
	}

	ctx := &buildContext{Sinks: sinks}
	built := make([]ecs.Entity, 0, len(scene.Entities))
	fail := func(err error) (map[string]ecs.Entity, error) {
		for _, e := range built {
			ecs.DestroyEntity(w, e)
		}
		return nil, fmt.Errorf("load scene %q: %w", scene.Name, err)
	}

	seen := make(map[string]bool, len(scene.Entities))
	for i, placed := range scene.Entities {
		if placed.Name != "" {
			if seen[placed.Name] {
				return fail(fmt.Errorf("entity %d: duplicate name %q", i, placed.Name))
			}
			seen[placed.Name] = true
		}

		spec, err := placedSpec(placed)
		if err != nil {
			return fail(fmt.Errorf("entity %d (%s): %w", i, placed.Prefab, err))
		}
		ctx.PrefabPath = placed.Prefab
		e, err := buildFromSpec(w, spec, ctx)
		if err != nil {
			return fail(err)
		}
		built = append(built, e)
	}

	names := Names(w)
	ctx.resolve(names)
	log.Printf("scene: loaded %q id=%s entities=%d", scene.Name, scene.ID, len(built))
	return names, nil
}

// placedSpec loads the prefab of placed and applies the scene overrides.
func placedSpec(placed levels.Entity) (entityPrefabSpec, error) {
	spec, err := prefabs.LoadEntityBuildSpec(placed.Prefab)
	if err != nil {
		return entityPrefabSpec{}, err
	}

	components := make(map[string]any, len(spec.Components)+len(placed.Components)+1)
	for k, v := range spec.Components {
		components[k] = v
	}
	for k, v := range placed.Components {
		components[k] = v
	}

	if placed.Position != nil || placed.Rotation != nil {
		tr, err := prefabs.DecodeComponentSpec[transformSpec](components["transform"])
		if err != nil {
			return entityPrefabSpec{}, fmt.Errorf("decode transform spec: %w", err)
		}
		if placed.Position != nil {
			tr.Position = *placed.Position
		}
		if placed.Rotation != nil {
			tr.Rotation = *placed.Rotation
		}
		components["transform"] = tr
	}

	if placed.Name != "" {
		components["name"] = placed.Name
		spec.Name = placed.Name
	}
	spec.Components = components
	return spec, nil
}
