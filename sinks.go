package main

import (
	"fmt"

	"github.com/milk9111/undercroft/assets"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/fx"
	"github.com/milk9111/undercroft/mixer"
	"github.com/milk9111/undercroft/prefabs"
)

const defaultClipGroup = "sfx"

// sceneSinks backs prefab audio with mixer voices and particles with the
// fx pool.
type sceneSinks struct {
	mixer *mixer.Mixer
	fx    *fx.Pool
}

func (s sceneSinks) Clip(spec prefabs.AudioClipSpec) (component.ClipPlayer, error) {
	data, err := assets.LoadAudio(spec.File)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", spec.File, err)
	}
	group := spec.Group
	if group == "" {
		group = defaultClipGroup
	}
	v, err := s.mixer.LoadWAV(group, data, spec.Loop)
	if err != nil {
		return nil, fmt.Errorf("clip %q: %w", spec.Name, err)
	}
	return v, nil
}

func (s sceneSinks) Emitter(spec prefabs.EmitterSpec, at common.Vec3) (component.Emitter, error) {
	return s.fx.New(spec, at)
}
