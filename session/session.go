// Package session loads a scene into a world and steps it with the full
// system order. The ebiten host and the terminal harness both drive one.
package session

import (
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/ecs/entity"
	"github.com/milk9111/undercroft/ecs/system"
	"github.com/milk9111/undercroft/levels"
	"github.com/milk9111/undercroft/prefabs"
)

type Options struct {
	// Scene is a file name under levels/.
	Scene string
	Sinks entity.Sinks
	Mixer system.SnapshotMixer
	Seed  uint64
	// Input adds the ebiten input system. Headless hosts feed input
	// through Step instead.
	Input bool
}

type Session struct {
	world   *ecs.World
	scene   *levels.Scene
	names   map[string]ecs.Entity
	player  ecs.Entity
	scripts *system.ScriptSystem
	mixer   system.SnapshotMixer
}

func New(opts Options) (*Session, error) {
	if opts.Scene == "" {
		return nil, fmt.Errorf("session: scene name is empty")
	}
	scene, err := levels.LoadSceneFromFS(opts.Scene)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())

	names, err := entity.LoadScene(w, scene, opts.Sinks)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	s := &Session{
		world:   w,
		scene:   scene,
		names:   names,
		scripts: system.NewScriptSystem(prefabs.LoadScript),
		mixer:   opts.Mixer,
	}
	if p, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		s.player = p
	} else {
		log.Printf("session: scene %q has no player", scene.Name)
	}

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	if opts.Input {
		w.AddSystem(system.NewInputSystem())
	}
	w.AddSystem(system.NewPlayerControllerSystem(rng))
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewFocusSystem())
	w.AddSystem(system.NewRouterSystem())
	w.AddSystem(system.NewValveSystem())
	w.AddSystem(system.NewInteractableSystem())
	w.AddSystem(system.NewActuatorSystem())
	w.AddSystem(system.NewWaterSystem())
	w.AddSystem(system.NewRoomSystem())
	w.AddSystem(system.NewRoomAudioSystem(opts.Mixer))
	w.AddSystem(s.scripts)
	w.AddSystem(system.NewAudioSystem())
	w.AddSystem(system.NewParticleSystem())

	return s, nil
}

func (s *Session) World() *ecs.World { return s.world }

func (s *Session) Scene() *levels.Scene { return s.scene }

// Names maps scene names to entities.
func (s *Session) Names() map[string]ecs.Entity { return s.names }

func (s *Session) Player() (ecs.Entity, bool) {
	return s.player, !s.player.IsZero() && s.world.IsAlive(s.player)
}

// Step advances the world by dt. A non-nil in replaces the player's input
// for this tick; its edges are cleared afterwards.
func (s *Session) Step(dt float64, in *component.Input) {
	var slot *component.Input
	if in != nil {
		if p, ok := s.Player(); ok {
			if cur, ok := ecs.Get(s.world, p, component.InputComponent.Kind()); ok {
				*cur = *in
				slot = cur
			}
		}
	}

	s.world.Step(dt)

	if slot != nil {
		slot.Interact = false
		slot.Primary = false
		slot.Crouch = false
		slot.Flashlight = false
		slot.Jump = false
	}
}

// Reload recompiles the prop scripts among changed paths and retunes the
// live entities placed from changed prefab specs.
func (s *Session) Reload(paths []string) {
	for _, p := range paths {
		switch {
		case prefabs.IsScriptFile(p):
			log.Printf("session: reload script %s", p)
			s.scripts.Reload(p)
		case prefabs.IsSpecFile(p):
			s.retune(p)
		}
	}
}

func (s *Session) retune(path string) {
	base := filepath.Base(filepath.FromSlash(path))
	n := 0
	for _, placed := range s.scene.Entities {
		if filepath.Base(filepath.FromSlash(placed.Prefab)) != base {
			continue
		}
		e, ok := s.names[placed.Name]
		if !ok || !s.world.IsAlive(e) {
			continue
		}
		if err := entity.RetunePlaced(s.world, e, placed); err != nil {
			log.Printf("session: reload %s: %v", path, err)
			continue
		}
		n++
	}
	log.Printf("session: reload prefab %s retuned=%d", base, n)
}
