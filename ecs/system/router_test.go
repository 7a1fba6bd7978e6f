package system

import (
	"testing"

	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRouter(t *testing.T, w *ecs.World, e ecs.Entity, router component.Router) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.RouterComponent.Kind(), &router))
	require.NoError(t, ecs.Add(w, e, component.HighlightComponent.Kind(), &component.Highlight{}))
}

func TestRouterGating(t *testing.T) {
	tests := []struct {
		name     string
		router   component.Router
		input    component.Input
		focus    bool
		distance float64
		want     bool
	}{
		{
			name:     "interact in range",
			router:   component.Router{Range: 3},
			input:    component.Input{Interact: true},
			focus:    true,
			distance: 2,
			want:     true,
		},
		{
			name:     "primary action",
			router:   component.Router{Range: 3},
			input:    component.Input{Primary: true},
			focus:    true,
			distance: 2,
			want:     true,
		},
		{
			name:     "no press",
			router:   component.Router{Range: 3},
			focus:    true,
			distance: 2,
		},
		{
			name:   "not focused",
			router: component.Router{Range: 3},
			input:  component.Input{Interact: true},
		},
		{
			name:     "out of range",
			router:   component.Router{Range: 3},
			input:    component.Input{Interact: true},
			focus:    true,
			distance: 3.5,
		},
		{
			name:     "unlimited range",
			router:   component.Router{},
			input:    component.Input{Interact: true},
			focus:    true,
			distance: 40,
			want:     true,
		},
		{
			name:     "volume required but outside",
			router:   component.Router{Range: 3, RequireVolume: true},
			input:    component.Input{Interact: true},
			focus:    true,
			distance: 1,
		},
		{
			name:     "volume required and inside",
			router:   component.Router{Range: 3, RequireVolume: true, Armed: true},
			input:    component.Input{Interact: true},
			focus:    true,
			distance: 1,
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.AddSystem(NewRouterSystem())
			player := newPlayer(t, w)
			door := newDoor(t, w, 1.0)
			addRouter(t, w, door, tt.router)

			in, _ := ecs.Get(w, player, component.InputComponent.Kind())
			*in = tt.input
			if tt.focus {
				SetFocus(w, player, door, tt.distance, true)
			}

			w.Step(0)

			it, _ := ecs.Get(w, door, component.InteractableComponent.Kind())
			assert.Equal(t, tt.want, it.Toggle.IsTransitioning())
		})
	}
}

func TestRouterIgnoresFocusedEntityWithoutRouter(t *testing.T) {
	w := ecs.NewWorld()
	w.AddSystem(NewRouterSystem())
	player := newPlayer(t, w)
	door := newDoor(t, w, 1.0)

	in, _ := ecs.Get(w, player, component.InputComponent.Kind())
	in.Interact = true
	SetFocus(w, player, door, 1, true)
	w.Step(0)

	it, _ := ecs.Get(w, door, component.InteractableComponent.Kind())
	assert.False(t, it.Toggle.IsTransitioning())
}

func TestTriggerVolumeArmsRouterAndHighlight(t *testing.T) {
	w := ecs.NewWorld()
	player := newPlayer(t, w)
	door := newDoor(t, w, 1.0)
	addRouter(t, w, door, component.Router{RequireVolume: true})
	router, _ := ecs.Get(w, door, component.RouterComponent.Kind())
	h, _ := ecs.Get(w, door, component.HighlightComponent.Kind())

	NotifyTriggerEnter(w, door, player)
	NotifyTriggerEnter(w, door, player)
	assert.True(t, router.Armed)
	assert.True(t, h.Enabled)
	assert.Equal(t, 1, h.Changes)

	NotifyTriggerExit(w, door, player)
	NotifyTriggerExit(w, door, player)
	assert.False(t, router.Armed)
	assert.False(t, h.Enabled)
	assert.Equal(t, 2, h.Changes)
}

func TestTriggerVolumeIgnoresNonPlayers(t *testing.T) {
	w := ecs.NewWorld()
	door := newDoor(t, w, 1.0)
	addRouter(t, w, door, component.Router{RequireVolume: true})
	crate := w.CreateEntity()

	NotifyTriggerEnter(w, door, crate)

	router, _ := ecs.Get(w, door, component.RouterComponent.Kind())
	h, _ := ecs.Get(w, door, component.HighlightComponent.Kind())
	assert.False(t, router.Armed)
	assert.Zero(t, h.Changes)
}

func TestSetHighlightWithoutComponent(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()

	assert.NotPanics(t, func() { SetHighlight(w, e, true) })
}
