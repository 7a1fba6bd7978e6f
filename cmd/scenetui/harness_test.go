package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHarness(t *testing.T) (*harness, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	sess, err := session.New(session.Options{Scene: "undercroft.json", Seed: 1})
	require.NoError(t, err)
	return newHarness(screen, sess), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func screenText(s tcell.SimulationScreen) string {
	w, h := s.Size()
	var b strings.Builder
	for y := range h {
		for x := range w {
			ch, _, _, _ := s.GetContent(x, y)
			b.WriteRune(ch)
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func TestHarnessMovesPlayerForHeldTicks(t *testing.T) {
	h, _ := newTestHarness(t)
	p, _ := h.sess.Player()
	tr, _ := ecs.Get(h.sess.World(), p, component.TransformComponent.Kind())

	h.handleKey(key('w'))
	for range moveTicks + 5 {
		h.tick(1.0 / 60)
	}

	assert.InDelta(t, 3.0*moveTicks/60, tr.Position.Z, 0.1)
	assert.Zero(t, h.moveLeft)
}

func TestHarnessEdgesLastOneTick(t *testing.T) {
	h, _ := newTestHarness(t)
	p, _ := h.sess.Player()
	pc, _ := ecs.Get(h.sess.World(), p, component.PlayerComponent.Kind())

	h.handleKey(key('f'))
	h.tick(1.0 / 60)
	h.tick(1.0 / 60)
	assert.True(t, pc.Flashlight)

	h.handleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	h.tick(1.0 / 60)
	h.tick(1.0 / 60)
	assert.Equal(t, lookStep*pc.MouseSensitivity, pc.Yaw)
}

func TestHarnessPauseFreezesTime(t *testing.T) {
	h, _ := newTestHarness(t)

	h.handleKey(key('p'))
	h.tick(1.0 / 60)
	assert.Zero(t, h.sess.World().Time().Frame)

	h.handleKey(key('p'))
	h.tick(1.0 / 60)
	assert.Equal(t, uint64(1), h.sess.World().Time().Frame)
}

func TestHarnessQuit(t *testing.T) {
	h, _ := newTestHarness(t)
	assert.True(t, h.handleEvent(key('w')))
	assert.False(t, h.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestHarnessDrawsScene(t *testing.T) {
	h, screen := newTestHarness(t)
	h.tick(1.0 / 60)
	h.draw()

	text := screenText(screen)
	assert.Contains(t, text, "@")
	assert.Contains(t, text, "D")
	assert.Contains(t, text, "undercroft t=")
	assert.Contains(t, text, "cellar_door:closed")
}

func TestHarnessLogsBusEvents(t *testing.T) {
	h, _ := newTestHarness(t)
	valve := h.sess.Names()["cistern_valve"]

	it, _ := ecs.Get(h.sess.World(), valve, component.InteractableComponent.Kind())
	require.NotNil(t, it)
	h.sess.World().Bus().Publish(ecs.Event{Kind: ecs.EventOpening, Source: valve})

	require.NotEmpty(t, h.eventLog)
	assert.Contains(t, h.eventLog[len(h.eventLog)-1], "opening")
	assert.Contains(t, h.eventLog[len(h.eventLog)-1], "cistern_valve")
}
