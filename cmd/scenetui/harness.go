package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/session"
)

const (
	cellsPerUnit = 2.0
	moveTicks    = 12
	lookStep     = 7.5
	maxLogLines  = 6
)

// harness drives a session from terminal keys and draws the floor plane
// as characters. Terminals report no key releases, so a movement key holds
// for moveTicks ticks.
type harness struct {
	screen tcell.Screen
	sess   *session.Session

	move     component.Input
	moveLeft int
	edges    component.Input
	paused   bool
	quit     bool
	eventLog []string
}

func newHarness(screen tcell.Screen, sess *session.Session) *harness {
	h := &harness{screen: screen, sess: sess}

	byID := make(map[ecs.Entity]string)
	for name, e := range sess.Names() {
		byID[e] = name
	}
	bus := sess.World().Bus()
	for _, kind := range []ecs.EventKind{ecs.EventOpening, ecs.EventClosing, ecs.EventOpened, ecs.EventClosed, ecs.EventFull, ecs.EventDrained, ecs.EventFocus} {
		bus.Subscribe(kind, func(evt ecs.Event) {
			name, ok := byID[evt.Source]
			if !ok {
				name = evt.Source.String()
			}
			h.logf("%6.2fs %-8s %s", sess.World().Time().Elapsed, evt.Kind, name)
		})
	}
	return h
}

func (h *harness) logf(format string, args ...any) {
	h.eventLog = append(h.eventLog, fmt.Sprintf(format, args...))
	if len(h.eventLog) > maxLogLines {
		h.eventLog = h.eventLog[len(h.eventLog)-maxLogLines:]
	}
}

// handleEvent reports false when the harness should exit.
func (h *harness) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return !h.quit
}

func (h *harness) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		h.quit = true
		return
	case tcell.KeyUp:
		h.hold(0, 1)
		return
	case tcell.KeyDown:
		h.hold(0, -1)
		return
	case tcell.KeyLeft:
		h.edges.LookX -= lookStep
		return
	case tcell.KeyRight:
		h.edges.LookX += lookStep
		return
	case tcell.KeyRune:
	default:
		return
	}

	switch ev.Rune() {
	case 'w':
		h.hold(0, 1)
	case 's':
		h.hold(0, -1)
	case 'a':
		h.hold(-1, 0)
	case 'd':
		h.hold(1, 0)
	case 'W':
		h.hold(0, 1)
		h.move.Sprint = true
	case 'q':
		h.edges.LookX -= lookStep
	case 'r':
		h.edges.LookX += lookStep
	case 'e':
		h.edges.Interact = true
	case 'c':
		h.edges.Crouch = true
	case 'f':
		h.edges.Flashlight = true
	case ' ':
		h.edges.Jump = true
	case 'p':
		h.paused = !h.paused
	case 'x':
		h.quit = true
	}
}

func (h *harness) hold(x, z float64) {
	h.move = component.Input{MoveX: x, MoveZ: z}
	h.moveLeft = moveTicks
}

// tick steps the session once with the held movement and pending edges.
func (h *harness) tick(dt float64) {
	if h.paused {
		return
	}
	in := h.edges
	if h.moveLeft > 0 {
		in.MoveX, in.MoveZ, in.Sprint = h.move.MoveX, h.move.MoveZ, h.move.Sprint
		h.moveLeft--
	}
	h.edges = component.Input{}
	h.sess.Step(dt, &in)
}

func (h *harness) draw() {
	s := h.screen
	s.Clear()
	width, height := s.Size()
	mapHeight := height - maxLogLines - 4
	if mapHeight < 1 {
		mapHeight = height
	}

	r := h.sess.Report()
	var center common.Vec3
	if r.Player != nil {
		center = common.Vec3{X: r.Player.Position[0], Z: r.Player.Position[2]}
	}
	cell := func(p common.Vec3) (int, int) {
		x := width/2 + int(math.Round((p.X-center.X)*cellsPerUnit*2))
		y := mapHeight/2 - int(math.Round((p.Z-center.Z)*cellsPerUnit))
		return x, y
	}
	put := func(x, y int, ch rune, style tcell.Style) {
		if x >= 0 && y >= 0 && x < width && y < mapHeight {
			s.SetContent(x, y, ch, nil, style)
		}
	}
	box := func(c common.Vec3, w, d float64, ch rune, style tcell.Style) {
		x0, y0 := cell(common.Vec3{X: c.X - w/2, Z: c.Z + d/2})
		x1, y1 := cell(common.Vec3{X: c.X + w/2, Z: c.Z - d/2})
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				put(x, y, ch, style)
			}
		}
	}

	w := h.sess.World()
	pos := func(e ecs.Entity) common.Vec3 {
		if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			return tr.Position
		}
		return common.Vec3{}
	}

	ecs.ForEach2(w, component.SurfaceComponent.Kind(), component.TriggerComponent.Kind(), func(e ecs.Entity, sf *component.Surface, t *component.Trigger) {
		ch, style := '.', tcell.StyleDefault.Foreground(tcell.ColorGray)
		if sf.Rug {
			ch, style = ':', tcell.StyleDefault.Foreground(tcell.ColorMaroon)
		}
		box(pos(e), t.Width, t.Depth, ch, style)
	})
	ecs.ForEach(w, component.WaterComponent.Kind(), func(e ecs.Entity, wc *component.Water) {
		if wc.Level == nil {
			return
		}
		ch := '-'
		if wc.Level.Fraction() > 0.5 {
			ch = '~'
		}
		box(pos(e), 2, 2, ch, tcell.StyleDefault.Foreground(tcell.ColorBlue))
	})
	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if ecs.Has(w, e, component.InteractableComponent.Kind()) {
			return
		}
		ch, style := '#', tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if c.Focusable {
			ch, style = '*', tcell.StyleDefault.Foreground(tcell.ColorYellow)
			if em, ok := ecs.Get(w, e, component.EmissionComponent.Kind()); ok && em.Enabled {
				style = style.Foreground(tcell.ColorGreen)
			}
		}
		box(pos(e).Add(common.Vec3{X: c.OffsetX, Z: c.OffsetZ}), c.Width, c.Depth, ch, style)
	})
	ecs.ForEach(w, component.InteractableComponent.Kind(), func(e ecs.Entity, it *component.Interactable) {
		ch := 'D'
		if it.Kind == component.InteractableValve {
			ch = 'V'
		}
		if it.Toggle != nil && it.Toggle.IsOpen() {
			ch += 'a' - 'A'
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorOlive)
		if hl, ok := ecs.Get(w, e, component.HighlightComponent.Kind()); ok && hl.Enabled {
			style = style.Reverse(true)
		}
		x, y := cell(pos(e))
		put(x, y, ch, style)
	})
	if r.Player != nil {
		x, y := cell(center)
		put(x, y, '@', tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		dx, dz := common.YawDir(r.Player.Yaw)
		fx, fy := cell(center.Add(common.Vec3{X: dx, Z: dz}))
		put(fx, fy, '+', tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	row := mapHeight
	text := func(str string) {
		for i, ch := range []rune(str) {
			if i >= width {
				break
			}
			s.SetContent(i, row, ch, nil, tcell.StyleDefault)
		}
		row++
	}
	text(h.statusLine(r))
	text(h.stateLine(r))
	text("wasd/arrows move  q/r turn  e interact  c crouch  f light  space jump  p pause  esc quit")
	for _, line := range h.eventLog {
		text(line)
	}
	s.Show()
}

func (h *harness) statusLine(r session.Report) string {
	line := fmt.Sprintf("%s t=%.2fs", r.Scene, r.Time)
	if r.Snapshot != "" {
		line += " snapshot=" + r.Snapshot
	}
	if h.paused {
		line += " [paused]"
	}
	if p := r.Player; p != nil {
		line += fmt.Sprintf(" pos=(%.1f,%.1f) yaw=%.0f", p.Position[0], p.Position[2], p.Yaw)
		if p.Focus != "" {
			line += fmt.Sprintf(" focus=%s@%.1f", p.Focus, p.Distance)
		}
		if p.Crouched {
			line += " crouched"
		}
	}
	return line
}

func (h *harness) stateLine(r session.Report) string {
	line := ""
	for _, it := range r.Interactables {
		line += fmt.Sprintf("%s:%s ", it.Name, it.State)
	}
	for _, wr := range r.Water {
		line += fmt.Sprintf("%s:%.2f(%s) ", wr.Name, wr.Level, wr.Mode)
	}
	return line
}
