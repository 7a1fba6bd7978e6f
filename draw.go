package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/undercroft/common"
	"github.com/milk9111/undercroft/ecs"
	"github.com/milk9111/undercroft/ecs/component"
	"github.com/milk9111/undercroft/session"
	"golang.org/x/image/colornames"
)

// topDown draws the floor plane seen from above, centered on the player.
type topDown struct {
	s      *session.Session
	w      *ecs.World
	center common.Vec3
}

func newTopDown(s *session.Session) topDown {
	v := topDown{s: s, w: s.World()}
	if p, ok := s.Player(); ok {
		if tr, ok := ecs.Get(v.w, p, component.TransformComponent.Kind()); ok {
			v.center = tr.Position
		}
	}
	return v
}

func (v topDown) project(p common.Vec3) (x, y float64, ok bool) {
	x = common.BaseWidth/2 + (p.X-v.center.X)*common.PixelsPerUnit
	y = common.BaseHeight/2 - (p.Z-v.center.Z)*common.PixelsPerUnit
	return x, y, x >= 0 && y >= 0 && x < common.BaseWidth && y < common.BaseHeight
}

func (v topDown) rect(screen *ebiten.Image, center common.Vec3, width, depth float64, fill, stroke color.Color) {
	x, y, _ := v.project(center)
	w := width * common.PixelsPerUnit
	h := depth * common.PixelsPerUnit
	x0, y0 := float32(x-w/2), float32(y-h/2)
	if fill != nil {
		vector.FillRect(screen, x0, y0, float32(w), float32(h), fill, false)
	}
	if stroke != nil {
		vector.StrokeRect(screen, x0, y0, float32(w), float32(h), 1, stroke, false)
	}
}

func (v topDown) drawScene(screen *ebiten.Image) {
	w := v.w

	ecs.ForEach2(w, component.SurfaceComponent.Kind(), component.TriggerComponent.Kind(), func(e ecs.Entity, s *component.Surface, t *component.Trigger) {
		fill := color.Color(color.NRGBA{R: 0x26, G: 0x22, B: 0x1e, A: 0xff})
		if s.Rug {
			fill = color.NRGBA{R: 0x5a, G: 0x22, B: 0x22, A: 0xff}
		}
		v.rect(screen, position(w, e), t.Width, t.Depth, fill, nil)
	})

	ecs.ForEach(w, component.WaterComponent.Kind(), func(e ecs.Entity, wc *component.Water) {
		if wc.Level == nil {
			return
		}
		a := uint8(60 + 160*wc.Level.Fraction())
		v.rect(screen, position(w, e), 2, 2, color.NRGBA{R: 0x2f, G: 0x5f, B: 0x9f, A: a}, colornames.Steelblue)
	})

	ecs.ForEach(w, component.RouterComponent.Kind(), func(e ecs.Entity, r *component.Router) {
		t, ok := ecs.Get(w, e, component.TriggerComponent.Kind())
		if !ok {
			return
		}
		c := color.Color(colornames.Dimgray)
		if r.Armed {
			c = colornames.Gold
		}
		v.rect(screen, position(w, e), t.Width, t.Depth, nil, c)
	})

	ecs.ForEach(w, component.ColliderComponent.Kind(), func(e ecs.Entity, c *component.Collider) {
		if ecs.Has(w, e, component.InteractableComponent.Kind()) {
			return
		}
		center := position(w, e).Add(common.Vec3{X: c.OffsetX, Z: c.OffsetZ})
		fill := color.Color(colornames.Slategray)
		if c.Focusable {
			fill = colornames.Peru
			if em, ok := ecs.Get(w, e, component.EmissionComponent.Kind()); ok && em.Enabled {
				fill = colornames.Lightgreen
			}
		}
		v.rect(screen, center, c.Width, c.Depth, fill, nil)
	})

	ecs.ForEach(w, component.InteractableComponent.Kind(), func(e ecs.Entity, it *component.Interactable) {
		v.drawInteractable(screen, e, it)
	})

	v.drawPlayer(screen)
}

func (v topDown) drawInteractable(screen *ebiten.Image, e ecs.Entity, it *component.Interactable) {
	w := v.w
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	c := color.Color(colornames.Burlywood)
	if hl, ok := ecs.Get(w, e, component.HighlightComponent.Kind()); ok && hl.Enabled {
		c = colornames.Yellow
	}
	x, y, _ := v.project(tr.Position)

	if it.Kind == component.InteractableValve {
		r := float32(0.25 * common.PixelsPerUnit)
		vector.StrokeCircle(screen, float32(x), float32(y), r, 2, c, true)
		spoke := tr.Rotation.Z * math.Pi / 180
		vector.StrokeLine(screen, float32(x), float32(y), float32(x)+r*float32(math.Cos(spoke)), float32(y)+r*float32(math.Sin(spoke)), 2, c, true)
		return
	}

	width := 1.2
	if col, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
		width = col.Width
	}
	hinge := common.Vec3{X: tr.Position.X - width/2, Z: tr.Position.Z}
	hx, hy, _ := v.project(hinge)
	dx, dz := common.YawDir(tr.Rotation.Y + 90)
	ex := hx + dx*width*common.PixelsPerUnit
	ey := hy - dz*width*common.PixelsPerUnit
	vector.StrokeLine(screen, float32(hx), float32(hy), float32(ex), float32(ey), 4, c, true)
}

func (v topDown) drawPlayer(screen *ebiten.Image) {
	w := v.w
	p, ok := v.s.Player()
	if !ok {
		return
	}
	pc, ok := ecs.Get(w, p, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	x, y, _ := v.project(v.center)

	reach := 2.0
	if f, ok := ecs.Get(w, p, component.FocusComponent.Kind()); ok && f.HasTarget {
		reach = f.Distance
	}
	dx, dz := common.YawDir(pc.Yaw)
	ray := color.Color(colornames.Gray)
	if pc.Flashlight {
		ray = colornames.Lightyellow
	}
	vector.StrokeLine(screen, float32(x), float32(y),
		float32(x+dx*reach*common.PixelsPerUnit), float32(y-dz*reach*common.PixelsPerUnit), 1, ray, true)

	body := color.Color(colornames.Crimson)
	if pc.Crouch != nil && pc.Crouch.IsOpen() {
		body = colornames.Darkred
	}
	vector.FillCircle(screen, float32(x), float32(y), float32(pc.Radius*common.PixelsPerUnit), body, true)
}

func position(w *ecs.World, e ecs.Entity) common.Vec3 {
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return tr.Position
	}
	return common.Vec3{}
}
