package ecs

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"
)

// The physics space lives on the floor plane: world X maps to cp X and
// world Z maps to cp Y. Height is handled by the player controller.
const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeTrigger
	collisionTypeActor
)

const (
	categorySolid uint = 1 << iota
	categoryTrigger
	categoryActor
	categoryFocus
	categoryQuery
)

// TriggerEvent reports an actor entering or leaving a trigger volume.
type TriggerEvent struct {
	Volume  Entity
	Actor   Entity
	Entered bool
}

// PhysicsWorld owns the Chipmunk space, the actor bodies and the static
// solid and trigger shapes of the scene.
type PhysicsWorld struct {
	space         *cp.Space
	handlersReady bool

	shapeToEntity map[*cp.Shape]Entity
	entityShapes  map[Entity][]*cp.Shape
	actors        map[Entity]*cp.Body
	pending       []TriggerEvent
}

// NewPhysicsWorld creates an empty floor-plane space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	pw := &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		entityShapes:  make(map[Entity][]*cp.Shape),
		actors:        make(map[Entity]*cp.Body),
	}
	pw.setupHandlers()
	return pw
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddActor creates a dynamic, non-rotating circle body for e.
func (pw *PhysicsWorld) AddActor(e Entity, x, z, radius float64) {
	if pw == nil || pw.space == nil || radius <= 0 {
		return
	}
	if _, ok := pw.actors[e]; ok {
		return
	}
	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: z})
	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeActor)
	shape.SetFilter(cp.NewShapeFilter(0, categoryActor, categorySolid|categoryTrigger))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.actors[e] = body
	pw.track(e, shape)
	log.Printf("PhysicsWorld: actor %s at (%.2f, %.2f) r=%.2f", e, x, z, radius)
}

// AddSolid adds a static box centered on (x, z). Solids block actors and
// are what the focus ray hits.
func (pw *PhysicsWorld) AddSolid(e Entity, x, z, width, depth float64) {
	shape := pw.addStaticBox(e, x, z, width, depth)
	if shape == nil {
		return
	}
	shape.SetFriction(0.8)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(0, categorySolid, cp.ALL_CATEGORIES))
}

// AddFocusable adds a static box that stops the focus ray but does not
// block actors. Doors and valves use it so they stay targetable while they
// swing.
func (pw *PhysicsWorld) AddFocusable(e Entity, x, z, width, depth float64) {
	shape := pw.addStaticBox(e, x, z, width, depth)
	if shape == nil {
		return
	}
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(0, categoryFocus, categoryQuery))
}

// AddTrigger adds a static sensor box centered on (x, z). Actors pass
// through it and generate enter/exit events.
func (pw *PhysicsWorld) AddTrigger(e Entity, x, z, width, depth float64) {
	shape := pw.addStaticBox(e, x, z, width, depth)
	if shape == nil {
		return
	}
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeTrigger)
	shape.SetFilter(cp.NewShapeFilter(0, categoryTrigger, categoryActor))
}

func (pw *PhysicsWorld) addStaticBox(e Entity, x, z, width, depth float64) *cp.Shape {
	if pw == nil || pw.space == nil || width <= 0 || depth <= 0 {
		return nil
	}
	bb := cp.BB{L: x - width/2, B: z - depth/2, R: x + width/2, T: z + depth/2}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	pw.space.AddShape(shape)
	pw.track(e, shape)
	return shape
}

func (pw *PhysicsWorld) track(e Entity, shape *cp.Shape) {
	pw.shapeToEntity[shape] = e
	pw.entityShapes[e] = append(pw.entityShapes[e], shape)
}

// RemoveEntity drops every shape and body registered for e.
func (pw *PhysicsWorld) RemoveEntity(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	for _, shape := range pw.entityShapes[e] {
		pw.space.RemoveShape(shape)
		delete(pw.shapeToEntity, shape)
	}
	delete(pw.entityShapes, e)
	if body, ok := pw.actors[e]; ok {
		pw.space.RemoveBody(body)
		delete(pw.actors, e)
	}
}

// SetActorVelocity sets the floor-plane velocity of an actor body.
func (pw *PhysicsWorld) SetActorVelocity(e Entity, vx, vz float64) {
	if pw == nil {
		return
	}
	if body, ok := pw.actors[e]; ok {
		body.SetVelocityVector(cp.Vector{X: vx, Y: vz})
	}
}

// ActorPosition returns the floor-plane position of an actor body.
func (pw *PhysicsWorld) ActorPosition(e Entity) (x, z float64, ok bool) {
	if pw == nil {
		return 0, 0, false
	}
	body, ok := pw.actors[e]
	if !ok {
		return 0, 0, false
	}
	p := body.Position()
	return p.X, p.Y, true
}

// Step advances the simulation. Trigger events raised during the step are
// buffered until DrainTriggers.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// DrainTriggers returns the buffered trigger events and clears them.
func (pw *PhysicsWorld) DrainTriggers() []TriggerEvent {
	if pw == nil || len(pw.pending) == 0 {
		return nil
	}
	out := pw.pending
	pw.pending = nil
	return out
}

// Raycast casts a floor-plane ray from (ox, oz) along (dx, dz) up to
// maxDist and returns the first solid or focusable hit.
func (pw *PhysicsWorld) Raycast(ox, oz, dx, dz, maxDist float64) (Entity, float64, bool) {
	if pw == nil || pw.space == nil || maxDist <= 0 {
		return 0, 0, false
	}
	l := math.Hypot(dx, dz)
	if l == 0 {
		return 0, 0, false
	}
	start := cp.Vector{X: ox, Y: oz}
	end := cp.Vector{X: ox + dx/l*maxDist, Y: oz + dz/l*maxDist}
	info := pw.space.SegmentQueryFirst(start, end, 0, cp.NewShapeFilter(0, categoryQuery, categorySolid|categoryFocus))
	if info.Shape == nil {
		return 0, 0, false
	}
	e, ok := pw.shapeToEntity[info.Shape]
	if !ok {
		return 0, 0, false
	}
	return e, info.Alpha * maxDist, true
}

func (pw *PhysicsWorld) setupHandlers() {
	if pw == nil || pw.handlersReady || pw.space == nil {
		return
	}

	triggerHandler := pw.space.NewCollisionHandler(collisionTypeActor, collisionTypeTrigger)
	triggerHandler.UserData = pw
	triggerHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		if world, ok := userData.(*PhysicsWorld); ok && world != nil {
			world.recordTrigger(arb, true)
		}
		return true
	}
	triggerHandler.SeparateFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) {
		if world, ok := userData.(*PhysicsWorld); ok && world != nil {
			world.recordTrigger(arb, false)
		}
	}

	pw.handlersReady = true
}

func (pw *PhysicsWorld) recordTrigger(arb *cp.Arbiter, entered bool) {
	shapeA, shapeB := arb.Shapes()
	actor, okA := pw.shapeToEntity[shapeA]
	volume, okB := pw.shapeToEntity[shapeB]
	if !okA || !okB {
		return
	}
	pw.pending = append(pw.pending, TriggerEvent{Volume: volume, Actor: actor, Entered: entered})
}
