package ecs

// EventKind identifies a bus notification.
type EventKind string

const (
	// EventOpening and EventClosing fire when an interactable starts a
	// transition. Duration carries the transition length.
	EventOpening EventKind = "opening"
	EventClosing EventKind = "closing"
	// EventOpened and EventClosed fire when the transition completes.
	EventOpened EventKind = "opened"
	EventClosed EventKind = "closed"

	EventFull    EventKind = "full"
	EventDrained EventKind = "drained"

	// EventFocus fires when the actor's focus target changes. Distance
	// carries the actor-to-target distance.
	EventFocus EventKind = "focus"
)

// Event is the bus payload.
type Event struct {
	Kind     EventKind
	Source   Entity
	Duration float64
	Distance float64
}

// Handler receives bus events.
type Handler func(Event)

// Subscription identifies one handler registration.
type Subscription struct {
	kind EventKind
	id   uint64
}

// Valid reports whether the subscription came from Subscribe.
func (s Subscription) Valid() bool {
	return s.id != 0
}

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is a synchronous multicast channel keyed by event kind. Handlers run
// in registration order inside Publish; nothing is queued and nothing is
// filtered by source.
type Bus struct {
	nextID   uint64
	handlers map[EventKind][]subscriber
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[EventKind][]subscriber)}
}

// Subscribe registers fn for kind.
func (b *Bus) Subscribe(kind EventKind, fn Handler) Subscription {
	if b == nil || fn == nil {
		return Subscription{}
	}
	if b.handlers == nil {
		b.handlers = make(map[EventKind][]subscriber)
	}
	b.nextID++
	b.handlers[kind] = append(b.handlers[kind], subscriber{id: b.nextID, fn: fn})
	return Subscription{kind: kind, id: b.nextID}
}

// Unsubscribe removes a registration. It reports false for unknown or
// already removed subscriptions.
func (b *Bus) Unsubscribe(sub Subscription) bool {
	if b == nil || !sub.Valid() {
		return false
	}
	subs := b.handlers[sub.kind]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		next := make([]subscriber, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, sub.kind)
		} else {
			b.handlers[sub.kind] = next
		}
		return true
	}
	return false
}

// Publish delivers evt to every handler of its kind. Handlers added or
// removed during delivery take effect from the next Publish.
func (b *Bus) Publish(evt Event) {
	if b == nil {
		return
	}
	for _, s := range b.handlers[evt.Kind] {
		s.fn(evt)
	}
}

// Len reports how many handlers are registered for kind.
func (b *Bus) Len(kind EventKind) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[kind])
}
