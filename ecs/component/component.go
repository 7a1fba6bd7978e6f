package component

import (
	"errors"
	"reflect"
	"strconv"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID indexes a component store inside a world.
type ComponentID uint32

// String returns the registered type name, or component#N when unknown.
func (id ComponentID) String() string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	if int(id) > 0 && int(id) <= len(registry.names) {
		return registry.names[id-1]
	}
	return "component#" + strconv.FormatUint(uint64(id), 10)
}

var registry struct {
	mu    sync.RWMutex
	names []string
}

func register(name string) ComponentID {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.names = append(registry.names, name)
	return ComponentID(len(registry.names))
}

// ComponentKind is the typed key of one component store. The zero value
// is invalid.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: register(reflect.TypeFor[T]().String())}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }

func (k ComponentKind[T]) Valid() bool { return k.id != 0 }

func (k ComponentKind[T]) String() string { return k.id.String() }

// ComponentHandle is the package-level registration of a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
