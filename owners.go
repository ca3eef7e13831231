package solo

import (
	"reflect"
	"sync"
)

// ownerIndex is the reverse index from containers to the singleton types
// they currently hold. It lets ContainerDestroyed and NotifyShutdown resolve
// a container's claims without scanning every handle.
type ownerIndex struct {
	mu    sync.RWMutex
	types map[Container][]reflect.Type
}

func newOwnerIndex() *ownerIndex {
	return &ownerIndex{
		types: make(map[Container][]reflect.Type),
	}
}

// add records that c is the recognized holder of t.
func (ix *ownerIndex) add(c Container, t reflect.Type) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.types[c] = appendUnique(ix.types[c], t)
}

// remove drops c from the index and returns the types it held.
func (ix *ownerIndex) remove(c Container) []reflect.Type {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	held := ix.types[c]
	delete(ix.types, c)
	return held
}

// heldBy returns a copy of the types currently held by c.
func (ix *ownerIndex) heldBy(c Container) []reflect.Type {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	held, ok := ix.types[c]
	if !ok {
		return nil
	}
	result := make([]reflect.Type, len(held))
	copy(result, held)
	return result
}

// containers returns a copy of all containers currently holding claims.
func (ix *ownerIndex) containers() []Container {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	result := make([]Container, 0, len(ix.types))
	for c := range ix.types {
		result = append(result, c)
	}
	return result
}

func appendUnique[T comparable](slice []T, item T) []T {
	for _, existing := range slice {
		if existing == item {
			return slice
		}
	}
	return append(slice, item)
}
