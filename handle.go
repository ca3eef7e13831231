package solo

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// lifecycleState tracks where a singleton type is in its claim lifecycle.
type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateInitializing
	stateReady
	stateDestroyed
)

func (s lifecycleState) String() string {
	switch s {
	case stateUninitialized:
		return "uninitialized"
	case stateInitializing:
		return "initializing"
	case stateReady:
		return "ready"
	case stateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// liveRef pairs a claimed singleton with the container hosting it.
type liveRef struct {
	singleton Singleton
	container Container
}

// handle is the per-type state holder. Each singleton type gets exactly one
// handle per registry, created lazily on first access and kept for the
// registry's lifetime.
type handle struct {
	// createMu serializes the locate-or-create critical section for one
	// type. Unrelated types never contend on it, and it is never held
	// longer than one host create plus one Init call.
	createMu sync.Mutex

	// regMu serializes self-registration. It is distinct from createMu so
	// that a creation running under createMu can synchronously re-enter the
	// registration path without deadlocking.
	regMu sync.Mutex

	// claimed is set the moment a container claims the type, before Init
	// runs. It backs Peek, which is usable from inside Init itself.
	claimed atomic.Pointer[liveRef]

	// live is published only after Init has returned, so the lock-free fast
	// path in Acquire never observes a partially initialized singleton.
	live atomic.Pointer[liveRef]

	// state is guarded by regMu.
	state lifecycleState

	// shutdown is the one-way per-type latch. Once set, the type never
	// returns to ready.
	shutdown atomic.Bool
}

// handleIndex maps singleton types to their handles.
type handleIndex struct {
	data sync.Map // reflect.Type -> *handle
}

// get returns the handle for t, creating it if needed.
func (ix *handleIndex) get(t reflect.Type) *handle {
	if h, ok := ix.data.Load(t); ok {
		return h.(*handle)
	}
	h, _ := ix.data.LoadOrStore(t, &handle{})
	return h.(*handle)
}

// lookup returns the handle for t without creating one.
func (ix *handleIndex) lookup(t reflect.Type) (*handle, bool) {
	h, ok := ix.data.Load(t)
	if !ok {
		return nil, false
	}
	return h.(*handle), true
}
