package solo

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
)

// Registry manages the lifecycle of lazily created singletons. It is the
// injectable replacement for per-type static state: construct one per
// process (or per test) and hand it to the host environment.
type Registry struct {
	mu         sync.RWMutex
	host       Host
	handles    handleIndex
	owners     *ownerIndex
	tags       sync.Map
	extensions []Extension
	journal    *Journal
	disposed   atomic.Bool
}

// RegistryOption is a modifier for registries
type RegistryOption func(*Registry)

// WithRegistryTag returns an option that sets a tag on a registry
func WithRegistryTag[T any](tag Tag[T], val T) RegistryOption {
	return func(r *Registry) {
		tag.SetOnRegistry(r, val)
	}
}

// WithExtension returns an option that registers an extension to a registry
func WithExtension(ext Extension) RegistryOption {
	return func(r *Registry) {
		if err := r.UseExtension(ext); err != nil {
			panic(err)
		}
	}
}

// WithJournalLimit returns an option that bounds the lifecycle journal to
// the given number of retained events.
func WithJournalLimit(limit int) RegistryOption {
	return func(r *Registry) {
		r.journal = newJournal(limit)
	}
}

// NewRegistry creates a new registry bound to a host with optional
// configuration.
func NewRegistry(host Host, opts ...RegistryOption) *Registry {
	if host == nil {
		panic("solo: registry requires a host")
	}

	r := &Registry{
		host:       host,
		owners:     newOwnerIndex(),
		extensions: []Extension{},
		journal:    newJournal(defaultJournalLimit),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Accessor creates a controller for a singleton type
func Accessor[T Singleton](r *Registry) *Controller[T] {
	return &Controller[T]{registry: r}
}

// Acquire returns the live instance of T, creating and initializing it
// through the host if necessary.
//
// Any number of goroutines may call Acquire concurrently; the Init hook runs
// exactly once per claim lifetime and every caller observes the same fully
// initialized instance. Once the shutdown latch for T has flipped, Acquire
// returns absence without taking a lock or creating anything; callers must
// treat that as an expected terminal condition, not a fault.
func Acquire[T Singleton](r *Registry) (T, bool) {
	var zero T
	if r.disposed.Load() {
		return zero, false
	}
	t := TypeOf[T]()
	h := r.handles.get(t)

	if h.shutdown.Load() {
		return zero, false
	}

	// Lock-free fast path: live is published with release semantics only
	// after Init has completed.
	if ref := h.live.Load(); ref != nil {
		return ref.singleton.(T), true
	}

	op := &Operation{
		Kind:     OpAcquire,
		Type:     t,
		Registry: r,
	}

	result := r.wrap(op, func() any {
		return r.locateOrCreate(t, h)
	})

	ref, _ := result.(*liveRef)
	if ref == nil {
		return zero, false
	}
	return ref.singleton.(T), true
}

// Peek returns the current instance of T without creating one. Unlike
// Acquire it is safe to call from inside the Init hook of T itself, where it
// already observes the instance being initialized. Once the shutdown latch
// has flipped, Peek returns absence.
func Peek[T Singleton](r *Registry) (T, bool) {
	var zero T
	if r.disposed.Load() {
		return zero, false
	}
	h, ok := r.handles.lookup(TypeOf[T]())
	if !ok {
		return zero, false
	}
	if h.shutdown.Load() {
		return zero, false
	}
	if ref := h.claimed.Load(); ref != nil {
		return ref.singleton.(T), true
	}
	return zero, false
}

// locateOrCreate is the guarded slow path of Acquire. The per-type createMu
// bounds blocking to at most one host create plus one Init call.
func (r *Registry) locateOrCreate(t reflect.Type, h *handle) *liveRef {
	h.createMu.Lock()
	defer h.createMu.Unlock()

	// Re-check under the lock: another caller may have won the race, or the
	// latch may have flipped while we waited.
	if h.shutdown.Load() {
		return nil
	}
	if ref := h.live.Load(); ref != nil {
		return ref
	}

	// Adopt an existing live container before asking the host to create
	// one. A scene-placed container can exist before anything acquires it.
	if c, ok := r.host.FindLive(t); ok && c != nil {
		if s, ok := singletonOn(c, t); ok {
			r.register(t, h, c, s)
			if ref := h.live.Load(); ref != nil {
				return ref
			}
		}
	}

	// Creation self-registers synchronously: the host fires ContainerLive
	// before Create returns, so the claim is already complete here.
	c := r.host.Create(t)
	if ref := h.live.Load(); ref != nil {
		return ref
	}
	if h.shutdown.Load() {
		return nil
	}

	// The host did not fire ContainerLive. Adopt the returned container
	// directly rather than leaving the caller empty-handed.
	if c == nil {
		panic(fmt.Sprintf("solo: host Create(%v) returned nil without registering a singleton", t))
	}
	s, ok := singletonOn(c, t)
	if !ok {
		panic(fmt.Sprintf("solo: host Create(%v) returned a container without a %v capability", t, t))
	}
	r.register(t, h, c, s)
	return h.live.Load()
}

// wrap chains the registered extensions around an operation (middleware
// pattern, last registered wraps first).
func (r *Registry) wrap(op *Operation, inner func() any) any {
	exts := r.snapshotExtensions()

	next := inner
	for i := len(exts) - 1; i >= 0; i-- {
		ext := exts[i]
		currentNext := next
		next = func() any {
			return ext.Wrap(context.Background(), currentNext, op)
		}
	}

	return next()
}

// UseExtension registers an extension to the registry
func (r *Registry) UseExtension(ext Extension) error {
	r.mu.Lock()
	r.extensions = append(r.extensions, ext)
	sort.SliceStable(r.extensions, func(i, j int) bool {
		return r.extensions[i].Order() < r.extensions[j].Order()
	})
	r.mu.Unlock()

	return ext.Init(r)
}

func (r *Registry) snapshotExtensions() []Extension {
	r.mu.RLock()
	exts := make([]Extension, len(r.extensions))
	copy(exts, r.extensions)
	r.mu.RUnlock()
	return exts
}

// Dispose tears down the registry the way a host does at process exit:
// every live container receives the shutdown notification and is destroyed,
// then the extensions are disposed. After Dispose every Acquire and Peek
// returns absence.
func (r *Registry) Dispose() error {
	r.disposed.Store(true)

	for _, c := range r.owners.containers() {
		r.NotifyShutdown(c)
		r.host.Destroy(c)
		// Hosts deliver ContainerDestroyed for containers they destroy;
		// delivering it again here is harmless and keeps disposal
		// deterministic for hosts that do not.
		r.ContainerDestroyed(c)
	}

	for _, ext := range r.snapshotExtensions() {
		if err := ext.Dispose(r); err != nil {
			return fmt.Errorf("disposing extension %s: %w", ext.Name(), err)
		}
	}

	return nil
}

// Journal returns the registry's lifecycle journal for querying
func (r *Registry) Journal() *Journal {
	return r.journal
}

// GetTag retrieves a tag value from the registry
func (r *Registry) GetTag(tag any) (any, bool) {
	return r.tags.Load(tag)
}

// SetTag stores a tag value on the registry
func (r *Registry) SetTag(tag any, val any) {
	r.tags.Store(tag, val)
}
