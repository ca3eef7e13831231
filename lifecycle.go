package solo

import "reflect"

// ContainerLive is the lifecycle event a host fires synchronously when a
// container becomes live, both from inside Host.Create and on its own (for
// example when restoring a previously saved scope recreates containers
// outside any Acquire call). Every attached singleton either claims its type
// or is discarded as a duplicate; a discarded candidate never runs Init.
func (r *Registry) ContainerLive(c Container) {
	if c == nil {
		return
	}

	for _, s := range c.Singletons() {
		s := s
		t := reflect.TypeOf(s)
		h := r.handles.get(t)

		op := &Operation{
			Kind:     OpRegister,
			Type:     t,
			Registry: r,
		}

		r.wrap(op, func() any {
			return r.register(t, h, c, s)
		})
	}
}

// register runs the self-registration protocol for one singleton type.
// Arrival order is whatever order registrants take regMu in; there is no
// timestamp tie-break. Returns true if c claimed the type.
func (r *Registry) register(t reflect.Type, h *handle, c Container, s Singleton) bool {
	h.regMu.Lock()

	if h.shutdown.Load() {
		// The latch never un-flips: candidates arriving during teardown are
		// discarded instead of resurrecting the type.
		h.state = stateDestroyed
		h.regMu.Unlock()
		r.discard(t, nil, c)
		return false
	}

	if cur := h.claimed.Load(); cur != nil {
		alreadyHolder := cur.container == c
		h.regMu.Unlock()
		if alreadyHolder {
			return true
		}
		r.discard(t, cur.container, c)
		return false
	}

	// Winner: claim, initialize, then publish. claimed is visible to Peek
	// (including from inside Init itself); live only becomes visible once
	// Init has returned.
	h.state = stateInitializing
	ref := &liveRef{singleton: s, container: c}
	h.claimed.Store(ref)
	s.Init()
	h.live.Store(ref)
	h.state = stateReady
	r.owners.add(c, t)
	lifetime := s.Lifetime()
	h.regMu.Unlock()

	if lifetime == LifetimePersistent {
		r.host.Persist(c)
	}

	r.journal.record(EventClaimed, t)
	claimOp := &Operation{Kind: OpRegister, Type: t, Registry: r}
	for _, ext := range r.snapshotExtensions() {
		ext.OnClaim(claimOp, c)
	}
	return true
}

// discard applies the loser action: the candidate is destroyed immediately,
// without running Init and without touching the recognized instance. The
// condition is resolved here in full; it is never surfaced to callers.
func (r *Registry) discard(t reflect.Type, winner, loser Container) {
	r.host.Destroy(loser)

	r.journal.record(EventDuplicate, t)
	dup := &Duplicate{Type: t, Winner: winner, Loser: loser}
	for _, ext := range r.snapshotExtensions() {
		ext.OnDuplicate(dup)
	}
}

// ContainerDestroyed is the lifecycle event a host fires after destroying a
// container for any reason: scope teardown, losing the registration race, or
// process exit. It releases any types the container held, but never flips
// the shutdown latch; only NotifyShutdown does that.
func (r *Registry) ContainerDestroyed(c Container) {
	if c == nil {
		return
	}

	for _, t := range r.owners.remove(c) {
		h, ok := r.handles.lookup(t)
		if !ok {
			continue
		}

		h.regMu.Lock()
		cur := h.claimed.Load()
		if cur == nil || cur.container != c {
			h.regMu.Unlock()
			continue
		}
		h.claimed.Store(nil)
		h.live.Store(nil)
		if h.shutdown.Load() {
			h.state = stateDestroyed
		} else {
			h.state = stateUninitialized
		}
		h.regMu.Unlock()

		r.journal.record(EventReleased, t)
		op := &Operation{Kind: OpRegister, Type: t, Registry: r}
		for _, ext := range r.snapshotExtensions() {
			ext.OnRelease(op, c)
		}
	}
}

// NotifyShutdown is the process-teardown notification, delivered by the host
// before it destroys a container during process exit. It flips the one-way
// latch for every type whose recognized holder is c; containers destroyed
// for other reasons must go through ContainerDestroyed instead and leave the
// latch alone. Calls naming a container that holds nothing are no-ops.
func (r *Registry) NotifyShutdown(c Container) {
	if c == nil {
		return
	}

	for _, t := range r.owners.heldBy(c) {
		h, ok := r.handles.lookup(t)
		if !ok {
			continue
		}

		h.regMu.Lock()
		cur := h.claimed.Load()
		if cur == nil || cur.container != c {
			h.regMu.Unlock()
			continue
		}
		h.shutdown.Store(true)
		h.regMu.Unlock()

		r.journal.record(EventShutdown, t)
		for _, ext := range r.snapshotExtensions() {
			ext.OnShutdown(t)
		}
	}
}
