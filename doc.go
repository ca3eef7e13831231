// Package solo is a lazy-singleton lifecycle manager for host-managed
// containers.
//
// # Overview
//
// Solo organizes code around three core concepts:
//
//  1. Singletons: user types that exist at most once per registry
//  2. Registries: injectable lifecycle managers that claim, cache and
//     retire singleton instances
//  3. Hosts: the environment that physically creates, destroys and
//     re-parents the containers instances live in
//
// # Basic Usage
//
// Implement the Singleton contract on your type:
//
//	type AudioManager struct{ volume float64 }
//
//	func (a *AudioManager) Init()                   { a.volume = 0.8 }
//	func (a *AudioManager) Lifetime() solo.Lifetime { return solo.LifetimePersistent }
//
// Create a registry bound to a host and acquire instances:
//
//	registry := solo.NewRegistry(host)
//
//	audio, ok := solo.Acquire[*AudioManager](registry)
//	if !ok {
//	    // the process is shutting down; absence is expected, not an error
//	}
//
// Any number of goroutines may call Acquire concurrently. Init runs exactly
// once and every caller observes the same fully initialized instance.
//
// # Lifetimes
//
// A singleton type declares one of two persistence policies:
//
//	// Transient: the instance dies with its scope; the next Acquire
//	// creates a fresh one.
//	func (s *ScoreBoard) Lifetime() solo.Lifetime { return solo.LifetimeTransient }
//
//	// Persistent: the winning container is re-parented out of its scope
//	// and survives teardown. Duplicate candidates created when a scope is
//	// re-entered are destroyed before their Init ever runs.
//	func (a *AudioManager) Lifetime() solo.Lifetime { return solo.LifetimePersistent }
//
// # The Host Contract
//
// The registry never instantiates anything itself. The Host interface
// supplies FindLive, Create, Persist and Destroy; in exchange the host fires
// three lifecycle events into the registry:
//
//	registry.ContainerLive(c)      // a container became live (Create MUST
//	                               // fire this synchronously)
//	registry.ContainerDestroyed(c) // a container was destroyed, any reason
//	registry.NotifyShutdown(c)     // process teardown is about to destroy c
//
// ContainerLive is a standalone entry point: hosts that recreate containers
// while restoring saved state fire it outside any Acquire call, and the
// self-registration protocol still resolves who wins.
//
// # Shutdown
//
// NotifyShutdown flips a one-way, per-type latch. After that, Acquire and
// Peek for the type return absence for the remainder of the registry's life;
// nothing is ever created as a side effect of a late call. Containers
// destroyed for other reasons (scope exit, losing the registration race)
// never flip the latch.
//
// # Controllers
//
// Controllers bundle the registry and type parameter for call sites that
// pass access around:
//
//	ctrl := solo.Accessor[*AudioManager](registry)
//	audio, ok := ctrl.Get()
//	audio, ok = ctrl.Peek()
//	if ctrl.IsLive() { ... }
//
// Peek never creates: it returns the current instance or absence. It is the
// accessor to use from inside Init itself, where it already observes the
// instance being initialized.
//
// # Extensions
//
// Extensions hook the lifecycle for logging, auditing or instrumentation:
//
//	registry := solo.NewRegistry(host,
//	    solo.WithExtension(extensions.NewLifecycleLogger(handler)),
//	)
//
// Wrap intercepts acquire and registration operations middleware-style;
// OnClaim, OnDuplicate, OnRelease and OnShutdown observe the individual
// transitions. The registry also keeps a bounded Journal of transitions for
// querying after the fact.
package solo
