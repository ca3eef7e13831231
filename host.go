package solo

import "reflect"

// Singleton is the capability contract a user type implements to be managed
// by a Registry. Exactly one live instance of each concrete Singleton type
// exists per registry at any instant.
type Singleton interface {
	// Init is the initialization hook. The registry invokes it exactly once
	// per claim lifetime, after the instance has been claimed and before it
	// becomes visible to Acquire. User code must never call Init directly.
	Init()

	// Lifetime reports the persistence policy of this singleton type. The
	// result must be constant for a given concrete type.
	Lifetime() Lifetime
}

// Container is a host-managed object that carries one or more attached
// singleton capabilities. Containers are created, destroyed and re-parented
// by the host; the registry only holds non-owning references to them.
type Container interface {
	// Singletons returns the singleton capabilities attached to this
	// container.
	Singletons() []Singleton
}

// Host is the collaborator contract the registry requires from its
// environment. The registry never constructs or destroys containers itself;
// it asks the host to do so and reacts to the lifecycle events the host
// delivers back (ContainerLive, ContainerDestroyed, NotifyShutdown).
//
// Contract notes:
//
//   - Create MUST synchronously call Registry.ContainerLive on the new
//     container before returning. Self-registration is a creation-time side
//     effect, not something the registry performs afterwards.
//   - Hosts deliver Registry.ContainerDestroyed for every container they
//     destroy, and Registry.NotifyShutdown before destroying containers
//     during process-wide teardown.
type Host interface {
	// FindLive locates an existing live container carrying a singleton of
	// type t, if any.
	FindLive(t reflect.Type) (Container, bool)

	// Create instantiates a new container with a singleton of type t
	// attached, firing Registry.ContainerLive before returning.
	Create(t reflect.Type) Container

	// Persist exempts a container from scope teardown by re-parenting it to
	// a scope-independent root. Invoked for winners with
	// LifetimePersistent.
	Persist(c Container)

	// Destroy tears down a container. Invoked on candidates that lose the
	// self-registration race and during registry disposal.
	Destroy(c Container)
}

// TypeOf returns the registry key for a singleton type.
func TypeOf[T Singleton]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// singletonOn returns the capability of type t attached to c, if present.
func singletonOn(c Container, t reflect.Type) (Singleton, bool) {
	for _, s := range c.Singletons() {
		if reflect.TypeOf(s) == t {
			return s, true
		}
	}
	return nil, false
}
