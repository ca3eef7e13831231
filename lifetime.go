package solo

// Lifetime represents the persistence policy of a singleton type across
// scope (scene) transitions.
type Lifetime string

const (
	// LifetimeTransient binds the instance to its enclosing scope. The
	// instance dies with the scope and a later Acquire creates a fresh one.
	LifetimeTransient Lifetime = "transient"

	// LifetimePersistent exempts the winning container from scope teardown
	// by re-parenting it to a scope-independent root. Duplicate candidates
	// created during scope re-entry are discarded without running Init.
	LifetimePersistent Lifetime = "persistent"
)

// String returns the string representation of the lifetime.
func (l Lifetime) String() string {
	return string(l)
}
