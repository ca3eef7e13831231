package solo

import "reflect"

// Controller provides lifecycle access for one singleton type
type Controller[T Singleton] struct {
	registry *Registry
}

// Get retrieves the live instance, creating it through the host if needed
func (c *Controller[T]) Get() (T, bool) {
	return Acquire[T](c.registry)
}

// Peek retrieves the current instance without creating one
func (c *Controller[T]) Peek() (T, bool) {
	return Peek[T](c.registry)
}

// IsLive reports whether an instance currently holds singleton status
func (c *Controller[T]) IsLive() bool {
	_, ok := Peek[T](c.registry)
	return ok
}

// Type returns the registry key this controller addresses
func (c *Controller[T]) Type() reflect.Type {
	return TypeOf[T]()
}
