package solo

// Tag is a type-safe key for registry metadata
type Tag[T any] struct {
	key string
}

// NewTag creates a new tag with the given key
func NewTag[T any](key string) Tag[T] {
	return Tag[T]{key: key}
}

// Key returns the tag's key (for debugging)
func (t Tag[T]) Key() string {
	return t.key
}

// GetFromRegistry retrieves the tag value from a registry
func (t Tag[T]) GetFromRegistry(r *Registry) (T, bool) {
	val, ok := r.GetTag(t)
	if !ok {
		var zero T
		return zero, false
	}
	return val.(T), true
}

// GetOrDefault retrieves the tag value from a registry or returns a default
func (t Tag[T]) GetOrDefault(r *Registry, defaultVal T) T {
	if val, ok := t.GetFromRegistry(r); ok {
		return val
	}
	return defaultVal
}

// SetOnRegistry stores the tag value on a registry
func (t Tag[T]) SetOnRegistry(r *Registry, val T) {
	r.SetTag(t, val)
}
