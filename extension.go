package solo

import (
	"context"
	"reflect"
)

// Extension provides hooks into the singleton lifecycle
type Extension interface {
	// Name returns the extension's name
	Name() string

	// Order determines extension execution order (lower = earlier)
	Order() int

	// Init is called when the extension is registered to a registry
	Init(r *Registry) error

	// Wrap intercepts operations (acquire, register)
	Wrap(ctx context.Context, next func() any, op *Operation) any

	// OnClaim is called after a container claims singleton status and its
	// Init hook has run
	OnClaim(op *Operation, c Container)

	// OnDuplicate is called when a candidate container is discarded. The
	// discard itself is unconditional; extensions only observe it.
	OnDuplicate(d *Duplicate)

	// OnRelease is called after the recognized holder of a type is
	// destroyed and the type returns to uninitialized
	OnRelease(op *Operation, c Container)

	// OnShutdown is called when the per-type shutdown latch flips
	OnShutdown(t reflect.Type)

	// Dispose is called when the registry is disposed
	Dispose(r *Registry) error
}

// Duplicate describes a self-registration race that was resolved by
// discarding the losing candidate. The loser never ran Init.
type Duplicate struct {
	Type   reflect.Type
	Winner Container // nil when the candidate arrived after shutdown
	Loser  Container
}

// BaseExtension provides default implementations for Extension methods
type BaseExtension struct {
	name string
}

// NewBaseExtension creates a new base extension with the given name
func NewBaseExtension(name string) BaseExtension {
	return BaseExtension{name: name}
}

func (e *BaseExtension) Name() string {
	return e.name
}

func (e *BaseExtension) Order() int {
	return 100
}

func (e *BaseExtension) Init(r *Registry) error {
	return nil
}

func (e *BaseExtension) Wrap(ctx context.Context, next func() any, op *Operation) any {
	return next()
}

func (e *BaseExtension) OnClaim(op *Operation, c Container) {
}

func (e *BaseExtension) OnDuplicate(d *Duplicate) {
}

func (e *BaseExtension) OnRelease(op *Operation, c Container) {
}

func (e *BaseExtension) OnShutdown(t reflect.Type) {
}

func (e *BaseExtension) Dispose(r *Registry) error {
	return nil
}

// Operation describes what operation is happening
type Operation struct {
	Kind     OperationKind
	Type     reflect.Type
	Registry *Registry
}

// OperationKind represents the type of operation
type OperationKind string

const (
	// OpAcquire indicates the guarded slow path of Acquire
	OpAcquire OperationKind = "acquire"
	// OpRegister indicates a host-driven self-registration
	OpRegister OperationKind = "register"
)
