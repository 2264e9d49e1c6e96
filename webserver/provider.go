package webserver

import (
	"fmt"
	"sync"
)

// InstanceProvider supplies handler instances by type. It is the only way
// the server obtains filters, servlets, WebSocket endpoints, and the
// framework collaborators - the package never constructs framework
// handlers itself. Implementations are typically backed by a dependency
// injection container or a manual registry.
//
// Provide may be called once per registration at assembly time, and again
// at request time for per-connection instances (WebSocket endpoints) and
// for the ResponseHandler during 404 interception. Implementations must be
// safe for concurrent use.
type InstanceProvider interface {
	Provide(t HandlerType) (any, error)
}

// Registry is a manual InstanceProvider for callers without a dependency
// injection container. Factories registered for a type are invoked on
// every Provide call, so a factory decides itself whether to return a
// shared instance or a fresh one.
type Registry struct {
	mu        sync.RWMutex
	factories map[HandlerType]func() any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[HandlerType]func() any)}
}

// Register installs a factory for t, replacing any previous registration.
func (r *Registry) Register(t HandlerType, factory func() any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[t] = factory
}

// RegisterInstance installs a shared instance for t. Every Provide call
// returns the same value.
func (r *Registry) RegisterInstance(t HandlerType, instance any) {
	r.Register(t, func() any { return instance })
}

// Provide implements InstanceProvider.
func (r *Registry) Provide(t HandlerType) (any, error) {
	r.mu.RLock()
	factory, ok := r.factories[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no registration for handler type %q", t)
	}
	return factory(), nil
}
