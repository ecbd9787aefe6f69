/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storekit

import (
	"log/slog"
	"reflect"

	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/changes"
	"github.com/suparena/storekit/errors"
	"github.com/suparena/storekit/registry"
	"github.com/suparena/storekit/resolvers"
)

// Store is the handle through which all operations reach a storage backend.
//
// A Store references the backend (owned by the application) and owns the
// change-notification bus and the type-mapping registry, both created with
// the Store and torn down by Close. Stores are safe for concurrent use.
type Store struct {
	backend  backend.Backend
	bus      *changes.Bus
	registry *registry.Registry
	logger   *slog.Logger
}

type storeOptions struct {
	logger    *slog.Logger
	registry  *registry.Registry
	busBuffer int
}

// Option configures a Store.
type Option func(*storeOptions)

// WithLogger sets the logger used by the Store and its bus.
func WithLogger(l *slog.Logger) Option {
	return func(o *storeOptions) { o.logger = l }
}

// WithRegistry supplies a pre-populated type-mapping registry instead of an
// empty one.
func WithRegistry(r *registry.Registry) Option {
	return func(o *storeOptions) { o.registry = r }
}

// WithBusBuffer sets the per-subscription channel buffer of the
// notification bus.
func WithBusBuffer(n int) Option {
	return func(o *storeOptions) { o.busBuffer = n }
}

// New creates a Store over the given backend.
func New(b backend.Backend, opts ...Option) (*Store, error) {
	if b == nil {
		return nil, errors.NewConfigurationError("store", "backend is required")
	}

	options := storeOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if options.registry == nil {
		options.registry = registry.New()
	}

	return &Store{
		backend:  b,
		bus:      changes.NewBus(options.busBuffer, options.logger),
		registry: options.registry,
		logger:   options.logger.With("component", "store"),
	}, nil
}

// Backend returns the underlying backend handle.
func (s *Store) Backend() backend.Backend { return s.backend }

// Registry returns the type-mapping registry.
func (s *Store) Registry() *registry.Registry { return s.registry }

// ObserveChanges subscribes to mutations of the given collections. An event
// is delivered whenever a published affected set intersects them. The
// returned subscription is hot: it sees only events published after this
// call and must be closed by the caller.
func (s *Store) ObserveChanges(collections ...string) (*changes.Subscription, error) {
	return s.bus.Subscribe(collections...)
}

// NotifyChanges publishes an externally observed change set to the bus.
// It bridges mutations performed outside the operation pipeline, such as
// platform-level content notifications, into the same subscriber stream.
func (s *Store) NotifyChanges(c changes.Changes) {
	s.bus.Publish(c)
}

// Close tears down the notification bus and closes the backend.
func (s *Store) Close() error {
	s.bus.Close()
	return s.backend.Close()
}

// RegisterTypeMapping registers the resolver triple for type T, overwriting
// any previous mapping for that exact type.
func RegisterTypeMapping[T any](s *Store, m resolvers.TypeMapping[T]) error {
	if m.IsZero() {
		return errors.NewConfigurationError("register type mapping", "mapping must not be zero")
	}
	registry.Register(s.registry, m)
	return nil
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// publishAffected validates and publishes the affected set of a successful
// mutation. An empty collection name inside a reported set is a resolver
// contract violation.
func (s *Store) publishAffected(op string, affected []string) error {
	c, err := changes.New(affected...)
	if err != nil {
		return errors.NewResolverContractError(op, err.Error())
	}
	s.bus.Publish(c)
	return nil
}

// resolvePut returns the explicit resolver or falls back to the registry.
func resolvePut[T any](s *Store, explicit resolvers.PutResolver[T]) (resolvers.PutResolver[T], error) {
	if explicit != nil {
		return explicit, nil
	}
	if m, ok := registry.Lookup[T](s.registry); ok {
		return m.PutResolver(), nil
	}
	return nil, errors.NewNoTypeMappingError(typeName[T]())
}

// resolveGet returns the explicit resolver or falls back to the registry.
func resolveGet[T any](s *Store, explicit resolvers.GetResolver[T]) (resolvers.GetResolver[T], error) {
	if explicit != nil {
		return explicit, nil
	}
	if m, ok := registry.Lookup[T](s.registry); ok {
		return m.GetResolver(), nil
	}
	return nil, errors.NewNoTypeMappingError(typeName[T]())
}

// resolveDelete returns the explicit resolver or falls back to the registry.
func resolveDelete[T any](s *Store, explicit resolvers.DeleteResolver[T]) (resolvers.DeleteResolver[T], error) {
	if explicit != nil {
		return explicit, nil
	}
	if m, ok := registry.Lookup[T](s.registry); ok {
		return m.DeleteResolver(), nil
	}
	return nil, errors.NewNoTypeMappingError(typeName[T]())
}
