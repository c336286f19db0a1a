// Package binder attaches declarative GraphQL operation descriptors to a
// component instance, delegating all execution to an injected data-fetching
// client. It implements no transport, cache or query engine of its own:
// queries are started, mutations and subscriptions are bound as callables,
// and every call is forwarded to the client with merged options.
package binder

import (
	"context"
	"fmt"
	"sync"
)

// Client is the injected data-fetching boundary. Implementations are
// pre-existing clients (or adapters over one); the binder forwards merged
// options and returns results and errors unchanged, without awaiting,
// retrying or wrapping. WatchQuery starts a live query and returns whatever
// handle the client exposes for it; Mutate and Subscribe return the client's
// native result and subscription handle.
type Client interface {
	WatchQuery(ctx context.Context, opts Options) (any, error)
	Mutate(ctx context.Context, opts Options) (any, error)
	Subscribe(ctx context.Context, opts Options) (any, error)
}

// InitFunc is a component initialization lifecycle hook, invoked by the host
// once the injected client is available (which may be later than
// construction).
type InitFunc[T comparable] func(ctx context.Context, owner T) error

// WrapInit returns a hook that invokes setup with the original arguments and
// then delegates to next, returning next's result. A setup error aborts the
// chain without calling next. Applications compose: wrapping an already
// wrapped hook decorates the previous result, so independent wrappers each
// run exactly once per invocation. The arguments are never modified. A nil
// next is a programming error and panics when the hook fires.
func WrapInit[T comparable](next InitFunc[T], setup func(ctx context.Context, owner T) error) InitFunc[T] {
	return func(ctx context.Context, owner T) error {
		if err := setup(ctx, owner); err != nil {
			return err
		}
		return next(ctx, owner)
	}
}

// Binder holds a validated, immutable descriptor list and builds one
// Registry per owner.
//
// # Immutable Pattern
//
// The Binder's With* methods follow an immutable pattern: they return a new
// Binder instance rather than modifying the receiver. Always use the
// returned Binder:
//
//	b = b.WithLog(log.Println)  // Correct
//	b.WithLog(log.Println)      // Wrong - original binder unchanged
type Binder[T comparable] struct {
	descriptors []Descriptor[T]
	log         func(args ...any)

	mu    sync.Mutex
	bound map[T]*Registry
}

// New validates the descriptors and returns a Binder over them. Every
// descriptor must declare exactly one operation document, resolved names
// must be unique, and Options/OptionsFunc are mutually exclusive; violations
// are reported here rather than at first use.
func New[T comparable](descriptors ...Descriptor[T]) (*Binder[T], error) {
	seen := make(map[string]bool, len(descriptors))
	for i, d := range descriptors {
		kind, name, err := d.validate()
		if err != nil {
			return nil, fmt.Errorf("descriptor %d: %w", i, err)
		}
		if seen[name] {
			return nil, fmt.Errorf("descriptor %d (%s): %w: %q", i, kind, ErrDuplicateName, name)
		}
		seen[name] = true
	}
	return &Binder[T]{
		descriptors: append([]Descriptor[T](nil), descriptors...),
		bound:       make(map[T]*Registry),
	}, nil
}

// clone creates a copy of the Binder with its configuration preserved and
// fresh binding state. This helper prevents field-copying bugs when adding
// new fields to Binder. Configure binders before handing out registries.
func (b *Binder[T]) clone() *Binder[T] {
	return &Binder[T]{
		descriptors: b.descriptors,
		log:         b.log,
		bound:       make(map[T]*Registry),
	}
}

// WithLog returns a new Binder that reports bind-time events through the
// given log function (e.g. log.Println).
func (b *Binder[T]) WithLog(logger func(args ...any)) *Binder[T] {
	clone := b.clone()
	clone.log = logger
	return clone
}

func (b *Binder[T]) printLog(args ...any) {
	if b.log != nil {
		b.log(args...)
	}
}

// Bind runs one-time setup for owner against client and returns the typed
// registry of bound operations. Queries are started immediately and their
// watch handles retained; mutations and subscriptions are bound but not
// executed. Binding the same owner again returns the registry built the
// first time. A client error during setup is returned unchanged and leaves
// the owner unbound.
func (b *Binder[T]) Bind(ctx context.Context, client Client, owner T) (*Registry, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if reg, ok := b.bound[owner]; ok {
		return reg, nil
	}

	reg := newRegistry()
	for _, d := range b.descriptors {
		kind, err := d.kind()
		if err != nil {
			// Unreachable for binders built by New.
			return nil, err
		}
		name := d.resolvedName(kind)
		switch kind {
		case QueryKind:
			err = b.setupQuery(ctx, client, owner, d, name, reg)
		case MutationKind:
			b.setupMutation(client, owner, d, name, reg)
		case SubscriptionKind:
			err = b.setupSubscription(ctx, client, owner, d, name, reg)
		}
		if err != nil {
			return nil, err
		}
	}

	b.bound[owner] = reg
	return reg, nil
}

// Registry returns the registry built for owner by a previous Bind, or nil
// if the owner has not been bound.
func (b *Binder[T]) Registry(owner T) *Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bound[owner]
}

// WrapInit composes binding setup into an initialization hook: the returned
// hook binds the owner against client, then delegates to next. Use Registry
// to retrieve the bound operations after the hook has fired.
func (b *Binder[T]) WrapInit(client Client, next InitFunc[T]) InitFunc[T] {
	return WrapInit(next, func(ctx context.Context, owner T) error {
		_, err := b.Bind(ctx, client, owner)
		return err
	})
}

// setupQuery starts the query immediately: the options producer's output is
// merged over the static declaration, the descriptor's document is applied,
// and the watch handle returned by the client is retained under name.
func (b *Binder[T]) setupQuery(ctx context.Context, client Client, owner T, d Descriptor[T], name string, reg *Registry) error {
	opts := MergeOptions(
		Options{Document: d.Query},
		d.staticLayer(),
		d.producerLayer(owner),
	)
	b.printLog("bind: watch query", name)
	handle, err := client.WatchQuery(ctx, opts)
	if err != nil {
		return err
	}
	reg.watches[name] = handle
	return nil
}

// setupMutation binds a callable without executing anything. The producer
// layer is evaluated per invocation so it observes the owner's current
// state.
func (b *Binder[T]) setupMutation(client Client, owner T, d Descriptor[T], name string, reg *Registry) {
	b.printLog("bind: mutation", name)
	reg.mutations[name] = func(ctx context.Context, callOpts ...Options) (any, error) {
		layers := make([]Options, 0, len(callOpts)+2)
		layers = append(layers, d.staticLayer(), d.producerLayer(owner))
		layers = append(layers, callOpts...)
		opts := MergeOptions(Options{Document: d.Mutation}, layers...)
		return client.Mutate(ctx, opts)
	}
}

// setupSubscription optionally starts a watch (when the evaluated options
// carry a query document, the watch handle is retained so its
// subscribeToMore-style surface stays reachable) and binds a callable that
// subscribes with the descriptor's own document, merging static variables
// and update reducers with the call-time equivalents.
func (b *Binder[T]) setupSubscription(ctx context.Context, client Client, owner T, d Descriptor[T], name string, reg *Registry) error {
	watchOpts := MergeOptions(d.staticLayer(), d.producerLayer(owner))
	if defined(watchOpts.Document) {
		b.printLog("bind: watch query for subscription", name)
		handle, err := client.WatchQuery(ctx, watchOpts)
		if err != nil {
			return err
		}
		reg.watches[name] = handle
	}

	b.printLog("bind: subscription", name)
	reg.subscriptions[name] = func(ctx context.Context, callOpts ...Options) (any, error) {
		opts := MergeOptions(Options{
			Document:      d.Subscription,
			Variables:     d.Variables,
			UpdateQueries: d.UpdateQueries,
		}, callOpts...)
		return client.Subscribe(ctx, opts)
	}
	return nil
}
