package binder

import (
	"context"
	"fmt"
	"sort"
)

// MutateFunc is a bound mutation. Call-time options are merged over the
// descriptor's declaration before forwarding to the client; the client's
// result and error are returned unchanged.
type MutateFunc func(ctx context.Context, opts ...Options) (any, error)

// SubscribeFunc is a bound subscription. Call-time variables and update
// reducers are merged over the descriptor's declaration before forwarding
// to the client's subscribe operation.
type SubscribeFunc func(ctx context.Context, opts ...Options) (any, error)

// Registry is the typed lookup surface built by Bind: one entry per
// descriptor, keyed by resolved name. It is fixed once built; only the
// injected client holds mutable state.
type Registry struct {
	watches       map[string]any
	mutations     map[string]MutateFunc
	subscriptions map[string]SubscribeFunc
}

func newRegistry() *Registry {
	return &Registry{
		watches:       make(map[string]any),
		mutations:     make(map[string]MutateFunc),
		subscriptions: make(map[string]SubscribeFunc),
	}
}

// Watch returns the watch handle retained under name at bind time. The
// handle is whatever the client's watch operation returned.
func (r *Registry) Watch(name string) (any, bool) {
	h, ok := r.watches[name]
	return h, ok
}

// Mutation returns the bound mutation under name.
func (r *Registry) Mutation(name string) (MutateFunc, bool) {
	fn, ok := r.mutations[name]
	return fn, ok
}

// Subscription returns the bound subscription under name.
func (r *Registry) Subscription(name string) (SubscribeFunc, bool) {
	fn, ok := r.subscriptions[name]
	return fn, ok
}

// Mutate invokes the mutation bound under name. Unknown names report
// ErrNotBound.
func (r *Registry) Mutate(ctx context.Context, name string, opts ...Options) (any, error) {
	fn, ok := r.mutations[name]
	if !ok {
		return nil, fmt.Errorf("%w: mutation %q", ErrNotBound, name)
	}
	return fn(ctx, opts...)
}

// Subscribe invokes the subscription bound under name. Unknown names report
// ErrNotBound.
func (r *Registry) Subscribe(ctx context.Context, name string, opts ...Options) (any, error) {
	fn, ok := r.subscriptions[name]
	if !ok {
		return nil, fmt.Errorf("%w: subscription %q", ErrNotBound, name)
	}
	return fn(ctx, opts...)
}

// Names returns every bound name, sorted. A subscription that also retains
// a watch handle is listed once.
func (r *Registry) Names() []string {
	set := make(map[string]struct{}, len(r.watches)+len(r.mutations)+len(r.subscriptions))
	for n := range r.watches {
		set[n] = struct{}{}
	}
	for n := range r.mutations {
		set[n] = struct{}{}
	}
	for n := range r.subscriptions {
		set[n] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
