package binder

import (
	"github.com/llehouerou/go-graphql-binder/internal/reflectutil"
)

// Options is the normalized call-options shape forwarded to the injected
// client: the operation document plus whatever optional fields the layers
// contributed. A nil field is absent and is never forwarded as a present
// key; clients can rely on a bare descriptor producing Options holding only
// the document.
type Options struct {
	Document Document

	// Variables is the operation's variable map. Unlike every other field
	// it merges key-by-key across layers instead of being replaced
	// wholesale.
	Variables map[string]any

	// Fragments is an opaque fragment collection understood by the client.
	Fragments any

	// UpdateQueries maps query names to client-defined result reducers.
	UpdateQueries map[string]any

	// OptimisticResponse is a client-defined provisional result.
	OptimisticResponse any

	// Extra carries client-specific fields (e.g. subscribeToMore wiring)
	// that the binder forwards without interpreting. Each key behaves like
	// a top-level field: the last layer defining it wins wholesale.
	Extra map[string]any
}

// MergeOptions layers override options over base and returns the merged
// result. Later layers win; a layer only overrides the fields it defines.
// Variables merge key-by-key across all layers (union of keys, later layers
// win on conflict), everything else is replaced wholesale. No input is
// mutated.
func MergeOptions(base Options, layers ...Options) Options {
	out := base
	out.Variables = copyMap(base.Variables)
	out.Extra = copyMap(base.Extra)

	for _, layer := range layers {
		if defined(layer.Document) {
			out.Document = layer.Document
		}
		if layer.Variables != nil {
			if out.Variables == nil {
				out.Variables = make(map[string]any, len(layer.Variables))
			}
			for k, v := range layer.Variables {
				out.Variables[k] = v
			}
		}
		if defined(layer.Fragments) {
			out.Fragments = layer.Fragments
		}
		if layer.UpdateQueries != nil {
			out.UpdateQueries = layer.UpdateQueries
		}
		if defined(layer.OptimisticResponse) {
			out.OptimisticResponse = layer.OptimisticResponse
		}
		for k, v := range layer.Extra {
			if out.Extra == nil {
				out.Extra = make(map[string]any, len(layer.Extra))
			}
			out.Extra[k] = v
		}
	}

	return out
}

// isZero reports whether no field of o is defined.
func (o Options) isZero() bool {
	return !defined(o.Document) &&
		o.Variables == nil &&
		!defined(o.Fragments) &&
		o.UpdateQueries == nil &&
		!defined(o.OptimisticResponse) &&
		o.Extra == nil
}

// defined reports whether an opaque field is present. A typed nil stored in
// an interface (e.g. (*T)(nil)) counts as absent, mirroring how an
// undefined key is treated in a dynamic options object.
func defined(v any) bool {
	return !reflectutil.IsNilAny(v)
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
