package binder

import (
	"errors"
	"fmt"
)

// Document is an opaque operation handle. The binder never inspects it; it is
// forwarded to the injected client unchanged, so whatever document
// representation the client understands (a parsed AST, a query string, a
// request struct) can be used.
type Document any

// OperationKind discriminates the three descriptor variants.
type OperationKind uint8

const (
	QueryKind OperationKind = iota
	MutationKind
	SubscriptionKind
)

func (k OperationKind) String() string {
	switch k {
	case QueryKind:
		return "query"
	case MutationKind:
		return "mutation"
	case SubscriptionKind:
		return "subscription"
	}
	return fmt.Sprintf("OperationKind(%d)", uint8(k))
}

// Default method names used when a descriptor declares no Name.
const (
	DefaultQueryName        = "query"
	DefaultMutationName     = "mutate"
	DefaultSubscriptionName = "subscribe"
)

// Validation errors reported by New. Client-side failures are never wrapped
// in these; they pass through from the injected client unchanged.
var (
	ErrNoDocument         = errors.New("descriptor declares no operation document")
	ErrAmbiguousKind      = errors.New("descriptor declares more than one operation document")
	ErrDuplicateName      = errors.New("descriptor name already in use")
	ErrConflictingOptions = errors.New("descriptor declares both Options and OptionsFunc")
	ErrNilClient          = errors.New("nil client")
	ErrNotBound           = errors.New("no operation bound under name")
)

// Descriptor declares one operation binding for an owner of type T.
// Exactly one of Query, Mutation or Subscription must be set; everything
// else is optional. Descriptors are validated by New and immutable
// afterwards.
type Descriptor[T comparable] struct {
	// Exactly one of these carries the operation document.
	Query        Document
	Mutation     Document
	Subscription Document

	// Name is the key the binding is exposed under in the Registry.
	// Defaults to "query", "mutate" or "subscribe" per kind.
	Name string

	// Static declaration-time fields. They form the lowest-precedence merge
	// layer; see MergeOptions for the layering rules.
	Variables          map[string]any
	UpdateQueries      map[string]any
	OptimisticResponse any

	// Options is a static options layer applied over the fields above.
	// OptionsFunc produces that layer dynamically from the owning instance
	// at bind time instead. Declaring both is a validation error.
	Options     Options
	OptionsFunc func(owner T) Options
}

// kind derives the operation kind from document presence. More than one
// document, or none, is a validation error rather than a silent pick.
func (d Descriptor[T]) kind() (OperationKind, error) {
	var (
		kind OperationKind
		n    int
	)
	if defined(d.Query) {
		kind, n = QueryKind, n+1
	}
	if defined(d.Mutation) {
		kind, n = MutationKind, n+1
	}
	if defined(d.Subscription) {
		kind, n = SubscriptionKind, n+1
	}
	switch n {
	case 0:
		return 0, ErrNoDocument
	case 1:
		return kind, nil
	default:
		return 0, ErrAmbiguousKind
	}
}

// document returns the single declared operation document.
func (d Descriptor[T]) document(kind OperationKind) Document {
	switch kind {
	case MutationKind:
		return d.Mutation
	case SubscriptionKind:
		return d.Subscription
	default:
		return d.Query
	}
}

// resolvedName returns the registry key for the descriptor.
func (d Descriptor[T]) resolvedName(kind OperationKind) string {
	if d.Name != "" {
		return d.Name
	}
	switch kind {
	case MutationKind:
		return DefaultMutationName
	case SubscriptionKind:
		return DefaultSubscriptionName
	default:
		return DefaultQueryName
	}
}

// staticLayer assembles the declaration-time merge layer from the
// descriptor's static fields. The document is set separately during
// dispatch.
func (d Descriptor[T]) staticLayer() Options {
	return Options{
		Variables:          d.Variables,
		UpdateQueries:      d.UpdateQueries,
		OptimisticResponse: d.OptimisticResponse,
	}
}

// producerLayer evaluates the dynamic options producer against the owner,
// falling back to the static Options layer.
func (d Descriptor[T]) producerLayer(owner T) Options {
	if d.OptionsFunc != nil {
		return d.OptionsFunc(owner)
	}
	return d.Options
}

// validate checks a single descriptor and returns its kind and resolved
// name.
func (d Descriptor[T]) validate() (OperationKind, string, error) {
	kind, err := d.kind()
	if err != nil {
		return 0, "", err
	}
	if d.OptionsFunc != nil && !d.Options.isZero() {
		return 0, "", ErrConflictingOptions
	}
	return kind, d.resolvedName(kind), nil
}
