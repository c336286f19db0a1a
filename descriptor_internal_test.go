package binder

import (
	"errors"
	"testing"
)

func TestDescriptorKind(t *testing.T) {
	t.Run("single document per kind", func(t *testing.T) {
		tests := []struct {
			d    Descriptor[*struct{}]
			want OperationKind
		}{
			{Descriptor[*struct{}]{Query: "query { a }"}, QueryKind},
			{Descriptor[*struct{}]{Mutation: "mutation { a }"}, MutationKind},
			{Descriptor[*struct{}]{Subscription: "subscription { a }"}, SubscriptionKind},
		}
		for _, tc := range tests {
			got, err := tc.d.kind()
			if err != nil {
				t.Fatalf("got error: %v, want: nil", err)
			}
			if got != tc.want {
				t.Errorf("got kind: %v, want: %v", got, tc.want)
			}
		}
	})

	t.Run("no document", func(t *testing.T) {
		_, err := Descriptor[*struct{}]{}.kind()
		if !errors.Is(err, ErrNoDocument) {
			t.Errorf("got error: %v, want: %v", err, ErrNoDocument)
		}
	})

	t.Run("typed nil document counts as absent", func(t *testing.T) {
		d := Descriptor[*struct{}]{
			Query:    (*string)(nil),
			Mutation: "mutation { a }",
		}
		got, err := d.kind()
		if err != nil {
			t.Fatalf("got error: %v, want: nil", err)
		}
		if got != MutationKind {
			t.Errorf("got kind: %v, want: %v", got, MutationKind)
		}
	})

	t.Run("two documents", func(t *testing.T) {
		d := Descriptor[*struct{}]{
			Query:        "query { a }",
			Subscription: "subscription { a }",
		}
		if _, err := d.kind(); !errors.Is(err, ErrAmbiguousKind) {
			t.Errorf("got error: %v, want: %v", err, ErrAmbiguousKind)
		}
	})
}

func TestDescriptorResolvedName(t *testing.T) {
	tests := []struct {
		d    Descriptor[*struct{}]
		kind OperationKind
		want string
	}{
		{Descriptor[*struct{}]{Query: "q"}, QueryKind, "query"},
		{Descriptor[*struct{}]{Mutation: "m"}, MutationKind, "mutate"},
		{Descriptor[*struct{}]{Subscription: "s"}, SubscriptionKind, "subscribe"},
		{Descriptor[*struct{}]{Query: "q", Name: "feed"}, QueryKind, "feed"},
	}
	for _, tc := range tests {
		if got := tc.d.resolvedName(tc.kind); got != tc.want {
			t.Errorf("got name: %q, want: %q", got, tc.want)
		}
	}
}

func TestOperationKindString(t *testing.T) {
	tests := []struct {
		kind OperationKind
		want string
	}{
		{QueryKind, "query"},
		{MutationKind, "mutation"},
		{SubscriptionKind, "subscription"},
		{OperationKind(9), "OperationKind(9)"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("got: %q, want: %q", got, tc.want)
		}
	}
}

func TestOptionsIsZero(t *testing.T) {
	if !(Options{}).isZero() {
		t.Error("got isZero: false for empty options, want: true")
	}

	tests := []Options{
		{Document: "query { a }"},
		{Variables: map[string]any{}},
		{Fragments: "fragment f on T { x }"},
		{UpdateQueries: map[string]any{}},
		{OptimisticResponse: 1},
		{Extra: map[string]any{}},
	}
	for i, o := range tests {
		if o.isZero() {
			t.Errorf("case %d: got isZero: true, want: false", i)
		}
	}
}

func TestDefined(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"typed nil pointer", (*int)(nil), false},
		{"typed nil map", (map[string]any)(nil), false},
		{"typed nil slice", ([]string)(nil), false},
		{"string", "query { a }", true},
		{"zero int", 0, true},
		{"empty struct", struct{}{}, true},
		{"non-nil pointer", new(int), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := defined(tc.in); got != tc.want {
				t.Errorf("got: %v, want: %v", got, tc.want)
			}
		})
	}
}
