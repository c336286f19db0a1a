package reflectutil

import "reflect"

// IsNillable returns true if the given kind can hold a nil value.
func IsNillable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Ptr,
		reflect.Interface,
		reflect.Slice,
		reflect.Map,
		reflect.Chan,
		reflect.Func:
		return true
	default:
		return false
	}
}

// IsNilValue safely checks if a reflect.Value is nil.
// Returns true if:
// - The value is invalid
// - The value's kind can hold nil (pointer, interface, slice, map, chan, func) AND it is nil
// Returns false for non-nillable kinds (int, string, struct, etc.)
//
// This consolidates the common pattern of checking both the kind and IsNil().
func IsNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	return IsNillable(v.Kind()) && v.IsNil()
}

// IsNilAny checks whether a value stored in an interface carries nothing,
// including the typed-nil case: an interface holding (*T)(nil) compares
// unequal to nil but still has no usable value. Callers use this to decide
// whether an opaque options field is present.
func IsNilAny(v any) bool {
	if v == nil {
		return true
	}
	return IsNilValue(reflect.ValueOf(v))
}
