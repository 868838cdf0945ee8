// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package vartype

import (
	"fmt"
)

type (
	// VarString is a type alias for Variable[string], used for user preferences that may be unset.
	VarString = Variable[string]

	// VarBool is a type alias for Variable[bool].
	VarBool = Variable[bool]
)

// Variable holds a value and tracks whether it has been explicitly set.
type Variable[T any] struct {
	value T
	isset bool
}

// NewVariable returns a Variable that is marked as set to value.
func NewVariable[T any](value T) Variable[T] {
	return Variable[T]{
		isset: true,
		value: value,
	}
}

// Reset clears the value and marks the Variable as unset.
func (v *Variable[T]) Reset() {
	var zero T
	v.value = zero
	v.isset = false
}

// Value returns the stored value, or the zero value of T if unset.
func (v *Variable[T]) Value() T {
	return v.value
}

// ValueOr returns the stored value if set, otherwise def.
func (v *Variable[T]) ValueOr(def T) T {
	if !v.isset {
		return def
	}
	return v.value
}

// Set stores val and marks the Variable as set.
func (v *Variable[T]) Set(val T) {
	v.value = val
	v.isset = true
}

// IsSet reports whether a value has been set.
func (v *Variable[T]) IsSet() bool {
	return v.isset
}

// String returns the value in its default format, or "unset".
func (v Variable[T]) String() string {
	if !v.isset {
		return "unset"
	}
	return fmt.Sprint(v.value)
}
