// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package optional holds a minimal present-or-absent value wrapper. Iterators
// return it in place of (value, ok) pairs so that an exhausted stream can be
// passed around as a single value.
package optional

type Optional[T any] struct {
	present bool
	value   T
}

func (self Optional[T]) IsPresent() bool {
	return self.present
}

// Value returns the wrapped value or the zero value of T when absent.
func (self Optional[T]) Value() T {
	return self.value
}

// ValueOr returns the wrapped value or the given fallback when absent.
func (self Optional[T]) ValueOr(fallback T) T {
	if !self.present {
		return fallback
	}
	return self.value
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{
		present: true,
		value:   v,
	}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}
