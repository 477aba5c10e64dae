package cmap

import (
	"cmp"
	"math"

	"golang.org/x/exp/constraints"
)

// A KeySpace defines the total order and adjacency relation of a key type.
//
// Implementations must keep the order and the stepping operations
// consistent: Next must be monotonic with respect to Compare, Prev must
// invert Next, and Distance/Advance must agree with repeated stepping.
// The map does not check this at runtime; supplying an inconsistent
// KeySpace results in undefined behaviour.
type KeySpace[K any] interface {
	// Compare returns a negative number if a orders before b, zero if the
	// keys are equal, and a positive number if a orders after b.
	Compare(a, b K) int

	// Next returns the key immediately after k. Returns false if k is the
	// last representable key.
	Next(k K) (K, bool)

	// Prev returns the key immediately before k. Returns false if k is the
	// first representable key.
	Prev(k K) (K, bool)

	// Distance returns the number of steps from smaller up to k. Returns
	// false if k orders before smaller, or if the distance does not fit in
	// an int.
	Distance(k, smaller K) (int, bool)

	// Advance returns the key n steps after k. Returns false if n is
	// negative or the resulting key is not representable.
	Advance(k K, n int) (K, bool)
}

// IntKeys implements KeySpace for the built-in integer types, including
// character-like types such as rune and byte.
type IntKeys[K constraints.Integer] struct{}

var _ = (KeySpace[int])(IntKeys[int]{})

func (IntKeys[K]) Compare(a, b K) int {
	return cmp.Compare(a, b)
}

func (IntKeys[K]) Next(k K) (K, bool) {
	next := k + 1
	if next < k {
		return k, false
	}
	return next, true
}

func (IntKeys[K]) Prev(k K) (K, bool) {
	prev := k - 1
	if prev > k {
		return k, false
	}
	return prev, true
}

func (IntKeys[K]) Distance(k, smaller K) (int, bool) {
	if k < smaller {
		return 0, false
	}
	// Subtraction modulo 2^64 yields the correct magnitude for signed key
	// types, which may overflow K itself (e.g. int8: 127 - (-128)).
	d := uint64(k) - uint64(smaller)
	if d > uint64(math.MaxInt) {
		return 0, false
	}
	return int(d), true
}

func (IntKeys[K]) Advance(k K, n int) (K, bool) {
	if n < 0 {
		return k, false
	}
	// The addition wraps modulo the width of K. n itself may exceed K's
	// range while the destination is still representable (int8 spans 256
	// keys), so verify the result by measuring the step back in uint64
	// space, the same way Distance does.
	next := k + K(n)
	if next < k || uint64(next)-uint64(k) != uint64(n) {
		return k, false
	}
	return next, true
}
