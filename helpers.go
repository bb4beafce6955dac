package vector

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	return slices.Equal(a.Data(), b.Data())
}

// Index returns the position of the first element equal to x, or -1.
func Index[T comparable](v *Vector[T], x T) int {
	return slices.Index(v.Data(), x)
}

// Sum adds up the elements of a numeric vector.
func Sum[T constraints.Integer | constraints.Float](v *Vector[T]) T {
	var sum T
	for _, x := range v.Data() {
		sum += x
	}
	return sum
}
