package vector

import "iter"

// All returns an iterator over the live elements in order, yielding each
// index with the element's address.
func (v *Vector[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.data.At(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over copies of the live elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.data.buf[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over the live elements from last to first.
func (v *Vector[T]) Backward() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := v.size - 1; i >= 0; i-- {
			if !yield(i, v.data.At(i)) {
				return
			}
		}
	}
}
