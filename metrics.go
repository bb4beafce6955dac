package vector

// Utilization returns the ratio of live elements to allocated slots (0.0 to 1.0).
// Returns 0.0 if the vector has no capacity.
func (v *Vector[T]) Utilization() float64 {
	capacity := v.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(v.size) / float64(capacity)
}

// Reallocations returns how many times the vector moved to new storage.
func (v *Vector[T]) Reallocations() int {
	return v.stats.reallocations
}

// Rollbacks returns how many mutations failed and were undone.
func (v *Vector[T]) Rollbacks() int {
	return v.stats.rollbacks
}

// Metrics returns a snapshot of vector statistics.
func (v *Vector[T]) Metrics() VectorMetrics {
	return VectorMetrics{
		Size:          v.Size(),
		Capacity:      v.Capacity(),
		Reallocations: v.Reallocations(),
		Rollbacks:     v.Rollbacks(),
		Utilization:   v.Utilization(),
	}
}

// VectorMetrics contains statistical information about a vector.
type VectorMetrics struct {
	Size          int     // Live elements
	Capacity      int     // Allocated slots
	Reallocations int     // Moves to new storage
	Rollbacks     int     // Failed mutations that were undone
	Utilization   float64 // Ratio of size to capacity (0.0-1.0)
}
