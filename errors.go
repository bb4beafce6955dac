package vector

import "github.com/pkg/errors"

var (
	// ErrOutOfMemory is returned when a block of the requested capacity cannot be
	// allocated, either because its byte size overflows the address space or
	// because it exceeds the limit set with WithMaxCapacity.
	ErrOutOfMemory = errors.New("vector: out of memory")

	// ErrNotCopyable is returned by copying operations on a vector whose traits
	// are marked MoveOnly.
	ErrNotCopyable = errors.New("vector: element type is not copyable")
)
