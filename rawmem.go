package vector

import (
	"unsafe"

	"github.com/pkg/errors"
)

// maxAllocBytes is the largest block RawMemory will request from the runtime:
// 2^47-1 bytes on 64-bit platforms, 2^31-1 on 32-bit ones.
const maxAllocBytes = 1<<(31+16*(^uint(0)>>63)) - 1

// noCopy may be embedded into structs which must not be copied after first use.
// See go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// RawMemory owns a single contiguous block with room for Capacity() elements of
// type T. It never runs element hooks: which slots hold live values is the
// owner's business. Not goroutine-safe.
type RawMemory[T any] struct {
	_   noCopy
	buf []T // len(buf) == capacity
}

// NewRawMemory allocates a block for capacity elements. A zero capacity yields an
// empty handle with no block. It panics if capacity is negative.
func NewRawMemory[T any](capacity int) (*RawMemory[T], error) {
	m := &RawMemory[T]{}
	if err := m.allocate(capacity); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *RawMemory[T]) allocate(n int) error {
	if n < 0 {
		panic("vector: negative capacity")
	}
	if n == 0 {
		m.buf = nil
		return nil
	}
	if !fits[T](n) {
		return errors.Wrapf(ErrOutOfMemory, "allocate %d slots", n)
	}
	m.buf = make([]T, n)
	return nil
}

// Release drops the block without inspecting its contents. The handle is empty
// and may be reused afterwards.
func (m *RawMemory[T]) Release() {
	m.buf = nil
}

// Take transfers the block to a new handle and leaves m empty.
func (m *RawMemory[T]) Take() *RawMemory[T] {
	t := &RawMemory[T]{buf: m.buf}
	m.buf = nil
	return t
}

// MoveFrom releases m's block and adopts other's, leaving other empty.
func (m *RawMemory[T]) MoveFrom(other *RawMemory[T]) {
	if m == other {
		return
	}
	m.buf = other.buf
	other.buf = nil
}

// Swap exchanges the blocks of m and other.
func (m *RawMemory[T]) Swap(other *RawMemory[T]) {
	m.buf, other.buf = other.buf, m.buf
}

// At returns the address of slot offset. The slot is not necessarily live.
func (m *RawMemory[T]) At(offset int) *T {
	if uint(offset) >= uint(len(m.buf)) {
		panic("vector: slot offset out of range")
	}
	return &m.buf[offset]
}

// Slots returns slots [from, to) as a slice whose capacity ends at to, so
// appending to it never writes past the requested range.
func (m *RawMemory[T]) Slots(from, to int) []T {
	return m.buf[from:to:to]
}

// Capacity returns the number of slots in the block.
func (m *RawMemory[T]) Capacity() int {
	return len(m.buf)
}

// offsetOf reports the slot p points at, if p points into the block.
func (m *RawMemory[T]) offsetOf(p *T) (int, bool) {
	if p == nil || len(m.buf) == 0 {
		return 0, false
	}
	size := unsafe.Sizeof(*p)
	if size == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(&m.buf[0]))
	addr := uintptr(unsafe.Pointer(p))
	if addr < base || addr >= base+uintptr(len(m.buf))*size {
		return 0, false
	}
	return int((addr - base) / size), true
}

// fits reports whether n elements of T stay under maxAllocBytes.
func fits[T any](n int) bool {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return true
	}
	return uintptr(n) <= maxAllocBytes/size
}
