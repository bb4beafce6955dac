package vector

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Vector is a dynamically growing array of T. Slots [0, Size()) hold live
// elements, slots [Size(), Capacity()) are reserved for growth.
// The zero value is an empty vector with default traits and options.
// Not goroutine-safe.
type Vector[T any] struct {
	_     noCopy
	data  RawMemory[T]
	size  int
	life  *lifecycle[T]
	cfg   *config
	stats stats
}

type stats struct {
	reallocations int
	rollbacks     int
}

// New creates an empty vector with no storage.
func New[T any](opts ...Option) *Vector[T] {
	cfg := newConfig(opts)
	var traits Traits[T]
	if cfg.traits != nil {
		t, ok := cfg.traits.(Traits[T])
		if !ok {
			panic(fmt.Sprintf("vector: %T does not match element type", cfg.traits))
		}
		traits = t
	}
	return &Vector[T]{life: traits.resolve(), cfg: cfg}
}

// NewSized creates a vector of n value-constructed elements with capacity n.
// If a construction fails, the elements built so far are destroyed and the
// error is returned.
func NewSized[T any](n int, opts ...Option) (*Vector[T], error) {
	if n < 0 {
		panic("vector: negative size")
	}
	v := New[T](opts...)
	if n == 0 {
		return v, nil
	}
	mem, err := v.allocate(n)
	if err != nil {
		return nil, err
	}
	if err := v.life.constructN(mem.Slots(0, n)); err != nil {
		mem.Release()
		return nil, err
	}
	v.data.MoveFrom(mem)
	v.size = n
	return v, nil
}

// FromSlice creates a vector holding copies of the elements of s, with
// capacity len(s).
func FromSlice[T any](s []T, opts ...Option) (*Vector[T], error) {
	v := New[T](opts...)
	if len(s) == 0 {
		return v, nil
	}
	mem, err := v.allocate(len(s))
	if err != nil {
		return nil, err
	}
	if err := v.life.copyN(mem.Slots(0, len(s)), s); err != nil {
		mem.Release()
		return nil, err
	}
	v.data.MoveFrom(mem)
	v.size = len(s)
	return v, nil
}

// Clone returns a copy of v whose capacity equals v's size.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	v.init()
	if v.life.moveOnly {
		return nil, errors.WithStack(ErrNotCopyable)
	}
	c := &Vector[T]{life: v.life, cfg: v.cfg}
	if v.size == 0 {
		return c, nil
	}
	mem, err := v.allocate(v.size)
	if err != nil {
		return nil, err
	}
	if err := v.life.copyN(mem.Slots(0, v.size), v.Data()); err != nil {
		mem.Release()
		return nil, err
	}
	c.data.MoveFrom(mem)
	c.size = v.size
	return c, nil
}

// Take moves v's storage and elements into a new vector and leaves v empty
// with no storage.
func (v *Vector[T]) Take() *Vector[T] {
	v.init()
	t := &Vector[T]{life: v.life, cfg: v.cfg, stats: v.stats}
	t.data.MoveFrom(&v.data)
	t.size = v.size
	v.size = 0
	v.stats = stats{}
	return t
}

// Release destroys every element in order and drops the storage. The vector
// is empty afterwards and may be reused.
func (v *Vector[T]) Release() {
	v.init()
	v.life.destroyN(v.data.Slots(0, v.size))
	v.size = 0
	v.data.Release()
}

// Assign replaces v's elements with copies of src's.
//
// When src does not fit in v's capacity, a complete copy is built in new
// storage first, so a failure leaves v untouched. Otherwise the overlapping
// prefix is assigned element by element and only the elements copied into
// fresh slots are rolled back on failure.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	v.init()
	if v.life.moveOnly {
		return errors.WithStack(ErrNotCopyable)
	}
	if src.size > v.data.Capacity() {
		mem, err := v.allocate(src.size)
		if err != nil {
			return err
		}
		if err := v.life.copyN(mem.Slots(0, src.size), src.Data()); err != nil {
			mem.Release()
			v.rolledBack("assign", err)
			return err
		}
		v.replace(mem, src.size, false)
		return nil
	}

	n := min(v.size, src.size)
	for i := 0; i < n; i++ {
		if err := v.life.assign(v.data.At(i), src.data.At(i)); err != nil {
			return errors.Wrapf(err, "assign element %d", i)
		}
	}
	if src.size > v.size {
		if err := v.life.copyN(v.data.Slots(v.size, src.size), src.data.Slots(v.size, src.size)); err != nil {
			v.rolledBack("assign", err)
			return err
		}
	} else {
		v.life.destroyN(v.data.Slots(src.size, v.size))
	}
	v.size = src.size
	return nil
}

// MoveAssign exchanges v's contents with src's. src ends up holding what v
// held before the call.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if v == src {
		return
	}
	v.Swap(src)
}

// Swap exchanges storage and size with other. Traits and options travel with
// the elements, so each element is always destroyed by the hooks that built it.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.data.Swap(&other.data)
	v.size, other.size = other.size, v.size
	v.life, other.life = other.life, v.life
	v.cfg, other.cfg = other.cfg, v.cfg
}

// Size returns the number of live elements.
func (v *Vector[T]) Size() int {
	return v.size
}

// Capacity returns the number of allocated slots.
func (v *Vector[T]) Capacity() int {
	return v.data.Capacity()
}

// Empty reports whether the vector holds no elements.
func (v *Vector[T]) Empty() bool {
	return v.size == 0
}

// Reserve grows capacity to exactly n if it is currently smaller. Elements are
// relocated into the new storage; if that fails, v is unchanged.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.data.Capacity() {
		return nil
	}
	v.init()
	return v.reallocate(n)
}

// ShrinkToFit reduces capacity to Size(), relocating elements like Reserve.
func (v *Vector[T]) ShrinkToFit() error {
	if v.size == v.data.Capacity() {
		return nil
	}
	if v.size == 0 {
		v.data.Release()
		return nil
	}
	v.init()
	return v.reallocate(v.size)
}

// Resize changes the number of elements to n. Shrinking destroys the tail.
// Growing value-constructs new elements at the end; if a construction fails,
// the new elements are destroyed and the size is left unchanged.
func (v *Vector[T]) Resize(n int) error {
	if n < 0 {
		panic("vector: negative size")
	}
	v.init()
	switch {
	case n < v.size:
		v.life.destroyN(v.data.Slots(n, v.size))
		v.size = n
	case n > v.size:
		if err := v.Reserve(n); err != nil {
			return err
		}
		if err := v.life.constructN(v.data.Slots(v.size, n)); err != nil {
			v.rolledBack("resize", err)
			return err
		}
		v.size = n
	}
	return nil
}

// Clear destroys every element but keeps the storage.
func (v *Vector[T]) Clear() {
	v.init()
	v.life.destroyN(v.data.Slots(0, v.size))
	v.size = 0
}

// PushBack appends a copy of value.
func (v *Vector[T]) PushBack(value T) error {
	v.init()
	if v.life.moveOnly {
		return errors.WithStack(ErrNotCopyable)
	}
	_, err := v.EmplaceBack(func(dst *T) error {
		return v.life.copy(dst, &value)
	})
	return err
}

// PushBackMove appends an element moved from *value.
func (v *Vector[T]) PushBackMove(value *T) error {
	v.init()
	_, err := v.EmplaceBack(func(dst *T) error {
		return v.life.move(dst, value)
	})
	return err
}

// EmplaceBack constructs a new last element with init and returns its
// address, valid until the next reallocation. A nil init value-constructs it.
//
// A full vector grows to max(1, growth*capacity). The new element is built
// before anything is relocated, so a failure at any step leaves v unchanged.
func (v *Vector[T]) EmplaceBack(init func(*T) error) (*T, error) {
	v.init()
	if v.size < v.data.Capacity() {
		p := v.data.At(v.size)
		if err := v.life.emplace(p, init); err != nil {
			return nil, errors.Wrapf(err, "emplace element %d", v.size)
		}
		v.size++
		return p, nil
	}
	if err := v.emplaceRealloc(v.size, init); err != nil {
		return nil, err
	}
	return v.data.At(v.size - 1), nil
}

// PopBack destroys the last element. It panics if the vector is empty.
func (v *Vector[T]) PopBack() {
	if v.size == 0 {
		panic("vector: PopBack on empty vector")
	}
	v.init()
	v.size--
	v.life.destroy(v.data.At(v.size))
}

// At returns the address of element i, valid until the next reallocation.
func (v *Vector[T]) At(i int) *T {
	v.checkIndex(i)
	return v.data.At(i)
}

// Get returns a copy of element i.
func (v *Vector[T]) Get(i int) T {
	v.checkIndex(i)
	return v.data.buf[i]
}

// Front returns the address of the first element.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns the address of the last element.
func (v *Vector[T]) Back() *T {
	return v.At(v.size - 1)
}

// Data returns the live elements as a slice sharing v's storage. It is
// invalidated by any reallocation.
func (v *Vector[T]) Data() []T {
	return v.data.Slots(0, v.size)
}

func (v *Vector[T]) checkIndex(i int) {
	if uint(i) >= uint(v.size) {
		panic(fmt.Sprintf("vector: index %d out of range [0:%d]", i, v.size))
	}
}

// init gives a zero Vector its default traits and options.
func (v *Vector[T]) init() {
	if v.life == nil {
		v.life = Traits[T]{}.resolve()
	}
	if v.cfg == nil {
		v.cfg = newConfig(nil)
	}
}

// allocate returns fresh storage for n slots, honoring the configured limit.
func (v *Vector[T]) allocate(n int) (*RawMemory[T], error) {
	if n > v.cfg.maxCapacity {
		return nil, errors.Wrapf(ErrOutOfMemory, "capacity %d exceeds limit %d", n, v.cfg.maxCapacity)
	}
	return NewRawMemory[T](n)
}

// grown returns the capacity a full vector grows to.
func (v *Vector[T]) grown() int {
	c := v.data.Capacity()
	if c == 0 {
		return 1
	}
	if c > math.MaxInt/v.cfg.growth {
		return math.MaxInt
	}
	return c * v.cfg.growth
}

// reallocate moves every element into new storage of exactly n slots.
func (v *Vector[T]) reallocate(n int) error {
	mem, err := v.allocate(n)
	if err != nil {
		return err
	}
	if err := v.life.relocateN(mem.Slots(0, v.size), v.Data()); err != nil {
		mem.Release()
		v.rolledBack("reallocate", err)
		return err
	}
	v.replace(mem, v.size, true)
	return nil
}

// replace installs mem holding size live elements and releases the old block.
// The old elements are vacated if they were relocated into mem and destroyed
// otherwise.
func (v *Vector[T]) replace(mem *RawMemory[T], size int, relocated bool) {
	from := v.data.Capacity()
	if relocated {
		v.life.vacateN(v.data.Slots(0, v.size))
	} else {
		v.life.destroyN(v.data.Slots(0, v.size))
	}
	v.data.Swap(mem)
	mem.Release()
	v.size = size
	v.stats.reallocations++
	v.cfg.logger.Debug("vector reallocated",
		zap.Int("from", from),
		zap.Int("to", v.data.Capacity()),
		zap.Int("size", size),
	)
}

func (v *Vector[T]) rolledBack(op string, err error) {
	v.stats.rollbacks++
	v.cfg.logger.Debug("vector rolled back",
		zap.String("op", op),
		zap.Int("size", v.size),
		zap.Int("capacity", v.data.Capacity()),
		zap.Error(err),
	)
}
