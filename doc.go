// Package vector implements a generic, dynamically growing array with explicit
// control over element lifetimes.
//
// # Overview
//
// The package is built from two layers:
//
//   - RawMemory owns one contiguous block of slots and knows nothing about which
//     of them hold live values. It only allocates, releases and transfers.
//   - Vector owns exactly one RawMemory plus a count of live elements, and runs
//     every construction, copy, move, assignment and destruction itself.
//
// # Basic Usage
//
//	v := vector.New[int]()
//	defer v.Release()
//
//	v.PushBack(1)
//	v.PushBack(2)
//	v.Insert(1, 10) // [1 10 2]
//	v.Erase(0)      // [10 2]
//
//	for i, x := range v.All() {
//		fmt.Println(i, *x)
//	}
//
// # Element Lifetimes
//
// By default elements are plain Go values. Types that own resources, count
// instances or may fail while being built describe themselves with Traits:
//
//	v := vector.New[Conn](vector.WithTraits(vector.Traits[Conn]{
//		Copy:    dialCopy,
//		Destroy: func(c *Conn) { c.Close() },
//	}))
//
// A hook reports failure by returning an error; the vector propagates it to
// the caller after undoing its own work.
//
// Without a Move hook, elements are relocated and shifted bitwise. The slots
// they leave behind are cleared without calling Destroy, so in the example
// above Close runs exactly once per Conn the vector copied in.
//
// The zero Vector is ready to use with default traits. Swap and MoveAssign
// exchange traits along with the elements.
//
// # Failure Guarantees
//
// Operations that build elements into fresh slots leave the vector exactly as
// it was when a hook fails: NewSized, Clone, FromSlice, Reserve, ShrinkToFit,
// a growing Resize, and PushBack, EmplaceBack, Insert and Emplace when they
// reallocate. Every element the vector constructed during the failed call is
// destroyed before the error is returned.
//
// Operations that rely on an element's assignment, such as the in-place path
// of Assign and the shifting done by Erase, are only as safe as Assign and
// MoveAssign themselves.
//
// When a vector grows, elements are relocated by Move if the traits promise
// that moves never fail (NothrowMove) or the type is MoveOnly, and by Copy
// otherwise, so a failed growth never damages the original elements.
//
// # Growth
//
// A full vector grows to max(1, 2*capacity), giving amortized O(1) appends and
// the capacity sequence 1, 2, 4, 8, ... Reserve allocates exactly what it is
// asked for. WithGrowthFactor changes the multiplier and WithMaxCapacity puts a
// ceiling on allocations, beyond which ErrOutOfMemory is returned.
//
// # Important Notes
//
//   - Vector is not goroutine-safe
//   - Addresses returned by At, Front, Back and EmplaceBack and slices returned
//     by Data are invalidated by any reallocation
//   - Out-of-range indexes and PopBack on an empty vector panic
//   - Vector and RawMemory must not be copied; go vet reports copies
//
// # Metrics and Monitoring
//
//	m := v.Metrics()
//	fmt.Printf("Utilization: %.2f%%\n", m.Utilization*100)
//	fmt.Printf("Reallocations: %d\n", m.Reallocations)
//
// Reallocations and rollbacks are also logged at debug level to the logger
// given with WithLogger.
package vector
