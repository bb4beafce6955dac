package vector

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Emplace constructs a new element with init before position pos, shifting
// later elements up by one, and returns pos. A nil init value-constructs the
// element. pos must be in [0, Size()].
//
// If the vector is full, the prefix, the new element and the suffix are
// built into new storage and a failure leaves v unchanged. Otherwise the new
// value is built aside, the tail is shifted with MoveAssign and the value is
// move-assigned into place; a failed final assignment undoes the shift.
// Without Move and MoveAssign hooks the shift is a plain copy that cannot fail.
func (v *Vector[T]) Emplace(pos int, init func(*T) error) (int, error) {
	if uint(pos) > uint(v.size) {
		panic(fmt.Sprintf("vector: position %d out of range [0:%d]", pos, v.size))
	}
	v.init()
	var err error
	switch {
	case v.size == v.data.Capacity():
		err = v.emplaceRealloc(pos, init)
	case pos == v.size:
		_, err = v.EmplaceBack(init)
	default:
		err = v.emplaceShift(pos, init)
	}
	if err != nil {
		return 0, err
	}
	return pos, nil
}

// Insert inserts a copy of value before pos and returns pos.
func (v *Vector[T]) Insert(pos int, value T) (int, error) {
	v.init()
	if v.life.moveOnly {
		return 0, errors.WithStack(ErrNotCopyable)
	}
	return v.Emplace(pos, func(dst *T) error {
		return v.life.copy(dst, &value)
	})
}

// InsertFrom inserts a copy of *src before pos and returns pos. src may point
// at an element of v.
func (v *Vector[T]) InsertFrom(pos int, src *T) (int, error) {
	v.init()
	if v.life.moveOnly {
		return 0, errors.WithStack(ErrNotCopyable)
	}
	if v.owns(src) {
		var tmp T
		if err := v.life.copy(&tmp, src); err != nil {
			return 0, errors.Wrap(err, "capture inserted element")
		}
		return v.insertCaptured(pos, &tmp)
	}
	return v.Emplace(pos, func(dst *T) error {
		return v.life.copy(dst, src)
	})
}

// InsertMove inserts an element moved from *src before pos and returns pos.
// src may point at an element of v.
func (v *Vector[T]) InsertMove(pos int, src *T) (int, error) {
	v.init()
	if v.owns(src) {
		var tmp T
		if err := v.life.move(&tmp, src); err != nil {
			return 0, errors.Wrap(err, "capture inserted element")
		}
		return v.insertCaptured(pos, &tmp)
	}
	return v.Emplace(pos, func(dst *T) error {
		return v.life.move(dst, src)
	})
}

// Erase removes the element at pos, shifting later elements down with
// MoveAssign, or bitwise when the traits set neither Move nor MoveAssign.
// It is only as failure-safe as MoveAssign: if a shift fails the
// error is returned with the size unchanged and the elements from pos onward
// in an unspecified order.
func (v *Vector[T]) Erase(pos int) error {
	v.checkIndex(pos)
	v.init()
	if v.life.bitwiseShift {
		s := v.data.Slots(0, v.size)
		v.life.destroy(&s[pos])
		copy(s[pos:], s[pos+1:])
		v.size--
		clear(s[v.size:])
		return nil
	}
	for i := pos; i < v.size-1; i++ {
		if err := v.life.moveAssign(v.data.At(i), v.data.At(i+1)); err != nil {
			return errors.Wrapf(err, "erase: shift element %d", i+1)
		}
	}
	v.size--
	v.life.destroy(v.data.At(v.size))
	return nil
}

// insertCaptured inserts tmp, a value captured from v's own elements, by
// moving it into place. tmp is destroyed if it was never moved and vacated
// otherwise.
func (v *Vector[T]) insertCaptured(pos int, tmp *T) (int, error) {
	moved := false
	defer func() {
		if moved {
			v.life.vacate(tmp)
		} else {
			v.life.destroy(tmp)
		}
	}()
	return v.Emplace(pos, func(dst *T) error {
		if err := v.life.move(dst, tmp); err != nil {
			return err
		}
		moved = true
		return nil
	})
}

// owns reports whether p points at a live element of v.
func (v *Vector[T]) owns(p *T) bool {
	i, ok := v.data.offsetOf(p)
	return ok && i < v.size
}

// emplaceRealloc grows a full vector and builds the new element at pos
// together with relocated copies of the rest.
func (v *Vector[T]) emplaceRealloc(pos int, init func(*T) error) error {
	mem, err := v.allocate(v.grown())
	if err != nil {
		return err
	}
	g := newGuard(v.life, mem)
	defer g.unwind()

	if err := v.life.emplace(mem.At(pos), init); err != nil {
		err = errors.Wrapf(err, "emplace element %d", pos)
		v.rolledBack("emplace", err)
		return err
	}
	g.add(pos, pos+1)
	if err := v.life.relocateN(mem.Slots(0, pos), v.data.Slots(0, pos)); err != nil {
		v.rolledBack("emplace", err)
		return err
	}
	g.add(0, pos)
	if err := v.life.relocateN(mem.Slots(pos+1, v.size+1), v.data.Slots(pos, v.size)); err != nil {
		v.rolledBack("emplace", err)
		return err
	}
	g.dismiss()
	v.replace(mem, v.size+1, true)
	return nil
}

// emplaceShift inserts at an interior pos of a vector with spare capacity.
func (v *Vector[T]) emplaceShift(pos int, init func(*T) error) error {
	var tmp T
	if err := v.life.emplace(&tmp, init); err != nil {
		return errors.Wrapf(err, "emplace element %d", pos)
	}
	if v.life.bitwiseShift {
		s := v.data.Slots(0, v.size+1)
		copy(s[pos+1:], s[pos:v.size])
		s[pos] = tmp
		v.size++
		return nil
	}
	defer v.life.destroy(&tmp)

	last := v.size
	if err := v.life.move(v.data.At(last), v.data.At(last-1)); err != nil {
		clear(v.data.Slots(last, last+1))
		err = errors.Wrapf(err, "emplace: move element %d", last-1)
		v.rolledBack("emplace", err)
		return err
	}
	for i := last - 1; i > pos; i-- {
		if err := v.life.moveAssign(v.data.At(i), v.data.At(i-1)); err != nil {
			err = errors.Wrapf(err, "emplace: shift element %d", i-1)
			return v.unshift(i, last, err)
		}
	}
	if err := v.life.moveAssign(v.data.At(pos), &tmp); err != nil {
		err = errors.Wrapf(err, "emplace: assign element %d", pos)
		return v.unshift(pos, last, err)
	}
	v.size++
	return nil
}

// unshift moves slots (from, last] back down by one and destroys the extra
// slot at last, reverting a partial emplaceShift. Failures while undoing are
// appended to err.
func (v *Vector[T]) unshift(from, last int, err error) error {
	for k := from; k < last; k++ {
		if uerr := v.life.moveAssign(v.data.At(k), v.data.At(k+1)); uerr != nil {
			err = multierr.Append(err, errors.Wrapf(uerr, "undo shift of element %d", k))
		}
	}
	v.life.destroy(v.data.At(last))
	v.rolledBack("emplace", err)
	return err
}
