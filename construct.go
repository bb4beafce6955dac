package vector

import "github.com/pkg/errors"

// constructN value-constructs every slot. If one fails, the slots constructed
// so far are destroyed before the error is returned. A panicking hook is
// unwound the same way.
func (l *lifecycle[T]) constructN(slots []T) (err error) {
	i := 0
	defer func() {
		if i < len(slots) {
			l.abandon(slots, i)
		}
	}()
	for ; i < len(slots); i++ {
		if err = l.emplace(&slots[i], nil); err != nil {
			return errors.Wrapf(err, "construct element %d", i)
		}
	}
	return nil
}

// copyN copy-constructs dst[i] from src[i] for every i, with the same rollback
// as constructN.
func (l *lifecycle[T]) copyN(dst, src []T) (err error) {
	if l.moveOnly {
		return errors.WithStack(ErrNotCopyable)
	}
	i := 0
	defer func() {
		if i < len(src) {
			l.abandon(dst, i)
		}
	}()
	for ; i < len(src); i++ {
		if err = l.copy(&dst[i], &src[i]); err != nil {
			return errors.Wrapf(err, "copy element %d", i)
		}
	}
	return nil
}

// relocateN constructs dst[i] from src[i] by move or copy, whichever the traits
// made safe. src is left for the caller to vacate once the whole relocation
// has succeeded; on failure dst is unwound and src is untouched when copying.
func (l *lifecycle[T]) relocateN(dst, src []T) (err error) {
	i := 0
	defer func() {
		if i < len(src) {
			l.abandon(dst, i)
		}
	}()
	for ; i < len(src); i++ {
		if err = l.relocate(&dst[i], &src[i]); err != nil {
			return errors.Wrapf(err, "relocate element %d", i)
		}
	}
	return nil
}

// destroyN destroys slots in order.
func (l *lifecycle[T]) destroyN(slots []T) {
	for i := range slots {
		l.destroy(&slots[i])
	}
}

// vacateN vacates slots whose values were relocated elsewhere.
func (l *lifecycle[T]) vacateN(slots []T) {
	if l.bitwiseMove {
		clear(slots)
		return
	}
	l.destroyN(slots)
}

// abandon destroys the committed slots [0, n) and zeroes the slot that failed.
func (l *lifecycle[T]) abandon(slots []T, n int) {
	l.destroyN(slots[:n])
	if n < len(slots) {
		clear(slots[n : n+1])
	}
}

// guard owns a freshly allocated block while it is being filled. Until
// dismissed, unwind destroys every range registered with add and releases the
// block.
type guard[T any] struct {
	life      *lifecycle[T]
	mem       *RawMemory[T]
	spans     [][2]int
	dismissed bool
}

func newGuard[T any](life *lifecycle[T], mem *RawMemory[T]) *guard[T] {
	return &guard[T]{life: life, mem: mem}
}

func (g *guard[T]) add(from, to int) {
	if from < to {
		g.spans = append(g.spans, [2]int{from, to})
	}
}

func (g *guard[T]) dismiss() {
	g.dismissed = true
}

func (g *guard[T]) unwind() {
	if g.dismissed {
		return
	}
	for _, s := range g.spans {
		g.life.destroyN(g.mem.Slots(s[0], s[1]))
	}
	g.mem.Release()
}
