package vector

// Traits describes how a vector constructs, copies, moves, assigns and destroys
// its elements. Every hook is optional; a zero Traits treats T as a plain Go
// value that is copied bitwise and never fails.
//
// A hook that returns an error must leave its destination unconstructed (for
// Construct, Copy and Move) or unchanged (for Assign and MoveAssign). The
// vector takes care of destroying everything else it built before the error
// reached it.
type Traits[T any] struct {
	// Construct value-constructs *dst. Used by NewSized and a growing Resize.
	Construct func(dst *T) error

	// Copy copy-constructs *dst from *src.
	Copy func(dst, src *T) error

	// Move move-constructs *dst from *src, leaving *src valid but unspecified.
	// A nil Move transfers elements bitwise: the vacated slot is cleared and
	// Destroy is not run on it.
	Move func(dst, src *T) error

	// Assign copy-assigns *src over the live value *dst.
	Assign func(dst, src *T) error

	// MoveAssign move-assigns *src over the live value *dst. When Move is nil,
	// *dst may be a slot just cleared by a bitwise move.
	MoveAssign func(dst, src *T) error

	// Destroy ends the lifetime of *p. The slot is zeroed afterwards. It runs
	// once for every element the vector holds, including elements left behind
	// by InsertMove or created by a nil Construct, but never on a slot the
	// vector vacated with a bitwise move.
	Destroy func(p *T)

	// NothrowMove promises that Move never fails. Relocation during growth then
	// moves elements instead of copying them.
	NothrowMove bool

	// MoveOnly marks T as not copyable. Relocation always moves and copying
	// operations return ErrNotCopyable.
	MoveOnly bool
}

// lifecycle is Traits with defaults filled in and the relocation strategy
// decided. It is resolved once per vector and shared by its clones.
type lifecycle[T any] struct {
	construct  func(dst *T) error
	copy       func(dst, src *T) error
	move       func(dst, src *T) error
	assign     func(dst, src *T) error
	moveAssign func(dst, src *T) error
	destroyFn  func(p *T)

	moveOnly       bool
	relocateByMove bool
	bitwiseMove    bool // Move is the default transfer
	bitwiseShift   bool // MoveAssign is too, so shifting is a plain copy
}

func (t Traits[T]) resolve() *lifecycle[T] {
	l := &lifecycle[T]{
		construct:      t.Construct,
		copy:           t.Copy,
		move:           t.Move,
		assign:         t.Assign,
		moveAssign:     t.MoveAssign,
		destroyFn:      t.Destroy,
		moveOnly:       t.MoveOnly,
		relocateByMove: t.Move == nil || t.NothrowMove || t.MoveOnly,
		bitwiseMove:    t.Move == nil,
		bitwiseShift:   t.Move == nil && t.MoveAssign == nil,
	}
	if l.construct == nil {
		l.construct = func(dst *T) error {
			var zero T
			*dst = zero
			return nil
		}
	}
	if l.copy == nil && !t.MoveOnly {
		l.copy = func(dst, src *T) error {
			*dst = *src
			return nil
		}
	}
	if l.move == nil {
		l.move = func(dst, src *T) error {
			var zero T
			*dst = *src
			*src = zero
			return nil
		}
	}
	if l.assign == nil && l.copy != nil {
		l.assign = l.assignViaCopy
	}
	if l.moveAssign == nil {
		l.moveAssign = l.assignViaMove
	}
	return l
}

// assignViaCopy builds the new value aside so a failing Copy leaves dst intact.
func (l *lifecycle[T]) assignViaCopy(dst, src *T) error {
	var tmp T
	if err := l.copy(&tmp, src); err != nil {
		return err
	}
	l.destroy(dst)
	*dst = tmp
	return nil
}

func (l *lifecycle[T]) assignViaMove(dst, src *T) error {
	var tmp T
	if err := l.move(&tmp, src); err != nil {
		return err
	}
	l.destroy(dst)
	*dst = tmp
	return nil
}

// destroy runs the Destroy hook and zeroes the slot so the collector can
// reclaim whatever the element referenced.
func (l *lifecycle[T]) destroy(p *T) {
	if l.destroyFn != nil {
		l.destroyFn(p)
	}
	var zero T
	*p = zero
}

// vacate ends a slot whose value was moved out. A bitwise move leaves nothing
// to destroy, so the slot is only cleared.
func (l *lifecycle[T]) vacate(p *T) {
	if l.bitwiseMove {
		var zero T
		*p = zero
		return
	}
	l.destroy(p)
}

// emplace constructs *dst with init, or value-constructs it when init is nil.
// A failed slot is zeroed without being destroyed.
func (l *lifecycle[T]) emplace(dst *T, init func(*T) error) error {
	if init == nil {
		init = l.construct
	}
	if err := init(dst); err != nil {
		var zero T
		*dst = zero
		return err
	}
	return nil
}

// relocate constructs *dst from *src using the strategy chosen at resolve time.
func (l *lifecycle[T]) relocate(dst, src *T) error {
	if l.relocateByMove {
		return l.move(dst, src)
	}
	return l.copy(dst, src)
}
