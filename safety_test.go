package vector

import (
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// The tests below inject a failure into every hook call an operation makes,
// one at a time, and check that the vector comes out unchanged with nothing
// leaked.

func TestReserveFailureSafety(t *testing.T) {
	l := newLedger()
	probe(t, l, func() *Vector[tracked] {
		return newTracked(t, l, false, 0, 1, 2, 3, 4, 5)
	}, func(v *Vector[tracked]) error {
		return v.Reserve(32)
	}, true)
}

func TestShrinkToFitFailureSafety(t *testing.T) {
	l := newLedger()
	probe(t, l, func() *Vector[tracked] {
		return newTracked(t, l, false, 16, 1, 2, 3)
	}, func(v *Vector[tracked]) error {
		return v.ShrinkToFit()
	}, true)
}

func TestResizeFailureSafety(t *testing.T) {
	tests := []struct {
		name        string
		nothrowMove bool
		capacity    int
	}{
		{"grow within capacity", false, 16},
		{"grow with relocation by copy", false, 0},
		{"grow with relocation by move", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			probe(t, l, func() *Vector[tracked] {
				return newTracked(t, l, tt.nothrowMove, tt.capacity, 1, 2, 3)
			}, func(v *Vector[tracked]) error {
				return v.Resize(8)
			}, false)
		})
	}
}

func TestPushBackFailureSafety(t *testing.T) {
	l := newLedger()
	probe(t, l, func() *Vector[tracked] {
		return newTracked(t, l, false, 4, 1, 2, 3, 4)
	}, func(v *Vector[tracked]) error {
		return v.PushBack(tracked{val: 5})
	}, true)
}

func TestEmplaceBackFailureSafety(t *testing.T) {
	l := newLedger()
	probe(t, l, func() *Vector[tracked] {
		return newTracked(t, l, false, 4, 1, 2, 3, 4)
	}, func(v *Vector[tracked]) error {
		_, err := v.EmplaceBack(func(dst *tracked) error {
			if err := l.tick(); err != nil {
				return err
			}
			*dst = tracked{val: 5}
			l.constructed++
			return nil
		})
		return err
	}, true)
}

func TestInsertFailureSafety(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pos      int
	}{
		{"reallocating front", 4, 0},
		{"reallocating middle", 4, 2},
		{"reallocating end", 4, 4},
		{"shifting front", 8, 0},
		{"shifting middle", 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger()
			probe(t, l, func() *Vector[tracked] {
				return newTracked(t, l, false, tt.capacity, 1, 2, 3, 4)
			}, func(v *Vector[tracked]) error {
				_, err := v.Insert(tt.pos, tracked{val: 9})
				return err
			}, true)
		})
	}
}

func TestInsertFromSelfFailureSafety(t *testing.T) {
	l := newLedger()
	probe(t, l, func() *Vector[tracked] {
		return newTracked(t, l, false, 4, 1, 2, 3, 4)
	}, func(v *Vector[tracked]) error {
		_, err := v.InsertFrom(1, v.At(3))
		return err
	}, true)
}

func TestNothrowMoveNeverFailsGrowth(t *testing.T) {
	l := newLedger()
	v := newTracked(t, l, true, 0, 1, 2, 3, 4)

	// With moves that cannot fail only the new element's copy can.
	l.arm(1)
	if err := v.PushBack(tracked{val: 5}); err != nil {
		t.Fatalf("PushBack: %v", err)
	}
	l.disarm()
	if got := trackedValues(v); !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Errorf("contents = %v", got)
	}

	l.arm(0)
	err := v.Reserve(64)
	l.disarm()
	if err != nil {
		t.Errorf("Reserve with nothrow moves failed: %v", err)
	}
	v.Release()
	if l.live() != 0 {
		t.Errorf("%d elements leaked", l.live())
	}
}

type panicky struct{ n int }

func TestPanicUnwind(t *testing.T) {
	constructed, destroyed := 0, 0
	v := New[panicky](WithTraits(Traits[panicky]{
		Copy: func(dst, src *panicky) error {
			if src.n == 3 {
				panic("copy exploded")
			}
			*dst = *src
			constructed++
			return nil
		},
		Move: func(dst, src *panicky) error {
			*dst = *src
			constructed++
			return nil
		},
		Destroy: func(*panicky) { destroyed++ },
	}))
	v.Reserve(4)
	for i := 0; i < 4; i++ {
		v.PushBack(panicky{n: i + 10})
	}
	*v.At(2) = panicky{n: 3}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		v.Reserve(8)
	}()

	if v.Capacity() != 4 || v.Size() != 4 {
		t.Errorf("size/capacity = %d/%d, want 4/4", v.Size(), v.Capacity())
	}
	if constructed-destroyed != 4 {
		t.Errorf("live = %d, want 4", constructed-destroyed)
	}
}

func TestErrorContext(t *testing.T) {
	l := newLedger()
	v := newTracked(t, l, false, 0, 1, 2, 3)
	l.arm(1)
	err := v.Reserve(8)
	l.disarm()
	if errors.Cause(err) != errInjected {
		t.Errorf("Cause = %v, want injected failure", errors.Cause(err))
	}
	if got, want := err.Error(), "relocate element 1: injected failure"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
