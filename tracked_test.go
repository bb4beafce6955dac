package vector

import (
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var errInjected = errors.New("injected failure")

// tracked is an element whose lifetime is recorded in a ledger.
type tracked struct {
	val int
}

// ledger counts constructions and destructions performed through the traits
// it hands out, and can inject a failure into a later hook call.
type ledger struct {
	constructed int
	destroyed   int
	failIn      int // successful hook calls left before a failure, -1 when disarmed
}

func newLedger() *ledger {
	return &ledger{failIn: -1}
}

func (l *ledger) arm(n int) { l.failIn = n }
func (l *ledger) disarm()   { l.failIn = -1 }
func (l *ledger) live() int { return l.constructed - l.destroyed }

func (l *ledger) tick() error {
	switch {
	case l.failIn < 0:
		return nil
	case l.failIn == 0:
		l.failIn = -1
		return errInjected
	}
	l.failIn--
	return nil
}

func (l *ledger) traits(nothrowMove bool) Traits[tracked] {
	return Traits[tracked]{
		Construct: func(dst *tracked) error {
			if err := l.tick(); err != nil {
				return err
			}
			*dst = tracked{}
			l.constructed++
			return nil
		},
		Copy: func(dst, src *tracked) error {
			if err := l.tick(); err != nil {
				return err
			}
			*dst = *src
			l.constructed++
			return nil
		},
		Move: func(dst, src *tracked) error {
			if !nothrowMove {
				if err := l.tick(); err != nil {
					return err
				}
			}
			*dst = *src
			*src = tracked{}
			l.constructed++
			return nil
		},
		Destroy: func(p *tracked) {
			l.destroyed++
		},
		NothrowMove: nothrowMove,
	}
}

// newTracked builds a vector of tracked elements holding vals, with capacity
// at least capacity.
func newTracked(t *testing.T, l *ledger, nothrowMove bool, capacity int, vals ...int) *Vector[tracked] {
	t.Helper()
	v := New[tracked](WithTraits(l.traits(nothrowMove)))
	if err := v.Reserve(capacity); err != nil {
		t.Fatalf("Reserve(%d): %v", capacity, err)
	}
	for _, x := range vals {
		if err := v.PushBack(tracked{val: x}); err != nil {
			t.Fatalf("PushBack(%d): %v", x, err)
		}
	}
	return v
}

func trackedValues(v *Vector[tracked]) []int {
	out := make([]int, 0, v.Size())
	for x := range v.Values() {
		out = append(out, x.val)
	}
	return out
}

// probe runs op against a fresh vector from setup with a failure injected after
// k successful hook calls, for k = 0, 1, ... until op succeeds. After every
// injected failure the vector must be unchanged and hold no leaked elements.
func probe(t *testing.T, l *ledger, setup func() *Vector[tracked], op func(v *Vector[tracked]) error, checkCapacity bool) {
	t.Helper()
	for k := 0; k < 256; k++ {
		v := setup()
		before := trackedValues(v)
		size, capacity := v.Size(), v.Capacity()

		l.arm(k)
		err := op(v)
		l.disarm()

		if err == nil {
			v.Release()
			if l.live() != 0 {
				t.Fatalf("after success at k=%d: %d elements leaked", k, l.live())
			}
			return
		}
		if !errors.Is(err, errInjected) {
			t.Fatalf("k=%d: error = %v, want injected failure", k, err)
		}
		if got := trackedValues(v); !slices.Equal(got, before) {
			t.Errorf("k=%d: contents = %v, want %v", k, got, before)
		}
		if v.Size() != size {
			t.Errorf("k=%d: Size = %d, want %d", k, v.Size(), size)
		}
		if checkCapacity && v.Capacity() != capacity {
			t.Errorf("k=%d: Capacity = %d, want %d", k, v.Capacity(), capacity)
		}
		if l.live() != v.Size() {
			t.Errorf("k=%d: %d live elements, vector holds %d", k, l.live(), v.Size())
		}
		v.Release()
		if l.live() != 0 {
			t.Fatalf("k=%d: %d elements leaked after Release", k, l.live())
		}
	}
	t.Fatal("operation never succeeded")
}
