package visual

import "sync/atomic"

// Bars is the working array. It implements [sorting.Sequence] over atomic
// slots so renderers can read heights while a sort writes them.
type Bars struct {
	slots []atomic.Int64
}

// NewBars returns n bars of height zero.
func NewBars(n int) *Bars {
	return &Bars{slots: make([]atomic.Int64, n)}
}

func (b *Bars) Len() int { return len(b.slots) }

func (b *Bars) Get(i int) int { return int(b.slots[i].Load()) }

func (b *Bars) Set(i, v int) { b.slots[i].Store(int64(v)) }

// Load overwrites the bars with src, resizing if the lengths differ. Resizing
// allocates new storage, so it must not race with a running sort.
func (b *Bars) Load(src []int) {
	if len(src) != len(b.slots) {
		b.slots = make([]atomic.Int64, len(src))
	}
	for i, v := range src {
		b.slots[i].Store(int64(v))
	}
}

// Values copies the current heights.
func (b *Bars) Values() []int {
	out := make([]int, len(b.slots))
	for i := range b.slots {
		out[i] = int(b.slots[i].Load())
	}
	return out
}
