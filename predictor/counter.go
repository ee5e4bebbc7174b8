package predictor

import "fmt"

// Saturating counter encoding. Two bits per counter:
//
//	0  strongly not-taken
//	1  weakly not-taken
//	2  weakly taken
//	3  strongly taken
//
// Values 2 and 3 predict taken. Updates clamp at 0 and 3; the counter
// never wraps. The two-step hysteresis means a single anomalous outcome
// does not flip an established prediction.
const (
	counterMin       = 0
	counterWeakTaken = 2
	counterMax       = 3
)

// CounterTable is a fixed-size pattern history table of 2-bit saturating
// counters, packed four to a byte. Hardware keeps these as 2-bit SRAM
// cells; packing keeps the model's memory layout equally dense.
//
// The table does not compute indices. Each predictor derives its own
// index (from history, from PC bits, or both) and the index must already
// be masked to [0, size). An out-of-range index is a caller bug and
// panics.
type CounterTable struct {
	packed []uint8
	size   uint64
}

// NewCounterTable builds a table of n counters, all initialized to
// weakly taken. n must be a multiple of 4 (every power of two size >= 4
// qualifies; the minimum configurable predictor is far larger).
func NewCounterTable(n uint64) *CounterTable {
	t := &CounterTable{
		packed: make([]uint8, (n+3)/4),
		size:   n,
	}
	// 0xAA packs the value 2 into all four 2-bit lanes of a byte.
	for i := range t.packed {
		t.packed[i] = 0xAA
	}
	return t
}

// Size returns the number of counters in the table.
func (t *CounterTable) Size() uint64 { return t.size }

// Read returns true when the counter at index predicts taken (value >= 2).
func (t *CounterTable) Read(index uint32) bool {
	return t.value(index) >= counterWeakTaken
}

// Increment moves the counter at index toward taken, saturating at 3.
func (t *CounterTable) Increment(index uint32) {
	v := t.value(index)
	if v < counterMax {
		t.store(index, v+1)
	}
}

// Decrement moves the counter at index toward not-taken, saturating at 0.
func (t *CounterTable) Decrement(index uint32) {
	v := t.value(index)
	if v > counterMin {
		t.store(index, v-1)
	}
}

func (t *CounterTable) value(index uint32) uint8 {
	t.check(index)
	shift := (index & 3) << 1
	return (t.packed[index>>2] >> shift) & 0x3
}

func (t *CounterTable) store(index uint32, v uint8) {
	shift := (index & 3) << 1
	mask := uint8(0x3 << shift)
	t.packed[index>>2] = (t.packed[index>>2] &^ mask) | (v << shift)
}

// check asserts the index invariant. Correctly masked callers can never
// trip this.
func (t *CounterTable) check(index uint32) {
	if uint64(index) >= t.size {
		panic(fmt.Sprintf("predictor: counter index %d out of range [0, %d)", index, t.size))
	}
}
