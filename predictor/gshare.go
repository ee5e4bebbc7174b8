package predictor

// Gshare predictor.
//
// One history register is shared by every branch. The PHT index is the
// XOR fold of the low PC bits with that global history, so the same
// branch reached along different control paths lands on different
// counters. XOR folding spreads correlated branches across the table
// while keeping the index computation a single gate level deep.
type Gshare struct {
	history uint32
	pht     *CounterTable
	mask    uint32
}

// NewGshare builds a gshare predictor with a PHT of the given entry
// count. Global history starts at zero; counters start weakly taken.
func NewGshare(entries uint64) *Gshare {
	return &Gshare{
		pht:  NewCounterTable(entries),
		mask: indexMask(entries),
	}
}

// Predict reads the PHT at (pc & mask) ^ history. Read-only.
func (p *Gshare) Predict(pc uint64) bool {
	index := (uint32(pc) & p.mask) ^ p.history
	return p.pht.Read(index)
}

// Train updates the indexed counter, then advances the global history
// with the same index-derived recurrence the local predictor uses: the
// index just consumed is shifted left, the outcome bit appended, and the
// result masked back to the index width.
func (p *Gshare) Train(pc uint64, taken bool) {
	index := (uint32(pc) & p.mask) ^ p.history
	if taken {
		p.pht.Increment(index)
		p.history = ((index << 1) | 1) & p.mask
	} else {
		p.pht.Decrement(index)
		p.history = (index << 1) & p.mask
	}
}
