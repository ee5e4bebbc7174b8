package predictor

// Local history predictor.
//
// Branches are hashed into a fixed pool of 128 history registers by the
// low 7 bits of the PC. Each register records the recent outcome pattern
// of the branches that alias to it, and that pattern, not the address,
// indexes the PHT. Two branches at different addresses that behave the
// same way therefore share counter state, which is the point: the PHT
// learns per-pattern biases ("after taken,taken,not-taken comes taken").
//
// The history bucket count is a separate, fixed parameter of the design.
// It does not scale with the configured PHT size; only the history width
// (and so the PHT index width) does.

// localBuckets is the number of history registers. Fixed at 128
// regardless of PHT size; selection uses the low 7 PC bits.
const (
	localBuckets    = 128
	localBucketMask = localBuckets - 1
)

// Local is the per-address-bucket history predictor.
type Local struct {
	histories [localBuckets]uint32
	pht       *CounterTable
	mask      uint32
}

// NewLocal builds a local predictor with a PHT of the given entry count.
// Histories start at zero and every counter starts weakly taken.
func NewLocal(entries uint64) *Local {
	return &Local{
		pht:  NewCounterTable(entries),
		mask: indexMask(entries),
	}
}

// Predict looks up the PHT at the current history value of the branch's
// bucket. Read-only: repeated calls without an intervening Train return
// the same answer.
func (p *Local) Predict(pc uint64) bool {
	index := p.histories[pc&localBucketMask]
	return p.pht.Read(index)
}

// Train updates the counter the prediction came from, then advances the
// bucket's history. The next history value is the table index just used,
// shifted left with the outcome bit appended and masked to the index
// width. The recurrence is over the index, not over a raw outcome shift
// register; the two coincide only while the history fits the mask.
// Preserved exactly: it is what the hardware being modeled does, and a
// textbook shift register changes the prediction stream.
func (p *Local) Train(pc uint64, taken bool) {
	bucket := pc & localBucketMask
	index := p.histories[bucket]
	if taken {
		p.pht.Increment(index)
		p.histories[bucket] = ((index << 1) | 1) & p.mask
	} else {
		p.pht.Decrement(index)
		p.histories[bucket] = (index << 1) & p.mask
	}
}
