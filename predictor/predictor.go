// Package predictor implements the branch predictor state machines used by
// the trace-driven simulator.
//
// A branch predictor guesses whether a conditional branch will be taken or
// not taken before the outcome is known. The simulator replays a recorded
// stream of (branch PC, outcome) pairs against one predictor instance and
// measures how often the guess was right.
//
// Four predictor organizations are provided:
//
//	always_taken  constant prediction, no state (baseline)
//	local         per-PC-bucket history registers indexing a shared PHT
//	gshare        one global history register XOR-folded with PC bits
//	tournament    meta predictor arbitrating between local and gshare
//
// Every stateful variant is built from the same two primitives: a table of
// 2-bit saturating counters (CounterTable) and a masked history register.
// The protocol is strictly Predict(pc) followed by Train(pc, outcome) for
// the same branch, one pair per branch, in program execution order. Predict
// never mutates state; all learning happens in Train. Nothing here is safe
// for concurrent use and nothing needs to be: the driver is single
// threaded by construction.
package predictor

import (
	"errors"
	"fmt"
	"math/bits"
)

// BranchPredictor is the contract between the simulation driver and any
// predictor organization. Predict returns the guess for the branch at pc;
// Train feeds back the observed outcome. Train for a branch must follow
// the Predict for the same branch with no interleaved calls: the
// tournament predictor remembers which sub-predictor supplied the last
// prediction and consumes that memory on the very next Train.
type BranchPredictor interface {
	Predict(pc uint64) bool
	Train(pc uint64, taken bool)
}

// Predictor kind strings accepted by New. These values are part of the
// command line contract and must not change.
const (
	KindAlwaysTaken = "always_taken"
	KindLocal       = "local"
	KindGshare      = "gshare"
	KindTournament  = "tournament"
)

// MaxEntries bounds the configurable PHT size. The reference
// configurations are 128, 1024 and 4096 entries; any power of two up to
// this limit is accepted.
const MaxEntries = 1 << 20

var (
	ErrUnknownKind          = errors.New("unknown branch predictor kind")
	ErrEntriesNotPowerOfTwo = errors.New("entry count must be a power of two")
	ErrEntriesOutOfRange    = fmt.Errorf("entry count must be in [2, %d]", MaxEntries)
)

// New constructs a predictor of the requested kind with the given number
// of PHT entries. The entry count must be a power of two so that index
// masking with entries-1 is exact; anything else fails loudly here rather
// than mis-masking silently during the run.
func New(kind string, entries uint64) (BranchPredictor, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	switch kind {
	case KindAlwaysTaken:
		return NewAlwaysTaken(), nil
	case KindLocal:
		return NewLocal(entries), nil
	case KindGshare:
		return NewGshare(entries), nil
	case KindTournament:
		return NewTournament(entries), nil
	default:
		return nil, ValidateKind(kind)
	}
}

// ValidateKind reports whether kind names a supported predictor.
func ValidateKind(kind string) error {
	switch kind {
	case KindAlwaysTaken, KindLocal, KindGshare, KindTournament:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ValidateEntries reports whether entries is a usable PHT size.
func ValidateEntries(entries uint64) error {
	if entries < 2 || entries > MaxEntries {
		return ErrEntriesOutOfRange
	}
	if entries&(entries-1) != 0 {
		return ErrEntriesNotPowerOfTwo
	}
	return nil
}

// Kinds lists the supported predictor kind strings.
func Kinds() []string {
	return []string{KindAlwaysTaken, KindLocal, KindGshare, KindTournament}
}

// indexMask returns the mask selecting log2(entries) low-order bits.
// entries is validated to be a power of two before this is called.
func indexMask(entries uint64) uint32 {
	return uint32(entries - 1)
}

// indexWidth returns log2(entries).
func indexWidth(entries uint64) int {
	return bits.TrailingZeros64(entries)
}
