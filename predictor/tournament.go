package predictor

// Tournament predictor.
//
// Owns a local predictor, a gshare predictor, and a meta table of 2-bit
// saturating counters indexed directly by the low PC bits. The meta
// counter tracks which sub-predictor has been more reliable for branches
// landing on that index: values 2..3 trust gshare, 0..1 trust local.
//
// Both sub-predictors always train on the true outcome, whether or not
// they were selected; they learn in parallel and only the arbitration is
// exclusive. The meta counter moves based on which sub-predictor was
// individually right, with the adjustment keyed to whichever one supplied
// the last prediction. When both are wrong the meta counter deliberately
// does not move; there is no evidence either way about relative
// reliability. The exact update rules below are preserved branch for
// branch from the hardware being modeled, including their asymmetry
// between the selected and unselected cases.

// Which sub-predictor supplied the last prediction. selectedNone holds
// until the first Predict; a Train arriving before any Predict then
// trains both sub-predictors without touching the meta table.
const (
	selectedNone = iota
	selectedGshare
	selectedLocal
)

// Tournament arbitrates between a Local and a Gshare predictor.
type Tournament struct {
	local    *Local
	gshare   *Gshare
	meta     *CounterTable
	mask     uint32
	selected int
}

// NewTournament builds a tournament predictor. The meta table and both
// sub-predictor PHTs share the same entry count, all weakly taken, which
// means the meta table starts out trusting gshare everywhere.
func NewTournament(entries uint64) *Tournament {
	return &Tournament{
		local:    NewLocal(entries),
		gshare:   NewGshare(entries),
		meta:     NewCounterTable(entries),
		mask:     indexMask(entries),
		selected: selectedNone,
	}
}

// Predict consults the meta counter for the branch's index, remembers
// which sub-predictor it selected, and returns that sub-predictor's
// prediction. The only state change is the selection memo read back by
// the next Train; the tables themselves are untouched, so the returned
// prediction is stable across repeated calls.
func (p *Tournament) Predict(pc uint64) bool {
	index := uint32(pc) & p.mask
	if p.meta.Read(index) {
		p.selected = selectedGshare
		return p.gshare.Predict(pc)
	}
	p.selected = selectedLocal
	return p.local.Predict(pc)
}

// Train snapshots both sub-predictors' current predictions (their Predict
// is read-only, so this does not disturb them), trains both on the true
// outcome, and then adjusts the meta counter toward whichever
// sub-predictor was individually correct.
func (p *Tournament) Train(pc uint64, taken bool) {
	gPredicted := p.gshare.Predict(pc)
	lPredicted := p.local.Predict(pc)

	index := uint32(pc) & p.mask

	p.gshare.Train(pc, taken)
	p.local.Train(pc, taken)

	if taken {
		switch p.selected {
		case selectedGshare:
			if !gPredicted && lPredicted {
				// Selected gshare missed a taken branch local caught.
				p.meta.Decrement(index)
			} else if gPredicted {
				p.meta.Increment(index)
			}
		case selectedLocal:
			if gPredicted && !lPredicted {
				// Selected local missed a taken branch gshare caught.
				p.meta.Increment(index)
			} else if lPredicted {
				p.meta.Decrement(index)
			}
		}
		return
	}

	switch p.selected {
	case selectedGshare:
		if gPredicted && !lPredicted {
			p.meta.Decrement(index)
		} else if !gPredicted {
			p.meta.Increment(index)
		}
	case selectedLocal:
		if !gPredicted && lPredicted {
			p.meta.Increment(index)
		} else if !lPredicted {
			p.meta.Decrement(index)
		}
	}
}
