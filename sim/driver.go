package sim

import (
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/MaemoWong/branchsim/predictor"
)

// Default pacing constants. The heartbeat keeps long simulations visibly
// alive; the stop limit bounds how much of a trace is replayed.
const (
	DefaultStopInstructions = 1_000_000_000
	DefaultHeartbeatEvery   = 100_000_000
	DefaultStatsWindow      = 1000
)

// Counters are the aggregate outcome of a simulation run. They count the
// same quantities the output report exposes, nothing more; the predictor
// itself exports no statistics.
type Counters struct {
	Instructions        uint64
	ConditionalBranches uint64
	CorrectPredictions  uint64
	TakenBranches       uint64
	NotTakenBranches    uint64
	PredictedTaken      uint64
	PredictedNotTaken   uint64
	Heartbeats          uint64
}

// Accuracy is correct predictions over conditional branches, 0 for an
// empty run.
func (c Counters) Accuracy() float64 {
	if c.ConditionalBranches == 0 {
		return 0
	}
	return float64(c.CorrectPredictions) / float64(c.ConditionalBranches)
}

// Options tune the driver loop. Zero values select the defaults above;
// MaxInstructions 0 means replay the whole trace.
type Options struct {
	MaxInstructions uint64
	HeartbeatEvery  uint64
	StatsWindow     int
}

// Result bundles the run counters with the per-window accuracy series
// and the digest of the consumed trace.
type Result struct {
	Counters         Counters
	WindowAccuracies []float64
	TraceDigest      uint64
}

// Driver replays branch events against a single predictor instance it
// owns for the lifetime of the run. Every event is one strict
// Predict/Train pair in trace order; events are never batched or
// reordered, because the predictors carry state between the two calls.
type Driver struct {
	pred           predictor.BranchPredictor
	maxInstr       uint64
	heartbeatEvery uint64
	window         *WindowAccumulator
	counters       Counters
}

// NewDriver builds a driver around pred.
func NewDriver(pred predictor.BranchPredictor, opts Options) *Driver {
	if opts.HeartbeatEvery == 0 {
		opts.HeartbeatEvery = DefaultHeartbeatEvery
	}
	if opts.StatsWindow <= 0 {
		opts.StatsWindow = DefaultStatsWindow
	}
	return &Driver{
		pred:           pred,
		maxInstr:       opts.MaxInstructions,
		heartbeatEvery: opts.HeartbeatEvery,
		window:         NewWindowAccumulator(opts.StatsWindow),
	}
}

// Run consumes the trace until it ends or the instruction limit is
// reached, whichever comes first.
func (d *Driver) Run(r *TraceReader) (Result, error) {
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, errors.Wrap(err, "run simulation")
		}

		d.step(ev)

		if d.maxInstr > 0 && d.counters.Instructions >= d.maxInstr {
			log.Info().
				Uint64("instructions", d.counters.Instructions).
				Msg("simulation reached its target point, terminating")
			break
		}
	}

	return Result{
		Counters:         d.counters,
		WindowAccuracies: d.window.Flush(),
		TraceDigest:      r.Sum64(),
	}, nil
}

// step executes one branch event: the non-branch instructions leading up
// to it, then the predict/train pair for the branch itself.
func (d *Driver) step(ev BranchEvent) {
	d.counters.Instructions += ev.Gap + 1

	predicted := d.pred.Predict(ev.PC)
	d.pred.Train(ev.PC, ev.Taken)

	d.counters.ConditionalBranches++
	if predicted {
		d.counters.PredictedTaken++
	} else {
		d.counters.PredictedNotTaken++
	}
	if ev.Taken {
		d.counters.TakenBranches++
	} else {
		d.counters.NotTakenBranches++
	}
	correct := predicted == ev.Taken
	if correct {
		d.counters.CorrectPredictions++
	}
	d.window.Observe(correct)

	for d.counters.Instructions/d.heartbeatEvery > d.counters.Heartbeats {
		d.counters.Heartbeats++
		log.Info().
			Uint64("instructions", d.counters.Heartbeats*d.heartbeatEvery).
			Msg("executed instructions")
	}
}
