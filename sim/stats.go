package sim

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// WindowAccumulator folds a stream of correct/incorrect observations into
// per-window accuracy samples. Windowed accuracy shows warmup and phase
// behavior that the single whole-run number hides.
type WindowAccumulator struct {
	size       int
	seen       int
	correct    int
	accuracies []float64
}

// NewWindowAccumulator builds an accumulator with the given window size
// in branches.
func NewWindowAccumulator(size int) *WindowAccumulator {
	return &WindowAccumulator{size: size}
}

// Observe records one prediction outcome, closing a window every size
// observations.
func (w *WindowAccumulator) Observe(correct bool) {
	w.seen++
	if correct {
		w.correct++
	}
	if w.seen == w.size {
		w.accuracies = append(w.accuracies, float64(w.correct)/float64(w.size))
		w.seen = 0
		w.correct = 0
	}
}

// Flush closes any partial trailing window and returns the full accuracy
// series.
func (w *WindowAccumulator) Flush() []float64 {
	if w.seen > 0 {
		w.accuracies = append(w.accuracies, float64(w.correct)/float64(w.seen))
		w.seen = 0
		w.correct = 0
	}
	return w.accuracies
}

// Summary condenses a window accuracy series.
type Summary struct {
	Windows int
	Mean    float64
	Median  float64
	Min     float64
	Max     float64
	P95     float64
}

// ErrNoWindows is returned when a run produced no accuracy samples.
var ErrNoWindows = errors.New("no accuracy windows recorded")

// Summarize computes the summary statistics of a window accuracy series.
func Summarize(accuracies []float64) (Summary, error) {
	if len(accuracies) == 0 {
		return Summary{}, ErrNoWindows
	}

	data := stats.Float64Data(accuracies)
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "mean")
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "median")
	}
	min, err := stats.Min(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "min")
	}
	max, err := stats.Max(data)
	if err != nil {
		return Summary{}, errors.Wrap(err, "max")
	}
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		return Summary{}, errors.Wrap(err, "p95")
	}

	return Summary{
		Windows: len(accuracies),
		Mean:    mean,
		Median:  median,
		Min:     min,
		Max:     max,
		P95:     p95,
	}, nil
}
