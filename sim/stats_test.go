package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaemoWong/branchsim/sim"
)

func TestWindowAccumulator_ClosesFullWindows(t *testing.T) {
	w := sim.NewWindowAccumulator(4)

	// Window 1: 3/4 correct. Window 2: 1/4 correct.
	for _, correct := range []bool{true, true, true, false, false, true, false, false} {
		w.Observe(correct)
	}

	assert.Equal(t, []float64{0.75, 0.25}, w.Flush())
}

func TestWindowAccumulator_FlushClosesPartial(t *testing.T) {
	w := sim.NewWindowAccumulator(10)

	w.Observe(true)
	w.Observe(false)

	assert.Equal(t, []float64{0.5}, w.Flush())
}

func TestWindowAccumulator_EmptyFlush(t *testing.T) {
	w := sim.NewWindowAccumulator(10)
	assert.Empty(t, w.Flush())
}

func TestSummarize_KnownValues(t *testing.T) {
	summary, err := sim.Summarize([]float64{0.5, 1.0, 0.75, 0.25})
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Windows)
	assert.InDelta(t, 0.625, summary.Mean, 1e-9)
	assert.InDelta(t, 0.625, summary.Median, 1e-9)
	assert.Equal(t, 0.25, summary.Min)
	assert.Equal(t, 1.0, summary.Max)
	assert.GreaterOrEqual(t, summary.P95, summary.Median)
	assert.LessOrEqual(t, summary.P95, summary.Max)
}

func TestSummarize_EmptySeries(t *testing.T) {
	_, err := sim.Summarize(nil)
	assert.ErrorIs(t, err, sim.ErrNoWindows)
}
