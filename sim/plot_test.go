package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaemoWong/branchsim/sim"
)

func TestRenderAccuracyChart_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accuracy.png")
	accuracies := []float64{0.80, 0.91, 0.95, 0.97, 0.96}

	require.NoError(t, sim.RenderAccuracyChart(path, accuracies, 1000))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// PNG signature.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestRenderAccuracyChart_SkipsTinySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accuracy.png")

	require.NoError(t, sim.RenderAccuracyChart(path, []float64{0.9}, 1000))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
