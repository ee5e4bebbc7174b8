package sim_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaemoWong/branchsim/sim"
)

func readAll(t *testing.T, trace string) ([]sim.BranchEvent, uint64) {
	t.Helper()
	r := sim.NewTraceReader(strings.NewReader(trace))
	var events []sim.BranchEvent
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
	return events, r.Sum64()
}

func TestTraceReader_BasicLines(t *testing.T) {
	trace := "0x400 T\n404 N\n0x408 1\n40c 0\n"
	events, _ := readAll(t, trace)

	require.Len(t, events, 4)
	assert.Equal(t, sim.BranchEvent{PC: 0x400, Taken: true}, events[0])
	assert.Equal(t, sim.BranchEvent{PC: 0x404, Taken: false}, events[1])
	assert.Equal(t, sim.BranchEvent{PC: 0x408, Taken: true}, events[2])
	assert.Equal(t, sim.BranchEvent{PC: 0x40c, Taken: false}, events[3])
}

func TestTraceReader_SkipsCommentsAndBlanks(t *testing.T) {
	trace := "# header\n\n   \n0x10 T\n  # trailing comment line\n0x14 n\n"
	events, _ := readAll(t, trace)

	require.Len(t, events, 2)
	assert.Equal(t, uint64(0x10), events[0].PC)
	assert.Equal(t, uint64(0x14), events[1].PC)
}

func TestTraceReader_InstructionGapColumn(t *testing.T) {
	trace := "12 0x400 T\n0x404 N\n7 0x408 t\n"
	events, _ := readAll(t, trace)

	require.Len(t, events, 3)
	assert.Equal(t, uint64(12), events[0].Gap)
	assert.Equal(t, uint64(0), events[1].Gap)
	assert.Equal(t, uint64(7), events[2].Gap)
}

func TestTraceReader_MalformedLineCarriesLineNumber(t *testing.T) {
	r := sim.NewTraceReader(strings.NewReader("0x10 T\n# comment\nbogus\n"))

	_, err := r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trace line 3")
}

func TestTraceReader_BadOutcomeRejected(t *testing.T) {
	r := sim.NewTraceReader(strings.NewReader("0x10 taken\n"))

	_, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outcome")
}

func TestTraceReader_BadPCRejected(t *testing.T) {
	r := sim.NewTraceReader(strings.NewReader("zz T\n"))

	_, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "branch pc")
}

func TestTraceReader_DigestIsDeterministic(t *testing.T) {
	trace := "0x400 T\n0x404 N\n"
	_, first := readAll(t, trace)
	_, second := readAll(t, trace)

	assert.NotZero(t, first)
	assert.Equal(t, first, second)

	_, other := readAll(t, "0x400 T\n0x404 T\n")
	assert.NotEqual(t, first, other)
}
