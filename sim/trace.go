// Package sim drives a branch predictor over a recorded branch trace and
// aggregates prediction-accuracy statistics.
//
// A trace is a text file with one conditional branch per line:
//
//	<pc-hex> <outcome>
//	<instruction-gap> <pc-hex> <outcome>
//
// where outcome is T/t/1 for taken and N/n/0 for not taken, and the
// optional instruction-gap is the number of non-branch instructions
// executed since the previous event. Lines starting with '#' and blank
// lines are skipped. PC values may carry an 0x prefix.
package sim

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// BranchEvent is one conditional branch from the trace: the instructions
// executed since the previous event, the branch PC, and whether the
// branch was actually taken.
type BranchEvent struct {
	Gap   uint64
	PC    uint64
	Taken bool
}

// TraceReader parses branch events from a reader while keeping a running
// xxhash64 digest of the raw bytes, so a report can identify exactly
// which trace produced it.
type TraceReader struct {
	scanner *bufio.Scanner
	digest  *xxhash.Digest
	line    int
}

// NewTraceReader wraps r. The reader buffers internally; callers should
// not read from r afterwards.
func NewTraceReader(r io.Reader) *TraceReader {
	digest := xxhash.New()
	scanner := bufio.NewScanner(io.TeeReader(r, digest))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &TraceReader{scanner: scanner, digest: digest}
}

// Next returns the next branch event. io.EOF signals a clean end of the
// trace; any other error is a malformed line or an underlying read
// failure.
func (r *TraceReader) Next() (BranchEvent, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		ev, err := r.parse(text)
		if err != nil {
			return BranchEvent{}, errors.Wrapf(err, "trace line %d", r.line)
		}
		return ev, nil
	}
	if err := r.scanner.Err(); err != nil {
		return BranchEvent{}, errors.Wrap(err, "read trace")
	}
	return BranchEvent{}, io.EOF
}

// Sum64 returns the digest of all trace bytes consumed so far. Call it
// after the reader returns io.EOF to get the whole-file digest.
func (r *TraceReader) Sum64() uint64 {
	return r.digest.Sum64()
}

// Line returns the number of the last line consumed, for error context.
func (r *TraceReader) Line() int {
	return r.line
}

func (r *TraceReader) parse(text string) (BranchEvent, error) {
	fields := strings.Fields(text)

	var ev BranchEvent
	var pcField, outcomeField string
	switch len(fields) {
	case 2:
		pcField, outcomeField = fields[0], fields[1]
	case 3:
		gap, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			return BranchEvent{}, errors.Wrapf(err, "instruction gap %q", fields[0])
		}
		ev.Gap = gap
		pcField, outcomeField = fields[1], fields[2]
	default:
		return BranchEvent{}, errors.Errorf("expected 2 or 3 fields, got %d", len(fields))
	}

	pc, err := strconv.ParseUint(strings.TrimPrefix(pcField, "0x"), 16, 64)
	if err != nil {
		return BranchEvent{}, errors.Wrapf(err, "branch pc %q", pcField)
	}
	ev.PC = pc

	switch outcomeField {
	case "T", "t", "1":
		ev.Taken = true
	case "N", "n", "0":
		ev.Taken = false
	default:
		return BranchEvent{}, errors.Errorf("outcome %q is not one of T/t/1/N/n/0", outcomeField)
	}
	return ev, nil
}
