package sim

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Report is the end-of-run statistics document. The first five lines keep
// the historical tab-separated format so existing tooling that scrapes
// BP_stats.out files keeps working; the extended lines identify the run
// and the exact trace it consumed.
type Report struct {
	PredictorKind string
	Entries       uint64
	Counters      Counters
	Summary       Summary
	HaveSummary   bool
	TraceDigest   uint64
	RunID         string
}

// NewReport assembles a report with a fresh run identifier.
func NewReport(kind string, entries uint64, res Result) *Report {
	r := &Report{
		PredictorKind: kind,
		Entries:       entries,
		Counters:      res.Counters,
		TraceDigest:   res.TraceDigest,
		RunID:         uuid.NewString(),
	}
	if summary, err := Summarize(res.WindowAccuracies); err == nil {
		r.Summary = summary
		r.HaveSummary = true
	}
	return r
}

// Write renders the report.
func (r *Report) Write(w io.Writer) error {
	c := r.Counters
	lines := []struct {
		label string
		value string
	}{
		{"Prediction accuracy", strconv.FormatFloat(c.Accuracy(), 'g', -1, 64)},
		{"Number of conditional branches", strconv.FormatUint(c.ConditionalBranches, 10)},
		{"Number of correct predictions", strconv.FormatUint(c.CorrectPredictions, 10)},
		{"Number of taken branches", strconv.FormatUint(c.TakenBranches, 10)},
		{"Number of non-taken branches", strconv.FormatUint(c.NotTakenBranches, 10)},
		{"Number of predicted taken branches", strconv.FormatUint(c.PredictedTaken, 10)},
		{"Number of predicted non-taken branches", strconv.FormatUint(c.PredictedNotTaken, 10)},
		{"Predictor", fmt.Sprintf("%s (%d entries)", r.PredictorKind, r.Entries)},
		{"Instructions executed", strconv.FormatUint(c.Instructions, 10)},
		{"Trace digest", fmt.Sprintf("%016x", r.TraceDigest)},
		{"Run ID", r.RunID},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%s:\t%s\n", line.label, line.value); err != nil {
			return errors.Wrap(err, "write report")
		}
	}

	if r.HaveSummary {
		s := r.Summary
		_, err := fmt.Fprintf(w,
			"Window accuracy (n=%d):\tmean=%.4f median=%.4f min=%.4f max=%.4f p95=%.4f\n",
			s.Windows, s.Mean, s.Median, s.Min, s.Max, s.P95)
		if err != nil {
			return errors.Wrap(err, "write report")
		}
	}
	return nil
}

// WriteFile writes the report to path, truncating any previous file.
func (r *Report) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create report %s", path)
	}
	defer f.Close()

	if err := r.Write(f); err != nil {
		return err
	}
	return errors.Wrapf(f.Sync(), "sync report %s", path)
}
