package predictor

// AlwaysTaken predicts every branch taken. It carries no state and learns
// nothing; it exists as the control against which the real predictors are
// measured. Loop-closing branches dominate real traces, so even this
// gets a surprising fraction right.
type AlwaysTaken struct{}

// NewAlwaysTaken returns the constant taken predictor.
func NewAlwaysTaken() *AlwaysTaken { return &AlwaysTaken{} }

// Predict always returns true.
func (p *AlwaysTaken) Predict(pc uint64) bool { return true }

// Train is a no-op.
func (p *AlwaysTaken) Train(pc uint64, taken bool) {}
