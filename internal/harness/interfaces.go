package harness

// ProgressReporter receives run progress from the harness loop. It decouples
// the loop from the presentation layer (spinner, quiet mode, tests).
type ProgressReporter interface {
	// Start is called once before the first case.
	Start(total int)
	// Update is called after every case with the number of completed cases
	// and the number of non-Pass outcomes so far.
	Update(done, total, failures int)
	// Stop is called once after the last case, including on abort.
	Stop()
}

// NullProgressReporter discards progress. Useful for quiet mode or testing.
type NullProgressReporter struct{}

// Start does nothing.
func (NullProgressReporter) Start(int) {}

// Update does nothing.
func (NullProgressReporter) Update(int, int, int) {}

// Stop does nothing.
func (NullProgressReporter) Stop() {}

// ProgressFunc adapts a function to ProgressReporter; Start and Stop are no-ops.
type ProgressFunc func(done, total, failures int)

// Start does nothing.
func (ProgressFunc) Start(int) {}

// Update calls f.
func (f ProgressFunc) Update(done, total, failures int) { f(done, total, failures) }

// Stop does nothing.
func (ProgressFunc) Stop() {}

// checker is implemented by subjects that can verify they are launchable
// before the run starts.
type checker interface {
	Check() error
}
