// Package format provides pure, I/O-free formatting helpers shared by the
// CLI presenters: durations, ETAs, progress bars and grouped numbers.
package format
