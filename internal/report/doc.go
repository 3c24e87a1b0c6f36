// Package report accumulates per-case outcomes for a run and renders the final
// summary: counts plus the ordered list of failure records.
//
// A Reporter is owned by the sequential run loop and is not safe for
// concurrent use.
package report
