// Package harness runs the differential test loop: generate a case, ask the
// oracle, drive the subject, classify, report. Cases run strictly one after
// another; the only concurrent resource is the subject process, which the
// Subject implementation owns for its full lifetime.
package harness
