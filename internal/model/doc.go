// Package model holds the value types that flow through one harness case:
// the generated TestCase, the oracle's Expected result, the subject's Actual
// result, and the classified Outcome.
package model
