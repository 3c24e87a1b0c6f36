// Package logging provides the structured logging interface used by every
// harness component. Components depend on Logger rather than on zerolog
// directly, so tests can swap in a standard-library backed logger.
package logging
