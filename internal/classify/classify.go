// Package classify compares the oracle's expected result with what the subject
// produced and assigns exactly one Outcome per case.
package classify

import (
	"strings"

	"github.com/agbru/bigcheck/internal/model"
)

// DefaultZeroDivisionTokens is the vocabulary accepted as a division-by-zero
// signal when none is configured.
var DefaultZeroDivisionTokens = []string{"division by zero", "zerodivisionerror"}

// ZeroDivisionMatcher recognizes a subject's division-by-zero signal by
// case-insensitive substring match against a token set.
type ZeroDivisionMatcher struct {
	tokens []string
}

// NewZeroDivisionMatcher builds a matcher; an empty token list selects
// DefaultZeroDivisionTokens.
func NewZeroDivisionMatcher(tokens []string) ZeroDivisionMatcher {
	if len(tokens) == 0 {
		tokens = DefaultZeroDivisionTokens
	}
	lowered := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			lowered = append(lowered, t)
		}
	}
	return ZeroDivisionMatcher{tokens: lowered}
}

// Tokens returns the normalized vocabulary.
func (m ZeroDivisionMatcher) Tokens() []string { return m.tokens }

// Match reports whether output contains any token.
func (m ZeroDivisionMatcher) Match(output string) bool {
	lower := strings.ToLower(output)
	for _, t := range m.tokens {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Verdict is the result of classifying one case.
type Verdict struct {
	Outcome model.Outcome
	// Kind is empty for Pass.
	Kind model.FailureKind
}

// Classifier is a pure function of (expected, actual); it holds no per-case state.
type Classifier struct {
	matcher ZeroDivisionMatcher
}

// New returns a Classifier using the given matcher.
func New(matcher ZeroDivisionMatcher) Classifier {
	if matcher.tokens == nil {
		matcher = NewZeroDivisionMatcher(nil)
	}
	return Classifier{matcher: matcher}
}

// Classify assigns the outcome. A crash or timeout dominates any output the
// subject printed; otherwise the trimmed output must equal the expected
// canonical string exactly, or contain a zero-division token when the
// expected result is DivisionByZero.
func (c Classifier) Classify(expected model.Expected, actual model.Actual) Verdict {
	switch {
	case actual.TimedOut:
		return Verdict{Outcome: model.Timeout, Kind: model.SubjectTimeout}
	case actual.Crashed || actual.ExitCode != 0:
		return Verdict{Outcome: model.Crash, Kind: model.SubjectCrash}
	}

	out := actual.Trimmed()
	if expected.DivisionByZero {
		if c.matcher.Match(out) {
			return Verdict{Outcome: model.Pass}
		}
		return Verdict{Outcome: model.Fail, Kind: model.DivisionByZeroMismatch}
	}
	if out == expected.Value {
		return Verdict{Outcome: model.Pass}
	}
	if c.matcher.Match(out) {
		return Verdict{Outcome: model.Fail, Kind: model.DivisionByZeroMismatch}
	}
	return Verdict{Outcome: model.Fail, Kind: model.ExpectedMismatch}
}
