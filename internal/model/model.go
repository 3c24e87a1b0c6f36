package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator is an arithmetic operator, spelled as its protocol symbol.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
)

// AllOperators lists every supported operator in protocol order.
var AllOperators = []Operator{OpAdd, OpSub, OpMul, OpDiv, OpMod}

// ParseOperator accepts a protocol symbol or a word alias ("add", "mod", ...).
func ParseOperator(s string) (Operator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "+", "add":
		return OpAdd, nil
	case "-", "sub":
		return OpSub, nil
	case "*", "x", "mul":
		return OpMul, nil
	case "/", "div":
		return OpDiv, nil
	case "%", "mod", "rem":
		return OpMod, nil
	}
	return "", fmt.Errorf("unknown operator %q", s)
}

// IsDivision reports whether the operator needs a non-zero divisor.
func (o Operator) IsDivision() bool { return o == OpDiv || o == OpMod }

// OperandKind selects how the second operand is drawn. Its integer value is
// the first line of the subject protocol.
type OperandKind int

const (
	// KindFullRange draws B with the arbitrary-precision generator.
	KindFullRange OperandKind = 1
	// KindMachineInt draws B from the signed 32-bit range.
	KindMachineInt OperandKind = 2
)

// ParseOperandKind accepts "1"/"2" or "full"/"int".
func ParseOperandKind(s string) (OperandKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "full", "full-range", "big":
		return KindFullRange, nil
	case "2", "int", "machine-int", "small":
		return KindMachineInt, nil
	}
	return 0, fmt.Errorf("unknown operand kind %q", s)
}

func (k OperandKind) String() string {
	switch k {
	case KindFullRange:
		return "full-range"
	case KindMachineInt:
		return "machine-int"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// TestCase is one generated input.
type TestCase struct {
	A    string
	Op   Operator
	B    string
	Kind OperandKind
}

// Describe renders the case as "A op B", as it appears in failure records.
func (tc TestCase) Describe() string {
	return tc.A + " " + string(tc.Op) + " " + tc.B
}

// ProtocolInput renders the four newline-terminated protocol lines.
func (tc TestCase) ProtocolInput() string {
	return fmt.Sprintf("%d\n%s\n%s\n%s\n", int(tc.Kind), tc.A, tc.Op, tc.B)
}

// Expected is the oracle's answer for a case.
type Expected struct {
	Value          string
	DivisionByZero bool
}

// DivisionByZeroSentinel is how an Expected division-by-zero is displayed.
const DivisionByZeroSentinel = "ZeroDivisionError"

func (e Expected) String() string {
	if e.DivisionByZero {
		return DivisionByZeroSentinel
	}
	return e.Value
}

// Actual is what the subject produced for a case.
type Actual struct {
	// Output is the raw standard output.
	Output string
	// Diagnostic is the captured standard error.
	Diagnostic string
	// ExitCode is the process exit status, or -1 if it was killed.
	ExitCode int
	Crashed  bool
	TimedOut bool
}

// Markers recorded in FailureRecord.Actual for non-output outcomes.
const (
	CrashMarker   = "Runtime Error or Crash"
	TimeoutMarker = "Timeout"
)

// Trimmed returns the standard output without surrounding whitespace.
func (a Actual) Trimmed() string { return strings.TrimSpace(a.Output) }

// Display renders the actual result for a failure record.
func (a Actual) Display() string {
	switch {
	case a.TimedOut:
		return TimeoutMarker
	case a.Crashed:
		return CrashMarker
	}
	return a.Trimmed()
}

// Outcome is the terminal classification of a case.
type Outcome int

const (
	Pass Outcome = iota
	Fail
	Crash
	Timeout
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Crash:
		return "crash"
	case Timeout:
		return "timeout"
	}
	return "unknown"
}

// FailureKind is the error-taxonomy class of a non-Pass case.
type FailureKind string

const (
	ExpectedMismatch       FailureKind = "EXPECTED_MISMATCH"
	SubjectCrash           FailureKind = "SUBJECT_CRASH"
	SubjectTimeout         FailureKind = "SUBJECT_TIMEOUT"
	DivisionByZeroMismatch FailureKind = "DIVISION_BY_ZERO_MISMATCH"
	HarnessFault           FailureKind = "HARNESS_FAULT"
)
