// Package config defines the run configuration of bigcheck and the layered
// parsing that produces it: command-line flags, BIGCHECK_* environment
// variables (optionally seeded from a .env file), a YAML config file, and
// built-in defaults, in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/harness"
	"github.com/agbru/bigcheck/internal/model"
	"github.com/agbru/bigcheck/internal/oracle"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BIGCHECK_"

// Defaults.
const (
	DefaultCases     = 10000
	DefaultMaxDigits = 200
	DefaultTimeout   = 15 * time.Second
	DefaultSubject   = "./bigInt"
	DefaultOracle    = "big"
	DefaultEnvFile   = ".env"
)

// DefaultZeroDivisionTokens is the default division-by-zero vocabulary.
var DefaultZeroDivisionTokens = []string{"division by zero", "zerodivisionerror"}

// AppConfig aggregates the configuration parameters of a run.
type AppConfig struct {
	// Cases is the number of generated test cases.
	Cases int
	// MaxDigits caps the digit count of generated operands.
	MaxDigits int
	// Subject is the path of the executable under test, or a builtin:NAME.
	Subject string
	// SubjectArgs are extra arguments passed to the subject.
	SubjectArgs []string
	// Timeout bounds each subject invocation.
	Timeout time.Duration
	// Operators is the set of operators under test.
	Operators []model.Operator
	// OperandKinds is the set of second-operand kinds.
	OperandKinds []model.OperandKind
	// Seed seeds the generator. Zero picks a time-derived seed.
	Seed uint64
	// ZeroDivisionTokens is the accepted division-by-zero vocabulary.
	ZeroDivisionTokens []string
	// Oracle names the oracle backend ("big", or "gmp" in gmp builds).
	Oracle string
	// Replay holds explicit cases ("[kind:]A OP B") run instead of generated ones.
	Replay []string
	// ReportFile, if set, receives the canonical JSON report.
	ReportFile string
	// MetricsAddr, if set, serves Prometheus metrics during the run.
	MetricsAddr string
	// ConfigFile is an optional YAML config file.
	ConfigFile string
	// EnvFile is an optional dotenv file loaded before environment lookups.
	EnvFile string
	// Completion names a shell to print a completion script for.
	Completion string
	Verbose    bool
	Quiet      bool
	NoColor    bool
	FailFast   bool
}

// Default returns the configuration used when nothing overrides it.
func Default() AppConfig {
	return AppConfig{
		Cases:              DefaultCases,
		MaxDigits:          DefaultMaxDigits,
		Subject:            DefaultSubject,
		Timeout:            DefaultTimeout,
		Operators:          append([]model.Operator(nil), model.AllOperators...),
		OperandKinds:       []model.OperandKind{model.KindFullRange, model.KindMachineInt},
		ZeroDivisionTokens: append([]string(nil), DefaultZeroDivisionTokens...),
		Oracle:             DefaultOracle,
		EnvFile:            DefaultEnvFile,
	}
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch {
	case c.Cases < 1 && len(c.Replay) == 0:
		return apperrors.ValidationError{Field: "cases", Message: "must be at least 1"}
	case c.MaxDigits < 1:
		return apperrors.ValidationError{Field: "max-digits", Message: "must be at least 1"}
	case c.Timeout <= 0:
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	case strings.TrimSpace(c.Subject) == "":
		return apperrors.ValidationError{Field: "subject", Message: "must not be empty"}
	case len(c.Operators) == 0:
		return apperrors.ValidationError{Field: "ops", Message: "at least one operator is required"}
	case len(c.OperandKinds) == 0:
		return apperrors.ValidationError{Field: "kinds", Message: "at least one operand kind is required"}
	case len(c.ZeroDivisionTokens) == 0:
		return apperrors.ValidationError{Field: "zero-div-tokens", Message: "at least one token is required"}
	}
	if _, err := oracle.Lookup(c.Oracle); err != nil {
		return apperrors.ValidationError{Field: "oracle", Message: err.Error()}
	}
	for _, r := range c.Replay {
		if _, err := ParseReplayCase(r); err != nil {
			return apperrors.ValidationError{Field: "case", Message: err.Error()}
		}
	}
	return nil
}

// HarnessConfig projects the run-relevant fields onto a harness.Config.
func (c AppConfig) HarnessConfig(runID string) harness.Config {
	return harness.Config{
		Cases:              c.Cases,
		MaxDigits:          c.MaxDigits,
		Operators:          c.Operators,
		Kinds:              c.OperandKinds,
		Seed:               c.Seed,
		ZeroDivisionTokens: c.ZeroDivisionTokens,
		FailFast:           c.FailFast,
		SubjectName:        c.Subject,
		RunID:              runID,
	}
}

// ReplayCases parses the configured replay cases.
func (c AppConfig) ReplayCases() ([]model.TestCase, error) {
	cases := make([]model.TestCase, 0, len(c.Replay))
	for _, r := range c.Replay {
		tc, err := ParseReplayCase(r)
		if err != nil {
			return nil, err
		}
		cases = append(cases, tc)
	}
	return cases, nil
}

// ParseReplayCase parses "[kind:]A OP B", for example "100 / -3" or
// "2:5 % 0". The kind defaults to full range.
func ParseReplayCase(s string) (model.TestCase, error) {
	kind := model.KindFullRange
	body := strings.TrimSpace(s)
	if k, rest, ok := strings.Cut(body, ":"); ok {
		parsed, err := model.ParseOperandKind(strings.TrimSpace(k))
		if err != nil {
			return model.TestCase{}, fmt.Errorf("case %q: %w", s, err)
		}
		kind, body = parsed, rest
	}
	fields := strings.Fields(body)
	if len(fields) != 3 {
		return model.TestCase{}, fmt.Errorf("case %q: want \"A OP B\"", s)
	}
	op, err := model.ParseOperator(fields[1])
	if err != nil {
		return model.TestCase{}, fmt.Errorf("case %q: %w", s, err)
	}
	for _, operand := range []string{fields[0], fields[2]} {
		if !model.IsCanonical(operand) {
			return model.TestCase{}, fmt.Errorf("case %q: %q is not a canonical integer", s, operand)
		}
	}
	return model.TestCase{A: fields[0], Op: op, B: fields[2], Kind: kind}, nil
}

// ParseOperators parses a comma-separated operator list.
func ParseOperators(s string) ([]model.Operator, error) {
	var ops []model.Operator
	for _, f := range splitList(s) {
		op, err := model.ParseOperator(f)
		if err != nil {
			return nil, err
		}
		ops = appendUnique(ops, op)
	}
	return ops, nil
}

// ParseOperandKinds parses a comma-separated operand-kind list.
func ParseOperandKinds(s string) ([]model.OperandKind, error) {
	var kinds []model.OperandKind
	for _, f := range splitList(s) {
		k, err := model.ParseOperandKind(f)
		if err != nil {
			return nil, err
		}
		kinds = appendUnique(kinds, k)
	}
	return kinds, nil
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func joinOperators(ops []model.Operator) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = string(op)
	}
	return strings.Join(parts, ",")
}

func joinKinds(kinds []model.OperandKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = strconv.Itoa(int(k))
	}
	return strings.Join(parts, ",")
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, " ") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// ParseConfig parses command-line arguments and layers environment, dotenv
// and config-file values under them. It returns flag.ErrHelp when -h/--help
// was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	config := Default()
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errWriter, "Differential tester for arbitrary-precision integer implementations.")
		fmt.Fprintln(errWriter, "Each case is sent to the subject as four lines (kind, A, op, B) and")
		fmt.Fprintln(errWriter, "its single-line answer is compared with a math/big oracle.")
		fmt.Fprintln(errWriter, "\nOptions:")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEvery option can also be set through %s<NAME> environment variables.\n", EnvPrefix)
	}

	var subjectArgs, replay stringList
	ops := joinOperators(config.Operators)
	kinds := joinKinds(config.OperandKinds)
	tokens := strings.Join(config.ZeroDivisionTokens, ",")

	fs.IntVar(&config.Cases, "n", config.Cases, "Number of test cases to run.")
	fs.IntVar(&config.Cases, "cases", config.Cases, "Number of test cases to run (alias for -n).")
	fs.IntVar(&config.MaxDigits, "max-digits", config.MaxDigits, "Maximum digit count of generated operands.")
	fs.StringVar(&config.Subject, "subject", config.Subject, "Subject executable, or builtin:reference / builtin:floor.")
	fs.StringVar(&config.Subject, "s", config.Subject, "Subject executable (alias for --subject).")
	fs.Var(&subjectArgs, "subject-arg", "Extra argument passed to the subject (repeatable).")
	fs.DurationVar(&config.Timeout, "timeout", config.Timeout, "Per-case subject timeout.")
	fs.StringVar(&ops, "ops", ops, "Comma-separated operators under test.")
	fs.StringVar(&kinds, "kinds", kinds, "Comma-separated second-operand kinds (1 = full range, 2 = machine int).")
	fs.Uint64Var(&config.Seed, "seed", config.Seed, "Generator seed (0 = random, printed in the summary).")
	fs.StringVar(&tokens, "zero-div-tokens", tokens, "Comma-separated case-insensitive division-by-zero tokens.")
	fs.StringVar(&config.Oracle, "oracle", config.Oracle, fmt.Sprintf("Oracle backend (%s).", strings.Join(oracle.List(), ", ")))
	fs.Var(&replay, "case", "Run an explicit case \"[kind:]A OP B\" instead of generated ones (repeatable).")
	fs.StringVar(&config.ReportFile, "report", "", "Write the canonical JSON report to this file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")
	fs.StringVar(&config.EnvFile, "env-file", config.EnvFile, "Dotenv file loaded before reading the environment.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output: per-case trace.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output (alias for -v).")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode: summary line only.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode (alias for -q).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.FailFast, "fail-fast", false, "Stop after the first failing case.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var err error
	if isFlagSet(fs, "ops") {
		if config.Operators, err = ParseOperators(ops); err != nil {
			return AppConfig{}, apperrors.NewConfigError("--ops: %v", err)
		}
	}
	if isFlagSet(fs, "kinds") {
		if config.OperandKinds, err = ParseOperandKinds(kinds); err != nil {
			return AppConfig{}, apperrors.NewConfigError("--kinds: %v", err)
		}
	}
	if isFlagSet(fs, "zero-div-tokens") {
		config.ZeroDivisionTokens = splitList(tokens)
	}
	if len(subjectArgs) > 0 {
		config.SubjectArgs = subjectArgs
	}
	if len(replay) > 0 {
		config.Replay = replay
	}

	if err := loadEnvFile(config.EnvFile, isFlagSet(fs, "env-file")); err != nil {
		return AppConfig{}, err
	}
	if !isFlagSet(fs, "config") {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		if err := fc.apply(&config, fs); err != nil {
			return AppConfig{}, err
		}
	}
	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}

	if err := config.Validate(); err != nil {
		return AppConfig{}, apperrors.WrapError(err, "invalid configuration")
	}
	return config, nil
}

// IsHelp reports whether err is the flag package's help sentinel.
func IsHelp(err error) bool { return errors.Is(err, flag.ErrHelp) }
