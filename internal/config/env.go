// This file contains environment variable and dotenv handling for configuration override.

package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/agbru/bigcheck/internal/errors"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be set through either name.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override. Each entry
// maps an env key (without the BIGCHECK_ prefix) to the CLI flag name(s) it
// shadows and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{"CASES", []string{"n", "cases"}, func(c *AppConfig, v string) error {
		n, err := strconv.Atoi(v)
		c.Cases = n
		return err
	}},
	{"MAX_DIGITS", []string{"max-digits"}, func(c *AppConfig, v string) error {
		n, err := strconv.Atoi(v)
		c.MaxDigits = n
		return err
	}},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) error {
		n, err := strconv.ParseUint(v, 10, 64)
		c.Seed = n
		return err
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		d, err := time.ParseDuration(v)
		c.Timeout = d
		return err
	}},

	// String and list overrides
	{"SUBJECT", []string{"subject", "s"}, func(c *AppConfig, v string) error {
		c.Subject = v
		return nil
	}},
	{"SUBJECT_ARGS", []string{"subject-arg"}, func(c *AppConfig, v string) error {
		c.SubjectArgs = strings.Fields(v)
		return nil
	}},
	{"OPS", []string{"ops"}, func(c *AppConfig, v string) (err error) {
		c.Operators, err = ParseOperators(v)
		return err
	}},
	{"KINDS", []string{"kinds"}, func(c *AppConfig, v string) (err error) {
		c.OperandKinds, err = ParseOperandKinds(v)
		return err
	}},
	{"ZERO_DIV_TOKENS", []string{"zero-div-tokens"}, func(c *AppConfig, v string) error {
		c.ZeroDivisionTokens = splitList(v)
		return nil
	}},
	{"ORACLE", []string{"oracle"}, func(c *AppConfig, v string) error {
		c.Oracle = v
		return nil
	}},
	{"REPORT", []string{"report"}, func(c *AppConfig, v string) error {
		c.ReportFile = v
		return nil
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) error {
		c.MetricsAddr = v
		return nil
	}},

	// Boolean overrides
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"QUIET", []string{"q", "quiet"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
	{"FAIL_FAST", []string{"fail-fast"}, func(c *AppConfig, v string) error {
		c.FailFast = parseBoolEnv(v, c.FailFast)
		return nil
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with BIGCHECK_):
//   - CASES, MAX_DIGITS, SEED, TIMEOUT, SUBJECT, SUBJECT_ARGS, OPS, KINDS,
//     ZERO_DIV_TOKENS, ORACLE, REPORT, METRICS_ADDR, VERBOSE, QUIET,
//     NO_COLOR, FAIL_FAST, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return apperrors.NewConfigError("%s%s=%q: %v", EnvPrefix, o.envKey, val, err)
			}
		}
	}
	return nil
}

// loadEnvFile loads a dotenv file into the process environment without
// overriding variables that are already set. A missing file is only an error
// when it was requested explicitly.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return apperrors.NewConfigError("loading env file %s: %v", path, err)
}
