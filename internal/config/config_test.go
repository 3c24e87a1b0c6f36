package config

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/model"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("bigcheck", nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, DefaultCases, cfg.Cases)
	assert.Equal(t, DefaultMaxDigits, cfg.MaxDigits)
	assert.Equal(t, DefaultSubject, cfg.Subject)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, model.AllOperators, cfg.Operators)
	assert.Equal(t, []model.OperandKind{model.KindFullRange, model.KindMachineInt}, cfg.OperandKinds)
	assert.Equal(t, DefaultZeroDivisionTokens, cfg.ZeroDivisionTokens)
	assert.Equal(t, "big", cfg.Oracle)
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := ParseConfig("bigcheck", []string{
		"-n", "50",
		"--max-digits", "12",
		"--subject", "/opt/bigint",
		"--subject-arg", "--strict",
		"--subject-arg", "-x",
		"--timeout", "2s",
		"--ops", "/, %",
		"--kinds", "2",
		"--seed", "42",
		"--zero-div-tokens", "div0, by zero",
		"--fail-fast",
		"-v",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Cases)
	assert.Equal(t, 12, cfg.MaxDigits)
	assert.Equal(t, "/opt/bigint", cfg.Subject)
	assert.Equal(t, []string{"--strict", "-x"}, cfg.SubjectArgs)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, []model.Operator{model.OpDiv, model.OpMod}, cfg.Operators)
	assert.Equal(t, []model.OperandKind{model.KindMachineInt}, cfg.OperandKinds)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, []string{"div0", "by zero"}, cfg.ZeroDivisionTokens)
	assert.True(t, cfg.FailFast)
	assert.True(t, cfg.Verbose)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero cases", []string{"-n", "0"}},
		{"zero digits", []string{"--max-digits", "0"}},
		{"negative timeout", []string{"--timeout", "-1s"}},
		{"empty subject", []string{"--subject", " "}},
		{"unknown operator", []string{"--ops", "+,^"}},
		{"unknown kind", []string{"--kinds", "3"}},
		{"unknown oracle", []string{"--oracle", "abacus"}},
		{"bad replay case", []string{"--case", "1 + "}},
		{"positional argument", []string{"extra"}},
		{"missing config file", []string{"--config", "/nonexistent/bigcheck.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("bigcheck", tt.args, io.Discard)
			require.Error(t, err)
			assert.Equal(t, apperrors.ExitErrorConfig, apperrors.ExitCodeFor(err), "err = %v", err)
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("bigcheck", []string{"-h"}, io.Discard)
	assert.True(t, IsHelp(err))
	assert.True(t, errors.Is(err, flag.ErrHelp))
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BIGCHECK_CASES", "7")
	t.Setenv("BIGCHECK_TIMEOUT", "250ms")
	t.Setenv("BIGCHECK_OPS", "*")
	t.Setenv("BIGCHECK_SUBJECT", "builtin:reference")
	t.Setenv("BIGCHECK_FAIL_FAST", "yes")
	t.Setenv("BIGCHECK_SEED", "99")

	cfg, err := ParseConfig("bigcheck", []string{"--seed", "5"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Cases)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
	assert.Equal(t, []model.Operator{model.OpMul}, cfg.Operators)
	assert.Equal(t, "builtin:reference", cfg.Subject)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, uint64(5), cfg.Seed, "flag wins over env")
}

func TestParseConfig_InvalidEnvValue(t *testing.T) {
	t.Setenv("BIGCHECK_CASES", "many")

	_, err := ParseConfig("bigcheck", nil, io.Discard)
	var cfgErr apperrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "BIGCHECK_CASES")
}

func TestParseConfig_FileEnvFlagPriority(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bigcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
cases: 300
max_digits: 30
subject: ./from-file
timeout: 3s
operators: ["+", "-"]
kinds: [1]
zero_division_tokens: ["oops"]
fail_fast: true
`), 0o644))

	t.Setenv("BIGCHECK_MAX_DIGITS", "40")

	cfg, err := ParseConfig("bigcheck", []string{"--config", path, "--subject", "./from-flag"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Cases, "file over default")
	assert.Equal(t, 40, cfg.MaxDigits, "env over file")
	assert.Equal(t, "./from-flag", cfg.Subject, "flag over file")
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, []model.Operator{model.OpAdd, model.OpSub}, cfg.Operators)
	assert.Equal(t, []model.OperandKind{model.KindFullRange}, cfg.OperandKinds)
	assert.Equal(t, []string{"oops"}, cfg.ZeroDivisionTokens)
	assert.True(t, cfg.FailFast)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cases: 1\nthreads: 8\n"), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
}

func TestParseConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("BIGCHECK_MAX_DIGITS=17\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BIGCHECK_MAX_DIGITS") })

	cfg, err := ParseConfig("bigcheck", []string{"--env-file", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 17, cfg.MaxDigits)
}

func TestParseConfig_ExplicitMissingEnvFile(t *testing.T) {
	_, err := ParseConfig("bigcheck", []string{"--env-file", "/nonexistent/.env"}, io.Discard)
	require.Error(t, err)
}

func TestParseReplayCase(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    model.TestCase
		wantErr bool
	}{
		{in: "100 / -3", want: model.TestCase{A: "100", Op: model.OpDiv, B: "-3", Kind: model.KindFullRange}},
		{in: "2:5 % 0", want: model.TestCase{A: "5", Op: model.OpMod, B: "0", Kind: model.KindMachineInt}},
		{in: "  -7   *  2 ", want: model.TestCase{A: "-7", Op: model.OpMul, B: "2", Kind: model.KindFullRange}},
		{in: "1 + 2 + 3", wantErr: true},
		{in: "a + 2", wantErr: true},
		{in: "9:1 + 2", wantErr: true},
		{in: "1 ^ 2", wantErr: true},
		{in: "-0 + 1", wantErr: true},
		{in: "007 * 2", wantErr: true},
		{in: "+5 - 1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseReplayCase(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAppConfig_HarnessConfig(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Seed = 11
	cfg.FailFast = true

	hc := cfg.HarnessConfig("run-1")
	assert.Equal(t, cfg.Cases, hc.Cases)
	assert.Equal(t, cfg.MaxDigits, hc.MaxDigits)
	assert.Equal(t, uint64(11), hc.Seed)
	assert.True(t, hc.FailFast)
	assert.Equal(t, DefaultSubject, hc.SubjectName)
	assert.Equal(t, "run-1", hc.RunID)
}

func TestAppConfig_ReplayAllowsZeroCases(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Cases = 0
	cfg.Replay = []string{"1 + 1"}
	require.NoError(t, cfg.Validate())

	cases, err := cfg.ReplayCases()
	require.NoError(t, err)
	assert.Len(t, cases, 1)
}
