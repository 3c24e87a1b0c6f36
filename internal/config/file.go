package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/bigcheck/internal/errors"
	"github.com/agbru/bigcheck/internal/model"
)

// FileConfig is the YAML config file layout. Absent keys leave the
// corresponding setting untouched.
type FileConfig struct {
	Cases              *int     `yaml:"cases"`
	MaxDigits          *int     `yaml:"max_digits"`
	Subject            *string  `yaml:"subject"`
	SubjectArgs        []string `yaml:"subject_args"`
	Timeout            *string  `yaml:"timeout"`
	Operators          []string `yaml:"operators"`
	Kinds              []int    `yaml:"kinds"`
	Seed               *uint64  `yaml:"seed"`
	ZeroDivisionTokens []string `yaml:"zero_division_tokens"`
	Oracle             *string  `yaml:"oracle"`
	Report             *string  `yaml:"report"`
	MetricsAddr        *string  `yaml:"metrics_addr"`
	FailFast           *bool    `yaml:"fail_fast"`
}

// LoadFile reads and strictly decodes a YAML config file. Unknown keys are
// rejected.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("reading config file: %v", err)
	}
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, apperrors.NewConfigError("parsing config file %s: %v", path, err)
	}
	return fc, nil
}

// apply copies file values into config for every setting whose flag was not
// given on the command line.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) error {
	set := func(names ...string) bool { return !isFlagSetAny(fs, names...) }

	if fc.Cases != nil && set("n", "cases") {
		config.Cases = *fc.Cases
	}
	if fc.MaxDigits != nil && set("max-digits") {
		config.MaxDigits = *fc.MaxDigits
	}
	if fc.Subject != nil && set("subject", "s") {
		config.Subject = *fc.Subject
	}
	if fc.SubjectArgs != nil && set("subject-arg") {
		config.SubjectArgs = fc.SubjectArgs
	}
	if fc.Timeout != nil && set("timeout") {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return apperrors.NewConfigError("config file timeout: %v", err)
		}
		config.Timeout = d
	}
	if fc.Operators != nil && set("ops") {
		config.Operators = config.Operators[:0:0]
		for _, s := range fc.Operators {
			op, err := model.ParseOperator(s)
			if err != nil {
				return apperrors.NewConfigError("config file operators: %v", err)
			}
			config.Operators = appendUnique(config.Operators, op)
		}
	}
	if fc.Kinds != nil && set("kinds") {
		config.OperandKinds = config.OperandKinds[:0:0]
		for _, k := range fc.Kinds {
			kind := model.OperandKind(k)
			if kind != model.KindFullRange && kind != model.KindMachineInt {
				return apperrors.NewConfigError("config file kinds: unknown operand kind %d", k)
			}
			config.OperandKinds = appendUnique(config.OperandKinds, kind)
		}
	}
	if fc.Seed != nil && set("seed") {
		config.Seed = *fc.Seed
	}
	if fc.ZeroDivisionTokens != nil && set("zero-div-tokens") {
		config.ZeroDivisionTokens = fc.ZeroDivisionTokens
	}
	if fc.Oracle != nil && set("oracle") {
		config.Oracle = *fc.Oracle
	}
	if fc.Report != nil && set("report") {
		config.ReportFile = *fc.Report
	}
	if fc.MetricsAddr != nil && set("metrics-addr") {
		config.MetricsAddr = *fc.MetricsAddr
	}
	if fc.FailFast != nil && set("fail-fast") {
		config.FailFast = *fc.FailFast
	}
	return nil
}
