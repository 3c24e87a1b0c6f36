package oracle

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/bigcheck/internal/model"
)

// Oracle produces the expected result of a test case.
type Oracle struct {
	backend Backend
}

// New returns an Oracle over the given backend; nil selects BigBackend.
func New(backend Backend) *Oracle {
	if backend == nil {
		backend = BigBackend{}
	}
	return &Oracle{backend: backend}
}

// Backend returns the backend in use.
func (o *Oracle) Backend() Backend { return o.backend }

// Evaluate computes the expected result of tc. A zero divisor, in any
// spelling, yields Expected{DivisionByZero: true} rather than an error.
func (o *Oracle) Evaluate(tc model.TestCase) (model.Expected, error) {
	a, err := normalize(tc.A)
	if err != nil {
		return model.Expected{}, err
	}
	b, err := normalize(tc.B)
	if err != nil {
		return model.Expected{}, err
	}
	if tc.Op.IsDivision() && b == "0" {
		return model.Expected{DivisionByZero: true}, nil
	}

	v, err := o.backend.Compute(a, tc.Op, b)
	if errors.Is(err, ErrDivisionByZero) {
		return model.Expected{DivisionByZero: true}, nil
	}
	if err != nil {
		return model.Expected{}, fmt.Errorf("evaluate %s: %w", tc.Describe(), err)
	}
	return model.Expected{Value: v}, nil
}

// normalize parses any base-10 integer spelling into canonical form.
func normalize(s string) (string, error) {
	if model.IsCanonical(s) {
		return s, nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", fmt.Errorf("invalid decimal operand %q", s)
	}
	return v.String(), nil
}
