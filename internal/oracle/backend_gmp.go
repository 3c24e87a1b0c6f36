//go:build gmp

package oracle

import (
	"fmt"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcheck/internal/model"
)

func init() {
	Register(GMPBackend{})
}

// GMPBackend evaluates cases with libgmp. GMP's tdiv family already truncates
// toward zero, which gives an implementation independent of TruncatingDivMod.
type GMPBackend struct{}

// Name returns the registry key of the backend.
func (GMPBackend) Name() string { return "gmp" }

// Compute implements Backend.
func (GMPBackend) Compute(a string, op model.Operator, b string) (string, error) {
	x, ok := new(gmp.Int).SetString(a, 10)
	if !ok {
		return "", fmt.Errorf("invalid operand %q", a)
	}
	y, ok := new(gmp.Int).SetString(b, 10)
	if !ok {
		return "", fmt.Errorf("invalid operand %q", b)
	}

	switch op {
	case model.OpAdd:
		return new(gmp.Int).Add(x, y).String(), nil
	case model.OpSub:
		return new(gmp.Int).Sub(x, y).String(), nil
	case model.OpMul:
		return new(gmp.Int).Mul(x, y).String(), nil
	case model.OpDiv, model.OpMod:
		if y.Sign() == 0 {
			return "", ErrDivisionByZero
		}
		q, r := new(gmp.Int).QuoRem(x, y, new(gmp.Int))
		if op == model.OpDiv {
			return q.String(), nil
		}
		return r.String(), nil
	}
	return "", fmt.Errorf("unsupported operator %q", op)
}
