package subject

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/agbru/bigcheck/internal/logging"
	"github.com/agbru/bigcheck/internal/model"
	"github.com/agbru/bigcheck/internal/oracle"
)

// BuiltinPrefix marks a subject path that names an in-process subject.
const BuiltinPrefix = "builtin:"

// ZeroDivisionMessage is what the built-in subjects print for a zero divisor.
const ZeroDivisionMessage = "Error: Division by zero"

// ParseProtocolInput decodes the four protocol lines back into a TestCase.
func ParseProtocolInput(input string) (model.TestCase, error) {
	lines := strings.Split(strings.TrimRight(input, "\n"), "\n")
	if len(lines) != 4 {
		return model.TestCase{}, fmt.Errorf("protocol input has %d lines, want 4", len(lines))
	}
	kind, err := model.ParseOperandKind(lines[0])
	if err != nil {
		return model.TestCase{}, err
	}
	op, err := model.ParseOperator(lines[2])
	if err != nil {
		return model.TestCase{}, err
	}
	return model.TestCase{
		A:    strings.TrimSpace(lines[1]),
		Op:   op,
		B:    strings.TrimSpace(lines[3]),
		Kind: kind,
	}, nil
}

// Reference returns an in-process subject that answers with the given oracle
// backend, printing ZeroDivisionMessage for a zero divisor. A correct harness
// reports every case against it as passing.
func Reference(backend oracle.Backend) Subject {
	if backend == nil {
		backend = oracle.BigBackend{}
	}
	return FuncSubject(func(_ context.Context, input string) (model.Actual, error) {
		tc, err := ParseProtocolInput(input)
		if err != nil {
			return model.Actual{Diagnostic: err.Error(), ExitCode: 2, Crashed: true}, nil
		}
		if tc.Op.IsDivision() && model.IsZero(tc.B) {
			return model.Actual{Output: ZeroDivisionMessage + "\n"}, nil
		}
		out, err := backend.Compute(tc.A, tc.Op, tc.B)
		if err != nil {
			return model.Actual{Diagnostic: err.Error(), ExitCode: 1, Crashed: true}, nil
		}
		return model.Actual{Output: out + "\n"}, nil
	})
}

// Floor returns an in-process subject that rounds division toward negative
// infinity and gives the remainder the divisor's sign. It disagrees with the
// oracle on every inexact case whose operands differ in sign, which makes it
// a useful negative control.
func Floor() Subject {
	return FuncSubject(func(_ context.Context, input string) (model.Actual, error) {
		tc, err := ParseProtocolInput(input)
		if err != nil {
			return model.Actual{Diagnostic: err.Error(), ExitCode: 2, Crashed: true}, nil
		}
		a, okA := new(big.Int).SetString(tc.A, 10)
		b, okB := new(big.Int).SetString(tc.B, 10)
		if !okA || !okB {
			return model.Actual{Diagnostic: "invalid operand", ExitCode: 1, Crashed: true}, nil
		}

		var res *big.Int
		switch tc.Op {
		case model.OpAdd:
			res = new(big.Int).Add(a, b)
		case model.OpSub:
			res = new(big.Int).Sub(a, b)
		case model.OpMul:
			res = new(big.Int).Mul(a, b)
		case model.OpDiv, model.OpMod:
			if b.Sign() == 0 {
				return model.Actual{Output: ZeroDivisionMessage + "\n"}, nil
			}
			q, r := floorDivMod(a, b)
			res = q
			if tc.Op == model.OpMod {
				res = r
			}
		}
		return model.Actual{Output: res.String() + "\n"}, nil
	})
}

func floorDivMod(a, b *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}

// Resolve maps a configured subject path to a Subject. Paths starting with
// BuiltinPrefix select an in-process subject ("reference", "floor"); anything
// else is launched as an external process.
func Resolve(path string, args []string, timeout time.Duration, backend oracle.Backend, logger logging.Logger) (Subject, error) {
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		switch name {
		case "reference":
			return Reference(backend), nil
		case "floor":
			return Floor(), nil
		}
		return nil, fmt.Errorf("unknown builtin subject %q", name)
	}
	return NewProcessSubject(path, args, timeout, logger), nil
}
