// Package generator produces randomized test cases: signed decimal operands in
// canonical form, an operator, and the second-operand kind.
package generator

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/agbru/bigcheck/internal/model"
)

const (
	// ZeroProbability is the chance that a one-digit operand is exactly "0".
	ZeroProbability = 0.1
	// NegativeProbability is the chance that a non-zero operand is negated.
	NegativeProbability = 0.4
)

// Options configures a Generator.
type Options struct {
	// MaxDigits caps the length of full-range operands.
	MaxDigits int
	// Operators is the set drawn from uniformly.
	Operators []model.Operator
	// Kinds is the set of second-operand kinds drawn from uniformly.
	Kinds []model.OperandKind
	// Seed makes the sequence reproducible.
	Seed uint64
}

// Generator draws test cases from a seeded PRNG. It is not safe for
// concurrent use.
type Generator struct {
	rng       *rand.Rand
	maxDigits int
	operators []model.Operator
	kinds     []model.OperandKind
}

// New returns a Generator. Empty operator or kind sets fall back to all
// operators and both kinds; MaxDigits is raised to at least 1.
func New(opts Options) *Generator {
	g := &Generator{
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		maxDigits: opts.MaxDigits,
		operators: opts.Operators,
		kinds:     opts.Kinds,
	}
	if g.maxDigits < 1 {
		g.maxDigits = 1
	}
	if len(g.operators) == 0 {
		g.operators = model.AllOperators
	}
	if len(g.kinds) == 0 {
		g.kinds = []model.OperandKind{model.KindFullRange, model.KindMachineInt}
	}
	return g
}

// BigIntString returns a canonical decimal integer of 1..maxDigits digits.
// A maxDigits below 1 always yields "0".
func (g *Generator) BigIntString(maxDigits int) string {
	if maxDigits < 1 {
		return "0"
	}
	length := g.rng.IntN(maxDigits) + 1
	if length == 1 && g.rng.Float64() < ZeroProbability {
		return "0"
	}

	digits := make([]byte, length)
	for i := range digits {
		digits[i] = byte('0' + g.rng.IntN(10))
	}
	if digits[0] == '0' && length > 1 {
		digits[0] = byte('1' + g.rng.IntN(9))
	}

	s := string(digits)
	if g.rng.Float64() < NegativeProbability && s != "0" {
		s = "-" + s
	}
	return s
}

// SecondOperand draws B according to kind.
func (g *Generator) SecondOperand(kind model.OperandKind) string {
	if kind == model.KindMachineInt {
		v := g.rng.Int64N(int64(math.MaxInt32)-int64(math.MinInt32)+1) + math.MinInt32
		return strconv.FormatInt(v, 10)
	}
	return g.BigIntString(g.rng.IntN(g.maxDigits) + 1)
}

// NonZeroSecondOperand resamples SecondOperand until it is not zero in any
// spelling.
func (g *Generator) NonZeroSecondOperand(kind model.OperandKind) string {
	for {
		b := g.SecondOperand(kind)
		if !model.IsZero(b) {
			return b
		}
	}
}

// Operator draws an operator from the configured set.
func (g *Generator) Operator() model.Operator {
	return g.operators[g.rng.IntN(len(g.operators))]
}

// Kind draws a second-operand kind from the configured set.
func (g *Generator) Kind() model.OperandKind {
	return g.kinds[g.rng.IntN(len(g.kinds))]
}

// Next draws a complete test case. Division and remainder cases never carry a
// zero divisor.
func (g *Generator) Next() model.TestCase {
	kind := g.Kind()
	a := g.BigIntString(g.maxDigits)
	op := g.Operator()

	var b string
	if op.IsDivision() {
		b = g.NonZeroSecondOperand(kind)
	} else {
		b = g.SecondOperand(kind)
	}
	return model.TestCase{A: a, Op: op, B: b, Kind: kind}
}
