package oracle

import (
	"testing"

	"github.com/agbru/bigcheck/internal/model"
)

func TestOracle_Evaluate(t *testing.T) {
	t.Parallel()
	o := New(nil)

	tests := []struct {
		name string
		tc   model.TestCase
		want model.Expected
	}{
		{"add", model.TestCase{A: "99999999999999999999", Op: model.OpAdd, B: "1"}, model.Expected{Value: "100000000000000000000"}},
		{"add to zero", model.TestCase{A: "-5", Op: model.OpAdd, B: "5"}, model.Expected{Value: "0"}},
		{"sub", model.TestCase{A: "-12345678901234567890", Op: model.OpSub, B: "-12345678901234567890"}, model.Expected{Value: "0"}},
		{"mul sign", model.TestCase{A: "-123456789123456789", Op: model.OpMul, B: "1000"}, model.Expected{Value: "-123456789123456789000"}},
		{"mul zero has no sign", model.TestCase{A: "-7", Op: model.OpMul, B: "0"}, model.Expected{Value: "0"}},
		{"div truncates toward zero", model.TestCase{A: "-7", Op: model.OpDiv, B: "2"}, model.Expected{Value: "-3"}},
		{"mod follows dividend", model.TestCase{A: "-7", Op: model.OpMod, B: "2"}, model.Expected{Value: "-1"}},
		{"div negative divisor", model.TestCase{A: "100", Op: model.OpDiv, B: "-3"}, model.Expected{Value: "-33"}},
		{"mod negative divisor", model.TestCase{A: "100", Op: model.OpMod, B: "-3"}, model.Expected{Value: "1"}},
		{"mod of zero", model.TestCase{A: "0", Op: model.OpMod, B: "7"}, model.Expected{Value: "0"}},
		{"div by zero", model.TestCase{A: "5", Op: model.OpDiv, B: "0"}, model.Expected{DivisionByZero: true}},
		{"mod by signed zero", model.TestCase{A: "5", Op: model.OpMod, B: "-0"}, model.Expected{DivisionByZero: true}},
		{"add with zero operand", model.TestCase{A: "5", Op: model.OpAdd, B: "0"}, model.Expected{Value: "5"}},
		{"non-canonical operand", model.TestCase{A: "007", Op: model.OpSub, B: "+3"}, model.Expected{Value: "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := o.Evaluate(tt.tc)
			if err != nil {
				t.Fatalf("Evaluate(%s) returned error: %v", tt.tc.Describe(), err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%s) = %+v, want %+v", tt.tc.Describe(), got, tt.want)
			}
		})
	}
}

func TestOracle_EvaluateRejectsGarbage(t *testing.T) {
	t.Parallel()
	o := New(BigBackend{})
	for _, tc := range []model.TestCase{
		{A: "12x", Op: model.OpAdd, B: "1"},
		{A: "1", Op: model.OpAdd, B: ""},
		{A: "1", Op: model.Operator("^"), B: "2"},
	} {
		if _, err := o.Evaluate(tc); err == nil {
			t.Errorf("Evaluate(%s) should fail", tc.Describe())
		}
	}
}

func TestOracle_ResultsAreCanonical(t *testing.T) {
	t.Parallel()
	o := New(nil)
	operands := []string{"0", "1", "-1", "7", "-7", "2147483647", "-2147483648", "123456789012345678901234567890"}

	for _, a := range operands {
		for _, b := range operands {
			for _, op := range model.AllOperators {
				got, err := o.Evaluate(model.TestCase{A: a, Op: op, B: b})
				if err != nil {
					t.Fatalf("Evaluate(%s %s %s): %v", a, op, b, err)
				}
				if got.DivisionByZero {
					if !op.IsDivision() || b != "0" {
						t.Errorf("unexpected DivisionByZero for %s %s %s", a, op, b)
					}
					continue
				}
				if !model.IsCanonical(got.Value) {
					t.Errorf("%s %s %s = %q is not canonical", a, op, b, got.Value)
				}
			}
		}
	}
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	b, err := Lookup("big")
	if err != nil {
		t.Fatalf("Lookup(big): %v", err)
	}
	if b.Name() != "big" {
		t.Errorf("Name() = %q, want big", b.Name())
	}
	if _, err := Lookup("nope"); err == nil {
		t.Error("Lookup(nope) should fail")
	}
	found := false
	for _, name := range List() {
		if name == "big" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() = %v, want it to contain big", List())
	}
}
