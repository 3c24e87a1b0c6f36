package oracle

import (
	"errors"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestTruncatingDivMod(t *testing.T) {
	t.Parallel()
	tests := []struct {
		a, b int64
		q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{6, -3, -2, 0},
		{0, 7, 0, 0},
		{0, -7, 0, 0},
		{100, -3, -33, 1},
		{-100, 3, -33, -1},
		{1, 5, 0, 1},
		{-1, 5, 0, -1},
		{-2147483648, -1, 2147483648, 0},
	}

	for _, tt := range tests {
		q, r, err := TruncatingDivMod(big.NewInt(tt.a), big.NewInt(tt.b))
		if err != nil {
			t.Fatalf("TruncatingDivMod(%d, %d) returned error: %v", tt.a, tt.b, err)
		}
		if q.Int64() != tt.q || r.Int64() != tt.r {
			t.Errorf("TruncatingDivMod(%d, %d) = (%s, %s), want (%d, %d)", tt.a, tt.b, q, r, tt.q, tt.r)
		}
	}
}

func TestTruncatingDivMod_ZeroDivisor(t *testing.T) {
	t.Parallel()
	_, _, err := TruncatingDivMod(big.NewInt(5), new(big.Int))
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

// TestTruncatingDivMod_DoesNotAliasInputs guards against the result sharing
// storage with the operands.
func TestTruncatingDivMod_DoesNotAliasInputs(t *testing.T) {
	t.Parallel()
	a, b := big.NewInt(-7), big.NewInt(2)
	q, r, _ := TruncatingDivMod(a, b)
	q.SetInt64(99)
	r.SetInt64(99)
	if a.Int64() != -7 || b.Int64() != 2 {
		t.Errorf("operands modified: a=%s b=%s", a, b)
	}
}

// genBigInt generates signed integers of up to ~60 decimal digits by combining
// several int64 limbs.
func genBigInt() gopter.Gen {
	return gen.SliceOfN(4, gen.Int64()).Map(func(limbs []int64) *big.Int {
		v := new(big.Int)
		shift := new(big.Int).Lsh(big.NewInt(1), 63)
		for _, l := range limbs {
			v.Mul(v, shift)
			v.Add(v, big.NewInt(l))
		}
		return v
	})
}

// TestTruncatingDivMod_PropertyBased verifies the division law for arbitrary
// operands:
//
//	a == q*b + r,  |r| < |b|,  r == 0 or sign(r) == sign(a)
func TestTruncatingDivMod_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("a == q*b + r with dividend-signed remainder", prop.ForAll(
		func(a, b *big.Int) bool {
			if b.Sign() == 0 {
				b = big.NewInt(1)
			}
			q, r, err := TruncatingDivMod(a, b)
			if err != nil {
				return false
			}

			recomposed := new(big.Int).Mul(q, b)
			recomposed.Add(recomposed, r)
			if recomposed.Cmp(a) != 0 {
				return false
			}
			if new(big.Int).Abs(r).Cmp(new(big.Int).Abs(b)) >= 0 {
				return false
			}
			return r.Sign() == 0 || r.Sign() == a.Sign()
		},
		genBigInt(),
		genBigInt(),
	))

	properties.Property("matches big.Int.QuoRem", prop.ForAll(
		func(a, b *big.Int) bool {
			if b.Sign() == 0 {
				return true
			}
			q, r, _ := TruncatingDivMod(a, b)
			wq, wr := new(big.Int).QuoRem(a, b, new(big.Int))
			return q.Cmp(wq) == 0 && r.Cmp(wr) == 0
		},
		genBigInt(),
		genBigInt(),
	))

	properties.TestingRun(t)
}

// FuzzTruncatingDivMod compares TruncatingDivMod against big.Int.QuoRem, which
// truncates natively, for arbitrary byte-derived operands.
func FuzzTruncatingDivMod(f *testing.F) {
	f.Add([]byte{7}, []byte{2}, true, false)
	f.Add([]byte{100}, []byte{3}, false, true)
	f.Add([]byte{0xff, 0xff, 0xff, 0xff, 0xff}, []byte{0x80, 0x00}, true, true)
	f.Fuzz(func(t *testing.T, ab, bb []byte, negA, negB bool) {
		a := new(big.Int).SetBytes(ab)
		b := new(big.Int).SetBytes(bb)
		if b.Sign() == 0 {
			t.Skip()
		}
		if negA {
			a.Neg(a)
		}
		if negB {
			b.Neg(b)
		}

		q, r, err := TruncatingDivMod(a, b)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		wq, wr := new(big.Int).QuoRem(a, b, new(big.Int))
		if q.Cmp(wq) != 0 || r.Cmp(wr) != 0 {
			t.Errorf("TruncatingDivMod(%s, %s) = (%s, %s), QuoRem = (%s, %s)", a, b, q, r, wq, wr)
		}
	})
}
