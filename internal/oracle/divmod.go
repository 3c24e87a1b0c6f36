package oracle

import (
	"errors"
	"math/big"
)

// ErrDivisionByZero is returned by TruncatingDivMod for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// TruncatingDivMod returns the quotient rounded toward zero and the remainder
// carrying the dividend's sign, so that a == q*b + r and |r| < |b|.
//
// It is built on big.Int.DivMod, whose Euclidean remainder is always
// non-negative. For a negative dividend with a non-zero Euclidean remainder m,
// the truncated remainder is m - |b| and the quotient moves one step toward
// zero, i.e. q + sign(b).
func TruncatingDivMod(a, b *big.Int) (q, r *big.Int, err error) {
	if b.Sign() == 0 {
		return nil, nil, ErrDivisionByZero
	}
	q, m := new(big.Int).DivMod(a, b, new(big.Int))
	if a.Sign() >= 0 || m.Sign() == 0 {
		return q, m, nil
	}
	absB := new(big.Int).Abs(b)
	r = m.Sub(m, absB)
	q.Add(q, big.NewInt(int64(b.Sign())))
	return q, r, nil
}
