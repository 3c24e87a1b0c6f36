//go:build gmp

package oracle

import (
	"testing"

	"github.com/agbru/bigcheck/internal/model"
)

// TestGMPBackendMatchesBig cross-checks the two independent backends.
func TestGMPBackendMatchesBig(t *testing.T) {
	operands := []string{"0", "1", "-1", "7", "-7", "-2147483648", "98765432109876543210", "-98765432109876543211"}
	gmpB, bigB := GMPBackend{}, BigBackend{}

	for _, a := range operands {
		for _, b := range operands {
			for _, op := range model.AllOperators {
				if op.IsDivision() && b == "0" {
					continue
				}
				want, _ := bigB.Compute(a, op, b)
				got, err := gmpB.Compute(a, op, b)
				if err != nil {
					t.Fatalf("gmp %s %s %s: %v", a, op, b, err)
				}
				if got != want {
					t.Errorf("%s %s %s: gmp=%s big=%s", a, op, b, got, want)
				}
			}
		}
	}
}
