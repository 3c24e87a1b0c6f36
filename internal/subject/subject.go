//go:generate mockgen -source=subject.go -destination=mocks/mock_subject.go -package=mocks

package subject

import (
	"context"

	"github.com/agbru/bigcheck/internal/model"
)

// Subject evaluates one protocol input. Crashes and timeouts are reported in
// the returned Actual; a non-nil error means the case could not be driven at
// all (for example, the executable does not exist).
type Subject interface {
	Evaluate(ctx context.Context, input string) (model.Actual, error)
}

// FuncSubject adapts a function to the Subject interface.
type FuncSubject func(ctx context.Context, input string) (model.Actual, error)

// Evaluate calls f.
func (f FuncSubject) Evaluate(ctx context.Context, input string) (model.Actual, error) {
	return f(ctx, input)
}
