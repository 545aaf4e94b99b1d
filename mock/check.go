package mock

import (
	"context"

	"github.com/fwojciec/webcheck"
)

var _ webcheck.CheckService = (*CheckService)(nil)

// CheckService is a mock implementation of webcheck.CheckService.
type CheckService struct {
	CreateCheckFn func(ctx context.Context, check *webcheck.Check) error
	FindChecksFn  func(ctx context.Context, filter webcheck.CheckFilter) ([]*webcheck.Check, error)
}

func (s *CheckService) CreateCheck(ctx context.Context, check *webcheck.Check) error {
	return s.CreateCheckFn(ctx, check)
}

func (s *CheckService) FindChecks(ctx context.Context, filter webcheck.CheckFilter) ([]*webcheck.Check, error) {
	return s.FindChecksFn(ctx, filter)
}
