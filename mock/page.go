package mock

import (
	"context"
	"time"

	"github.com/fwojciec/webcheck"
)

var _ webcheck.PageService = (*PageService)(nil)

// PageService is a mock implementation of webcheck.PageService.
type PageService struct {
	CreatePageFn        func(ctx context.Context, page *webcheck.Page) error
	FindPageByNameFn    func(ctx context.Context, name string) (*webcheck.Page, error)
	FindPagesFn         func(ctx context.Context, filter webcheck.PageFilter) ([]*webcheck.Page, error)
	UpdatePageContentFn func(ctx context.Context, name string, content string, changedAt time.Time) error
}

func (s *PageService) CreatePage(ctx context.Context, page *webcheck.Page) error {
	return s.CreatePageFn(ctx, page)
}

func (s *PageService) FindPageByName(ctx context.Context, name string) (*webcheck.Page, error) {
	return s.FindPageByNameFn(ctx, name)
}

func (s *PageService) FindPages(ctx context.Context, filter webcheck.PageFilter) ([]*webcheck.Page, error) {
	return s.FindPagesFn(ctx, filter)
}

func (s *PageService) UpdatePageContent(ctx context.Context, name string, content string, changedAt time.Time) error {
	return s.UpdatePageContentFn(ctx, name, content, changedAt)
}
