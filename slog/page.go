package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcheck"
)

// Ensure LoggingPageService implements webcheck.PageService.
var _ webcheck.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService, logging registry reads and writes.
type LoggingPageService struct {
	next   webcheck.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next webcheck.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// CreatePage delegates to the wrapped service.
func (s *LoggingPageService) CreatePage(ctx context.Context, page *webcheck.Page) error {
	return s.next.CreatePage(ctx, page)
}

// FindPageByName delegates to the wrapped service.
func (s *LoggingPageService) FindPageByName(ctx context.Context, name string) (*webcheck.Page, error) {
	return s.next.FindPageByName(ctx, name)
}

// FindPages delegates to the wrapped service and logs the number of pages found.
func (s *LoggingPageService) FindPages(ctx context.Context, filter webcheck.PageFilter) (pages []*webcheck.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		}
		if filter.Status != nil {
			attrs = append(attrs, "status", string(*filter.Status))
		}
		s.logger.Debug("find pages", attrs...)
	}(time.Now())
	return s.next.FindPages(ctx, filter)
}

// UpdatePageContent delegates to the wrapped service and logs the write.
func (s *LoggingPageService) UpdatePageContent(ctx context.Context, name string, content string, changedAt time.Time) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("update page content",
			"page", name,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdatePageContent(ctx, name, content, changedAt)
}
