// Package check runs change-detection cycles over the page registry.
// It coordinates fetching, extraction, diffing, notification and storage
// of monitored pages.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/webcheck"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Default settings for a Checker.
const (
	DefaultConcurrency  = 10
	DefaultFetchTimeout = 30 * time.Second
)

// Checker runs check cycles. Pages, Fetcher, Extractor and Detector are
// required; the rest are optional.
type Checker struct {
	Pages     webcheck.PageService
	Checks    webcheck.CheckService
	Fetcher   webcheck.Fetcher
	Browser   webcheck.Fetcher // used for pages with Render set
	Extractor webcheck.ContentExtractor
	Converter webcheck.Converter
	Detector  webcheck.ChangeDetector
	Notifier  webcheck.Notifier

	Recipients   []string
	RateLimiter  webcheck.HostLimiter
	Logger       *slog.Logger
	Concurrency  int
	FetchTimeout time.Duration
	RetryDelays  []time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Run checks every active page and returns once all of them have settled.
// Only a failure to list the registry is returned as an error; page
// failures are reported in the summary outcomes, in registry order.
func (c *Checker) Run(ctx context.Context) (*webcheck.RunSummary, error) {
	active := webcheck.PageActive
	pages, err := c.Pages.FindPages(ctx, webcheck.PageFilter{Status: &active})
	if err != nil {
		return nil, webcheck.WrapError(webcheck.EBATCH, err, "listing active pages")
	}

	summary := &webcheck.RunSummary{
		ID:        uuid.New().String(),
		StartedAt: c.now(),
		Outcomes:  make([]webcheck.CheckOutcome, len(pages)),
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, page := range pages {
		g.Go(func() error {
			summary.Outcomes[i] = c.CheckPage(gctx, page)
			return nil
		})
	}
	_ = g.Wait()

	summary.FinishedAt = c.now()

	for _, o := range summary.Outcomes {
		c.record(ctx, summary.ID, o)
	}

	c.logger().Info("check run finished",
		"run", summary.ID,
		"pages", len(pages),
		"unchanged", summary.Count(webcheck.CheckUnchanged),
		"initialized", summary.Count(webcheck.CheckInitialized),
		"notified", summary.Count(webcheck.CheckNotified),
		"skipped", summary.Count(webcheck.CheckSkipped),
		"failed", summary.Count(webcheck.CheckFailed),
		"duration", summary.FinishedAt.Sub(summary.StartedAt),
	)

	return summary, nil
}

// CheckPage runs the pipeline for a single page. It never panics and never
// returns an error; the outcome carries the terminal status.
func (c *Checker) CheckPage(ctx context.Context, page *webcheck.Page) (outcome webcheck.CheckOutcome) {
	begin := time.Now()
	outcome.Page = page

	defer func() {
		if r := recover(); r != nil {
			outcome.Status = webcheck.CheckFailed
			outcome.Err = webcheck.Errorf(webcheck.EINTERNAL, "panic: %v", r)
		}
		outcome.Duration = time.Since(begin)
		if outcome.Status == webcheck.CheckFailed {
			c.logger().Error("page check failed", "page", page.Name, "url", page.URL, "err", outcome.Err)
		}
	}()

	content, err := c.observe(ctx, page)
	if err != nil {
		switch webcheck.ErrorCode(err) {
		case webcheck.EFETCH, webcheck.ENOTFOUND, webcheck.EINVALID:
			outcome.Status = webcheck.CheckSkipped
			outcome.Err = err
			c.logger().Warn("page skipped", "page", page.Name, "url", page.URL, "err", err)
		default:
			outcome.Status = webcheck.CheckFailed
			outcome.Err = err
		}
		return outcome
	}
	if content == "" {
		outcome.Status = webcheck.CheckSkipped
		outcome.Err = webcheck.Errorf(webcheck.ENOTFOUND, "empty content for %s", page.URL)
		c.logger().Warn("page skipped", "page", page.Name, "url", page.URL, "err", outcome.Err)
		return outcome
	}
	outcome.NewContent = &content

	change := c.Detector.Detect(page.Content, content)
	outcome.Changed = change.Changed
	outcome.Edits = change.Edits

	if !change.Changed {
		if page.Observed() {
			outcome.Status = webcheck.CheckUnchanged
			return outcome
		}
		if err := c.Pages.UpdatePageContent(ctx, page.Name, content, c.now()); err != nil {
			outcome.Status = webcheck.CheckFailed
			outcome.Err = fmt.Errorf("store initial content: %w", err)
			return outcome
		}
		outcome.Status = webcheck.CheckInitialized
		return outcome
	}

	if change.Degraded != nil {
		c.logger().Warn("diff failed, reporting without changes", "page", page.Name, "err", change.Degraded)
	}

	outcome.Notified = c.notify(ctx, page, change.Edits, *page.Content, content)

	if err := c.Pages.UpdatePageContent(ctx, page.Name, content, c.now()); err != nil {
		outcome.Status = webcheck.CheckFailed
		outcome.Err = fmt.Errorf("store changed content: %w", err)
		return outcome
	}
	outcome.Status = webcheck.CheckNotified
	return outcome
}

// observe fetches the page and extracts the monitored region.
func (c *Checker) observe(ctx context.Context, page *webcheck.Page) (string, error) {
	body, err := c.fetch(ctx, page)
	if err != nil {
		return "", err
	}

	if page.Format != webcheck.FormatMarkdown {
		return c.Extractor.Extract(body, page.Selector)
	}

	if c.Converter == nil {
		return "", webcheck.Errorf(webcheck.EINTERNAL, "markdown page %q without converter", page.Name)
	}
	html, err := c.Extractor.ExtractHTML(body, page.Selector)
	if err != nil {
		return "", err
	}
	return c.Converter.Convert(html, page.URL)
}

// fetch retrieves the page body, retrying transient failures. Every attempt
// waits on the host rate limit and is bounded by FetchTimeout.
func (c *Checker) fetch(ctx context.Context, page *webcheck.Page) (string, error) {
	fetcher := c.Fetcher
	if page.Render && c.Browser != nil {
		fetcher = c.Browser
	}

	timeout := c.FetchTimeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	fetchFn := func(ctx context.Context, url string) (string, error) {
		if err := WaitForURL(ctx, c.RateLimiter, url); err != nil {
			return "", err
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fetcher.Fetch(ctx, url)
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	body, err := FetchWithRetry(ctx, page.URL, fetchFn, c.Logger, delays)
	if err != nil {
		if code := webcheck.ErrorCode(err); code == webcheck.EFETCH || code == webcheck.EINVALID {
			return "", err
		}
		return "", webcheck.WrapError(webcheck.EFETCH, err, "fetching %s", page.URL)
	}
	return body, nil
}

// notify dispatches the change report and reports whether it was delivered.
// Delivery failures are logged, never returned.
func (c *Checker) notify(ctx context.Context, page *webcheck.Page, edits []webcheck.Edit, oldContent, newContent string) bool {
	if c.Notifier == nil {
		return false
	}
	n := webcheck.FormatNotification(page.Name, page.URL, edits, oldContent, newContent)
	if err := c.Notifier.Notify(ctx, n, c.Recipients); err != nil {
		c.logger().Warn("notification failed", "page", page.Name, "url", page.URL, "err", err)
		return false
	}
	return true
}

// record stores the outcome in check history. Failures are logged only.
func (c *Checker) record(ctx context.Context, runID string, o webcheck.CheckOutcome) {
	if c.Checks == nil {
		return
	}
	chk := &webcheck.Check{
		RunID:     runID,
		PageName:  o.Page.Name,
		Status:    o.Status,
		Edits:     len(o.Edits),
		CheckedAt: c.now(),
	}
	if o.Err != nil {
		chk.Error = o.Err.Error()
	}
	if err := c.Checks.CreateCheck(ctx, chk); err != nil {
		c.logger().Warn("record check failed", "page", o.Page.Name, "run", runID, "err", err)
	}
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
