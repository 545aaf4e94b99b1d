// Package rod provides a headless-browser implementation of webcheck.Fetcher
// for pages whose monitored content is rendered by JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/webcheck"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements webcheck.Fetcher at compile time.
var _ webcheck.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	bin         string
	renderDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithBin sets the browser executable. By default rod finds or downloads one.
func WithBin(path string) Option {
	return func(f *Fetcher) {
		f.bin = path
	}
}

// WithRenderDelay waits the given duration after load so late scripts can
// finish rendering.
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	if f.bin != "" {
		l = l.Bin(f.bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", webcheck.WrapError(webcheck.EFETCH, err, "opening tab for %s", url)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", webcheck.WrapError(webcheck.EFETCH, err, "navigating to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", webcheck.WrapError(webcheck.EFETCH, err, "waiting for %s", url)
	}

	if f.renderDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.renderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", webcheck.WrapError(webcheck.EFETCH, err, "reading HTML of %s", url)
	}

	return html, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Close releases browser resources and stops the launched process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
