package webcheck

import (
	"context"
	"time"
)

// PageStatus controls whether a page takes part in check cycles.
type PageStatus string

// PageStatus constants.
const (
	PageActive   PageStatus = "active"
	PageInactive PageStatus = "inactive"
)

// PageFormat selects how the monitored region is turned into text.
type PageFormat string

// PageFormat constants.
const (
	// FormatText uses the text content of the matched element.
	FormatText PageFormat = "text"
	// FormatMarkdown converts the matched element's HTML to markdown.
	FormatMarkdown PageFormat = "markdown"
)

// Page represents a monitored web page.
type Page struct {
	Name     string     `json:"name"`
	URL      string     `json:"url"`
	Selector string     `json:"selector"` // CSS selector; empty means the whole body
	Status   PageStatus `json:"status"`
	Format   PageFormat `json:"format"`

	// Render fetches the page through a headless browser.
	Render bool `json:"render"`

	// Content is the last observed extracted text. Nil until the first
	// successful observation.
	Content       *string   `json:"content,omitempty"`
	ContentHash   string    `json:"contentHash"`
	LastChangedAt time.Time `json:"lastChangedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "page name required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	switch p.Status {
	case PageActive, PageInactive:
	default:
		return Errorf(EINVALID, "invalid page status %q", p.Status)
	}
	switch p.Format {
	case "", FormatText, FormatMarkdown:
	default:
		return Errorf(EINVALID, "invalid page format %q", p.Format)
	}
	return nil
}

// Observed reports whether the page has a comparison baseline.
func (p *Page) Observed() bool {
	return p.Content != nil
}

// PageService represents the registry of monitored pages.
type PageService interface {
	// CreatePage registers a new page.
	// Returns EINVALID if the page fails validation.
	CreatePage(ctx context.Context, page *Page) error

	// FindPageByName retrieves a page by its unique name.
	// Returns ENOTFOUND if the page does not exist.
	FindPageByName(ctx context.Context, name string) (*Page, error)

	// FindPages retrieves pages matching the filter.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)

	// UpdatePageContent records newly observed content for a page.
	// Returns ENOTFOUND if the page does not exist.
	UpdatePageContent(ctx context.Context, name string, content string, changedAt time.Time) error
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	Name   *string     `json:"name"`
	Status *PageStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
