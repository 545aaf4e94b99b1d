// Package goquery extracts the monitored region of a page with CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webcheck"
	"golang.org/x/net/html"
)

// Ensure Extractor implements webcheck.ContentExtractor at compile time.
var _ webcheck.ContentExtractor = (*Extractor)(nil)

// Extractor selects the first element matching a CSS selector.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns body verbatim for an empty selector, otherwise the text
// content of the first matching element.
func (e *Extractor) Extract(body, selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		return body, nil
	}
	sel, err := first(body, selector)
	if err != nil {
		return "", err
	}
	return sel.Text(), nil
}

// ExtractHTML returns body verbatim for an empty selector, otherwise the
// outer HTML of the first matching element.
func (e *Extractor) ExtractHTML(body, selector string) (string, error) {
	if strings.TrimSpace(selector) == "" {
		return body, nil
	}
	sel, err := first(body, selector)
	if err != nil {
		return "", err
	}
	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", webcheck.Errorf(webcheck.ENOTFOUND, "failed to render %q: %v", selector, err)
	}
	return out, nil
}

// first parses body and returns the first element matching selector.
// An invalid selector matches nothing.
func first(body, selector string) (*goquery.Selection, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, webcheck.Errorf(webcheck.ENOTFOUND, "failed to parse HTML: %v", err)
	}

	doc := goquery.NewDocumentFromNode(root)
	sel := doc.FindMatcher(goquery.Single(selector))
	if sel.Length() == 0 {
		return nil, webcheck.Errorf(webcheck.ENOTFOUND, "no element matches selector %q", selector)
	}
	return sel, nil
}
