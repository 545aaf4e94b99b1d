package mock

import "github.com/fwojciec/webcheck"

var _ webcheck.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of webcheck.ContentExtractor.
type ContentExtractor struct {
	ExtractFn     func(body, selector string) (string, error)
	ExtractHTMLFn func(body, selector string) (string, error)
}

func (e *ContentExtractor) Extract(body, selector string) (string, error) {
	return e.ExtractFn(body, selector)
}

func (e *ContentExtractor) ExtractHTML(body, selector string) (string, error) {
	return e.ExtractHTMLFn(body, selector)
}
