package webcheck

// ContentExtractor turns a fetched body into the region that is monitored.
type ContentExtractor interface {
	// Extract returns body unchanged when selector is empty. Otherwise it
	// parses body as HTML and returns the text of the first element that
	// matches the CSS selector.
	//
	// Returns ENOTFOUND when the document cannot be parsed, the selector is
	// invalid, or nothing matches. This is an expected outcome.
	Extract(body, selector string) (string, error)

	// ExtractHTML is like Extract but returns the outer HTML of the matched
	// element instead of its text.
	ExtractHTML(body, selector string) (string, error)
}
