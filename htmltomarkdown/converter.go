// Package htmltomarkdown renders monitored page regions as Markdown so that
// diffs keep list and table structure.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/webcheck"
)

// Ensure Converter implements webcheck.Converter at compile time.
var _ webcheck.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown.
// An empty fragment yields ENOTFOUND since there is nothing to monitor.
func (c *Converter) Convert(html, baseURL string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", webcheck.Errorf(webcheck.ENOTFOUND, "empty HTML input")
	}

	var result string
	var err error
	if baseURL != "" {
		result, err = c.conv.ConvertString(html, converter.WithDomain(baseURL))
	} else {
		result, err = c.conv.ConvertString(html)
	}
	if err != nil {
		return "", webcheck.WrapError(webcheck.ENOTFOUND, err, "markdown conversion failed")
	}

	return result, nil
}
