package main

import (
	"fmt"

	"github.com/fwojciec/webcheck"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	pages, err := deps.Pages.FindPages(deps.Ctx, webcheck.PageFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcheck.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages found.")
		return nil
	}

	for _, p := range pages {
		changed := "never"
		if p.Observed() {
			changed = p.LastChangedAt.Format("2006-01-02 15:04")
		}
		selector := p.Selector
		if selector == "" {
			selector = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n", p.Name, p.Status, p.URL, selector, changed)
	}

	return nil
}
