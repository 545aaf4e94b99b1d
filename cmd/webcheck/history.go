package main

import (
	"fmt"

	"github.com/fwojciec/webcheck"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if _, err := deps.Pages.FindPageByName(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcheck.ErrorMessage(err))
		return err
	}

	checks, err := deps.Checks.FindChecks(deps.Ctx, webcheck.CheckFilter{PageName: &c.Name, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcheck.ErrorMessage(err))
		return err
	}

	if len(checks) == 0 {
		fmt.Fprintf(deps.Stdout, "No checks recorded for %q.\n", c.Name)
		return nil
	}

	for _, chk := range checks {
		line := fmt.Sprintf("%s  %-11s  %d edits", chk.CheckedAt.Format("2006-01-02 15:04:05"), chk.Status, chk.Edits)
		if chk.Error != "" {
			line += "  " + chk.Error
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
