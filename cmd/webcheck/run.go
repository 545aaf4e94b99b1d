package main

import (
	"fmt"

	"github.com/fwojciec/webcheck"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	summary, err := deps.Checker.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", webcheck.ErrorMessage(err))
		return err
	}

	for _, o := range summary.Outcomes {
		line := fmt.Sprintf("%-11s  %s", o.Status, o.Page.Name)
		if o.Status == webcheck.CheckNotified && !o.Notified {
			line += "  (notification not delivered)"
		}
		if o.Err != nil {
			line += "  " + webcheck.ErrorMessage(o.Err)
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	fmt.Fprintf(deps.Stdout, "Checked %d pages: %d changed, %d unchanged, %d initialized, %d skipped, %d failed\n",
		len(summary.Outcomes),
		summary.Count(webcheck.CheckNotified),
		summary.Count(webcheck.CheckUnchanged),
		summary.Count(webcheck.CheckInitialized),
		summary.Count(webcheck.CheckSkipped),
		summary.Count(webcheck.CheckFailed),
	)

	return nil
}
