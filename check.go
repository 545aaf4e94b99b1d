package webcheck

import (
	"context"
	"time"
)

// CheckStatus is the terminal state of one page in a check cycle.
type CheckStatus string

// CheckStatus constants.
const (
	// CheckUnchanged means the content matched the stored content.
	CheckUnchanged CheckStatus = "unchanged"
	// CheckInitialized means the page had no baseline; content was stored
	// without notifying.
	CheckInitialized CheckStatus = "initialized"
	// CheckNotified means a change was detected, reported and stored.
	CheckNotified CheckStatus = "notified"
	// CheckSkipped means the content could not be fetched or extracted.
	CheckSkipped CheckStatus = "skipped"
	// CheckFailed means an unexpected error stopped the page pipeline.
	CheckFailed CheckStatus = "failed"
)

// CheckOutcome is the result of processing one page in a cycle.
type CheckOutcome struct {
	Page       *Page
	NewContent *string
	Changed    bool
	Edits      []Edit
	Status     CheckStatus

	// Notified is false when dispatch failed for a changed page.
	Notified bool
	Err      error
	Duration time.Duration
}

// RunSummary describes a finished check cycle.
type RunSummary struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []CheckOutcome
}

// Count returns the number of outcomes with the given status.
func (s *RunSummary) Count(status CheckStatus) int {
	var n int
	for _, o := range s.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Check is a persisted record of one page outcome.
type Check struct {
	ID        string      `json:"id"`
	RunID     string      `json:"runId"`
	PageName  string      `json:"pageName"`
	Status    CheckStatus `json:"status"`
	Edits     int         `json:"edits"`
	Error     string      `json:"error"`
	CheckedAt time.Time   `json:"checkedAt"`
}

// Validate returns an error if the check contains invalid fields.
func (c *Check) Validate() error {
	if c.RunID == "" {
		return Errorf(EINVALID, "check run ID required")
	}
	if c.PageName == "" {
		return Errorf(EINVALID, "check page name required")
	}
	if c.Status == "" {
		return Errorf(EINVALID, "check status required")
	}
	return nil
}

// CheckService records check history.
type CheckService interface {
	// CreateCheck stores a check record, assigning its ID.
	CreateCheck(ctx context.Context, check *Check) error

	// FindChecks retrieves checks matching the filter, newest first.
	FindChecks(ctx context.Context, filter CheckFilter) ([]*Check, error)
}

// CheckFilter represents a filter for FindChecks.
type CheckFilter struct {
	RunID    *string `json:"runId"`
	PageName *string `json:"pageName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
