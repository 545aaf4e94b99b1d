package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/webcheck"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ webcheck.CheckService = (*CheckService)(nil)

// CheckService implements webcheck.CheckService using SQLite.
type CheckService struct {
	db *DB
}

// NewCheckService creates a new CheckService.
func NewCheckService(db *DB) *CheckService {
	return &CheckService{db: db}
}

// CreateCheck stores a check record with a generated ID.
func (s *CheckService) CreateCheck(ctx context.Context, check *webcheck.Check) error {
	if err := check.Validate(); err != nil {
		return err
	}

	check.ID = uuid.New().String()
	if check.CheckedAt.IsZero() {
		check.CheckedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checks (id, run_id, page_name, status, edits, error, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, check.ID, check.RunID, check.PageName, string(check.Status), check.Edits, check.Error,
		formatTime(check.CheckedAt))
	if err != nil {
		return webcheck.WrapError(webcheck.EREGISTRY, err, "recording check for %q", check.PageName)
	}
	return nil
}

// FindChecks retrieves checks matching the filter, newest first.
func (s *CheckService) FindChecks(ctx context.Context, filter webcheck.CheckFilter) ([]*webcheck.Check, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, run_id, page_name, status, edits, error, checked_at FROM checks WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.PageName != nil {
		query.WriteString(" AND page_name = ?")
		args = append(args, *filter.PageName)
	}

	query.WriteString(" ORDER BY checked_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing checks")
	}
	defer rows.Close()

	var checks []*webcheck.Check
	for rows.Next() {
		var check webcheck.Check
		var status, checkedAt string

		if err := rows.Scan(&check.ID, &check.RunID, &check.PageName, &status, &check.Edits,
			&check.Error, &checkedAt); err != nil {
			return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing checks")
		}

		check.Status = webcheck.CheckStatus(status)
		check.CheckedAt, err = parseTime(checkedAt, "checked_at")
		if err != nil {
			return nil, err
		}

		checks = append(checks, &check)
	}
	if err := rows.Err(); err != nil {
		return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing checks")
	}
	return checks, nil
}
