package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/webcheck"
)

// Compile-time interface verification.
var _ webcheck.PageService = (*PageService)(nil)

// PageService implements webcheck.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = "name, url, selector, status, format, render, content, content_hash, last_changed_at"

// CreatePage registers a new page.
func (s *PageService) CreatePage(ctx context.Context, page *webcheck.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if page.Format == "" {
		page.Format = webcheck.FormatText
	}

	var content sql.NullString
	var lastChangedAt string
	if page.Content != nil {
		content = sql.NullString{String: *page.Content, Valid: true}
		page.ContentHash = hashContent(*page.Content)
	}
	if !page.LastChangedAt.IsZero() {
		lastChangedAt = formatTime(page.LastChangedAt)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (`+pageColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.Name, page.URL, page.Selector, string(page.Status), string(page.Format), page.Render,
		content, page.ContentHash, lastChangedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return webcheck.Errorf(webcheck.EINVALID, "page %q already exists", page.Name)
		}
		return webcheck.WrapError(webcheck.EREGISTRY, err, "creating page %q", page.Name)
	}
	return nil
}

// FindPageByName retrieves a page by name.
func (s *PageService) FindPageByName(ctx context.Context, name string) (*webcheck.Page, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pageColumns+` FROM pages WHERE name = ?`, name)

	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, webcheck.Errorf(webcheck.ENOTFOUND, "page %q not found", name)
	}
	if err != nil {
		return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "finding page %q", name)
	}
	return page, nil
}

// FindPages retrieves pages matching the filter, ordered by name.
func (s *PageService) FindPages(ctx context.Context, filter webcheck.PageFilter) ([]*webcheck.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing pages")
	}
	defer rows.Close()

	var pages []*webcheck.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing pages")
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, webcheck.WrapError(webcheck.EREGISTRY, err, "listing pages")
	}
	return pages, nil
}

// UpdatePageContent stores newly observed content with its hash and change time.
func (s *PageService) UpdatePageContent(ctx context.Context, name string, content string, changedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET content = ?, content_hash = ?, last_changed_at = ?
		WHERE name = ?
	`, content, hashContent(content), formatTime(changedAt), name)
	if err != nil {
		return webcheck.WrapError(webcheck.EREGISTRY, err, "updating page %q", name)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return webcheck.WrapError(webcheck.EREGISTRY, err, "updating page %q", name)
	}
	if rows == 0 {
		return webcheck.Errorf(webcheck.ENOTFOUND, "page %q not found", name)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (*webcheck.Page, error) {
	var page webcheck.Page
	var status, format, lastChangedAt string
	var content sql.NullString

	if err := row.Scan(&page.Name, &page.URL, &page.Selector, &status, &format, &page.Render,
		&content, &page.ContentHash, &lastChangedAt); err != nil {
		return nil, err
	}

	page.Status = webcheck.PageStatus(status)
	page.Format = webcheck.PageFormat(format)
	if content.Valid {
		page.Content = &content.String
	}
	if lastChangedAt != "" {
		t, err := parseTime(lastChangedAt, "last_changed_at")
		if err != nil {
			return nil, err
		}
		page.LastChangedAt = t
	}
	return &page, nil
}
