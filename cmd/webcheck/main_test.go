package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/fwojciec/webcheck"
	main "github.com/fwojciec/webcheck/cmd/webcheck"
	"github.com/fwojciec/webcheck/mock"
	"github.com/fwojciec/webcheck/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDB creates a database file holding the given pages.
func seedDB(t *testing.T, pages ...*webcheck.Page) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "webcheck.db")
	db := sqlite.NewDB(path)
	require.NoError(t, db.Open())
	svc := sqlite.NewPageService(db)
	for _, p := range pages {
		require.NoError(t, svc.CreatePage(context.Background(), p))
	}
	require.NoError(t, db.Close())
	return path
}

func TestMain_Run_EndToEnd(t *testing.T) {
	t.Parallel()

	baseline := "The cat sat"
	path := seedDB(t,
		&webcheck.Page{Name: "cats", URL: "https://example.com/cats", Status: webcheck.PageActive, Content: &baseline},
		&webcheck.Page{Name: "fresh", URL: "https://example.com/fresh", Selector: "#main", Status: webcheck.PageActive},
		&webcheck.Page{Name: "paused", URL: "https://example.com/paused", Status: webcheck.PageInactive},
	)

	bodies := map[string]string{
		"https://example.com/cats":  "The dog sat",
		"https://example.com/fresh": `<html><body><div id="main">hello</div></body></html>`,
	}
	fetched := make(map[string]bool)
	var mu sync.Mutex
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			mu.Lock()
			fetched[url] = true
			mu.Unlock()
			return bodies[url], nil
		},
		CloseFn: func() error { return nil },
	}
	var sent []webcheck.Notification
	var sentTo []string
	notifier := &mock.Notifier{
		NotifyFn: func(_ context.Context, n webcheck.Notification, recipients []string) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, n)
			sentTo = recipients
			return nil
		},
	}

	m := main.NewMain()
	m.DBPath = path
	m.Fetcher = fetcher
	m.Notifier = notifier

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"run", "--to", "ops@example.com"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Checked 2 pages: 1 changed, 0 unchanged, 1 initialized, 0 skipped, 0 failed")
	assert.False(t, fetched["https://example.com/paused"])
	require.Len(t, sent, 1)
	assert.Equal(t, "Web Check - Site changed cats", sent[0].Subject)
	assert.Equal(t, []string{"ops@example.com"}, sentTo)

	// A second run sees the stored content and reports nothing new.
	stdout.Reset()
	m2 := main.NewMain()
	m2.DBPath = path
	m2.Fetcher = fetcher
	m2.Notifier = notifier
	err = m2.Run(context.Background(), []string{"run"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Checked 2 pages: 0 changed, 2 unchanged")
	assert.Len(t, sent, 1)

	// History shows both runs for the changed page.
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{"--db", path, "history", "cats"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "notified")
	assert.Contains(t, stdout.String(), "unchanged")

	// List shows every page, including inactive ones.
	stdout.Reset()
	err = main.NewMain().Run(context.Background(), []string{"--db", path, "list"}, stdout, stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "cats  active")
	assert.Contains(t, stdout.String(), "paused  inactive")
}

func TestMain_Run_DatabaseOpenFailure(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = "/nonexistent/path/webcheck.db"

	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), []string{"list"}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open database")
	assert.Contains(t, stderr.String(), "WEBCHECK_DB")
}
