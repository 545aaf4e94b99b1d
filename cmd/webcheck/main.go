package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webcheck"
	"github.com/fwojciec/webcheck/check"
	"github.com/fwojciec/webcheck/diffmatchpatch"
	"github.com/fwojciec/webcheck/goquery"
	"github.com/fwojciec/webcheck/htmltomarkdown"
	wchttp "github.com/fwojciec/webcheck/http"
	"github.com/fwojciec/webcheck/mail"
	"github.com/fwojciec/webcheck/rod"
	wcslog "github.com/fwojciec/webcheck/slog"
	"github.com/fwojciec/webcheck/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PageService  webcheck.PageService
	CheckService webcheck.CheckService

	// Fetcher replaces the HTTP fetcher when set.
	Fetcher webcheck.Fetcher

	// Notifier replaces the SMTP notifier when set.
	Notifier webcheck.Notifier
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webcheck"),
		kong.Description("Watch web pages and report when their content changes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webcheck --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set WEBCHECK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	m.PageService = sqlite.NewPageService(m.DB)
	m.CheckService = sqlite.NewCheckService(m.DB)
	deps.DB = m.DB
	deps.Pages = m.PageService
	deps.Checks = m.CheckService

	if cmd == "run" {
		checker, cleanup, err := m.newChecker(cli.Run, deps.Logger, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Checker = checker
	}

	return kongCtx.Run(deps)
}

// newChecker wires the check pipeline from the run flags.
func (m *Main) newChecker(c RunCmd, logger *slog.Logger, stderr io.Writer) (*check.Checker, func(), error) {
	var closers []func() error
	cleanup := func() {
		for _, fn := range closers {
			_ = fn()
		}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = wchttp.NewFetcher(wchttp.WithTimeout(c.Timeout))
	}
	fetcher = wcslog.NewLoggingFetcher(fetcher, logger)
	closers = append(closers, fetcher.Close)

	var browser webcheck.Fetcher
	if c.Browser {
		f, err := rod.NewFetcher()
		if err != nil {
			cleanup()
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		browser = wcslog.NewLoggingFetcher(f, logger)
		closers = append(closers, browser.Close)
	}

	notifier := m.Notifier
	if notifier == nil && c.SMTPHost != "" {
		opts := []mail.Option{mail.WithPort(c.SMTPPort), mail.WithTimeout(c.Timeout)}
		if c.SMTPUser != "" {
			opts = append(opts, mail.WithAuth(c.SMTPUser, c.SMTPPassword))
		}
		notifier = mail.NewNotifier(c.SMTPHost, c.From, opts...)
	}
	if notifier != nil {
		notifier = wcslog.NewLoggingNotifier(notifier, logger)
	} else {
		logger.Warn("no SMTP host configured, changes will not be reported by mail")
	}

	checker := &check.Checker{
		Pages:        wcslog.NewLoggingPageService(m.PageService, logger),
		Checks:       m.CheckService,
		Fetcher:      fetcher,
		Browser:      browser,
		Extractor:    goquery.NewExtractor(),
		Converter:    htmltomarkdown.NewConverter(),
		Detector:     diffmatchpatch.NewDetector(),
		Notifier:     notifier,
		Recipients:   c.To,
		RateLimiter:  check.NewHostLimiter(1.0),
		Logger:       logger,
		Concurrency:  c.Concurrency,
		FetchTimeout: c.Timeout,
	}
	return checker, cleanup, nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webcheck.db"
	}
	dir := filepath.Join(home, ".webcheck")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "webcheck.db")
}
