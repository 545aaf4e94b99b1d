package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/webcheck"
	"github.com/fwojciec/webcheck/check"
	"github.com/fwojciec/webcheck/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	DB      *sqlite.DB
	Pages   webcheck.PageService
	Checks  webcheck.CheckService
	Checker *check.Checker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"WEBCHECK_DB" help:"Database path (default ~/.webcheck/webcheck.db)"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Run     RunCmd     `cmd:"" help:"Check every active page once and report changes"`
	List    ListCmd    `cmd:"" help:"List monitored pages"`
	History HistoryCmd `cmd:"" help:"Show recent checks for a page"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	SMTPHost     string        `name:"smtp-host" env:"WEBCHECK_SMTP_HOST" help:"SMTP server host; notifications are disabled when empty"`
	SMTPPort     int           `name:"smtp-port" env:"WEBCHECK_SMTP_PORT" default:"587" help:"SMTP server port"`
	SMTPUser     string        `name:"smtp-user" env:"WEBCHECK_SMTP_USER" help:"SMTP username"`
	SMTPPassword string        `name:"smtp-password" env:"WEBCHECK_SMTP_PASSWORD" help:"SMTP password"`
	From         string        `name:"from" env:"WEBCHECK_MAIL_FROM" help:"Sender address"`
	To           []string      `name:"to" env:"WEBCHECK_MAIL_TO" help:"Recipient addresses (comma separated)"`
	Concurrency  int           `short:"c" env:"WEBCHECK_CONCURRENCY" default:"10" help:"Concurrent page limit"`
	Timeout      time.Duration `env:"WEBCHECK_TIMEOUT" default:"30s" help:"Per-fetch timeout"`
	Browser      bool          `env:"WEBCHECK_BROWSER" help:"Fetch pages marked for rendering through headless Chrome"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Name  string `arg:"" help:"Page name"`
	Limit int    `short:"n" default:"20" help:"Maximum number of checks to show"`
}
