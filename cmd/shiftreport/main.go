/*
main.go - Command-line reports over the shift database

PURPOSE:
  Prints the same monthly, backup and holiday reports the HTTP API serves,
  straight from a SQLite database. Useful for payroll exports and for
  checking a month before it is closed.

USAGE:
  shiftreport monthly  --year 2026 --month 4 [--employee emp-001]
  shiftreport backup   --worker emp-002 --year 2026 --month 5
  shiftreport holidays --year 2026

  --format=table (default) renders a lipgloss table, --format=json the API's
  JSON shapes.

SEE ALSO:
  - commands.go: Subcommands
  - config/config.go: DB_PATH, LOG_LEVEL and holiday window defaults
*/
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
	"github.com/warp/shift-ledger/config"
	"github.com/warp/shift-ledger/report"
	"github.com/warp/shift-ledger/store/sqlite"
)

var CLI struct {
	DB       string `help:"SQLite database path." name:"db" default:"${db_path}"`
	Format   string `help:"Output format." enum:"table,json" default:"table"`
	LogLevel string `help:"Log level." enum:"debug,info,warn,error" default:"${log_level}"`

	Monthly  MonthlyCmd  `cmd:"" help:"Monthly statistics for every employee, or one."`
	Backup   BackupCmd   `cmd:"" help:"Stand-in coverage of one worker."`
	Holidays HolidaysCmd `cmd:"" help:"Statutory holidays of a year."`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name("shiftreport"),
		kong.Description("Working time and premium reports for shift teams"),
		kong.UsageOnError(),
		kong.Vars{
			"db_path":   cfg.DBPath,
			"log_level": cfg.LogLevel,
		},
	)

	logger := newLogger(CLI.LogLevel)

	store, err := sqlite.New(CLI.DB)
	if err != nil {
		logger.WithError(err).Fatal("failed to open database")
	}
	defer store.Close()

	engine := cfg.NewEngine(logger)

	appCtx := &Context{
		Runner: report.NewRunner(store, engine,
			report.WithWorkers(cfg.ReportWorkers),
			report.WithLogger(logger),
		),
		Format: CLI.Format,
		Out:    os.Stdout,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to stderr so table and JSON output stay clean on stdout.
func newLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}
