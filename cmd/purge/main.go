package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	"github.com/urfave/cli/v2"

	"eventregistration/config"
	"eventregistration/internal/domain"
	"eventregistration/internal/repository/postgres"
	"eventregistration/internal/services"
)

// openFunc builds the purge service for one invocation; the returned func releases its resources.
type openFunc func(ctx context.Context) (domain.PurgeService, func(), error)

func main() {
	app := newApp(openPostgres, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code := 1
		var exit cli.ExitCoder
		if errors.As(err, &exit) {
			code = exit.ExitCode()
		}
		os.Exit(code)
	}
}

func openPostgres(ctx context.Context) (domain.PurgeService, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	// stdout carries the counts; logs go to stderr.
	logger := config.NewLogger(cfg, os.Stderr)
	svc := services.NewPurgeService(postgres.NewPurgeStore(db), nil, cfg.Purge.BatchSize, logger)
	return svc, func() { _ = db.Close() }, nil
}

func newApp(open openFunc, out io.Writer) *cli.App {
	jsonFlag := &cli.BoolFlag{
		Name:  "json",
		Usage: "print the counts as JSON",
	}
	return &cli.App{
		Name:      "purge",
		Usage:     "Remove stale event registrations",
		Writer:    out,
		ErrWriter: out,
		// main owns the exit code so the app stays usable in tests.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "delete expired unsubmitted registrations and cancel expired unconfirmed ones",
				Flags: []cli.Flag{jsonFlag},
				Action: func(c *cli.Context) error {
					return execute(c, open, out, false)
				},
			},
			{
				Name:  "preview",
				Usage: "count what run would change without changing anything",
				Flags: []cli.Flag{jsonFlag},
				Action: func(c *cli.Context) error {
					return execute(c, open, out, true)
				},
			},
		},
	}
}

func execute(c *cli.Context, open openFunc, out io.Writer, preview bool) error {
	svc, closeFn, err := open(c.Context)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer closeFn()

	var result domain.PurgeResult
	if preview {
		result, err = svc.Preview(c.Context)
	} else {
		result, err = svc.RunPurge(c.Context)
	}
	// Counts from a partially failed run are still printed before exiting non-zero.
	if printErr := printResult(out, result, preview, c.Bool("json")); printErr != nil {
		return cli.Exit(printErr.Error(), 1)
	}
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

func printResult(out io.Writer, result domain.PurgeResult, preview, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(out).Encode(result)
	}
	deleted, canceled := "were permanently deleted", "were canceled"
	if preview {
		deleted, canceled = "would be permanently deleted", "would be canceled"
	}
	_, err := fmt.Fprintf(out, "%d unsubmitted registrations %s.\n%d unconfirmed registrations %s.\n",
		result.UnsubmittedDeleted, deleted, result.UnconfirmedCanceled, canceled)
	return err
}
