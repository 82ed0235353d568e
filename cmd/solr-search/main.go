package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/kitbuilder587/solr-search/cmd/solr-search/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "solr-search",
		Usage: "query a Solr select endpoint and print normalized results",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "env file path",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config path (env vars are used when empty)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "override LOG_LEVEL",
			},
			&cli.Int64Flag{
				Name:  "company-id",
				Usage: "tenant id used for rate limiting",
				Value: 0,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "run a single query",
				Flags: append(windowFlags(),
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "query expression",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "print the result set as JSON",
					},
				),
				Action: commands.SearchAction,
			},
			{
				Name:  "batch",
				Usage: "run queries from a file concurrently, one query per line",
				Flags: append(windowFlags(),
					&cli.StringFlag{
						Name:     "file",
						Usage:    "file with one query per line ('#' starts a comment)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "override BATCH_CONCURRENCY",
					},
					&cli.StringFlag{
						Name:  "metrics-addr",
						Usage: "serve /metrics on this address while the batch runs",
					},
				),
				Action: commands.BatchAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "start",
			Usage: "first result offset",
			Value: 0,
		},
		&cli.IntFlag{
			Name:  "end",
			Usage: "end offset (exclusive)",
			Value: 20,
		},
		&cli.BoolFlag{
			Name:  "all",
			Usage: "return every match (ignores --start/--end)",
		},
		&cli.StringSliceFlag{
			Name:  "sort",
			Usage: "sort field, repeatable: name or name:desc",
		},
	}
}
