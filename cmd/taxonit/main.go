// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/taxonit"
	"github.com/poiesic/taxonit/server"
)

func main() {
	app := &cli.App{
		Name:  "taxonit",
		Usage: "Search engine for classification taxonomies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the taxonomy for a notation or keyword query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					datasetFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results",
						Value: taxonit.DefaultMaxResults,
					},
					&cli.StringFlag{
						Name:  "table",
						Usage: "Restrict results to a table (T3 matches the whole T3 family)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Emit results as JSON",
					},
				},
			},
			{
				Name:      "suggest",
				Usage:     "Suggest completions for a partial query",
				ArgsUsage: "PARTIAL",
				Action:    suggestCommand,
				Flags: []cli.Flag{
					datasetFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of suggestions",
						Value: taxonit.DefaultMaxSuggestions,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Print dataset and index statistics",
				Action: statsCommand,
				Flags:  []cli.Flag{datasetFlag()},
			},
			{
				Name:   "serve",
				Usage:  "Serve the taxonomy over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML config file",
					},
					&cli.StringFlag{
						Name:    "dataset",
						Aliases: []string{"d"},
						Usage:   "Path to dataset file or manifest (overrides config)",
					},
					&cli.StringFlag{
						Name:  "host",
						Usage: "Bind address (overrides config)",
					},
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "HTTP port (overrides config)",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func datasetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "dataset",
		Aliases:  []string{"d"},
		Usage:    "Path to dataset file (.json) or source manifest (.yaml)",
		Required: true,
	}
}

func openCatalog(c *cli.Context) (*taxonit.Catalog, error) {
	catalog, err := taxonit.Open(c.Context, c.String("dataset"))
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	return catalog, nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}

	results := catalog.Search(query, c.Int("limit"))
	if table := c.String("table"); table != "" {
		results = catalog.FilterByTable(results, table)
	}

	if c.Bool("json") {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, result := range results {
		entry := catalog.Entry(result.EntryID)
		fmt.Printf("%-12s %7.1f  %-22s %s\n",
			entry.ResolvedNotation(), result.Score, result.MatchType, entry.ResolvedTitle())
	}
	return nil
}

func suggestCommand(c *cli.Context) error {
	partial := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if partial == "" {
		return fmt.Errorf("partial query is required")
	}

	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}

	for _, suggestion := range catalog.Suggest(partial, c.Int("limit")) {
		fmt.Println(suggestion)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	catalog, err := openCatalog(c)
	if err != nil {
		return err
	}

	stats := catalog.Stats()
	fmt.Printf("entries:        %d\n", stats.Entries)
	fmt.Printf("notation keys:  %d\n", stats.Notations)
	fmt.Printf("title keys:     %d\n", stats.Titles)
	fmt.Printf("word keys:      %d\n", stats.Words)
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := server.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if dataset := c.String("dataset"); dataset != "" {
		cfg.Dataset = dataset
	}
	if host := c.String("host"); host != "" {
		cfg.Host = host
	}
	if port := c.Int("port"); port != 0 {
		cfg.Port = port
	}
	if cfg.Dataset == "" {
		return fmt.Errorf("dataset is required (flag --dataset or TAXONIT_DATASET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := taxonit.Open(ctx, cfg.Dataset)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}

	srv, err := server.New(cfg, catalog)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
