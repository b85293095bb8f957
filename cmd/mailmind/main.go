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
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	mailmind "github.com/poiesic/mailmind"
	"github.com/poiesic/mailmind/config"
	"github.com/poiesic/mailmind/gateway"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "mailmind",
		Usage: "Mail enrichment, semantic indexing, and retrieval-QA pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				Value:   "mailmind.yaml",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the pipeline and HTTP gateway until interrupted",
				Action: runCommand,
			},
			{
				Name:   "cycle",
				Usage:  "Run a single fetch-enrich-index-notify cycle and exit",
				Action: cycleCommand,
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against the indexed mail",
				ArgsUsage: "<question>",
				Action:    askCommand,
			},
			{
				Name:      "search",
				Usage:     "Search the mail index",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "rebuild",
				Usage:  "Rebuild the vector index from the mail archive",
				Action: rebuildCommand,
			},
			{
				Name:   "notify-test",
				Usage:  "Send a test notification to verify the delivery path",
				Action: notifyTestCommand,
			},
			{
				Name:   "stats",
				Usage:  "Print index and archive statistics",
				Action: statsCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadSystem reads configuration and assembles the system. Any failure
// here is startup-fatal.
func loadSystem(c *cli.Context) (*mailmind.System, *config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := config.NewDefaultConfig()
	path := c.String("config")
	if _, err := os.Stat(path); err == nil {
		if err := config.Load(path, cfg); err != nil {
			return nil, nil, err
		}
	} else if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid default configuration: %w", err)
	}

	sys, err := mailmind.NewSystem(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to assemble system: %w", err)
	}
	return sys, cfg, nil
}

func runCommand(c *cli.Context) error {
	sys, cfg, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	ctx := context.Background()
	if err := sys.Pipeline().Start(ctx); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}

	server := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: gateway.NewRouter(sys),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("gateway listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		slog.Error("gateway failed", "err", err)
	}

	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("gateway shutdown failed", "err", err)
	}
	return nil
}

func cycleCommand(c *cli.Context) error {
	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	ctx := context.Background()
	if err := sys.Pipeline().RunOnce(ctx); err != nil {
		return fmt.Errorf("cycle failed: %w", err)
	}

	stats := sys.Pipeline().Stats()
	fmt.Fprintf(os.Stderr, "Fetched: %d, summarized: %d, classified: %d, indexed: %d\n",
		stats.MailsFetched, stats.MailsSummarized, stats.MailsClassified, stats.MailsIndexed)
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	answer, err := sys.Ask(context.Background(), question)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if len(answer.Sources) > 0 {
		fmt.Println("\nSources:")
		for i, src := range answer.Sources {
			fmt.Printf("%d. %s (%s, score %.3f)\n", i+1, src.Meta.Subject, src.Meta.Sender, src.Score)
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	results, err := sys.Search(context.Background(), query, c.Int("top"))
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Printf("%d. [%.3f] %s (%s)\n", i+1, result.Score, result.Meta.Subject, result.Meta.Sender)
		preview := result.Text
		if len(preview) > 160 {
			preview = preview[:160] + "..."
		}
		fmt.Printf("   %s\n", strings.ReplaceAll(preview, "\n", " "))
	}
	return nil
}

func rebuildCommand(c *cli.Context) error {
	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	indexed, err := sys.RebuildIndex(context.Background())
	if err != nil {
		return fmt.Errorf("rebuild failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Rebuilt index from %d archived mails\n", indexed)
	return nil
}

func notifyTestCommand(c *cli.Context) error {
	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	if !sys.Dispatcher().SendTest(context.Background()) {
		return fmt.Errorf("test notification failed")
	}
	fmt.Fprintln(os.Stderr, "Test notification sent")
	return nil
}

func statsCommand(c *cli.Context) error {
	sys, _, err := loadSystem(c)
	if err != nil {
		return err
	}
	defer sys.Close()

	stats, err := sys.Stats(context.Background())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
