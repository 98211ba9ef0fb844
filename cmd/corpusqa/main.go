// Copyright 2025 Veldt Systems
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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	corpusqa "github.com/veldt/corpusqa"
	"github.com/veldt/corpusqa/ai"
	"github.com/veldt/corpusqa/httpapi"
)

func main() {
	app := &cli.App{
		Name:  "corpusqa",
		Usage: "Question answering service over a fixed document corpus",
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
				Name:   "serve",
				Usage:  "Serve the question answering API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Address to listen on",
						Value: ":8080",
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to vector store directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "document",
						Usage:    "Path to the corpus source document",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "index",
						Usage: "Vector index name",
						Value: "corpus",
					},
					&cli.StringFlag{
						Name:     "api-token",
						Usage:    "Bearer token required by the run endpoint",
						Required: true,
						EnvVars:  []string{"CORPUSQA_API_TOKEN"},
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "completion-host",
						Usage: "Completion service host URL (defaults to embedding-host)",
					},
					&cli.StringFlag{
						Name:     "completion-model",
						Usage:    "Completion model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "rerank-host",
						Usage: "Rerank service host URL",
						Value: "http://localhost:9300",
					},
					&cli.StringFlag{
						Name:     "rerank-model",
						Usage:    "Rerank model name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "ai-token",
						Usage:   "API token for the AI services",
						EnvVars: []string{"CORPUSQA_AI_TOKEN"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	app, err := corpusqa.NewApp(c.String("db"), c.String("document"), c.String("index"),
		corpusqa.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer app.Close()

	// Attach an existing index up front so the first request skips
	// provisioning. A missing index is fine; the first run rebuilds it.
	attached, err := app.AttachExistingIndex(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect vector store: %w", err)
	}
	if attached {
		slog.Info("serving with existing index", "index", c.String("index"))
	} else {
		slog.Info("no index found, first run will ingest", "document", c.String("document"))
	}

	server, err := httpapi.NewServer(app, c.String("api-token"))
	if err != nil {
		return fmt.Errorf("failed to build HTTP server: %w", err)
	}

	return server.ListenAndServe(c.String("listen"))
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	completionHost := c.String("completion-host")
	if completionHost == "" {
		completionHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionHost(completionHost),
		ai.WithCompletionModel(c.String("completion-model")),
		ai.WithRerankHost(c.String("rerank-host")),
		ai.WithRerankModel(c.String("rerank-model")),
		ai.WithToken(c.String("ai-token")),
	)

	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return aiConfig, nil
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
