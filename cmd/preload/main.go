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


// Preload rebuilds the vector index from the corpus document ahead of
// serving, so the first API request never pays the ingestion cost.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	corpusqa "github.com/veldt/corpusqa"
	"github.com/veldt/corpusqa/ai"
)

func main() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	dbPath := flag.String("db", "./corpus_db", "path to vector store directory")
	document := flag.String("document", "./data/policy.pdf", "path to the corpus source document")
	index := flag.String("index", "corpus", "vector index name")
	embeddingHost := flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	embeddingModel := flag.String("embedding-model", "", "embedding model name")
	flag.Parse()

	if *embeddingModel == "" {
		slog.Error("embedding-model is required")
		os.Exit(1)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(*embeddingHost),
		ai.WithEmbeddingModel(*embeddingModel),
	)

	app, err := corpusqa.NewApp(*dbPath, *document, *index, corpusqa.WithAIConfig(aiConfig))
	if err != nil {
		slog.Error("failed to build application", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	slog.Info("preloading corpus", "document", *document, "index", *index)
	if err := app.Ingest(context.Background(), *document); err != nil {
		slog.Error("ingestion failed", "err", err)
		os.Exit(1)
	}
	slog.Info("preload complete")
}
