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


// Query answers a single question from the command line, for poking at
// a local corpus without the HTTP layer.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	corpusqa "github.com/veldt/corpusqa"
)

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	app, err := corpusqa.NewApp("./corpus_db", "./data/policy.pdf", "corpus")
	if err != nil {
		panic(err)
	}
	defer app.Close()

	question := "What is the grace period for premium payment?"
	if len(os.Args) > 1 {
		question = strings.Join(os.Args[1:], " ")
	}

	answers, err := app.Run(context.Background(), []string{question})
	if err != nil {
		panic(err)
	}

	fmt.Printf("Q: %s\n", question)
	fmt.Printf("A: %s\n", answers[0])
}
