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


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/veldt/corpusqa/ai"
)

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client llms.Model
	logger *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.CompletionHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.CompletionModel),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client: client,
		logger: slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends a single prompt and returns the model's text response.
// Low temperature keeps answers consistent and factual.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, c.client, prompt,
		llms.WithTemperature(0.1))
	if err != nil {
		c.logger.Error("completion call failed", "err", err)
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// CompleteJSON sends a single prompt with JSON output mode and returns the
// raw JSON value. Markdown code fences are stripped and common formatting
// defects are repaired before validation.
func (c *Completer) CompleteJSON(ctx context.Context, prompt string) (json.RawMessage, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		c.logger.Error("structured completion call failed", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return nil, fmt.Errorf("structured completion: empty response")
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	if !json.Valid([]byte(responseText)) {
		// Try to repair common JSON issues
		repaired := repairJSON(responseText)
		if !json.Valid([]byte(repaired)) {
			c.logger.Warn("model returned undecodable JSON", "response", responseText)
			return nil, fmt.Errorf("structured completion: invalid JSON response")
		}
		responseText = repaired
	}

	return json.RawMessage(responseText), nil
}
