package planner

import "errors"

// ErrAIProviderRequired is returned when an AI provider is not provided.
var ErrAIProviderRequired = errors.New("AI provider required")
