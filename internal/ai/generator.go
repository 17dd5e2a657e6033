// Package ai defines the contract of a text generation backend.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPrompt is returned when a request carries no prompt.
	ErrEmptyPrompt = errors.New("prompt must not be empty")
	// ErrEmptyResponse is returned when a backend answers without text.
	ErrEmptyResponse = errors.New("generation backend returned empty response")
)

// Options are the sampling settings sent with every request.
type Options struct {
	Temperature     float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopP            float64 `mapstructure:"top-p" validate:"gte=0,lte=1"`
	MaxOutputTokens int     `mapstructure:"max-output-tokens" validate:"gte=0"`
}

// DefaultOptions favour short, mostly deterministic answers.
func DefaultOptions() Options {
	return Options{
		Temperature:     0.3,
		TopP:            0.9,
		MaxOutputTokens: 500,
	}
}

// Request is a single prompt to a generation backend.
type Request struct {
	Prompt  string
	Options Options
}

// Generator produces text for a prompt. A non-success backend answer, a timeout or an
// empty response are all returned as errors.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

// StatusError reports a non-success HTTP status from a backend.
type StatusError struct {
	Provider string
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error: %s", e.Provider, e.Status)
}

// ValidatePrompt trims the prompt and rejects empty ones.
func ValidatePrompt(prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return prompt, nil
}

// ExtractJSON strips markdown code fences models like to wrap JSON answers in.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
