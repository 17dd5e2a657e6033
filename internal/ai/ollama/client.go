// Package ollama talks to a local Ollama server through its /api/generate endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/ai"
	"github.com/spigell/fitscore/internal/utils"
)

const (
	// Provider is the backend name used in logs and configuration.
	Provider = "ollama"

	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama2:1b"

	contentType   = "application/json"
	generatePath  = "/api/generate"
	maxLogLength  = 200
	maxErrorBytes = 1 << 10
)

// Generator is an ai.Generator backed by Ollama. Timeouts are driven by the request context.
type Generator struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string

	model  string
	logger *zap.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// New creates a generator. Empty values fall back to the local defaults.
func New(baseURL, model string, logger *zap.Logger) *Generator {
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model = strings.TrimSpace(model); model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		HTTPClient: &http.Client{},
		BaseURL:    baseURL,
		UserAgent:  "spigell/fitscore",
		model:      model,
		logger:     logger,
	}
}

// Generate sends a non-streaming generate request and returns the response text.
func (g *Generator) Generate(ctx context.Context, req ai.Request) (string, error) {
	prompt, err := ai.ValidatePrompt(req.Prompt)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: req.Options.Temperature,
			TopP:        req.Options.TopP,
			NumPredict:  req.Options.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+generatePath, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create ollama request: %w", err)
	}
	g.setHeaders(httpReq)

	g.logger.Debug("ollama generate request",
		zap.String("url", httpReq.URL.String()),
		zap.Int("prompt_length", utils.RuneCount(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, maxLogLength)),
	)

	resp, err := g.HTTPClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		g.logger.Debug("ollama returned bad status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", utils.TruncateForLog(string(body), maxLogLength)),
		)
		return "", &ai.StatusError{Provider: Provider, Code: resp.StatusCode, Status: resp.Status}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("ollama error: %s", decoded.Error)
	}

	output := strings.TrimSpace(decoded.Response)
	if output == "" {
		return "", ai.ErrEmptyResponse
	}

	g.logger.Debug("ollama generate response",
		zap.Int("response_length", utils.RuneCount(output)),
		zap.String("response_preview", utils.TruncateForLog(output, maxLogLength)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func (g *Generator) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", contentType)
	if g.UserAgent != "" {
		req.Header.Set("User-Agent", g.UserAgent)
	}
}
