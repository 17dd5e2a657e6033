package gemini

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/fitscore/internal/ai"
)

type fakeModels struct {
	mu    sync.Mutex
	calls []fakeCall
	resp  *genai.GenerateContentResponse
	err   error
}

type fakeCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestGenerate(t *testing.T) {
	models := &fakeModels{resp: textResponse(" first ", "", "second")}
	g := newGenerator(models, "gemini-pro", zap.NewNop())

	output, err := g.Generate(context.Background(), ai.Request{Prompt: " prompt ", Options: ai.DefaultOptions()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output != "first\nsecond" {
		t.Fatalf("unexpected output: %q", output)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != "gemini-pro" {
		t.Fatalf("unexpected model: %s", call.model)
	}
	if got := call.contents[0].Parts[0].Text; got != "prompt" {
		t.Fatalf("unexpected prompt: %q", got)
	}
	if call.config == nil || call.config.Temperature == nil || *call.config.Temperature != float32(0.3) {
		t.Fatalf("expected temperature to be set: %+v", call.config)
	}
	if call.config.TopP == nil || *call.config.TopP != float32(0.9) {
		t.Fatalf("expected top-p to be set: %+v", call.config)
	}
	if call.config.MaxOutputTokens != 500 {
		t.Fatalf("unexpected max output tokens: %d", call.config.MaxOutputTokens)
	}
}

func TestGenerateDoesNotRetry(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusInternalServerError, Status: "INTERNAL"}}
	g := newGenerator(models, "gemini-pro", nil)

	_, err := g.Generate(context.Background(), ai.Request{Prompt: "p"})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected wrapped APIError, got %v", err)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected single call, got %d", len(models.calls))
	}
}

func TestGenerateEmptyResponse(t *testing.T) {
	g := newGenerator(&fakeModels{resp: textResponse("  ")}, "", nil)

	_, err := g.Generate(context.Background(), ai.Request{Prompt: "p"})
	if !errors.Is(err, ai.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}

	if g.Model() != defaultModel {
		t.Fatalf("expected default model, got %s", g.Model())
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	models := &fakeModels{resp: textResponse("x")}
	g := newGenerator(models, "m", nil)

	_, err := g.Generate(context.Background(), ai.Request{Prompt: "\n"})
	if !errors.Is(err, ai.ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
	if len(models.calls) != 0 {
		t.Fatalf("expected no calls, got %d", len(models.calls))
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "  ", "", nil); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestGenerationConfigSkipsZeroMaxTokens(t *testing.T) {
	cfg := generationConfig(ai.Options{Temperature: 0.1, TopP: 0.5})
	if cfg.MaxOutputTokens != 0 {
		t.Fatalf("expected unset max tokens, got %d", cfg.MaxOutputTokens)
	}
}
