package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/ai"
	"github.com/spigell/fitscore/internal/ai/gemini"
	"github.com/spigell/fitscore/internal/ai/ollama"
	"github.com/spigell/fitscore/internal/assessor"
	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/logger"
	"github.com/spigell/fitscore/internal/requirements"
	"github.com/spigell/fitscore/internal/scoring"
	"github.com/spigell/fitscore/internal/secrets"
)

// newEvaluator loads the term lists and builds the rule-based evaluator.
func newEvaluator(config *Config, log *zap.Logger) (*scoring.Evaluator, *features.Extractor, error) {
	weights, err := config.weights()
	if err != nil {
		return nil, nil, err
	}

	vocabulary, err := features.LoadVocabulary(config.Terms, log)
	if err != nil {
		return nil, nil, fmt.Errorf("load term lists: %w", err)
	}

	extractor := features.NewExtractor(vocabulary)
	return scoring.NewEvaluator(extractor, weights, log), extractor, nil
}

// newScorer builds the AI-assisted scorer. A backend that cannot be built is logged and
// leaves the scorer without a generator, so every resume gets the fallback outcome.
func newScorer(ctx context.Context, config *Config, extractor *features.Extractor, log *zap.Logger) (*assessor.Scorer, error) {
	strategy, err := requirements.New(config.Requirements, extractor)
	if err != nil {
		return nil, err
	}

	cfg := config.AI.scorerConfig()
	cfg.Requirements = strategy
	cfg.Extractor = extractor

	var generator ai.Generator
	if config.AI.Enabled {
		generator, err = newGenerator(ctx, config.AI, log)
		if err != nil {
			log.Warn("ai backend is unavailable, using fallback scoring", zap.Error(err))
			generator = nil
		}
	} else {
		log.Info("ai scoring is disabled, using fallback scoring")
	}

	return assessor.NewScorer(generator, cfg, log), nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", ollama.Provider:
		ollamaCfg := cfg.Ollama
		if ollamaCfg == nil {
			ollamaCfg = &OllamaConfig{}
		}

		return ollama.New(ollamaCfg.BaseURL, ollamaCfg.Model, logger.WithCommonFields(log, ollama.Provider, ollamaCfg.Model)), nil

	case gemini.Provider:
		geminiCfg := cfg.Gemini
		if geminiCfg == nil {
			geminiCfg = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			File:  geminiCfg.APIKeyFile,
			Value: geminiCfg.APIKey,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
		}

		return gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, logger.WithCommonFields(log, gemini.Provider, geminiCfg.Model))

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newLogger() (*zap.Logger, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}
	return log, nil
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
