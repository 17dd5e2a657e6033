package cmd

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/fitscore/internal/ai"
	"github.com/spigell/fitscore/internal/ai/ollama"
	"github.com/spigell/fitscore/internal/assessor"
	"github.com/spigell/fitscore/internal/features"
	"github.com/spigell/fitscore/internal/ranking"
	"github.com/spigell/fitscore/internal/scoring"
)

const (
	app = "fitscore"
)

type Config struct {
	Terms        features.TermPaths `mapstructure:"terms"`
	Weights      map[string]float64 `mapstructure:"weights" validate:"omitempty,dive,gte=0,lte=1"`
	Requirements string             `mapstructure:"requirements" validate:"omitempty,oneof=coarse detailed"`
	AI           *AIConfig          `mapstructure:"ai" validate:"required"`
	Batch        *BatchConfig       `mapstructure:"batch" validate:"required"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=ollama gemini"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`

	ai.Options `mapstructure:",squash"`

	Ollama *OllamaConfig `mapstructure:"ollama"`
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

type OllamaConfig struct {
	BaseURL string `mapstructure:"base-url" validate:"omitempty,url"`
	Model   string `mapstructure:"model"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type BatchConfig struct {
	ranking.Config `mapstructure:",squash"`

	MinScore   float64  `mapstructure:"min-score" validate:"gte=0,lte=100"`
	MaxScore   float64  `mapstructure:"max-score" validate:"gte=0,lte=100"`
	Limit      int      `mapstructure:"limit" validate:"gte=0"`
	Categories []string `mapstructure:"categories" validate:"dive,oneof=excellent good fair poor"`
	ExportDir  string   `mapstructure:"export-dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "fitscore estimates how well a resume fits a job description",
		Long: "fitscore scores resumes against job descriptions on skills, experience, education and keywords.\n" +
			"Rule-based scoring works offline; the AI-assisted scorer asks an Ollama or Gemini model and falls back\n" +
			"to inventory counts when the model is unavailable.",
		SilenceUsage: true,
	}
)

var plainSeconds = regexp.MustCompile(`^\d+$`)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envBindings := map[string]string{
		"ai.ollama.base-url":     "OLLAMA_BASE_URL",
		"ai.ollama.model":        "LLM_MODEL",
		"ai.timeout":             "AI_TIMEOUT",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	}
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is fitscore.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults(v *viper.Viper) {
	defaults := ai.DefaultOptions()

	v.SetDefault("terms.technical-skills", features.DefaultTermPaths.TechnicalSkills)
	v.SetDefault("terms.soft-skills", features.DefaultTermPaths.SoftSkills)
	v.SetDefault("terms.keywords", features.DefaultTermPaths.Keywords)
	v.SetDefault("requirements", "coarse")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", ollama.Provider)
	v.SetDefault("ai.timeout", assessor.DefaultTimeout.String())
	v.SetDefault("ai.temperature", defaults.Temperature)
	v.SetDefault("ai.top-p", defaults.TopP)
	v.SetDefault("ai.max-output-tokens", defaults.MaxOutputTokens)
	v.SetDefault("ai.ollama.base-url", ollama.DefaultBaseURL)
	v.SetDefault("ai.ollama.model", ollama.DefaultModel)

	v.SetDefault("batch.max-size", ranking.DefaultMaxSize)
	v.SetDefault("batch.concurrency", ranking.DefaultConcurrency)
}

func initConfig() {
	// .env is optional, real environment variables win.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit config file must exist, the default one is optional.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	// AI_TIMEOUT is traditionally a number of seconds.
	if timeout := v.GetString("ai.timeout"); plainSeconds.MatchString(timeout) {
		v.Set("ai.timeout", timeout+"s")
	}

	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return config, nil
}

// weights returns the configured rule weights, or the defaults when none are set.
func (c *Config) weights() (scoring.Weights, error) {
	if len(c.Weights) == 0 {
		return scoring.DefaultWeights, nil
	}
	return scoring.ParseWeights(c.Weights)
}

func (c *AIConfig) scorerConfig() assessor.Config {
	return assessor.Config{
		Timeout: c.Timeout,
		Options: c.Options,
	}
}
