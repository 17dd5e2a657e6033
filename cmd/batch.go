package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/assessor"
	"github.com/spigell/fitscore/internal/document"
	"github.com/spigell/fitscore/internal/export"
	"github.com/spigell/fitscore/internal/ranking"
	"github.com/spigell/fitscore/internal/scoring"
)

const (
	PromptDetails = "Show candidate details"
	PromptExport  = "Export results to CSV"
	PromptFilters = "Show filters"
	PromptExit    = "Exit"
	PromptBack    = "back"
)

var errExit = errors.New("exit requested")

var batchCmd = &cobra.Command{
	Use:   "batch <job> <resume|dir>...",
	Short: "Score and rank many resumes against one job",
	Long: "Score and rank many resumes against one job. Directories are expanded to the text, HTML,\n" +
		"JSON and YAML files they contain. Results are ordered by overall score, highest first.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return batch(cmd, args[0], args[1:])
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("strategy", "s", "", "scoring strategy: rules or ai (default ai when ai.enabled)")
	batchCmd.Flags().Float64("min-score", 0, "drop results below this overall score")
	batchCmd.Flags().Float64("max-score", 0, "drop results above this overall score")
	batchCmd.Flags().IntP("limit", "l", 0, "keep only the top N results")
	batchCmd.Flags().StringSlice("category", nil, "keep only these categories: excellent, good, fair, poor")
	batchCmd.Flags().StringP("export-dir", "o", "", "write the ranked results as CSV into this directory")
	batchCmd.Flags().BoolP("interactive", "i", false, "browse the results interactively")

	viper.BindPFlag("batch.min-score", batchCmd.Flags().Lookup("min-score"))
	viper.BindPFlag("batch.max-score", batchCmd.Flags().Lookup("max-score"))
	viper.BindPFlag("batch.limit", batchCmd.Flags().Lookup("limit"))
	viper.BindPFlag("batch.categories", batchCmd.Flags().Lookup("category"))
	viper.BindPFlag("batch.export-dir", batchCmd.Flags().Lookup("export-dir"))
}

func batch(cmd *cobra.Command, jobPath string, resumePaths []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return err
	}

	job, err := document.LoadJob(jobPath)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	resumes, err := document.LoadResumes(resumePaths)
	if err != nil {
		return fmt.Errorf("load resumes: %w", err)
	}

	strategy, _ := cmd.Flags().GetString("strategy")
	scoreFn, err := scoreFunc(ctx, config, strategy, job, logger)
	if err != nil {
		return err
	}

	ranker := ranking.New(scoreFn, config.Batch.Config, logger)
	ranked, err := ranker.Rank(ctx, job, resumes)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	steps := prepareFilters(config.Batch)
	if interactive {
		ranking.DisableByName(steps, "limit", "interactive mode shows every result")
	}

	results, err := ranking.RunFilters(ctx, logger, steps, ranked.Results)
	if err != nil {
		return fmt.Errorf("filtering failed: %w", err)
	}

	logger.Info("batch ranked",
		zap.String("batch_id", ranked.ID),
		zap.Int("scored", ranked.Total),
		zap.Int("listed", len(results)),
	)

	if dir := config.Batch.ExportDir; dir != "" {
		path, err := export.WriteFile(dir, ranked, results, time.Now())
		if err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", path))
	}

	if interactive {
		return browse(ranked, results, steps, config.Batch.ExportDir, logger)
	}

	listed := *ranked
	listed.Results = results
	return printJSON(os.Stdout, listed)
}

// scoreFunc picks the scorer for a batch. The AI path never fails, so neither does the result.
func scoreFunc(ctx context.Context, config *Config, strategy string, job assessor.JobRecord, logger *zap.Logger) (ranking.ScoreFunc, error) {
	strategy = strings.ToLower(strings.TrimSpace(strategy))
	if strategy == "" {
		strategy = string(scoring.StrategyRules)
		if config.AI.Enabled {
			strategy = string(scoring.StrategyAI)
		}
	}

	evaluator, extractor, err := newEvaluator(config, logger)
	if err != nil {
		return nil, err
	}

	switch scoring.Strategy(strategy) {
	case scoring.StrategyRules:
		return func(_ context.Context, resume assessor.ResumeRecord) scoring.Outcome {
			return evaluator.Evaluate(resume.Text(), job.Text()).Outcome
		}, nil
	case scoring.StrategyAI:
		scorer, err := newScorer(ctx, config, extractor, logger)
		if err != nil {
			return nil, err
		}
		return func(ctx context.Context, resume assessor.ResumeRecord) scoring.Outcome {
			return scorer.Score(ctx, resume, job)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported scoring strategy: %s", strategy)
	}
}

func prepareFilters(cfg *BatchConfig) []ranking.Filter {
	return []ranking.Filter{
		ranking.NewMinScore(cfg.MinScore),
		ranking.NewMaxScore(cfg.MaxScore),
		ranking.NewCategory(cfg.Categories),
		ranking.NewLimit(cfg.Limit),
	}
}

// browse lets the user walk through the ranked results until they exit.
func browse(batch *ranking.Batch, results []ranking.Result, steps []ranking.Filter, exportDir string, logger *zap.Logger) error {
	prompt := promptui.Select{
		Label: fmt.Sprintf("Batch %s: %d of %d candidates listed", batch.ID, len(results), batch.Total),
		Items: []string{PromptDetails, PromptExport, PromptFilters, PromptExit},
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		if err := handleAction(action, batch, results, steps, exportDir, logger); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			return err
		}
	}
}

func handleAction(action string, batch *ranking.Batch, results []ranking.Result, steps []ranking.Filter, exportDir string, logger *zap.Logger) error {
	switch action {
	case PromptDetails:
		return showDetails(results)
	case PromptExport:
		if exportDir == "" {
			exportDir = "."
		}
		path, err := export.WriteFile(exportDir, batch, results, time.Now())
		if err != nil {
			return err
		}
		logger.Info("results exported", zap.String("filename", path))
		return nil
	case PromptFilters:
		for _, status := range ranking.Describe(steps) {
			logger.Info("filter",
				zap.String("name", status.Name),
				zap.Bool("enabled", status.Enabled),
				zap.String("reason", status.Reason),
				zap.Any("details", status.Details),
			)
		}
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func showDetails(results []ranking.Result) error {
	for {
		items := make([]string, 0, len(results)+1)
		for _, result := range results {
			items = append(items, resultLabel(result))
		}

		candidatePrompt := promptui.Select{
			Label: "Choose a candidate and press ENTER",
			Items: append(items, PromptBack),
			Size:  10,
		}

		index, selected, err := candidatePrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		result := results[index]
		fmt.Fprintf(os.Stdout, "\n#%d %s (%s)\n", result.Rank, result.Candidate, result.File)
		if err := scoring.WriteOutcome(os.Stdout, result.Outcome); err != nil {
			return err
		}
	}
}

func resultLabel(result ranking.Result) string {
	return fmt.Sprintf("%d. %s / %.1f / %s / %s",
		result.Rank, result.Candidate, result.Outcome.OverallScore, result.Outcome.Category, result.Outcome.Model,
	)
}
