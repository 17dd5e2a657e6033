package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/document"
)

var assessCmd = &cobra.Command{
	Use:   "assess <resume> <job>",
	Short: "Score a resume with the AI-assisted scorer",
	Long: "Score a resume with the AI-assisted scorer. The resume is usually a JSON or YAML record.\n" +
		"When the model cannot be reached the fallback score is printed instead.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return assess(cmd.Context(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func assess(ctx context.Context, resumePath, jobPath string) error {
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

	_, extractor, err := newEvaluator(config, logger)
	if err != nil {
		return err
	}

	scorer, err := newScorer(ctx, config, extractor, logger)
	if err != nil {
		return err
	}

	resume, err := document.LoadResume(resumePath)
	if err != nil {
		return fmt.Errorf("load resume: %w", err)
	}
	job, err := document.LoadJob(jobPath)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	outcome := scorer.Score(ctx, resume, job)

	logger.Info("resume assessed",
		zap.String("candidate", resume.DisplayName()),
		zap.Float64("fit_score", outcome.OverallScore),
		zap.String("strategy", string(outcome.Strategy)),
	)

	return printJSON(os.Stdout, outcome)
}
