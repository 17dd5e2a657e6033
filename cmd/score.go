package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/fitscore/internal/document"
	"github.com/spigell/fitscore/internal/scoring"
)

const (
	formatJSON = "json"
	formatText = "text"
)

var scoreCmd = &cobra.Command{
	Use:   "score <resume> <job>",
	Short: "Score a resume against a job description with the rule-based pipeline",
	Long: "Score a resume against a job description with the rule-based pipeline.\n" +
		"Both arguments may be text, HTML, JSON or YAML files.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return score(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("format", "f", formatJSON, "output format: json or text")
}

func score(cmd *cobra.Command, resumePath, jobPath string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatJSON && format != formatText {
		return fmt.Errorf("unsupported output format: %s", format)
	}

	evaluator, _, err := newEvaluator(config, logger)
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

	logger.Info("scoring resume",
		zap.String("resume", resumePath),
		zap.String("job", jobPath),
	)

	report := evaluator.Evaluate(resume.Text(), job.Text())

	logger.Info("resume scored",
		zap.Float64("fit_score", report.OverallScore),
		zap.String("category", string(report.Category)),
	)

	if format == formatText {
		return scoring.WriteText(os.Stdout, report)
	}
	return printJSON(os.Stdout, report)
}
