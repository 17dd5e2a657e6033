package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spigell/fitscore/internal/document"
	"github.com/spigell/fitscore/internal/requirements"
)

var requirementsCmd = &cobra.Command{
	Use:   "requirements <job>",
	Short: "Show what a job description asks for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		return showRequirements(args[0], strategy)
	},
}

func init() {
	rootCmd.AddCommand(requirementsCmd)

	requirementsCmd.Flags().StringP("strategy", "s", requirements.StrategyDetailed, "extraction strategy: detailed or coarse")
}

func showRequirements(jobPath, strategy string) error {
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

	extract, err := requirements.New(strategy, extractor)
	if err != nil {
		return err
	}

	job, err := document.LoadJob(jobPath)
	if err != nil {
		return fmt.Errorf("load job: %w", err)
	}

	return printJSON(os.Stdout, extract.Extract(job.Text()))
}
