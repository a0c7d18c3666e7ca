package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/flightline-ai/supportbench/infrastructure/scoring"
	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/dataset"
	"github.com/flightline-ai/supportbench/internal/evaluation"
)

func newEvaluateCmd() *cobra.Command {
	var (
		baseline   bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the support agent against the configured dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			client, err := buildLLM(cfg, nil)
			if err != nil {
				return err
			}
			supportAgent, err := buildAgent(cfg, client, !baseline)
			if err != nil {
				return err
			}
			scorer, err := buildScorer(cfg)
			if err != nil {
				return err
			}
			similarity, err := scoring.NewReferenceSimilarity(scoring.DefaultSimilarityConfig())
			if err != nil {
				return err
			}

			examples, err := dataset.Load(cfg.Evaluation.DatasetPath)
			if err != nil {
				return err
			}
			stats := dataset.ComputeStatistics(examples)
			log.Printf("Loaded %d examples from %s (%d with reference answers)",
				stats.Count, cfg.Evaluation.DatasetPath, stats.WithAnswers)

			runner, err := evaluation.NewRunner(scorer, evaluation.WithSimilarity(similarity))
			if err != nil {
				return err
			}

			result, err := runner.Run(cmd.Context(), supportAgent, examples)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Average quality score: %.3f over %d examples (%d failures)\n",
				result.Average, len(result.Records), result.Failures())
			fmt.Fprintf(cmd.OutOrStdout(), "Average latency: %.2fs, average response length: %.0f chars\n",
				result.AvgLatencySeconds, result.AvgResponseChars)

			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outputPath, err)
				}
				defer f.Close()
				if err := printJSON(f, result); err != nil {
					return fmt.Errorf("writing %s: %w", outputPath, err)
				}
				log.Printf("Wrote per-example records to %s", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&baseline, "baseline", false,
		"ignore the agent artifact and evaluate the unoptimized prompt")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "",
		"write per-example records as JSON to this file")
	return cmd
}
