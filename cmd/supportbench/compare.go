package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/dataset"
	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/evaluation"
)

func newCompareCmd() *cobra.Command {
	var (
		optimizer string
		costUSD   float64
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Evaluate baseline and optimized prompts and save the results summary",
		Long: `Compare runs the evaluation twice over the configured dataset, once
with the unoptimized default prompt and once with the saved agent
artifact, then writes the comparison and business-impact summary to the
configured results file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			client, err := buildLLM(cfg, nil)
			if err != nil {
				return err
			}
			scorer, err := buildScorer(cfg)
			if err != nil {
				return err
			}
			runner, err := evaluation.NewRunner(scorer)
			if err != nil {
				return err
			}

			examples, err := dataset.Load(cfg.Evaluation.DatasetPath)
			if err != nil {
				return err
			}
			log.Printf("Comparing over %d examples from %s", len(examples), cfg.Evaluation.DatasetPath)

			baselineAgent, err := buildAgent(cfg, client, false)
			if err != nil {
				return err
			}
			optimizedAgent, err := buildAgent(cfg, client, true)
			if err != nil {
				return err
			}

			start := time.Now()
			baselineResult, err := runner.Run(cmd.Context(), baselineAgent, examples)
			if err != nil {
				return fmt.Errorf("baseline run: %w", err)
			}
			optimizedResult, err := runner.Run(cmd.Context(), optimizedAgent, examples)
			if err != nil {
				return fmt.Errorf("optimized run: %w", err)
			}

			report := domain.Compare(baselineResult, optimizedResult)
			summary := evaluation.BuildSummary(evaluation.SummaryInput{
				Model:                client.GetModel(),
				Optimizer:            optimizer,
				Baseline:             baselineResult,
				Optimized:            optimizedResult,
				OptimizationDuration: time.Since(start),
				Assumptions:          cfg.Business,
				OptimizationCostUSD:  costUSD,
			})

			if err := evaluation.SaveSummary(cfg.Evaluation.ResultsPath, summary); err != nil {
				return err
			}
			log.Printf("Saved results summary to %s", cfg.Evaluation.ResultsPath)

			fmt.Fprintf(cmd.OutOrStdout(), "Baseline:  %.3f\n", report.BaselineAverage)
			fmt.Fprintf(cmd.OutOrStdout(), "Optimized: %.3f\n", report.CandidateAverage)
			fmt.Fprintf(cmd.OutOrStdout(), "Gain:      %+.3f (%+.1f%%)\n",
				report.AbsoluteGain, report.RelativeGainPct)
			if !report.Improved() {
				fmt.Fprintln(cmd.OutOrStdout(), "The optimized prompt did not outperform the baseline.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&optimizer, "optimizer", "MIPROv2",
		"name of the optimization procedure recorded in the summary")
	cmd.Flags().Float64Var(&costUSD, "cost", 0,
		"one-off optimization cost in USD, used for the ROI multiplier")
	return cmd
}
