package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/dataset"
)

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and generate evaluation datasets",
	}
	cmd.AddCommand(newDatasetGenerateCmd(), newDatasetStatsCmd())
	return cmd
}

func newDatasetGenerateCmd() *cobra.Command {
	var (
		size       int
		seed       int64
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic support ticket dataset",
		Long: `Generate writes a synthetic line-delimited JSON dataset of airline
support tickets. The data is for development and demos only; real
evaluations need a dataset of historical tickets.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			examples := dataset.GenerateSample(size, seed)
			if err := dataset.Save(outputPath, examples); err != nil {
				return err
			}

			stats := dataset.ComputeStatistics(examples)
			cmd.Printf("Generated %d examples to %s\n", stats.Count, outputPath)
			cmd.Printf("Average query length: %.0f chars, average answer length: %.0f chars\n",
				stats.AvgQueryChars, stats.AvgAnswerChars)
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 100, "number of examples to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "data/valset.jsonl", "output file path")
	return cmd
}

func newDatasetStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [path]",
		Short: "Print statistics for a dataset file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.LoadOffline(configPath)
				if err != nil {
					return err
				}
				path = cfg.Evaluation.DatasetPath
			}

			examples, err := dataset.Load(path)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dataset.ComputeStatistics(examples))
		},
	}
}
