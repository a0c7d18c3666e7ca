package main

import (
	"github.com/spf13/cobra"

	"github.com/flightline-ai/supportbench/internal/config"
	"github.com/flightline-ai/supportbench/internal/domain"
)

func newImpactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "impact",
		Short: "Project cost savings from the configured business assumptions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOffline(configPath)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), domain.EstimateBusinessImpact(cfg.Business))
		},
	}
}
