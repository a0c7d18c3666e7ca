// Command supportbench evaluates and serves the airline support agent:
// run evaluations against a ticket dataset, compare baseline and
// optimized prompts, project business impact, and expose the chat API.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:           "supportbench",
		Short:         "Airline support agent evaluation and chat service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to the YAML configuration file (default config.yaml)")

	root.AddCommand(
		newEvaluateCmd(),
		newCompareCmd(),
		newImpactCmd(),
		newServeCmd(),
		newDatasetCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Printf("supportbench: %v", err)
		os.Exit(1)
	}
}
