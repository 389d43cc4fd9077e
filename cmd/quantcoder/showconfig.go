// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/quantcoder/quantcoder/pkg/types"
)

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the pipeline settings as they resolve from flags, the
config file, environment variables, and defaults. API keys are redacted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		redactKey(&cfg.Extraction.LLMConfig)
		redactKey(&cfg.Generation.LLMConfig)

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling configuration: %w", err)
		}
		os.Stdout.Write(data)
		return nil
	},
}

func redactKey(cfg *types.LLMConfig) {
	if cfg.APIKey != "" {
		cfg.APIKey = "[redacted]"
	}
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
