// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quantcoder CLI.
//
// quantcoder turns academic trading-research PDFs into QuantConnect
// algorithm code: search a bibliographic index, download a paper,
// extract its strategy with a language model, generate code, and
// validate/refine the result.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quantcoder/quantcoder/internal/logx"
	"github.com/quantcoder/quantcoder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the quantcoder CLI.
var rootCmd = &cobra.Command{
	Use:   "quantcoder",
	Short: "Generate QuantConnect algorithms from trading research papers",
	Long: `quantcoder converts academic trading-research articles into QuantConnect
algorithm code. The workflow is a linear pipeline:

    1. Search for articles:      quantcoder search "momentum trading"
    2. List found articles:      quantcoder list
    3. Download an article PDF:  quantcoder download 1
    4. Summarize the strategy:   quantcoder summarize 1
    5. Generate algorithm code:  quantcoder generate 1

Or run "quantcoder interactive" for a guided menu.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logx.Init(verbose)

		// .env is optional; environment variables win either way.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quantcoder.yaml or ~/.config/quantcoder/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quantcoder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quantcoder"))
		}
	}

	viper.SetEnvPrefix("QUANTCODER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
