package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/janmitra/janmitra/internal/common"
)

var (
	configFile string

	// Global state shared by subcommands
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "janmitra",
	Short: "Bilingual election services assistant",
	Long: `Janmitra answers voter questions in English and Hindi: registration,
polling booths, required documents, complaints and election schedules.
Answers are grounded in official sources, confidence-scored, and escalated
to human review when uncertain.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Startup sequence: config, then logger, then banner
		var err error
		config, err = common.LoadConfig(discoverConfig())
		if err != nil {
			return err
		}
		logger = common.InitLogger(config)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file path")
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(escalationsCmd)
	rootCmd.AddCommand(versionCmd)
}

// discoverConfig falls back to janmitra.toml in the working directory
func discoverConfig() string {
	if configFile != "" {
		return configFile
	}
	if _, err := os.Stat("janmitra.toml"); err == nil {
		return "janmitra.toml"
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
