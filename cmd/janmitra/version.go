package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janmitra/janmitra/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Janmitra version %s\n", common.Version)
	},
}
