package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rosterctl",
	Short: "Offline roster and timesheet report tool",
	Long: `rosterctl derives timesheet reports from roster files without a running
server. Rosters are YAML files or xlsx workbooks; reports print as YAML or
export to xlsx.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newFlattenCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
