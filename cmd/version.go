package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/eurobeam/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of eurobeam",
	Annotations: map[string]string{
		skipConfig: "true",
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("eurobeam v%s\n", version.Version)
		fmt.Println("Reinforced Concrete Beam Design Tool")
		fmt.Println("Based on simplified Eurocode 2 (EN 1992-1-1) rules")
		fmt.Printf("Commit: %s, built: %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
