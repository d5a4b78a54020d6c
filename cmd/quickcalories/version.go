// cmd/quickcalories/version.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quickcalories/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "quickcalories version %s\n", server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
