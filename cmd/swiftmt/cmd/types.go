package cmd

import (
	"fmt"

	"golang-swiftmt-service/cmd/swiftmt/config"

	"github.com/spf13/cobra"
)

// typesCmd lists the MT message types the decoder commonly sees
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List common SWIFT MT message types",
	Long: `Types lists the MT message types most commonly seen in decoded traffic,
with a short description of each. The decoder itself accepts any message
type; this list is a reference for reading report output.`,
	RunE: runTypes,
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, args []string) error {
	writer := cmd.OutOrStdout()

	fmt.Fprintf(writer, "Common SWIFT MT message types:\n\n")
	for _, profile := range config.CommonMessageTypes() {
		fmt.Fprintf(writer, "  MT%-6s %s\n", profile.Type, profile.Name)
		fmt.Fprintf(writer, "           %s\n\n", profile.Description)
	}

	return nil
}
