package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the notional CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "notional version %s\n", version)
		fmt.Fprintln(out, "Trade history notional volume calculator")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
