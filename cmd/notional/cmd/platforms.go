package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/notional/parsers"
	"github.com/rustyeddy/notional/pkg/logger"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported trading platforms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printPlatforms(cmd.OutOrStdout(), parsers.DefaultDetector(logger.Nop()))
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func printPlatforms(w io.Writer, d *parsers.Detector) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported Trading Platforms:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	for _, id := range d.Platforms() {
		p, err := d.Select(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  - %s (%s)\n", p.ID(), p.Name())
	}
	fmt.Fprintln(w)
}
