package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notional",
	Short: "Calculate the USD notional volume of a broker trade history",
	Long: `Notional reads a trade history export and reports the USD notional
value of every closed trade.

It provides tools for:
  - Parsing MetaTrader 5 and cTrader exports (CSV or XLSX)
  - Classifying forex, metal, index, energy and crypto symbols
  - Converting to USD with historical FX rates
  - Exporting CSV or JSON reports
  - Journaling runs to SQLite

Example:
  notional calc ReportHistory.xlsx`,
	SilenceUsage: true,
}

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
}
