package market

import "strings"

var symbolStripper = strings.NewReplacer("+", "", ".", "", "/", "", "_", "")

// CleanSymbol removes broker suffixes and separators ("EURUSD+", "XAU/USD",
// "GER40.cash", "EUR_USD") and uppercases the result.
func CleanSymbol(s string) string {
	return strings.ToUpper(symbolStripper.Replace(strings.TrimSpace(s)))
}
