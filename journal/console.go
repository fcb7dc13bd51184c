package journal

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/fxrates"
)

const consoleWidth = 70

// Console is what the terminal report shows for one run.
type Console struct {
	File         string
	Platform     string
	AutoDetected bool
	Filter       string
	Trades       []calc.Enriched
}

// PrintConsole renders the human readable report. Trades must be non-empty.
func PrintConsole(w io.Writer, c Console) {
	rule := strings.Repeat("=", consoleWidth)
	thin := strings.Repeat("-", consoleWidth)
	totals := calc.Total(c.Trades)

	method := "(specified)"
	if c.AutoDetected {
		method = "(auto-detected)"
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "NOTIONAL VOLUME REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", filepath.Base(c.File))
	fmt.Fprintf(w, "Platform: %s %s\n", c.Platform, method)
	fmt.Fprintf(w, "Period: %s to %s\n",
		totals.PeriodStart.Format("02-01-2006"), totals.PeriodEnd.Format("02-01-2006"))
	if c.Filter != "" {
		fmt.Fprintf(w, "Filter: %s\n", c.Filter)
	}
	fmt.Fprintln(w, thin)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "TRADE DETAILS:")
	fmt.Fprintf(w, "%-10s %8s %14s %10s %12s %18s\n", "Symbol", "Lots", "Close Price", "FX Rate", "Source", "Notional (USD)")
	fmt.Fprintln(w, thin)
	for _, t := range c.Trades {
		fmt.Fprintf(w, "%-10s %8.2f %14s %10.4f %12s %18s\n",
			t.Symbol, t.Lots, number(t.ClosePrice), t.FXRate, t.FXSource, usd(t.NotionalUSD))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "SUMMARY BY SYMBOL:")
	fmt.Fprintf(w, "%-10s %12s %18s %8s\n", "Symbol", "Total Lots", "Notional (USD)", "%")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, row := range calc.SummarizeBySymbol(c.Trades) {
		fmt.Fprintf(w, "%-10s %12.2f %18s %8s\n",
			row.Symbol, row.TotalLots, usd(row.NotionalUSD), fmt.Sprintf("%.1f%%", row.Percentage))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "FX RATE SOURCES:")
	sources := calc.FXSourceSummary(c.Trades)
	if n := sources[fxrates.Direct]; n > 0 {
		fmt.Fprintf(w, "  - %d trade(s) using direct USD quote (no conversion needed)\n", n)
	}
	if n := sources[fxrates.API]; n > 0 {
		fmt.Fprintf(w, "  - %d trade(s) using historical API rates\n", n)
	}
	if n := sources[fxrates.APICached]; n > 0 {
		fmt.Fprintf(w, "  - %d trade(s) using cached API rates\n", n)
	}
	if n := sources[fxrates.Fallback]; n > 0 {
		fmt.Fprintf(w, "  - %d trade(s) using FALLBACK rates (API unavailable)\n", n)
		fmt.Fprintln(w, "    WARNING: Fallback rates are approximate and may affect accuracy.")
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "GRAND TOTAL: %s USD\n", usd(totals.Notional))
	fmt.Fprintf(w, "Total Trades: %d | Total Lots: %.2f\n", totals.Trades, totals.Lots)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

// PrintSkipped warns about trades left out of the report. Nothing is
// printed when skipped is empty.
func PrintSkipped(w io.Writer, skipped map[string]int) {
	if len(skipped) == 0 {
		return
	}
	symbols := make([]string, 0, len(skipped))
	for s := range skipped {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "WARNING: Skipped unsupported symbols (no USD rate available):")
	for _, s := range symbols {
		fmt.Fprintf(w, "  - %s: %d trades\n", s, skipped[s])
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func usd(v float64) string {
	return "$" + number(v)
}

// number formats with thousands separators and two decimals.
func number(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
