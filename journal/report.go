package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/fxrates"
)

// Report is the full JSON export of a run.
type Report struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Platform    string                 `json:"platform"`
	Summary     calc.Totals            `json:"summary"`
	FXSources   map[fxrates.Source]int `json:"fx_sources"`
	BySymbol    []calc.SymbolSummary   `json:"by_symbol"`
	Trades      []calc.Enriched        `json:"trades"`
	Skipped     map[string]int         `json:"skipped_symbols,omitempty"`
}

func NewReport(platform string, res *calc.Result, generatedAt time.Time) Report {
	r := Report{
		GeneratedAt: generatedAt,
		Platform:    platform,
		Summary:     calc.Total(res.Trades),
		FXSources:   calc.FXSourceSummary(res.Trades),
		BySymbol:    calc.SummarizeBySymbol(res.Trades),
		Trades:      res.Trades,
	}
	if len(res.Skipped) > 0 {
		r.Skipped = res.Skipped
	}
	if r.BySymbol == nil {
		r.BySymbol = []calc.SymbolSummary{}
	}
	if r.Trades == nil {
		r.Trades = []calc.Enriched{}
	}
	return r
}

func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// ExportJSON writes the report to path.
func ExportJSON(path string, r Report) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSON(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// DefaultOutputPath is notional_report_YYYYMMDD_HHMMSS.<format>.
func DefaultOutputPath(format string, now time.Time) string {
	return fmt.Sprintf("notional_report_%s.%s", now.Format("20060102_150405"), format)
}
