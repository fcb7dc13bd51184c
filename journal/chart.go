package journal

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/rustyeddy/notional/calc"
)

// RenderSymbolChart draws the notional share of each symbol as a PNG pie
// chart. Symbols with no notional are left out.
func RenderSymbolChart(rows []calc.SymbolSummary) ([]byte, error) {
	var values []chart.Value
	for _, r := range rows {
		if r.NotionalUSD <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", r.Symbol, r.Percentage),
			Value: r.NotionalUSD,
		})
	}
	if len(values) == 0 {
		return nil, errors.New("no notional to chart")
	}

	pie := chart.PieChart{
		Title:  "Notional by Symbol",
		Width:  600,
		Height: 600,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportChart writes the symbol chart to path.
func ExportChart(path string, rows []calc.SymbolSummary) error {
	png, err := RenderSymbolChart(rows)
	if err != nil {
		return err
	}
	return os.WriteFile(path, png, 0o644)
}
