// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/notional/calc"
)

// ExportColumns is the header of the trade CSV export.
var ExportColumns = []string{
	"close_time", "symbol", "type", "lots", "open_price", "close_price",
	"commission", "swap", "profit", "fx_rate", "fx_source", "notional_usd",
}

// WriteCSV writes one row per priced trade.
func WriteCSV(w io.Writer, trades []calc.Enriched) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.CloseTime.Format(time.DateTime),
			t.Symbol,
			string(t.Side),
			f(t.Lots),
			f(t.OpenPrice),
			f(t.ClosePrice),
			f(t.Commission),
			f(t.Swap),
			f(t.Profit),
			f(t.FXRate),
			string(t.FXSource),
			f(t.NotionalUSD),
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the trade export to path.
func ExportCSV(path string, trades []calc.Enriched) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(out, trades); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
