package journal

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
	"time"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/fxrates"
)

type runOrgView struct {
	RunRecord
	BySymbol  []calc.SymbolSummary
	FXSources []sourceCount
	Skipped   []skipCount
}

type sourceCount struct {
	Source string
	Count  int
}

type skipCount struct {
	Symbol string
	Count  int
}

var runOrgFuncs = template.FuncMap{
	"usd":  usd,
	"day":  func(t time.Time) string { return t.Format("2006-01-02") },
	"when": func(t time.Time) string { return t.Format("2006-01-02 Mon 15:04") },
}

var runOrgTemplate = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatRunOrg renders a journaled run as an Org-mode block: the run facts
// in a PROPERTIES drawer, then per-symbol and rate-source tables.
func FormatRunOrg(run RunRecord, trades []TradeRecord, skipped map[string]int) (string, error) {
	enriched := make([]calc.Enriched, len(trades))
	for i, t := range trades {
		enriched[i] = t.Enriched
	}

	view := runOrgView{
		RunRecord: run,
		BySymbol:  calc.SummarizeBySymbol(enriched),
	}
	counts := calc.FXSourceSummary(enriched)
	for _, src := range fxrates.Sources {
		view.FXSources = append(view.FXSources, sourceCount{Source: string(src), Count: counts[src]})
	}
	for sym, n := range skipped {
		view.Skipped = append(view.Skipped, skipCount{Symbol: sym, Count: n})
	}
	sort.Slice(view.Skipped, func(i, j int) bool { return view.Skipped[i].Symbol < view.Skipped[j].Symbol })

	var buf bytes.Buffer
	if err := runOrgTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render run %s: %w", run.RunID, err)
	}
	return buf.String(), nil
}

const RunOrgTemplate = `* NOTIONAL: {{.Platform}} {{.SourceFile}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:PLATFORM:    {{.Platform}}
:SOURCE:      {{.SourceFile}}
{{- if .Filter}}
:FILTER:      {{.Filter}}
{{- end}}
:START_DATE:  {{day .PeriodStart}}
:END_DATE:    {{day .PeriodEnd}}
:TRADES:      {{.TotalTrades}}
:LOTS:        {{printf "%.2f" .TotalLots}}
:NOTIONAL:    {{printf "%.2f" .TotalNotional}}
:SKIPPED:     {{.Skipped}}
:CREATED:     [{{when .Created}}]
:END:

** Summary by Symbol
| Symbol | Lots | Notional (USD) | % |
|--------+------+----------------+---|
{{- range .BySymbol}}
| {{.Symbol}} | {{printf "%.2f" .TotalLots}} | {{usd .NotionalUSD}} | {{printf "%.1f" .Percentage}} |
{{- end}}

** FX Rate Sources
| Source | Trades |
|--------+--------|
{{- range .FXSources}}
| {{.Source}} | {{.Count}} |
{{- end}}
{{- if .Skipped}}

** Skipped Symbols
{{- range .Skipped}}
- {{.Symbol}}: {{.Count}}
{{- end}}
{{- end}}
`
