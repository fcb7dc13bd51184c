package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/notional/calc"
	"github.com/rustyeddy/notional/config"
	"github.com/rustyeddy/notional/fxrates"
	"github.com/rustyeddy/notional/journal"
	"github.com/rustyeddy/notional/market"
	"github.com/rustyeddy/notional/metrics"
	"github.com/rustyeddy/notional/parsers"
	"github.com/rustyeddy/notional/pkg/logger"
	"github.com/rustyeddy/notional/trade"
)

var calcCmd = &cobra.Command{
	Use:   "calc <file>",
	Short: "Calculate notional volume for a trade history export",
	Long: `Calc parses a MetaTrader 5 or cTrader trade history (CSV or XLSX),
prices every closed trade in USD and prints a report. The per-trade
results are saved as CSV or JSON.

Date filters use DD-MM-YYYY and are inclusive:
  --from/--to     explicit range, either side optional
  --last N        last N days including today
  --this-month    current calendar month

Examples:
  notional calc ReportHistory.xlsx
  notional calc history.csv -p ctrader -f json -o report.json
  notional calc ReportHistory.xlsx --last 30 --db runs.sqlite
  notional calc ReportHistory.xlsx --chart notional.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

var (
	calcPlatform      string
	calcOutput        string
	calcFormat        string
	calcListPlatforms bool
	calcFrom          string
	calcTo            string
	calcLast          int
	calcThisMonth     bool
	calcDBPath        string
	calcMetricsFile   string
	calcChart         string
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVarP(&calcPlatform, "platform", "p", "", "trading platform (mt5, ctrader), auto-detected when omitted")
	calcCmd.Flags().StringVarP(&calcOutput, "output", "o", "", "output file path (default notional_report_YYYYMMDD_HHMMSS.<format>)")
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "csv", "output format (csv, json)")
	calcCmd.Flags().BoolVar(&calcListPlatforms, "list-platforms", false, "list supported platforms and exit")

	calcCmd.Flags().StringVarP(&calcFrom, "from", "F", "", "start date DD-MM-YYYY (inclusive)")
	calcCmd.Flags().StringVarP(&calcTo, "to", "T", "", "end date DD-MM-YYYY (inclusive)")
	calcCmd.Flags().IntVar(&calcLast, "last", 0, "only trades closed in the last N days")
	calcCmd.Flags().BoolVar(&calcThisMonth, "this-month", false, "only trades closed this calendar month")

	calcCmd.Flags().StringVarP(&calcDBPath, "db", "d", "", "record the run in this SQLite journal (overrides journal.db_path)")
	calcCmd.Flags().StringVar(&calcMetricsFile, "metrics-file", "", "write Prometheus metrics in textfile format")
	calcCmd.Flags().StringVar(&calcChart, "chart", "", "write a PNG pie chart of notional by symbol")
}

func runCalc(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if calcListPlatforms {
		printPlatforms(out, parsers.DefaultDetector(logger.Nop()))
		return nil
	}
	if len(args) == 0 {
		return errors.New("a trade history file is required")
	}

	format := strings.ToLower(calcFormat)
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported output format %q (supported: csv, json)", calcFormat)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	})

	rng, err := trade.ParseDateRange(trade.RangeFlags{
		From:      calcFrom,
		To:        calcTo,
		Last:      calcLast,
		HasLast:   cmd.Flags().Changed("last"),
		ThisMonth: calcThisMonth,
	}, time.Now())
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read trade history: %w", err)
	}
	file := parsers.RawFile{Name: filepath.Base(path), Data: data}

	if calcPlatform == "" {
		fmt.Fprintf(out, "Auto-detecting platform for: %s\n", file.Name)
	}
	trades, platform, detected, err := parsers.DefaultDetector(log).Parse(file, calcPlatform)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Platform: %s\n", platform)
	fmt.Fprintf(out, "Found %d trades\n", len(trades))

	if !rng.IsZero() {
		total := len(trades)
		fmt.Fprintf(out, "Applying date filter: %s\n", rng.Desc)
		trades = rng.Apply(trades)
		fmt.Fprintf(out, "Filtered to %d trades (of %d total)\n", len(trades), total)
		if len(trades) == 0 {
			return errors.New("no trades found in the specified date range")
		}
	}

	m := metrics.New()
	engine, err := newEngine(cfg, m, log)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Calculating notional volumes...")
	res, err := engine.Calculate(cmd.Context(), trades)
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}

	journal.PrintSkipped(out, res.Skipped)
	if len(res.Trades) == 0 {
		return errors.New("no supported trades found, all trades were skipped")
	}

	journal.PrintConsole(out, journal.Console{
		File:         path,
		Platform:     platform,
		AutoDetected: detected,
		Filter:       rng.Desc,
		Trades:       res.Trades,
	})

	now := time.Now()
	output := calcOutput
	if output == "" {
		output = journal.DefaultOutputPath(format, now)
	}
	switch format {
	case "json":
		err = journal.ExportJSON(output, journal.NewReport(platform, res, now))
	default:
		err = journal.ExportCSV(output, res.Trades)
	}
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	fmt.Fprintf(out, "%s report saved to: %s\n", strings.ToUpper(format), output)

	if calcChart != "" {
		if err := journal.ExportChart(calcChart, calc.SummarizeBySymbol(res.Trades)); err != nil {
			return fmt.Errorf("export chart: %w", err)
		}
		fmt.Fprintf(out, "Chart saved to: %s\n", calcChart)
	}

	dbPath := cfg.Journal.DBPath
	if calcDBPath != "" {
		dbPath = calcDBPath
	}
	if dbPath != "" {
		run := journal.NewRunRecord(platform, file.Name, rng.Desc, res, now)
		if err := recordRun(cmd, dbPath, run, res); err != nil {
			return err
		}
		fmt.Fprintf(out, "Run recorded: %s (%s)\n", run.RunID, dbPath)
	}

	if calcMetricsFile != "" {
		if err := m.WriteTextfile(calcMetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Debug().Str("path", calcMetricsFile).Msg("metrics written")
	}
	return nil
}

func newEngine(cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) (*calc.Engine, error) {
	timeout, err := cfg.FX.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("fx timeout: %w", err)
	}
	client := fxrates.NewClient(cfg.FX.APIURL, timeout)
	client.SetRateLimit(cfg.FX.RequestsPerSecond)
	resolver := fxrates.NewResolver(
		client,
		cfg.FX.FallbackRates,
		fxrates.WithMetrics(m),
		fxrates.WithLogger(log),
	)
	return calc.NewEngine(
		market.NewClassifier(cfg.Instruments.Table()),
		resolver,
		calc.WithWorkers(cfg.Engine.Workers),
		calc.WithMetrics(m),
		calc.WithLogger(log),
	), nil
}

func recordRun(cmd *cobra.Command, dbPath string, run journal.RunRecord, res *calc.Result) error {
	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	if err := j.RecordRun(cmd.Context(), run, res.Trades, res.Skipped); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
