package parsers

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/notional/trade"
)

// Detector holds the platform parsers in probe order.
type Detector struct {
	parsers []Parser
}

// NewDetector probes parsers in the order given. Put the most specific
// layouts first.
func NewDetector(parsers ...Parser) *Detector {
	return &Detector{parsers: parsers}
}

// DefaultDetector registers MetaTrader 5 before cTrader: an MT5 report
// title row is unambiguous while the cTrader probe only looks for column
// names.
func DefaultDetector(log zerolog.Logger) *Detector {
	return NewDetector(NewMT5(log), NewCTrader(log))
}

// Platforms returns the registered parser IDs in probe order.
func (d *Detector) Platforms() []string {
	ids := make([]string, len(d.parsers))
	for i, p := range d.parsers {
		ids[i] = p.ID()
	}
	return ids
}

func (d *Detector) supported() string {
	return strings.Join(d.Platforms(), ", ")
}

// Detect returns the first parser whose probe accepts f.
func (d *Detector) Detect(f RawFile) (Parser, error) {
	if !f.Supported() {
		return nil, fmt.Errorf("%w: %q (expected .csv or .xlsx)", ErrUnsupportedFormat, f.Name)
	}
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoTradesFound, f.Name)
	}
	for _, p := range d.parsers {
		if p.CanParse(f) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: specify one manually, supported platforms: %s",
		ErrUnrecognizedFormat, d.supported())
}

// Select looks a parser up by ID, ignoring case.
func (d *Detector) Select(name string) (Parser, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, p := range d.parsers {
		if p.ID() == want {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q, supported platforms: %s",
		ErrUnknownPlatform, name, d.supported())
}

// Parse picks a parser, by name when platform is set and by detection
// otherwise, and runs it. detected reports which path was taken.
func (d *Detector) Parse(f RawFile, platform string) (trades []trade.Trade, name string, detected bool, err error) {
	var p Parser
	if platform != "" {
		p, err = d.Select(platform)
	} else {
		p, err = d.Detect(f)
		detected = true
	}
	if err != nil {
		return nil, "", detected, err
	}
	trades, name, err = p.Parse(f)
	return trades, name, detected, err
}
