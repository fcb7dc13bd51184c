// Package parsers turns broker trade-history exports into uniform trades.
//
// Each supported platform has a Parser that can recognise its own export
// layout. A Detector tries them in a fixed order.
package parsers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/notional/trade"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrNoTradesFound      = errors.New("no trades found")
	ErrMissingColumn      = errors.New("missing column")
	ErrUnrecognizedFormat = errors.New("unable to detect platform")
	ErrUnknownPlatform    = errors.New("unknown platform")
)

// MissingColumnError names a required field none of whose header aliases
// were present.
type MissingColumnError struct {
	Field     string
	Aliases   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("could not find column for %q: expected one of %v, available %v",
		e.Field, e.Aliases, e.Available)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }

// RawFile is an uploaded export. Name is only used for its extension.
type RawFile struct {
	Name string
	Data []byte
}

func (f RawFile) ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Supported reports whether the file extension has a tabular decoder.
func (f RawFile) Supported() bool {
	switch f.ext() {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Parser recognises and decodes one platform's export layout.
type Parser interface {
	// ID is the short name used for manual selection, e.g. "mt5".
	ID() string
	// Name is the display name, e.g. "MetaTrader 5".
	Name() string
	// CanParse looks at a bounded prefix of f. It never fails; anything it
	// cannot read is simply not a match.
	CanParse(f RawFile) bool
	// Parse returns the trades in file order and the platform display name.
	Parse(f RawFile) ([]trade.Trade, string, error)
}
