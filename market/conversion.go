package market

import "strings"

// Class decides which notional formula applies to a symbol.
type Class int

const (
	Commodity Class = iota // commodities, indices, crypto and anything unrecognized
	ForexUSDBase
	ForexUSDQuote
	ForexCross
)

func (c Class) String() string {
	switch c {
	case ForexUSDBase:
		return "forex_usd_base"
	case ForexUSDQuote:
		return "forex_usd_quote"
	case ForexCross:
		return "forex_cross"
	default:
		return "commodity"
	}
}

func (c Class) IsForex() bool {
	return c != Commodity
}

// Instrument is everything the engine needs to price one symbol.
type Instrument struct {
	Symbol       string
	Class        Class
	ContractSize float64
	BaseCurrency string
}

// Classifier resolves settlement role, contract size and conversion
// currency of cleaned symbols. It is read-only after construction.
type Classifier struct {
	defaultSize     float64
	contractSizes   map[string]float64
	currencies      map[string]struct{}
	quoteCurrencies map[string]string
}

func NewClassifier(t InstrumentTable) *Classifier {
	c := &Classifier{
		defaultSize:     t.DefaultContractSize,
		contractSizes:   make(map[string]float64, len(t.ContractSizes)),
		currencies:      make(map[string]struct{}, len(t.Currencies)),
		quoteCurrencies: make(map[string]string, len(t.QuoteCurrencies)),
	}
	if c.defaultSize <= 0 {
		c.defaultSize = DefaultForexContractSize
	}
	for k, v := range t.ContractSizes {
		c.contractSizes[strings.ToUpper(k)] = v
	}
	for _, ccy := range t.Currencies {
		c.currencies[strings.ToUpper(ccy)] = struct{}{}
	}
	for k, v := range t.QuoteCurrencies {
		c.quoteCurrencies[strings.ToUpper(k)] = strings.ToUpper(v)
	}
	return c
}

// Classify is total: a six letter symbol made of two recognized currency
// codes is forex, everything else is Commodity.
func (c *Classifier) Classify(symbol string) Class {
	if len(symbol) != 6 {
		return Commodity
	}
	base, quote := symbol[:3], symbol[3:]
	if !c.isCurrency(base) || !c.isCurrency(quote) {
		return Commodity
	}
	switch {
	case base == "USD":
		return ForexUSDBase
	case quote == "USD":
		return ForexUSDQuote
	default:
		return ForexCross
	}
}

// ContractSize falls back to a standard forex lot for unknown symbols.
func (c *Classifier) ContractSize(symbol string) float64 {
	if size, ok := c.contractSizes[symbol]; ok {
		return size
	}
	return c.defaultSize
}

// BaseCurrency is the currency whose USD rate converts the trade's exposure.
func (c *Classifier) BaseCurrency(symbol string, class Class) string {
	switch class {
	case ForexUSDBase, ForexUSDQuote:
		return "USD"
	case ForexCross:
		return symbol[:3]
	}

	if strings.HasSuffix(symbol, "USD") {
		return "USD"
	}
	if ccy, ok := c.quoteCurrencies[symbol]; ok {
		return ccy
	}
	return "USD"
}

func (c *Classifier) Instrument(symbol string) Instrument {
	class := c.Classify(symbol)
	return Instrument{
		Symbol:       symbol,
		Class:        class,
		ContractSize: c.ContractSize(symbol),
		BaseCurrency: c.BaseCurrency(symbol, class),
	}
}

func (c *Classifier) isCurrency(code string) bool {
	_, ok := c.currencies[code]
	return ok
}
