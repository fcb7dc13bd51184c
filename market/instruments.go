// market/instruments.go
package market

// Static instrument tables. The config layer copies these into its defaults
// so every value can be overridden from a config file.

// DefaultForexContractSize is one standard forex lot.
const DefaultForexContractSize = 100000

// ContractSizes maps a cleaned symbol to the units of the underlying one lot
// represents. Symbols missing from the table are treated as forex.
var ContractSizes = map[string]float64{
	// precious metals (troy ounces)
	"XAUUSD": 100,
	"XAGUSD": 5000,

	// crypto
	"BTCUSD": 1,
	"ETHUSD": 1,

	// indices: one CFD is one index point
	"GER40":   1,
	"GER30":   1,
	"US30":    1,
	"DJ30":    1,
	"NAS100":  1,
	"USTEC":   1,
	"US500":   1,
	"SPX500":  1,
	"SP500":   1,
	"UK100":   1,
	"FTSE100": 1,
	"EU50":    1,
	"STOXX50": 1,
	"FRA40":   1,
	"JPN225":  1,
	"AUS200":  1,
	"HK50":    1,
	"CHINA50": 1,
	"SPA35":   1,
	"NETH25":  1,
	"SWI20":   1,
	"CAN60":   1,
	"CHINAH":  1,
	"SING30":  1,
	"SAFR40":  1,
	"US2000":  1,
	"VIX":     1,

	// crude oil (barrels)
	"SPOTCRUDE": 1000,
	"USOIL":     1000,
	"WTI":       1000,
	"XTIUSD":    1000,
	"BRENT":     1000,
	"XBRUSD":    1000,

	// natural gas (MMBtu)
	"NATGAS": 10000,
	"XNGUSD": 10000,
}

// Currencies are the ISO codes recognized as halves of a forex pair.
var Currencies = []string{"USD", "EUR", "GBP", "JPY", "AUD", "NZD", "CAD", "CHF"}

// QuoteCurrencies overrides the quote currency of commodity and index
// symbols that are not priced in USD.
var QuoteCurrencies = map[string]string{
	"GER40":     "EUR",
	"GER30":     "EUR",
	"EU50":      "EUR",
	"STOXX50":   "EUR",
	"FRA40":     "EUR",
	"SPA35":     "EUR",
	"NETH25":    "EUR",
	"UK100":     "GBP",
	"FTSE100":   "GBP",
	"JPN225":    "JPY",
	"AUS200":    "AUD",
	"HK50":      "HKD",
	"CHINAH":    "HKD",
	"SWI20":     "CHF",
	"CAN60":     "CAD",
	"SING30":    "SGD",
	"SAFR40":    "ZAR",
	"SPOTCRUDE": "USD",
}

// InstrumentTable is the static input of a Classifier.
type InstrumentTable struct {
	DefaultContractSize float64
	ContractSizes       map[string]float64
	Currencies          []string
	QuoteCurrencies     map[string]string
}

// DefaultInstruments returns a copy of the package tables.
func DefaultInstruments() InstrumentTable {
	sizes := make(map[string]float64, len(ContractSizes))
	for k, v := range ContractSizes {
		sizes[k] = v
	}
	quotes := make(map[string]string, len(QuoteCurrencies))
	for k, v := range QuoteCurrencies {
		quotes[k] = v
	}
	return InstrumentTable{
		DefaultContractSize: DefaultForexContractSize,
		ContractSizes:       sizes,
		Currencies:          append([]string(nil), Currencies...),
		QuoteCurrencies:     quotes,
	}
}
