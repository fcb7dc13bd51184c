package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultInstruments())

	tests := []struct {
		symbol string
		want   Class
	}{
		{"USDJPY", ForexUSDBase},
		{"USDCAD", ForexUSDBase},
		{"EURUSD", ForexUSDQuote},
		{"AUDUSD", ForexUSDQuote},
		{"GBPJPY", ForexCross},
		{"EURCHF", ForexCross},
		{"XAUUSD", Commodity},
		{"BTCUSD", Commodity},
		{"GER40", Commodity},
		{"USDSEK", Commodity}, // SEK is not a recognized code
		{"EURUSDX", Commodity},
		{"", Commodity},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.symbol))
		})
	}
}

func TestClassifyIsTotal(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultInstruments())
	for _, base := range Currencies {
		for _, quote := range Currencies {
			class := c.Classify(base + quote)
			assert.True(t, class.IsForex(), "%s%s should be forex", base, quote)
		}
	}
}

func TestClassString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "forex_usd_base", ForexUSDBase.String())
	assert.Equal(t, "forex_usd_quote", ForexUSDQuote.String())
	assert.Equal(t, "forex_cross", ForexCross.String())
	assert.Equal(t, "commodity", Commodity.String())
}

func TestContractSize(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultInstruments())
	assert.Equal(t, 100.0, c.ContractSize("XAUUSD"))
	assert.Equal(t, 5000.0, c.ContractSize("XAGUSD"))
	assert.Equal(t, 1.0, c.ContractSize("US500"))
	assert.Equal(t, 1000.0, c.ContractSize("USOIL"))
	assert.Equal(t, 10000.0, c.ContractSize("NATGAS"))
	assert.Equal(t, 100000.0, c.ContractSize("EURUSD"))
	assert.Equal(t, 100000.0, c.ContractSize("SOMETHINGNEW"))
}

func TestContractSizeDefaultWhenUnset(t *testing.T) {
	t.Parallel()

	c := NewClassifier(InstrumentTable{})
	assert.Equal(t, float64(DefaultForexContractSize), c.ContractSize("EURUSD"))
}

func TestBaseCurrency(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultInstruments())

	tests := []struct {
		symbol string
		want   string
	}{
		{"USDJPY", "USD"},
		{"EURUSD", "USD"},
		{"GBPJPY", "GBP"},
		{"AUDCAD", "AUD"},
		{"XAUUSD", "USD"},
		{"BTCUSD", "USD"},
		{"GER40", "EUR"},
		{"UK100", "GBP"},
		{"HK50", "HKD"},
		{"SPOTCRUDE", "USD"},
		{"US500", "USD"},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, c.BaseCurrency(tt.symbol, c.Classify(tt.symbol)))
		})
	}
}

func TestInstrument(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultInstruments())
	got := c.Instrument("GBPJPY")
	assert.Equal(t, Instrument{
		Symbol:       "GBPJPY",
		Class:        ForexCross,
		ContractSize: 100000,
		BaseCurrency: "GBP",
	}, got)
}

func TestDefaultInstrumentsIsACopy(t *testing.T) {
	t.Parallel()

	tbl := DefaultInstruments()
	tbl.ContractSizes["XAUUSD"] = 1
	tbl.QuoteCurrencies["GER40"] = "USD"

	assert.Equal(t, 100.0, ContractSizes["XAUUSD"])
	assert.Equal(t, "EUR", QuoteCurrencies["GER40"])
}

func TestNewClassifierNormalizesCase(t *testing.T) {
	t.Parallel()

	c := NewClassifier(InstrumentTable{
		ContractSizes:   map[string]float64{"xauusd": 100},
		Currencies:      []string{"usd", "eur"},
		QuoteCurrencies: map[string]string{"ger40": "eur"},
	})
	assert.Equal(t, 100.0, c.ContractSize("XAUUSD"))
	assert.Equal(t, ForexUSDQuote, c.Classify("EURUSD"))
	assert.Equal(t, "EUR", c.BaseCurrency("GER40", Commodity))
}

func TestCleanSymbol(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"EURUSD+":    "EURUSD",
		"xauusd.":    "XAUUSD",
		"XAU/USD":    "XAUUSD",
		"EUR_USD":    "EURUSD",
		"GER40.cash": "GER40CASH",
		" us500 ":    "US500",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanSymbol(in), in)
	}
}
