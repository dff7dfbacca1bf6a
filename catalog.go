package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

// ErrUnknownSymbol is returned when a symbol is not listed in the catalog.
var ErrUnknownSymbol = errors.New("unknown symbol")

// Catalog is the static, ordered list of tradable instruments.
//
// The order of the catalog is significant: recommendations break ties by
// catalog order.
type Catalog struct {
	instruments []Instrument
	bySymbol    map[Symbol]int // index in instruments
}

// NewCatalog validates and indexes instruments. Symbols must be unique.
func NewCatalog(instruments ...Instrument) (*Catalog, error) {
	c := &Catalog{
		instruments: make([]Instrument, 0, len(instruments)),
		bySymbol:    make(map[Symbol]int, len(instruments)),
	}
	for _, inst := range instruments {
		if err := inst.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.bySymbol[inst.Symbol]; exists {
			return nil, fmt.Errorf("duplicate symbol %q in catalog", inst.Symbol)
		}
		c.bySymbol[inst.Symbol] = len(c.instruments)
		c.instruments = append(c.instruments, inst)
	}
	return c, nil
}

// DecodeCatalog reads a JSON array of instruments.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var instruments []Instrument
	if err := json.NewDecoder(r).Decode(&instruments); err != nil {
		return nil, fmt.Errorf("could not decode catalog: %w", err)
	}
	return NewCatalog(instruments...)
}

// Len returns the number of instruments.
func (c *Catalog) Len() int { return len(c.instruments) }

// All iterates over the instruments in catalog order.
func (c *Catalog) All() iter.Seq[Instrument] {
	return slices.Values(c.instruments)
}

// Instruments returns a copy of the instruments in catalog order.
func (c *Catalog) Instruments() []Instrument {
	return slices.Clone(c.instruments)
}

// Symbols returns every symbol in catalog order.
func (c *Catalog) Symbols() []string {
	symbols := make([]string, 0, len(c.instruments))
	for _, inst := range c.instruments {
		symbols = append(symbols, string(inst.Symbol))
	}
	return symbols
}

// Lookup returns the instrument with this symbol.
func (c *Catalog) Lookup(sym Symbol) (Instrument, bool) {
	i, ok := c.bySymbol[sym]
	if !ok {
		return Instrument{}, false
	}
	return c.instruments[i], true
}

// Resolve parses a user supplied symbol and looks it up.
func (c *Catalog) Resolve(s string) (Instrument, error) {
	sym, err := ParseSymbol(s)
	if err != nil {
		return Instrument{}, fmt.Errorf("%w: %w", ErrUnknownSymbol, err)
	}
	inst, ok := c.Lookup(sym)
	if !ok {
		return Instrument{}, fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return inst, nil
}

// Search returns the instruments whose name or symbol contains term, ignoring case.
// An empty term matches everything.
func (c *Catalog) Search(term string) []Instrument {
	term = strings.ToLower(strings.TrimSpace(term))
	var found []Instrument
	for _, inst := range c.instruments {
		if strings.Contains(strings.ToLower(inst.Name), term) ||
			strings.Contains(strings.ToLower(string(inst.Symbol)), term) {
			found = append(found, inst)
		}
	}
	return found
}

// DefaultCatalog returns the built-in catalog of Indian mutual funds, ETFs and bonds.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultInstruments...)
	if err != nil {
		panic(err) // the built-in list is static
	}
	return c
}

var defaultInstruments = []Instrument{
	// Equity
	{
		Symbol: "NIFTY50ETF", Name: "Nifty 50 ETF", Class: Equity,
		ThreeYearReturn: 12.5, Volatility: 16.2, ExpenseRatio: 0.5,
		CurrentPrice: M(185.50), Risk: Medium, MinInvestment: M(1000),
		Description: "Tracks the Nifty 50 index, providing broad market exposure to top 50 Indian companies.",
	},
	{
		Symbol: "ICICIPRU", Name: "ICICI Prudential Bluechip Fund", Class: Equity,
		ThreeYearReturn: 14.8, Volatility: 18.5, ExpenseRatio: 1.05,
		CurrentPrice: M(62.30), Risk: Medium, MinInvestment: M(5000),
		Description: "Invests in large-cap stocks with strong fundamentals and growth potential.",
	},
	{
		Symbol: "HDFCTOP100", Name: "HDFC Top 100 Fund", Class: Equity,
		ThreeYearReturn: 13.2, Volatility: 17.8, ExpenseRatio: 1.25,
		CurrentPrice: M(745.20), Risk: Medium, MinInvestment: M(5000),
		Description: "Focuses on top 100 companies by market capitalization for steady growth.",
	},
	{
		Symbol: "MOTILALMIDCAP", Name: "Motilal Oswal Midcap Fund", Class: Equity,
		ThreeYearReturn: 18.6, Volatility: 24.3, ExpenseRatio: 1.8,
		CurrentPrice: M(89.15), Risk: High, MinInvestment: M(5000),
		Description: "Invests in mid-cap companies with high growth potential but higher volatility.",
	},
	{
		Symbol: "SBISMALLCAP", Name: "SBI Small Cap Fund", Class: Equity,
		ThreeYearReturn: 22.4, Volatility: 28.7, ExpenseRatio: 1.95,
		CurrentPrice: M(156.80), Risk: High, MinInvestment: M(5000),
		Description: "Targets small-cap companies for potentially higher returns with significant risk.",
	},

	// Debt
	{
		Symbol: "ICICISHTERM", Name: "ICICI Short Term Fund", Class: Debt,
		ThreeYearReturn: 6.8, Volatility: 2.1, ExpenseRatio: 0.65,
		CurrentPrice: M(28.45), Risk: Low, MinInvestment: M(5000),
		Description: "Invests in short-term debt securities with low interest rate risk.",
	},
	{
		Symbol: "HDFCCORP", Name: "HDFC Corporate Bond Fund", Class: Debt,
		ThreeYearReturn: 7.2, Volatility: 2.8, ExpenseRatio: 0.45,
		CurrentPrice: M(22.15), Risk: Low, MinInvestment: M(5000),
		Description: "Invests in high-quality corporate bonds for stable income.",
	},
	{
		Symbol: "AXISCREDIT", Name: "Axis Credit Risk Fund", Class: Debt,
		ThreeYearReturn: 8.5, Volatility: 4.2, ExpenseRatio: 1.15,
		CurrentPrice: M(19.85), Risk: Medium, MinInvestment: M(5000),
		Description: "Invests in lower-rated corporate bonds for higher yields with moderate risk.",
	},
	{
		Symbol: "UTILTDURATION", Name: "UTI Medium Duration Fund", Class: Debt,
		ThreeYearReturn: 7.8, Volatility: 3.5, ExpenseRatio: 0.85,
		CurrentPrice: M(25.60), Risk: Low, MinInvestment: M(5000),
		Description: "Invests in medium-duration debt securities balancing yield and interest rate risk.",
	},

	// Government securities
	{
		Symbol: "GILT10Y", Name: "10-Year Government Bond", Class: Government,
		ThreeYearReturn: 6.2, Volatility: 3.8, ExpenseRatio: 0.25,
		CurrentPrice: M(102.50), Risk: Low, MinInvestment: M(10000),
		Description: "Direct investment in 10-year government bonds with sovereign guarantee.",
	},
	{
		Symbol: "SBIGILTSEC", Name: "SBI Magnum Gilt Fund", Class: Government,
		ThreeYearReturn: 5.9, Volatility: 4.1, ExpenseRatio: 0.55,
		CurrentPrice: M(48.25), Risk: Low, MinInvestment: M(5000),
		Description: "Invests in government securities across different maturities.",
	},
	{
		Symbol: "ICICIGILT", Name: "ICICI Gilt Fund", Class: Government,
		ThreeYearReturn: 6.0, Volatility: 3.9, ExpenseRatio: 0.6,
		CurrentPrice: M(18.90), Risk: Low, MinInvestment: M(5000),
		Description: "Focuses on government bonds for capital preservation and steady income.",
	},
}
