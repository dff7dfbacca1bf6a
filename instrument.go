package advisor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Symbol is the unique ticker of an instrument in the catalog.
type Symbol string

var reSymbol = regexp.MustCompile(`^[A-Z0-9][A-Z0-9._-]{0,19}$`)

// ParseSymbol normalizes s to upper case and checks it is a well formed ticker.
func ParseSymbol(s string) (Symbol, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	if !reSymbol.MatchString(sym) {
		return "", fmt.Errorf("invalid symbol %q", s)
	}
	return Symbol(sym), nil
}

func (s Symbol) String() string { return string(s) }

// AssetClass is one of the three buckets of the target allocation.
type AssetClass string

const (
	Equity     AssetClass = "equity"
	Debt       AssetClass = "debt"
	Government AssetClass = "government"
)

// AssetClasses lists every asset class in display order.
var AssetClasses = []AssetClass{Equity, Debt, Government}

// ParseAssetClass parses "equity", "debt" or "government".
func ParseAssetClass(s string) (AssetClass, error) {
	switch c := AssetClass(strings.ToLower(strings.TrimSpace(s))); c {
	case Equity, Debt, Government:
		return c, nil
	default:
		return "", fmt.Errorf("unknown asset class: %q", s)
	}
}

// Valid reports whether c is one of the known asset classes.
func (c AssetClass) Valid() bool {
	_, err := ParseAssetClass(string(c))
	return err == nil
}

// RiskLevel is the coarse risk rating of an instrument.
type RiskLevel string

const (
	Low    RiskLevel = "low"
	Medium RiskLevel = "medium"
	High   RiskLevel = "high"
)

// ParseRiskLevel parses "low", "medium" or "high".
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch r := RiskLevel(strings.ToLower(strings.TrimSpace(s))); r {
	case Low, Medium, High:
		return r, nil
	default:
		return "", fmt.Errorf("unknown risk level: %q", s)
	}
}

// Instrument is a tradable security of the catalog. Instruments are reference
// data: the advisor never modifies them.
type Instrument struct {
	Symbol          Symbol     `json:"symbol"`
	Name            string     `json:"name"`
	Class           AssetClass `json:"type"`
	ThreeYearReturn Percent    `json:"threeYearReturn"` // annualized
	Volatility      Percent    `json:"volatility"`
	ExpenseRatio    Percent    `json:"expenseRatio"`
	CurrentPrice    Money      `json:"currentPrice"`
	Risk            RiskLevel  `json:"riskLevel"`
	Description     string     `json:"description,omitempty"`
	MinInvestment   Money      `json:"minInvestment"`
}

// Validate checks the instrument metadata.
func (i Instrument) Validate() error {
	var errs error
	if sym, err := ParseSymbol(string(i.Symbol)); err != nil {
		errs = errors.Join(errs, err)
	} else if sym != i.Symbol {
		errs = errors.Join(errs, fmt.Errorf("symbol %q must be upper case", i.Symbol))
	}
	if !i.Class.Valid() {
		errs = errors.Join(errs, fmt.Errorf("unknown asset class: %q", i.Class))
	}
	if _, err := ParseRiskLevel(string(i.Risk)); err != nil {
		errs = errors.Join(errs, err)
	}
	if !i.CurrentPrice.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("current price must be positive, got %v", i.CurrentPrice))
	}
	if errs != nil {
		return fmt.Errorf("invalid instrument %q: %w", i.Symbol, errs)
	}
	return nil
}
