package advisor

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTrade is returned for trades with a non positive quantity or price,
// or missing instrument data.
var ErrInvalidTrade = errors.New("invalid trade")

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses "buy" or "sell".
func ParseSide(s string) (Side, error) {
	switch side := Side(strings.ToLower(strings.TrimSpace(s))); side {
	case Buy, Sell:
		return side, nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Transaction is an executed trade. Transactions are never modified once
// recorded.
type Transaction struct {
	ID        string    `json:"id"`
	Symbol    Symbol    `json:"symbol"`
	Side      Side      `json:"type"`
	Quantity  Quantity  `json:"quantity"`
	Price     Money     `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Amount returns the cash value of the transaction.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// Trade is a request to buy or sell an instrument.
//
// Name and Class describe the instrument and are only needed to open a new
// holding on a buy.
type Trade struct {
	Symbol   Symbol
	Side     Side
	Quantity Quantity
	Price    Money
	Name     string
	Class    AssetClass
}

// TradeOf prepares a trade of inst at its current catalog price.
func TradeOf(inst Instrument, side Side, q Quantity) Trade {
	return Trade{
		Symbol:   inst.Symbol,
		Side:     side,
		Quantity: q,
		Price:    inst.CurrentPrice,
		Name:     inst.Name,
		Class:    inst.Class,
	}
}

// Validate checks the trade is well formed, regardless of the portfolio state.
func (t Trade) Validate() error {
	if t.Symbol == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidTrade)
	}
	if t.Side != Buy && t.Side != Sell {
		return fmt.Errorf("%w: unknown side %q", ErrInvalidTrade, t.Side)
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidTrade, t.Quantity)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %v", ErrInvalidTrade, t.Price)
	}
	if t.Side == Buy && !t.Class.Valid() {
		return fmt.Errorf("%w: unknown asset class %q for %s", ErrInvalidTrade, t.Class, t.Symbol)
	}
	return nil
}
