package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Trade failures. The portfolio is left untouched when Execute returns them.
var (
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
)

// DefaultStartingCash is the virtual cash of a new practice portfolio.
var DefaultStartingCash = M(100000)

// Holding is the position in a single instrument.
type Holding struct {
	Symbol       Symbol     `json:"symbol"`
	Name         string     `json:"name"`
	Class        AssetClass `json:"type"`
	Quantity     Quantity   `json:"quantity"`
	AvgPrice     Money      `json:"avgPrice"`
	CurrentPrice Money      `json:"currentPrice"`
}

// Cost returns the amount paid for the position, at average price.
func (h Holding) Cost() Money { return h.AvgPrice.Mul(h.Quantity) }

// MarketValue returns the value of the position at the current price.
func (h Holding) MarketValue() Money { return h.CurrentPrice.Mul(h.Quantity) }

// GainLoss returns the unrealized gain of the position.
func (h Holding) GainLoss() Money { return h.MarketValue().Sub(h.Cost()) }

// GainLossPercent returns the unrealized gain relative to the cost.
func (h Holding) GainLossPercent() Percent { return h.GainLoss().Percent(h.Cost()) }

// Portfolio is a simulated brokerage account: a cash balance, the current
// holdings and the log of executed transactions.
//
// A Portfolio is not safe for concurrent use. Session serializes access.
type Portfolio struct {
	cash         Money
	holdings     []Holding // in order of first purchase
	transactions []Transaction

	now   func() time.Time
	newID func() string
}

// NewPortfolio returns an empty portfolio funded with cash.
func NewPortfolio(cash Money) *Portfolio {
	return &Portfolio{cash: cash}
}

// Cash returns the available cash.
func (p *Portfolio) Cash() Money { return p.cash }

// Holdings returns a copy of the current holdings, in order of first purchase.
func (p *Portfolio) Holdings() []Holding { return slices.Clone(p.holdings) }

// Holding returns the holding of symbol, if any.
func (p *Portfolio) Holding(sym Symbol) (Holding, bool) {
	i := p.indexOf(sym)
	if i < 0 {
		return Holding{}, false
	}
	return p.holdings[i], true
}

// Transactions iterates over the executed transactions, oldest first.
func (p *Portfolio) Transactions() iter.Seq[Transaction] {
	return slices.Values(p.transactions)
}

// Len returns the number of transactions.
func (p *Portfolio) Len() int { return len(p.transactions) }

func (p *Portfolio) indexOf(sym Symbol) int {
	return slices.IndexFunc(p.holdings, func(h Holding) bool { return h.Symbol == sym })
}

func (p *Portfolio) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func (p *Portfolio) id() string {
	if p.newID != nil {
		return p.newID()
	}
	return uuid.NewString()
}

// Execute applies a trade.
//
// A buy debits cash and merges into the existing holding using a weighted
// average price, the holding's current price becomes the trade price. A sell
// credits cash and removes the holding once its quantity reaches zero. On
// success the recorded transaction is returned.
func (p *Portfolio) Execute(t Trade) (Transaction, error) {
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	amount := t.Price.Mul(t.Quantity)
	i := p.indexOf(t.Symbol)

	switch t.Side {
	case Buy:
		if i >= 0 && t.Quantity > math.MaxInt64-p.holdings[i].Quantity {
			return Transaction{}, fmt.Errorf("%w: buying %v %s overflows the %v held", ErrInvalidTrade, t.Quantity, t.Symbol, p.holdings[i].Quantity)
		}
		if p.cash.LessThan(amount) {
			return Transaction{}, fmt.Errorf("%w: buying %v %s costs %v, only %v available", ErrInsufficientFunds, t.Quantity, t.Symbol, amount, p.cash)
		}
		p.cash = p.cash.Sub(amount)
		if i < 0 {
			p.holdings = append(p.holdings, Holding{
				Symbol:       t.Symbol,
				Name:         t.Name,
				Class:        t.Class,
				Quantity:     t.Quantity,
				AvgPrice:     t.Price,
				CurrentPrice: t.Price,
			})
			break
		}
		h := &p.holdings[i]
		total := h.Quantity + t.Quantity
		h.AvgPrice = h.Cost().Add(amount).Div(total)
		h.Quantity = total
		h.CurrentPrice = t.Price

	case Sell:
		if i < 0 {
			return Transaction{}, fmt.Errorf("%w: no %s held", ErrInsufficientHoldings, t.Symbol)
		}
		h := &p.holdings[i]
		if h.Quantity < t.Quantity {
			return Transaction{}, fmt.Errorf("%w: selling %v %s, only %v held", ErrInsufficientHoldings, t.Quantity, t.Symbol, h.Quantity)
		}
		p.cash = p.cash.Add(amount)
		h.Quantity -= t.Quantity
		if h.Quantity == 0 {
			p.holdings = slices.Delete(p.holdings, i, i+1)
		}
	}

	ts := p.clock()
	if n := len(p.transactions); n > 0 && ts.Before(p.transactions[n-1].Timestamp) {
		ts = p.transactions[n-1].Timestamp
	}
	tx := Transaction{
		ID:        p.id(),
		Symbol:    t.Symbol,
		Side:      t.Side,
		Quantity:  t.Quantity,
		Price:     t.Price,
		Timestamp: ts,
	}
	p.transactions = append(p.transactions, tx)
	return tx, nil
}

// UpdatePrices sets the current price of the holdings listed in prices.
// Holdings missing from prices, and non positive prices, are ignored.
// It returns the number of holdings whose price changed.
func (p *Portfolio) UpdatePrices(prices map[Symbol]Money) int {
	changed := 0
	for i := range p.holdings {
		h := &p.holdings[i]
		price, ok := prices[h.Symbol]
		if !ok || !price.IsPositive() || price.Equal(h.CurrentPrice) {
			continue
		}
		h.CurrentPrice = price
		changed++
	}
	return changed
}

// InvestedValue returns the cost of all holdings.
func (p *Portfolio) InvestedValue() Money {
	total := M(0)
	for _, h := range p.holdings {
		total = total.Add(h.Cost())
	}
	return total
}

// MarketValue returns the value of all holdings at current prices.
func (p *Portfolio) MarketValue() Money {
	total := M(0)
	for _, h := range p.holdings {
		total = total.Add(h.MarketValue())
	}
	return total
}

// TotalValue returns cash plus the market value of the holdings.
func (p *Portfolio) TotalValue() Money { return p.cash.Add(p.MarketValue()) }

// GainLoss returns the unrealized gain of all holdings.
func (p *Portfolio) GainLoss() Money { return p.MarketValue().Sub(p.InvestedValue()) }

// GainLossPercent returns the unrealized gain relative to the invested value.
func (p *Portfolio) GainLossPercent() Percent { return p.GainLoss().Percent(p.InvestedValue()) }

// ClassWeights returns the share of each asset class in the market value of
// the holdings. Every class is present, classes without holdings weigh 0.
func (p *Portfolio) ClassWeights() map[AssetClass]Percent {
	values := make(map[AssetClass]Money, len(AssetClasses))
	for _, c := range AssetClasses {
		values[c] = M(0)
	}
	for _, h := range p.holdings {
		values[h.Class] = values[h.Class].Add(h.MarketValue())
	}
	total := p.MarketValue()
	weights := make(map[AssetClass]Percent, len(values))
	for c, v := range values {
		weights[c] = v.Percent(total)
	}
	return weights
}

// clone returns a deep copy sharing the clock and id generator.
func (p *Portfolio) clone() *Portfolio {
	return &Portfolio{
		cash:         p.cash,
		holdings:     slices.Clone(p.holdings),
		transactions: slices.Clone(p.transactions),
		now:          p.now,
		newID:        p.newID,
	}
}

type portfolioJSON struct {
	Cash         Money         `json:"cash"`
	Holdings     []Holding     `json:"holdings"`
	Transactions []Transaction `json:"transactions"`
}

func (p *Portfolio) MarshalJSON() ([]byte, error) {
	doc := portfolioJSON{
		Cash:         p.cash,
		Holdings:     p.holdings,
		Transactions: p.transactions,
	}
	// empty lists rather than null
	if doc.Holdings == nil {
		doc.Holdings = []Holding{}
	}
	if doc.Transactions == nil {
		doc.Transactions = []Transaction{}
	}
	return json.Marshal(doc)
}

func (p *Portfolio) UnmarshalJSON(b []byte) error {
	var doc portfolioJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	if doc.Cash.IsNegative() {
		return fmt.Errorf("negative cash %v", doc.Cash)
	}
	seen := make(map[Symbol]bool, len(doc.Holdings))
	for _, h := range doc.Holdings {
		if seen[h.Symbol] {
			return fmt.Errorf("duplicate holding %q", h.Symbol)
		}
		seen[h.Symbol] = true
		if !h.Quantity.IsPositive() || !h.AvgPrice.IsPositive() {
			return fmt.Errorf("invalid holding %q: quantity %v at %v", h.Symbol, h.Quantity, h.AvgPrice)
		}
	}
	p.cash = doc.Cash
	p.holdings = doc.Holdings
	p.transactions = doc.Transactions
	return nil
}
