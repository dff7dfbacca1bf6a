package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// Session is the state of one user: risk profile and practice portfolio,
// backed by a Store.
//
// Every successful change is persisted before it becomes visible. A failed
// operation leaves both the session and the stored snapshot unchanged.
// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	store   Store
	user    string
	catalog *Catalog

	profile   *RiskProfile
	portfolio *Portfolio
	quotes    map[Symbol]Money // latest marked prices, override the catalog

	cash  Money
	now   func() time.Time
	newID func() string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStartingCash sets the cash of a portfolio created for a new user.
func WithStartingCash(cash Money) SessionOption {
	return func(s *Session) { s.cash = cash }
}

// WithClock sets the clock used to timestamp transactions.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithIDGenerator sets the generator of transaction ids.
func WithIDGenerator(newID func() string) SessionOption {
	return func(s *Session) { s.newID = newID }
}

// Open loads the snapshot of user from store. A user without snapshot starts
// with no risk profile and a fresh portfolio, nothing is saved until the
// first change.
func Open(ctx context.Context, store Store, user string, catalog *Catalog, opts ...SessionOption) (*Session, error) {
	if user == "" {
		return nil, errors.New("missing user id")
	}
	s := &Session{
		store:   store,
		user:    user,
		catalog: catalog,
		quotes:  make(map[Symbol]Money),
		cash:    DefaultStartingCash,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cash.IsNegative() {
		return nil, fmt.Errorf("negative starting cash %v", s.cash)
	}

	data, err := store.Load(ctx, user)
	switch {
	case errors.Is(err, ErrSnapshotNotFound):
		s.portfolio = NewPortfolio(s.cash)
	case err != nil:
		return nil, fmt.Errorf("load snapshot of %q: %w", user, err)
	default:
		snap, err := DecodeSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("load snapshot of %q: %w", user, err)
		}
		s.profile = snap.RiskProfile
		s.portfolio = snap.Portfolio
		for _, h := range s.portfolio.holdings {
			s.quotes[h.Symbol] = h.CurrentPrice
		}
	}
	s.portfolio.now = s.now
	s.portfolio.newID = s.newID
	return s, nil
}

// User returns the user id of the session.
func (s *Session) User() string { return s.user }

// Catalog returns the instrument catalog of the session.
func (s *Session) Catalog() *Catalog { return s.catalog }

// persist saves the given state. Callers hold s.mu.
func (s *Session) persist(ctx context.Context, profile *RiskProfile, p *Portfolio) error {
	data, err := EncodeSnapshot(Snapshot{RiskProfile: profile, Portfolio: p})
	if err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	if err := s.store.Save(ctx, s.user, data); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// SubmitAnswers scores a completed questionnaire and replaces the risk profile.
func (s *Session) SubmitAnswers(ctx context.Context, a Answers) (RiskProfile, error) {
	profile, err := NewRiskProfile(a)
	if err != nil {
		return RiskProfile{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(ctx, &profile, s.portfolio); err != nil {
		return RiskProfile{}, err
	}
	s.profile = &profile
	log.Printf("%s: risk profile scored %d (%s)", s.user, profile.Score, profile.Category())
	return profile, nil
}

// Profile returns the risk profile, if the questionnaire was taken.
func (s *Session) Profile() (RiskProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return RiskProfile{}, false
	}
	return *s.profile, true
}

// Recommendations returns the instruments recommended for the risk profile.
func (s *Session) Recommendations() (Recommendations, error) {
	profile, ok := s.Profile()
	if !ok {
		return Recommendations{}, ErrNoRiskProfile
	}
	return Recommend(profile.Score, s.catalog), nil
}

// Portfolio returns a copy of the current portfolio.
func (s *Session) Portfolio() *Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio.clone()
}

// Quote returns the instrument for a user supplied symbol, priced at the
// latest marked price when there is one.
func (s *Session) Quote(symbol string) (Instrument, error) {
	inst, err := s.catalog.Resolve(symbol)
	if err != nil {
		return Instrument{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if price, ok := s.quotes[inst.Symbol]; ok {
		inst.CurrentPrice = price
	}
	return inst, nil
}

// Buy buys q units of symbol at its quoted price.
func (s *Session) Buy(ctx context.Context, symbol string, q Quantity) (Transaction, error) {
	inst, err := s.Quote(symbol)
	if err != nil {
		return Transaction{}, err
	}
	return s.ExecuteTrade(ctx, TradeOf(inst, Buy, q))
}

// Sell sells q units of symbol at its quoted price.
func (s *Session) Sell(ctx context.Context, symbol string, q Quantity) (Transaction, error) {
	inst, err := s.Quote(symbol)
	if err != nil {
		return Transaction{}, err
	}
	return s.ExecuteTrade(ctx, TradeOf(inst, Sell, q))
}

// ExecuteTrade applies t to the portfolio and persists the result.
func (s *Session) ExecuteTrade(ctx context.Context, t Trade) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.portfolio.clone()
	tx, err := next.Execute(t)
	if err != nil {
		return Transaction{}, err
	}
	if err := s.persist(ctx, s.profile, next); err != nil {
		return Transaction{}, err
	}
	s.portfolio = next
	log.Printf("%s: %s %v %s at %v, cash %v", s.user, tx.Side, tx.Quantity, tx.Symbol, tx.Price, next.Cash())
	return tx, nil
}

// UpdatePrices marks the holdings to the given prices. Prices of catalog
// instruments are also remembered as quotes for later trades. It returns the
// number of holdings whose price changed.
func (s *Session) UpdatePrices(ctx context.Context, prices map[Symbol]Money) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.portfolio.clone()
	changed := next.UpdatePrices(prices)
	if changed > 0 {
		if err := s.persist(ctx, s.profile, next); err != nil {
			return 0, err
		}
		s.portfolio = next
	}
	for sym, price := range prices {
		if _, ok := s.catalog.Lookup(sym); ok && price.IsPositive() {
			s.quotes[sym] = price
		}
	}
	log.Printf("%s: marked %d prices, %d holdings changed", s.user, len(prices), changed)
	return changed, nil
}

// Refresh fetches prices from feed and marks the holdings to them.
func (s *Session) Refresh(ctx context.Context, feed PriceFeed) (int, error) {
	prices, err := feed.Prices(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch prices: %w", err)
	}
	return s.UpdatePrices(ctx, prices)
}
