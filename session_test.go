package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// memStore is a Store keeping snapshots in memory. When fail is set, Save
// returns it.
type memStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	saves int
	fail  error
}

func (m *memStore) Load(ctx context.Context, user string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[user]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return b, nil
}

func (m *memStore) Save(ctx context.Context, user string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[user] = data
	m.saves++
	return nil
}

var completeAnswers = Answers{Age: 25, Income: 600000, InvestmentHorizon: 5, RiskTolerance: 3, FinancialGoals: []Goal{GoalWealth}}

func openTestSession(t *testing.T, store Store) *Session {
	t.Helper()
	s, err := Open(context.Background(), store, "alice", DefaultCatalog(), WithClock(testClock()), WithIDGenerator(testIDs()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return s
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	s := openTestSession(t, store)

	if _, err := s.Recommendations(); !errors.Is(err, ErrNoRiskProfile) {
		t.Errorf("Recommendations() error = %v, want %v", err, ErrNoRiskProfile)
	}
	if store.saves != 0 {
		t.Errorf("Open() saved %d snapshots", store.saves)
	}

	if _, err := s.SubmitAnswers(ctx, Answers{Age: 25}); !errors.Is(err, ErrIncompleteQuestionnaire) {
		t.Errorf("SubmitAnswers() error = %v, want %v", err, ErrIncompleteQuestionnaire)
	}
	profile, err := s.SubmitAnswers(ctx, completeAnswers)
	if err != nil {
		t.Fatalf("SubmitAnswers() error = %v", err)
	}
	recs, err := s.Recommendations()
	if err != nil {
		t.Fatalf("Recommendations() error = %v", err)
	}
	if len(recs.Equity) != 3 {
		t.Errorf("len(Equity) = %d, want 3", len(recs.Equity))
	}

	if _, err := s.Buy(ctx, "gilt10y", 10); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if _, err := s.Sell(ctx, "GILT10Y", 11); !errors.Is(err, ErrInsufficientHoldings) {
		t.Errorf("Sell() error = %v, want %v", err, ErrInsufficientHoldings)
	}
	if _, err := s.Buy(ctx, "NOPE", 1); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Buy() error = %v, want %v", err, ErrUnknownSymbol)
	}
	if store.saves != 2 {
		t.Errorf("saves = %d, want 2", store.saves)
	}

	// marked prices are used by later trades
	if n, err := s.UpdatePrices(ctx, map[Symbol]Money{"GILT10Y": M(110)}); err != nil || n != 1 {
		t.Fatalf("UpdatePrices() = %d, %v", n, err)
	}
	tx, err := s.Sell(ctx, "GILT10Y", 10)
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if !tx.Price.Equal(M(110)) {
		t.Errorf("sell price = %v, want 110", tx.Price)
	}
	// 100000 - 10×102.50 + 10×110
	if got := s.Portfolio().Cash(); !got.Equal(M(100075)) {
		t.Errorf("Cash() = %v, want 100075", got)
	}

	// reopen from the store
	reopened := openTestSession(t, store)
	got, ok := reopened.Profile()
	if !ok || got.Score != profile.Score {
		t.Errorf("Profile() = %+v, %v, want %+v", got, ok, profile)
	}
	if reopened.Portfolio().Len() != 2 {
		t.Errorf("Len() = %d, want 2", reopened.Portfolio().Len())
	}
}

func TestSession_StartingCash(t *testing.T) {
	s, err := Open(context.Background(), &memStore{}, "bob", DefaultCatalog(), WithStartingCash(M(5000)))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Portfolio().Cash(); !got.Equal(M(5000)) {
		t.Errorf("Cash() = %v, want 5000", got)
	}
	if _, err := Open(context.Background(), &memStore{}, "", DefaultCatalog()); err == nil {
		t.Error("Open() without user succeeded")
	}
	if _, err := Open(context.Background(), &memStore{}, "bob", DefaultCatalog(), WithStartingCash(M(-5))); err == nil {
		t.Error("Open() with negative starting cash succeeded")
	}
}

func TestSession_FailedSave(t *testing.T) {
	ctx := context.Background()
	store := &memStore{}
	s := openTestSession(t, store)
	if _, err := s.Buy(ctx, "GILT10Y", 10); err != nil {
		t.Fatal(err)
	}

	store.fail = ErrStoreUnavailable
	_, err := s.Buy(ctx, "GILT10Y", 10)
	if !IsRetryable(err) {
		t.Errorf("Buy() error = %v, want retryable", err)
	}
	if _, err := s.SubmitAnswers(ctx, completeAnswers); !IsRetryable(err) {
		t.Errorf("SubmitAnswers() error = %v, want retryable", err)
	}
	if _, ok := s.Profile(); ok {
		t.Error("profile set despite failed save")
	}

	p := s.Portfolio()
	if h, _ := p.Holding("GILT10Y"); h.Quantity != 10 {
		t.Errorf("Quantity = %v, want 10", h.Quantity)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}

	store.fail = errors.New("disk full")
	if _, err := s.Sell(ctx, "GILT10Y", 1); err == nil || IsRetryable(err) {
		t.Errorf("Sell() error = %v, want fatal", err)
	}
}

type staticFeed map[Symbol]Money

func (f staticFeed) Prices(ctx context.Context) (map[Symbol]Money, error) { return f, nil }

func TestSession_Refresh(t *testing.T) {
	ctx := context.Background()
	s := openTestSession(t, &memStore{})
	s.Buy(ctx, "HDFCCORP", 100)

	n, err := s.Refresh(ctx, staticFeed{"HDFCCORP": M(23), "ICICIGILT": M(19)})
	if err != nil || n != 1 {
		t.Fatalf("Refresh() = %d, %v, want 1", n, err)
	}
	if inst, _ := s.Quote("icicigilt"); !inst.CurrentPrice.Equal(M(19)) {
		t.Errorf("Quote(ICICIGILT) price = %v, want 19", inst.CurrentPrice)
	}
}
