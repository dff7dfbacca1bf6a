package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/pricefeed"
	"github.com/etnz/advisor/store"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test secret")

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	catalog := advisor.DefaultCatalog()
	return New(Options{
		Store:   store.NewMemory(),
		Catalog: catalog,
		Secret:  secret,
		Feed:    pricefeed.FromCatalog(catalog),
	}).Router()
}

// do sends a request as user, or anonymously when user is empty, and decodes
// the JSON response into out when it is not nil.
func do(t *testing.T, h http.Handler, user, method, path, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		token, err := NewToken(secret, user)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: invalid json %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

func TestAuth(t *testing.T) {
	h := newTestRouter(t)
	if code := do(t, h, "", http.MethodGet, "/portfolio", "", nil); code != http.StatusUnauthorized {
		t.Errorf("GET /portfolio without token = %d, want 401", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
	token, _ := NewToken([]byte("other secret"), "alice")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("GET /portfolio with a foreign token = %d, want 401", w.Code)
	}

	var catalog struct{ Instruments []advisor.Instrument }
	if code := do(t, h, "", http.MethodGet, "/catalog?q=gilt", "", &catalog); code != http.StatusOK {
		t.Errorf("GET /catalog = %d, want 200", code)
	}
	if len(catalog.Instruments) != 3 {
		t.Errorf("GET /catalog?q=gilt returned %d instruments, want 3", len(catalog.Instruments))
	}
}

func TestProfileAndRecommendations(t *testing.T) {
	h := newTestRouter(t)

	if code := do(t, h, "alice", http.MethodGet, "/recommendations", "", nil); code != http.StatusNotFound {
		t.Errorf("GET /recommendations before quiz = %d, want 404", code)
	}
	if code := do(t, h, "alice", http.MethodPost, "/profile", `{"age":25}`, nil); code != http.StatusBadRequest {
		t.Errorf("POST /profile incomplete = %d, want 400", code)
	}

	var resp struct {
		Profile  advisor.RiskProfile
		Category advisor.Category
	}
	body := `{"age":25,"income":3000000,"investmentHorizon":20,"riskTolerance":5,"financialGoals":["wealth"]}`
	if code := do(t, h, "alice", http.MethodPost, "/profile", body, &resp); code != http.StatusOK {
		t.Fatalf("POST /profile = %d, want 200", code)
	}
	if resp.Profile.Score != 94 || resp.Category != advisor.Aggressive {
		t.Errorf("profile = %+v, category %v", resp.Profile, resp.Category)
	}

	var recs advisor.Recommendations
	if code := do(t, h, "alice", http.MethodGet, "/recommendations", "", &recs); code != http.StatusOK {
		t.Fatalf("GET /recommendations = %d, want 200", code)
	}
	if len(recs.Equity) != 3 || recs.Equity[0].Symbol != "SBISMALLCAP" {
		t.Errorf("recommendations = %+v", recs)
	}

	// users are isolated
	if code := do(t, h, "bob", http.MethodGet, "/profile", "", nil); code != http.StatusNotFound {
		t.Errorf("GET /profile of bob = %d, want 404", code)
	}
}

func TestTrades(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		body string
		want int
	}{
		{`{"symbol":"gilt10y","type":"buy","quantity":10}`, http.StatusCreated},
		{`{"symbol":"GILT10Y","type":"sell","quantity":11}`, http.StatusConflict},
		{`{"symbol":"GILT10Y","type":"buy","quantity":100000}`, http.StatusConflict},
		{`{"symbol":"NOPE","type":"buy","quantity":1}`, http.StatusNotFound},
		{`{"symbol":"GILT10Y","type":"hold","quantity":1}`, http.StatusBadRequest},
		{`{"symbol":"GILT10Y","type":"buy","quantity":0}`, http.StatusBadRequest},
		{`{"symbol":"GILT10Y","type":"sell","quantity":5,"price":110}`, http.StatusCreated},
	}
	for _, tt := range tests {
		if code := do(t, h, "alice", http.MethodPost, "/trades", tt.body, nil); code != tt.want {
			t.Errorf("POST /trades %s = %d, want %d", tt.body, code, tt.want)
		}
	}

	var txs struct{ Transactions []advisor.Transaction }
	do(t, h, "alice", http.MethodGet, "/transactions", "", &txs)
	if len(txs.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs.Transactions))
	}
	if !txs.Transactions[1].Price.Equal(advisor.M(110)) {
		t.Errorf("sell price = %v, want 110", txs.Transactions[1].Price)
	}

	var updated struct{ Updated int }
	if code := do(t, h, "alice", http.MethodPost, "/prices", `{"GILT10Y": 120}`, &updated); code != http.StatusOK || updated.Updated != 1 {
		t.Errorf("POST /prices = %d, %+v", code, updated)
	}
	if code := do(t, h, "alice", http.MethodPost, "/prices/refresh", "", &updated); code != http.StatusOK || updated.Updated != 1 {
		t.Errorf("POST /prices/refresh = %d, %+v", code, updated)
	}

	var portfolio struct {
		Portfolio struct {
			Cash     float64
			Holdings []advisor.Holding
		}
	}
	do(t, h, "alice", http.MethodGet, "/portfolio", "", &portfolio)
	// 100000 - 10×102.50 + 5×110
	if portfolio.Portfolio.Cash != 99525 {
		t.Errorf("cash = %v, want 99525", portfolio.Portfolio.Cash)
	}
	if len(portfolio.Portfolio.Holdings) != 1 || !portfolio.Portfolio.Holdings[0].CurrentPrice.Equal(advisor.M(102.5)) {
		t.Errorf("holdings = %+v", portfolio.Portfolio.Holdings)
	}
}

func TestReport(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, "alice", http.MethodPost, "/trades", `{"symbol":"HDFCCORP","type":"buy","quantity":10}`, nil)

	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	token, _ := NewToken(secret, "alice")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /report = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"<h1>Portfolio</h1>", "<table>", "HDFCCORP"} {
		if !strings.Contains(body, want) {
			t.Errorf("report does not contain %q:\n%s", want, body)
		}
	}
}

// failingStore is a store whose saves fail with err.
type failingStore struct{ err error }

func (f failingStore) Load(ctx context.Context, user string) ([]byte, error) {
	return nil, advisor.ErrSnapshotNotFound
}
func (f failingStore) Save(ctx context.Context, user string, data []byte) error { return f.err }

func TestStatus_Store(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{advisor.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{errors.New("corrupted"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		gin.SetMode(gin.TestMode)
		h := New(Options{Store: failingStore{tt.err}, Catalog: advisor.DefaultCatalog(), Secret: secret}).Router()
		code := do(t, h, "alice", http.MethodPost, "/trades", `{"symbol":"GILT10Y","type":"buy","quantity":1}`, nil)
		if code != tt.want {
			t.Errorf("POST /trades with store error %v = %d, want %d", tt.err, code, tt.want)
		}
	}
}

func TestMarket(t *testing.T) {
	h := newTestRouter(t)
	var market advisor.Market
	if code := do(t, h, "", http.MethodGet, "/market", "", &market); code != http.StatusOK {
		t.Fatalf("GET /market = %d, want 200", code)
	}
	if len(market.Indices) != 4 || market.Indices[0].Name != "NIFTY 50" {
		t.Errorf("indices = %+v", market.Indices)
	}
	if len(market.TopStocks) != 8 || !market.TopStocks[0].Price.Equal(advisor.M(2720.50)) {
		t.Errorf("top stocks = %+v", market.TopStocks)
	}
}

func TestAuth_Expiration(t *testing.T) {
	h := newTestRouter(t)
	sign := func(claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
		if err != nil {
			t.Fatal(err)
		}
		return token
	}
	now := time.Now()
	tests := []struct {
		name  string
		token string
		want  int
	}{
		{"no expiration", sign(jwt.RegisteredClaims{Subject: "alice"}), http.StatusUnauthorized},
		{"expired", sign(jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}), http.StatusUnauthorized},
		{"valid", sign(jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute))}), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("GET /profile = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestRun(t *testing.T) {
	s := New(Options{Store: store.NewMemory(), Catalog: advisor.DefaultCatalog(), Secret: secret})
	if err := s.Run(context.Background(), "not an address"); err == nil {
		t.Error("Run() on an invalid address succeeded")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Run(ctx, "127.0.0.1:0"); err != nil {
		t.Errorf("Run() after cancel = %v, want nil", err)
	}
}

func TestSession_Shared(t *testing.T) {
	s := New(Options{Store: store.NewMemory(), Catalog: advisor.DefaultCatalog(), Secret: secret})
	h := s.Router()
	done := make(chan struct{})
	for range 4 {
		go func() {
			defer func() { done <- struct{}{} }()
			req := httptest.NewRequest(http.MethodGet, "/portfolio", nil)
			token, _ := NewToken(secret, "alice")
			req.Header.Set("Authorization", "Bearer "+token)
			h.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	for range 4 {
		<-done
	}
	if len(s.sessions) != 1 {
		t.Errorf("got %d sessions, want 1", len(s.sessions))
	}
}
