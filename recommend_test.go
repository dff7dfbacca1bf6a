package advisor

import (
	"slices"
	"testing"
)

func symbols(instruments []Instrument) []Symbol {
	var syms []Symbol
	for _, inst := range instruments {
		syms = append(syms, inst.Symbol)
	}
	return syms
}

func TestRecommend(t *testing.T) {
	catalog := DefaultCatalog()
	debt := []Symbol{"AXISCREDIT", "UTILTDURATION"}
	government := []Symbol{"GILT10Y", "ICICIGILT"}

	tests := []struct {
		name   string
		score  int
		equity []Symbol
	}{
		// no equity fund of the catalog is rated low, see TestRecommend_EquityGates
		{"conservative", 25, nil},
		{"cautious sorts by volatility", 35, []Symbol{"NIFTY50ETF", "HDFCTOP100", "ICICIPRU"}},
		{"moderate sorts by return", 45, []Symbol{"ICICIPRU", "HDFCTOP100", "NIFTY50ETF"}},
		{"aggressive", 80, []Symbol{"SBISMALLCAP", "MOTILALMIDCAP", "ICICIPRU"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.score, catalog)
			if s := symbols(got.Equity); !slices.Equal(s, tt.equity) {
				t.Errorf("Equity = %v, want %v", s, tt.equity)
			}
			if s := symbols(got.For(Debt)); !slices.Equal(s, debt) {
				t.Errorf("Debt = %v, want %v", s, debt)
			}
			if s := symbols(got.For(Government)); !slices.Equal(s, government) {
				t.Errorf("Government = %v, want %v", s, government)
			}
		})
	}
}

func TestRecommend_StableTies(t *testing.T) {
	mk := func(sym Symbol, ret Percent) Instrument {
		return Instrument{Symbol: sym, Name: string(sym), Class: Debt, ThreeYearReturn: ret, CurrentPrice: M(10), Risk: Low}
	}
	catalog, err := NewCatalog(mk("B", 7), mk("A", 7), mk("C", 8))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	got := symbols(Recommend(50, catalog).Debt)
	want := []Symbol{"C", "B"}
	if !slices.Equal(got, want) {
		t.Errorf("Debt = %v, want %v", got, want)
	}
}

func TestRecommend_EquityGates(t *testing.T) {
	mk := func(sym Symbol, risk RiskLevel, ret, vol Percent) Instrument {
		return Instrument{Symbol: sym, Name: string(sym), Class: Equity, Risk: risk, ThreeYearReturn: ret, Volatility: vol, CurrentPrice: M(10)}
	}
	catalog, err := NewCatalog(
		mk("LOW1", Low, 6, 5),
		mk("HIGH1", High, 20, 25),
		mk("MED1", Medium, 10, 12),
		mk("LOW2", Low, 7, 4),
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	tests := []struct {
		score int
		want  []Symbol
	}{
		{0, []Symbol{"LOW2", "LOW1"}},
		{30, []Symbol{"LOW2", "LOW1"}},          // low only
		{31, []Symbol{"LOW2", "LOW1", "MED1"}},  // medium admitted, by volatility
		{40, []Symbol{"LOW2", "LOW1", "MED1"}},  // still by volatility
		{41, []Symbol{"MED1", "LOW2", "LOW1"}},  // by return
		{50, []Symbol{"MED1", "LOW2", "LOW1"}},  // high still excluded
		{51, []Symbol{"HIGH1", "MED1", "LOW2"}}, // everything
		{100, []Symbol{"HIGH1", "MED1", "LOW2"}},
	}
	for _, tt := range tests {
		if got := symbols(Recommend(tt.score, catalog).Equity); !slices.Equal(got, tt.want) {
			t.Errorf("Recommend(%d).Equity = %v, want %v", tt.score, got, tt.want)
		}
	}
}
