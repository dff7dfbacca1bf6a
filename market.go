package advisor

import "slices"

// MarketIndex is the level of a stock market index and its daily move.
type MarketIndex struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"` // in index points
	Change        float64 `json:"change"`
	ChangePercent Percent `json:"changePercent"`
}

// StockQuote is the price of a listed stock and its daily move.
type StockQuote struct {
	Symbol        Symbol  `json:"symbol"`
	Name          string  `json:"name"`
	Price         Money   `json:"price"`
	Change        Money   `json:"change"`
	ChangePercent Percent `json:"changePercent"`
}

// SectorPerformance is the year to date performance of a market sector.
type SectorPerformance struct {
	Sector      string  `json:"sector"`
	Performance Percent `json:"performance"`
}

// Headline is a market news item.
type Headline struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Published string `json:"published"` // relative, like "2 hours ago"
}

// Market is a snapshot of the Indian market, for reference only: it never
// prices the catalog instruments.
type Market struct {
	Indices   []MarketIndex       `json:"indices"`
	TopStocks []StockQuote        `json:"topStocks"`
	Sectors   []SectorPerformance `json:"sectors"`
	Headlines []Headline          `json:"headlines"`
}

// Gainers returns the top stocks that went up, best first.
func (m Market) Gainers() []StockQuote {
	var up []StockQuote
	for _, s := range m.TopStocks {
		if s.ChangePercent > 0 {
			up = append(up, s)
		}
	}
	slices.SortStableFunc(up, func(a, b StockQuote) int {
		switch {
		case a.ChangePercent > b.ChangePercent:
			return -1
		case a.ChangePercent < b.ChangePercent:
			return 1
		}
		return 0
	})
	return up
}

// DefaultMarket returns the built-in market snapshot.
func DefaultMarket() Market {
	return Market{
		Indices:   slices.Clone(defaultIndices),
		TopStocks: slices.Clone(defaultTopStocks),
		Sectors:   slices.Clone(defaultSectors),
		Headlines: slices.Clone(defaultHeadlines),
	}
}

var defaultIndices = []MarketIndex{
	{"NIFTY 50", 21875.70, 2.45, 1.1},
	{"SENSEX", 72273.90, 89.83, 1.2},
	{"NIFTY BANK", 48251.35, -156.20, -0.3},
	{"NIFTY IT", 35420.15, 421.75, 1.2},
}

var defaultTopStocks = []StockQuote{
	{"RELIANCE", "Reliance Industries", M(2720.50), M(45.20), 1.69},
	{"TCS", "Tata Consultancy Services", M(4020.75), M(85.30), 2.17},
	{"HDFCBANK", "HDFC Bank", M(1720.25), M(28.50), 1.68},
	{"INFY", "Infosys", M(1620.80), M(42.15), 2.67},
	{"ICICIBANK", "ICICI Bank", M(1150.40), M(-12.30), -1.06},
	{"HINDUNILVR", "Hindustan Unilever", M(2580.90), M(18.75), 0.73},
	{"ITC", "ITC Limited", M(485.60), M(-3.20), -0.65},
	{"KOTAKBANK", "Kotak Mahindra Bank", M(1890.30), M(22.80), 1.22},
}

var defaultSectors = []SectorPerformance{
	{"IT", 12.5},
	{"Banking", 8.2},
	{"Energy", 15.8},
	{"Healthcare", 6.4},
	{"Auto", -2.1},
	{"FMCG", 4.7},
}

var defaultHeadlines = []Headline{
	{
		"RBI Maintains Repo Rate at 6.5%, Focuses on Inflation Control",
		"The Reserve Bank of India kept the repo rate unchanged, signaling a cautious approach to monetary policy.",
		"2 hours ago",
	},
	{
		"Indian IT Sector Shows Strong Q3 Results",
		"Major IT companies report better-than-expected quarterly earnings driven by AI and cloud services.",
		"4 hours ago",
	},
	{
		"FII Inflows Boost Market Sentiment in January",
		"Foreign institutional investors have pumped ₹12,000 crores into Indian equities this month.",
		"6 hours ago",
	},
	{
		"Green Bonds Gain Traction Among Indian Investors",
		"ESG-focused investments see increased adoption as sustainability becomes a key investment theme.",
		"1 day ago",
	},
}
