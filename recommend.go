package advisor

import (
	"cmp"
	"slices"
)

// Recommendations lists candidate instruments per asset class, best first.
type Recommendations struct {
	Equity     []Instrument `json:"equity"`
	Debt       []Instrument `json:"debt"`
	Government []Instrument `json:"government"`
}

// For returns the recommendations of class c.
func (r Recommendations) For(c AssetClass) []Instrument {
	switch c {
	case Equity:
		return r.Equity
	case Debt:
		return r.Debt
	case Government:
		return r.Government
	}
	return nil
}

// Recommend selects up to three equity, two debt and two government
// instruments from the catalog for a risk score.
//
// Equity eligibility depends on the score: up to 30 only low risk funds,
// up to 50 low and medium, above that everything. Cautious investors (score
// up to 40) see the least volatile funds first, others the best performing.
// Debt and government instruments are always ordered by return.
//
// Sorts are stable so ties keep the catalog order.
func Recommend(score int, c *Catalog) Recommendations {
	equity := filter(c, func(inst Instrument) bool {
		if inst.Class != Equity {
			return false
		}
		switch {
		case score <= 30:
			return inst.Risk == Low
		case score <= 50:
			return inst.Risk == Low || inst.Risk == Medium
		default:
			return true
		}
	})
	if score <= 40 {
		slices.SortStableFunc(equity, byVolatility)
	} else {
		slices.SortStableFunc(equity, byReturnDesc)
	}

	debt := filter(c, func(inst Instrument) bool { return inst.Class == Debt })
	slices.SortStableFunc(debt, byReturnDesc)

	government := filter(c, func(inst Instrument) bool { return inst.Class == Government })
	slices.SortStableFunc(government, byReturnDesc)

	return Recommendations{
		Equity:     head(equity, 3),
		Debt:       head(debt, 2),
		Government: head(government, 2),
	}
}

func filter(c *Catalog, keep func(Instrument) bool) []Instrument {
	var out []Instrument
	for inst := range c.All() {
		if keep(inst) {
			out = append(out, inst)
		}
	}
	return out
}

func byVolatility(a, b Instrument) int { return cmp.Compare(a.Volatility, b.Volatility) }

func byReturnDesc(a, b Instrument) int { return cmp.Compare(b.ThreeYearReturn, a.ThreeYearReturn) }

func head(xs []Instrument, n int) []Instrument {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}
