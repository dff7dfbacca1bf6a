package advisor

// Allocation is a target split of a portfolio across asset classes, in
// percent. The three shares always sum to 100.
type Allocation struct {
	Equity     int `json:"equity"`
	Debt       int `json:"debt"`
	Government int `json:"government"`
}

// Allocate maps a risk score to its target allocation.
//
// Band upper bounds are inclusive: a score of exactly 30, 50 or 70 gets the
// more conservative mix.
func Allocate(score int) Allocation {
	switch {
	case score <= 30:
		return Allocation{Equity: 20, Debt: 50, Government: 30}
	case score <= 50:
		return Allocation{Equity: 40, Debt: 40, Government: 20}
	case score <= 70:
		return Allocation{Equity: 60, Debt: 25, Government: 15}
	default:
		return Allocation{Equity: 80, Debt: 15, Government: 5}
	}
}

// Sum returns the total of the three shares.
func (a Allocation) Sum() int { return a.Equity + a.Debt + a.Government }

// Of returns the share of class c.
func (a Allocation) Of(c AssetClass) int {
	switch c {
	case Equity:
		return a.Equity
	case Debt:
		return a.Debt
	case Government:
		return a.Government
	}
	return 0
}

// Category is the investor profile name associated with a score band.
type Category string

const (
	Conservative Category = "Conservative"
	Moderate     Category = "Moderate"
	Balanced     Category = "Balanced"
	Aggressive   Category = "Aggressive"
)

// CategoryOf returns the investor category for a score, using the same bands
// as Allocate.
func CategoryOf(score int) Category {
	switch {
	case score <= 30:
		return Conservative
	case score <= 50:
		return Moderate
	case score <= 70:
		return Balanced
	default:
		return Aggressive
	}
}
