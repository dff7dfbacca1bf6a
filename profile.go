package advisor

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrIncompleteQuestionnaire is returned when a risk profile is requested
// before every question has been answered.
var ErrIncompleteQuestionnaire = errors.New("incomplete questionnaire")

// RiskProfile is the outcome of a completed questionnaire.
//
// A profile is never modified: retaking the questionnaire builds a new one.
type RiskProfile struct {
	Age               int        `json:"age"`
	Income            int        `json:"income"`
	InvestmentHorizon int        `json:"investmentHorizon"`
	RiskTolerance     int        `json:"riskTolerance"`
	FinancialGoals    []Goal     `json:"financialGoals"`
	Score             int        `json:"score"`
	Allocation        Allocation `json:"allocation"`
}

// NewRiskProfile scores a complete set of answers.
func NewRiskProfile(a Answers) (RiskProfile, error) {
	if missing := a.Missing(); len(missing) > 0 {
		return RiskProfile{}, fmt.Errorf("%w: missing %s", ErrIncompleteQuestionnaire, strings.Join(missing, ", "))
	}
	a.FinancialGoals = uniqueGoals(a.FinancialGoals)
	score := Score(a)
	return RiskProfile{
		Age:               a.Age,
		Income:            a.Income,
		InvestmentHorizon: a.InvestmentHorizon,
		RiskTolerance:     a.RiskTolerance,
		FinancialGoals:    a.FinancialGoals,
		Score:             score,
		Allocation:        Allocate(score),
	}, nil
}

// uniqueGoals returns a copy of goals without repetitions, in first seen order.
func uniqueGoals(goals []Goal) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	return out
}

// Category returns the investor category of the profile.
func (p RiskProfile) Category() Category { return CategoryOf(p.Score) }

// Answers returns the answers the profile was built from.
func (p RiskProfile) Answers() Answers {
	return Answers{
		Age:               p.Age,
		Income:            p.Income,
		InvestmentHorizon: p.InvestmentHorizon,
		RiskTolerance:     p.RiskTolerance,
		FinancialGoals:    slices.Clone(p.FinancialGoals),
	}
}

// validate checks the invariants of a decoded profile.
func (p RiskProfile) validate() error {
	if p.Score < 0 || p.Score > 100 {
		return fmt.Errorf("score %d out of range", p.Score)
	}
	if len(p.FinancialGoals) == 0 {
		return errors.New("no financial goals")
	}
	if sum := p.Allocation.Sum(); sum != 100 {
		return fmt.Errorf("allocation sums to %d", sum)
	}
	return nil
}
