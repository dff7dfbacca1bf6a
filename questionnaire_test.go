package advisor

import (
	"errors"
	"slices"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		answers Answers
		want    int
	}{
		{
			name:    "balanced",
			answers: Answers{Age: 25, Income: 600000, InvestmentHorizon: 5, RiskTolerance: 3, FinancialGoals: []Goal{GoalWealth}},
			want:    66,
		},
		{
			name:    "cautious",
			answers: Answers{Age: 70, Income: 300000, InvestmentHorizon: 1, RiskTolerance: 1, FinancialGoals: []Goal{GoalEmergency}},
			want:    15,
		},
		{
			name:    "aggressive",
			answers: Answers{Age: 25, Income: 3000000, InvestmentHorizon: 20, RiskTolerance: 5, FinancialGoals: []Goal{GoalWealth}},
			want:    94,
		},
		{
			name:    "goals are averaged",
			answers: Answers{Age: 25, Income: 3000000, InvestmentHorizon: 20, RiskTolerance: 5, FinancialGoals: []Goal{GoalHome, GoalEducation, GoalTax}},
			want:    90,
		},
		{
			// partial answers are not rescaled
			name:    "partial",
			answers: Answers{Age: 25, InvestmentHorizon: 20},
			want:    50,
		},
		{
			name:    "unknown goal weighs nothing",
			answers: Answers{Age: 25, FinancialGoals: []Goal{"crypto"}},
			want:    20,
		},
		{
			name:    "out of table answers are ignored",
			answers: Answers{Age: 30, Income: 600000},
			want:    10,
		},
		{
			name:    "empty",
			answers: Answers{},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.answers); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	for _, age := range AgeOptions {
		for _, income := range IncomeOptions {
			for _, horizon := range HorizonOptions {
				for _, tolerance := range ToleranceOptions {
					for _, goal := range GoalOptions {
						a := Answers{age.Value, income.Value, horizon.Value, tolerance.Value, []Goal{goal.Value}}
						if s := Score(a); s < 0 || s > 100 {
							t.Fatalf("Score(%v) = %d, out of range", a, s)
						}
					}
				}
			}
		}
	}
}

func TestAnswers_Missing(t *testing.T) {
	a := Answers{Age: 35, RiskTolerance: 2}
	want := []string{"income", "investmentHorizon", "financialGoals"}
	if got := a.Missing(); !slices.Equal(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestParseGoals(t *testing.T) {
	got := ParseGoals(" Wealth, tax,,crypto ")
	want := []Goal{GoalWealth, GoalTax, "crypto"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseGoals() = %v, want %v", got, want)
	}
}

func TestNewRiskProfile(t *testing.T) {
	goals := []Goal{GoalWealth}
	p, err := NewRiskProfile(Answers{Age: 25, Income: 600000, InvestmentHorizon: 5, RiskTolerance: 3, FinancialGoals: goals})
	if err != nil {
		t.Fatalf("NewRiskProfile() error = %v", err)
	}
	if p.Score != 66 {
		t.Errorf("Score = %d, want 66", p.Score)
	}
	if want := (Allocation{60, 25, 15}); p.Allocation != want {
		t.Errorf("Allocation = %v, want %v", p.Allocation, want)
	}
	if p.Category() != Balanced {
		t.Errorf("Category() = %v, want %v", p.Category(), Balanced)
	}

	goals[0] = GoalTax
	if p.FinancialGoals[0] != GoalWealth {
		t.Errorf("profile shares the goals slice of the answers")
	}

	_, err = NewRiskProfile(Answers{Age: 25, Income: 600000, InvestmentHorizon: 5, RiskTolerance: 3})
	if !errors.Is(err, ErrIncompleteQuestionnaire) {
		t.Errorf("NewRiskProfile() error = %v, want %v", err, ErrIncompleteQuestionnaire)
	}
}

func TestNewRiskProfile_DuplicateGoals(t *testing.T) {
	a := Answers{Age: 25, Income: 600000, InvestmentHorizon: 5, RiskTolerance: 3}
	a.FinancialGoals = []Goal{GoalHome, GoalHome, GoalWealth}
	// counting home twice would give 63
	p, err := NewRiskProfile(a)
	if err != nil {
		t.Fatalf("NewRiskProfile() error = %v", err)
	}
	if p.Score != 64 {
		t.Errorf("Score = %d, want 64", p.Score)
	}
	if want := []Goal{GoalHome, GoalWealth}; !slices.Equal(p.FinancialGoals, want) {
		t.Errorf("FinancialGoals = %v, want %v", p.FinancialGoals, want)
	}
}
