package advisor

import (
	"math"
	"strings"
)

// Goal is a financial goal tag of the questionnaire.
type Goal string

const (
	GoalRetirement Goal = "retirement"
	GoalWealth     Goal = "wealth"
	GoalEducation  Goal = "education"
	GoalHome       Goal = "home"
	GoalEmergency  Goal = "emergency"
	GoalTax        Goal = "tax"
)

// Option is one possible answer to a question and its weight in the score.
type Option[T comparable] struct {
	Value  T
	Label  string
	Weight float64
}

// Age buckets are identified by their upper bound, except the last one.
var AgeOptions = []Option[int]{
	{25, "Under 25", 0.8},
	{35, "25-35", 0.9},
	{45, "36-45", 0.7},
	{55, "46-55", 0.5},
	{65, "56-65", 0.3},
	{70, "Above 65", 0.1},
}

// Annual household income brackets, in rupees.
var IncomeOptions = []Option[int]{
	{300000, "Below ₹3 Lakhs", 0.3},
	{600000, "₹3-6 Lakhs", 0.5},
	{1000000, "₹6-10 Lakhs", 0.7},
	{1500000, "₹10-15 Lakhs", 0.8},
	{2000000, "₹15-20 Lakhs", 0.9},
	{3000000, "Above ₹20 Lakhs", 1.0},
}

// Investment horizon buckets, in years.
var HorizonOptions = []Option[int]{
	{1, "Less than 1 year", 0.1},
	{3, "1-3 years", 0.3},
	{5, "3-5 years", 0.6},
	{10, "5-10 years", 0.8},
	{15, "10-15 years", 0.9},
	{20, "More than 15 years", 1.0},
}

// Reaction to market volatility, from 1 (panic) to 5 (buy the dip).
var ToleranceOptions = []Option[int]{
	{1, "I panic and want to sell immediately", 0.1},
	{2, "I feel uncomfortable but hold my investments", 0.3},
	{3, "I remain neutral and stick to my plan", 0.6},
	{4, "I see it as a buying opportunity", 0.8},
	{5, "I actively invest more during market downturns", 1.0},
}

// Financial goals. Several can be selected, the score uses their mean weight.
var GoalOptions = []Option[Goal]{
	{GoalRetirement, "Retirement Planning", 0.7},
	{GoalWealth, "Wealth Creation", 0.9},
	{GoalEducation, "Children's Education", 0.6},
	{GoalHome, "Home Purchase", 0.5},
	{GoalEmergency, "Emergency Fund", 0.2},
	{GoalTax, "Tax Saving", 0.4},
}

// Category weights, they sum to 100.
const (
	ageWeight       = 25
	incomeWeight    = 20
	horizonWeight   = 30
	toleranceWeight = 15
	goalsWeight     = 10
)

// Question describes a questionnaire entry for presentation layers.
type Question struct {
	ID       string
	Title    string
	Subtitle string
	Multiple bool // several answers can be selected
}

// Questions lists the questionnaire in the order it is asked.
var Questions = []Question{
	{"age", "What is your age?", "Age helps determine your investment timeline and risk capacity", false},
	{"income", "What is your annual household income?", "Income helps assess your investment capacity", false},
	{"investmentHorizon", "What is your investment time horizon?", "Longer investment periods generally allow for higher risk tolerance", false},
	{"riskTolerance", "How do you react to market volatility?", "Your emotional response to market fluctuations", false},
	{"financialGoals", "What are your primary financial goals?", "Select all that apply", true},
}

// Answers holds the questionnaire answers. The zero value of a field means
// the question was not answered.
type Answers struct {
	Age               int    `json:"age"`
	Income            int    `json:"income"`
	InvestmentHorizon int    `json:"investmentHorizon"`
	RiskTolerance     int    `json:"riskTolerance"`
	FinancialGoals    []Goal `json:"financialGoals"`
}

// Missing returns the ids of the unanswered questions, in questionnaire order.
func (a Answers) Missing() []string {
	var missing []string
	if _, ok := lookup(AgeOptions, a.Age); !ok {
		missing = append(missing, "age")
	}
	if _, ok := lookup(IncomeOptions, a.Income); !ok {
		missing = append(missing, "income")
	}
	if _, ok := lookup(HorizonOptions, a.InvestmentHorizon); !ok {
		missing = append(missing, "investmentHorizon")
	}
	if _, ok := lookup(ToleranceOptions, a.RiskTolerance); !ok {
		missing = append(missing, "riskTolerance")
	}
	if len(a.FinancialGoals) == 0 {
		missing = append(missing, "financialGoals")
	}
	return missing
}

// ParseGoals parses a comma separated list of goals. Unknown goals are kept:
// they weigh nothing in the score.
func ParseGoals(s string) []Goal {
	var goals []Goal
	for _, g := range strings.Split(s, ",") {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			goals = append(goals, Goal(g))
		}
	}
	return goals
}

// Score converts answers into a risk score between 0 and 100.
//
// Each answered category adds categoryWeight × optionWeight. The total is not
// rescaled when some categories are unanswered, so a partial questionnaire
// yields an under-weighted score. Callers that need a meaningful score must
// check Missing first, as NewRiskProfile does.
func Score(a Answers) int {
	var total float64
	var counted int

	if w, ok := lookup(AgeOptions, a.Age); ok {
		total += w * ageWeight
		counted += ageWeight
	}
	if w, ok := lookup(IncomeOptions, a.Income); ok {
		total += w * incomeWeight
		counted += incomeWeight
	}
	if w, ok := lookup(HorizonOptions, a.InvestmentHorizon); ok {
		total += w * horizonWeight
		counted += horizonWeight
	}
	if w, ok := lookup(ToleranceOptions, a.RiskTolerance); ok {
		total += w * toleranceWeight
		counted += toleranceWeight
	}
	if len(a.FinancialGoals) > 0 {
		var sum float64
		for _, g := range a.FinancialGoals {
			w, _ := lookup(GoalOptions, g)
			sum += w
		}
		total += sum / float64(len(a.FinancialGoals)) * goalsWeight
		counted += goalsWeight
	}

	if counted == 0 {
		return 0
	}
	return int(math.Round(total))
}

// lookup returns the weight of the option with value v.
func lookup[T comparable](options []Option[T], v T) (float64, bool) {
	for _, o := range options {
		if o.Value == v {
			return o.Weight, true
		}
	}
	return 0, false
}
