package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/renderer"
	"github.com/google/subcommands"
)

// --- Quiz Command ---

type quizCmd struct {
	age       int
	income    int
	horizon   int
	tolerance int
	goals     string
}

func (*quizCmd) Name() string     { return "quiz" }
func (*quizCmd) Synopsis() string { return "take the risk assessment questionnaire" }
func (*quizCmd) Usage() string {
	return `ias quiz -age <age> -income <income> -horizon <years> -tolerance <1-5> -goals <goal,...>

  Scores the answers and replaces the risk profile.
  Without any flag, lists the questions and the accepted values.
`
}

func (c *quizCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.age, "age", 0, "Age bucket: 25, 35, 45, 55, 65 or 70")
	f.IntVar(&c.income, "income", 0, "Annual income bracket in rupees, e.g. 600000")
	f.IntVar(&c.horizon, "horizon", 0, "Investment horizon in years: 1, 3, 5, 10, 15 or 20")
	f.IntVar(&c.tolerance, "tolerance", 0, "Reaction to volatility, from 1 (sell) to 5 (invest more)")
	f.StringVar(&c.goals, "goals", "", "Comma separated goals: retirement, wealth, education, home, emergency, tax")
}

func (c *quizCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NFlag() == 0 {
		printMarkdown(renderer.RenderQuiz())
		return subcommands.ExitSuccess
	}
	answers := advisor.Answers{
		Age:               c.age,
		Income:            c.income,
		InvestmentHorizon: c.horizon,
		RiskTolerance:     c.tolerance,
		FinancialGoals:    advisor.ParseGoals(c.goals),
	}

	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	profile, err := sess.SubmitAnswers(ctx, answers)
	if errors.Is(err, advisor.ErrIncompleteQuestionnaire) {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		return fail("Error saving risk profile", err)
	}
	printMarkdown(renderer.RenderProfile(profile))
	return subcommands.ExitSuccess
}

// --- Profile Command ---

type profileCmd struct{}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "display the risk profile" }
func (*profileCmd) Usage() string {
	return `ias profile

  Displays the risk score, the investor category and the target allocation.
`
}
func (*profileCmd) SetFlags(f *flag.FlagSet) {}

func (*profileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	profile, ok := sess.Profile()
	if !ok {
		fmt.Fprintln(os.Stderr, "No risk profile yet, take the quiz first: ias quiz")
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderProfile(profile))
	return subcommands.ExitSuccess
}

// --- Recommend Command ---

type recommendCmd struct {
	score int
}

func (*recommendCmd) Name() string     { return "recommend" }
func (*recommendCmd) Synopsis() string { return "recommend instruments for the risk profile" }
func (*recommendCmd) Usage() string {
	return `ias recommend [-score <0-100>]

  Lists the instruments recommended for the risk profile, or for an explicit score.
`
}

func (c *recommendCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.score, "score", -1, "Risk score to use instead of the profile one")
}

func (c *recommendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.score >= 0 {
		if c.score > 100 {
			fmt.Fprintln(os.Stderr, "Error: score must be between 0 and 100")
			return subcommands.ExitUsageError
		}
		profile := advisor.RiskProfile{Score: c.score, Allocation: advisor.Allocate(c.score)}
		catalog, err := LoadCatalog(Config())
		if err != nil {
			return fail("Error loading catalog", err)
		}
		printMarkdown(renderer.RenderRecommendations(profile, advisor.Recommend(c.score, catalog)))
		return subcommands.ExitSuccess
	}

	sess, err := OpenSession(ctx)
	if err != nil {
		return fail("Error opening session", err)
	}
	recs, err := sess.Recommendations()
	if errors.Is(err, advisor.ErrNoRiskProfile) {
		fmt.Fprintln(os.Stderr, "No risk profile yet, take the quiz first: ias quiz")
		return subcommands.ExitFailure
	}
	if err != nil {
		return fail("Error computing recommendations", err)
	}
	profile, _ := sess.Profile()
	printMarkdown(renderer.RenderRecommendations(profile, recs))
	return subcommands.ExitSuccess
}
