// Package renderer renders the advisor data as markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/advisor"
)

//go:embed templates/*.md
var templates embed.FS

var classTitles = map[advisor.AssetClass]string{
	advisor.Equity:     "Equity",
	advisor.Debt:       "Debt",
	advisor.Government: "Government Securities",
}

// label returns the label of the option with value v, or v itself.
func label[T comparable](options []advisor.Option[T], v T) string {
	for _, o := range options {
		if o.Value == v {
			return o.Label
		}
	}
	return fmt.Sprint(v)
}

var funcs = template.FuncMap{
	"ageLabel":       func(v int) string { return label(advisor.AgeOptions, v) },
	"incomeLabel":    func(v int) string { return label(advisor.IncomeOptions, v) },
	"horizonLabel":   func(v int) string { return label(advisor.HorizonOptions, v) },
	"toleranceLabel": func(v int) string { return label(advisor.ToleranceOptions, v) },
	"goalLabel":      func(v advisor.Goal) string { return label(advisor.GoalOptions, v) },
}

// RenderProfile renders a risk profile.
func RenderProfile(p advisor.RiskProfile) string {
	return renderTemplate("profile", "profile.md", profilePartials(), p)
}

func profilePartials() map[string]string {
	return map[string]string{
		"profile_title":      "profile_title.md",
		"profile_allocation": "profile_allocation.md",
		"profile_answers":    "profile_answers.md",
	}
}

type section struct {
	Title       string
	Share       int // target share of the class, 0 when unknown
	Instruments []advisor.Instrument
}

// RenderRecommendations renders the recommendations for a risk profile.
func RenderRecommendations(p advisor.RiskProfile, r advisor.Recommendations) string {
	data := struct{ Sections []section }{}
	for _, c := range advisor.AssetClasses {
		data.Sections = append(data.Sections, section{
			Title:       classTitles[c],
			Share:       p.Allocation.Of(c),
			Instruments: r.For(c),
		})
	}
	return renderTemplate("recommendations", "recommendations.md", nil, data)
}

type classRow struct {
	Title  string
	Weight advisor.Percent
	Target int
}

type portfolioView struct {
	Portfolio *advisor.Portfolio
	Target    *advisor.Allocation
	Classes   []classRow
}

func newPortfolioView(p *advisor.Portfolio, target *advisor.Allocation) portfolioView {
	v := portfolioView{Portfolio: p, Target: target}
	weights := p.ClassWeights()
	for _, c := range advisor.AssetClasses {
		row := classRow{Title: classTitles[c], Weight: weights[c]}
		if target != nil {
			row.Target = target.Of(c)
		}
		v.Classes = append(v.Classes, row)
	}
	return v
}

func portfolioPartials() map[string]string {
	return map[string]string{
		"portfolio_summary":  "portfolio_summary.md",
		"portfolio_holdings": "portfolio_holdings.md",
		"portfolio_classes":  "portfolio_classes.md",
	}
}

// RenderPortfolio renders the valuation and holdings of a portfolio. When
// target is not nil, the current allocation is compared to it.
func RenderPortfolio(p *advisor.Portfolio, target *advisor.Allocation) string {
	return renderTemplate("portfolio", "portfolio.md", portfolioPartials(), newPortfolioView(p, target))
}

// RenderTransactions renders the transaction log, most recent first.
func RenderTransactions(p *advisor.Portfolio) string {
	txs := slices.Collect(p.Transactions())
	slices.Reverse(txs)
	return renderTemplate("transactions", "transactions.md", nil, txs)
}

// RenderCatalog renders a list of instruments.
func RenderCatalog(instruments []advisor.Instrument) string {
	return renderTemplate("catalog", "catalog.md", nil, instruments)
}

// RenderMarket renders a market snapshot.
func RenderMarket(m advisor.Market) string {
	return renderTemplate("market", "market.md", nil, m)
}

type choice struct {
	Label string
	Value string
}

type question struct {
	advisor.Question
	Options []choice
}

func choices[T comparable](options []advisor.Option[T]) []choice {
	var cs []choice
	for _, o := range options {
		cs = append(cs, choice{Label: o.Label, Value: fmt.Sprint(o.Value)})
	}
	return cs
}

// RenderQuiz renders the questionnaire with the accepted answer values.
func RenderQuiz() string {
	options := map[string][]choice{
		"age":               choices(advisor.AgeOptions),
		"income":            choices(advisor.IncomeOptions),
		"investmentHorizon": choices(advisor.HorizonOptions),
		"riskTolerance":     choices(advisor.ToleranceOptions),
		"financialGoals":    choices(advisor.GoalOptions),
	}
	var qs []question
	for _, q := range advisor.Questions {
		qs = append(qs, question{Question: q, Options: options[q.ID]})
	}
	return renderTemplate("quiz", "quiz.md", nil, qs)
}

// RenderReport renders the profile summary, if any, and the portfolio.
func RenderReport(profile *advisor.RiskProfile, p *advisor.Portfolio) string {
	var target *advisor.Allocation
	if profile != nil {
		target = &profile.Allocation
	}
	data := struct {
		Profile   *advisor.RiskProfile
		Portfolio portfolioView
	}{profile, newPortfolioView(p, target)}

	partials := profilePartials()
	for name, file := range portfolioPartials() {
		partials[name] = file
	}
	return renderTemplate("report", "report.md", partials, data)
}

// Transaction renders a transaction to a string.
func Transaction(tx advisor.Transaction) string {
	switch tx.Side {
	case advisor.Buy:
		return fmt.Sprintf("Bought %v of %s at %v for %v", tx.Quantity, tx.Symbol, tx.Price, tx.Amount())
	case advisor.Sell:
		return fmt.Sprintf("Sold %v of %s at %v for %v", tx.Quantity, tx.Symbol, tx.Price, tx.Amount())
	default:
		return string(tx.Side)
	}
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, "templates/"+file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
