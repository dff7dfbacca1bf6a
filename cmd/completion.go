package cmd

import (
	"fmt"

	"github.com/etnz/advisor"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the ias command.
//
// It is installed with COMP_INSTALL=1 ias, and removed with COMP_UNINSTALL=1 ias.
func Completion() *complete.Command {
	symbols := predict.Set(advisor.DefaultCatalog().Symbols())
	stores := predict.Set{"memory", "file", "redis", "postgres"}
	classes := predict.Set{string(advisor.Equity), string(advisor.Debt), string(advisor.Government)}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"user":     predict.Something,
			"store":    stores,
			"data-dir": predict.Dirs("*"),
			"v":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"quiz": {Flags: map[string]complete.Predictor{
				"age":       values(advisor.AgeOptions),
				"income":    values(advisor.IncomeOptions),
				"horizon":   values(advisor.HorizonOptions),
				"tolerance": values(advisor.ToleranceOptions),
				"goals":     values(advisor.GoalOptions),
			}},
			"profile":   {},
			"recommend": {Flags: map[string]complete.Predictor{"score": predict.Something}},
			"catalog":   {Flags: map[string]complete.Predictor{"t": classes}, Args: symbols},
			"buy": {Flags: map[string]complete.Predictor{
				"s": symbols,
				"q": predict.Something,
				"p": predict.Something,
			}},
			"sell": {Flags: map[string]complete.Predictor{
				"s": symbols,
				"q": predict.Something,
				"p": predict.Something,
			}},
			"portfolio": {},
			"market":    {},
			"tx":        {Flags: map[string]complete.Predictor{"head": predict.Something}},
			"mark": {Flags: map[string]complete.Predictor{
				"f":    predict.Files("*.json"),
				"path": predict.Something,
			}},
			"serve": {Flags: map[string]complete.Predictor{"addr": predict.Something}},
		},
	}
}

// values predicts the accepted answers of a question.
func values[T comparable](options []advisor.Option[T]) predict.Set {
	var s predict.Set
	for _, o := range options {
		s = append(s, fmt.Sprint(o.Value))
	}
	return s
}
