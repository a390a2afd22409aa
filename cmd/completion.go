package cmd

import (
	"flag"

	"github.com/etnz/capgains/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors completes the values of the flags that name files.
var flagPredictors = map[string]complete.Predictor{
	"f":      predict.Files("*"),
	"o":      predict.Files("*.jsonl"),
	"config": predict.Files("*.yaml"),
}

// Completion returns the shell completion of the cgt command.
func Completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	root := &complete.Command{
		Sub: map[string]*complete.Command{
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  predict.Set(append(topics, "readme", "*")),
			},
		},
		Flags: flagsOf(flag.CommandLine),
	}
	for _, c := range Commands() {
		f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(f)
		root.Sub[c.Name()] = &complete.Command{Flags: flagsOf(f)}
	}
	return root
}

// flagsOf returns a predictor for each flag in f.
func flagsOf(f *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		p, ok := flagPredictors[fl.Name]
		if !ok {
			p = predict.Something
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			p = predict.Nothing
		}
		res[fl.Name] = p
	})
	return res
}
