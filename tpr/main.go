// Command tpr computes trailing returns of a portfolio against a benchmark.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/trailing/cmd"
	"github.com/etnz/trailing/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	topics, _ := docs.GetAllTopics()
	years := predict.Set{"1,2,3,5", "1", "3", "5"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"portfolio": predict.Files("*.csv"),
			"data":      predict.Dirs("*"),
			"benchmark": predict.Something,
			"risk-free": predict.Set{"DGS1", "DGS3MO", "TB3MS"},
			"v":         predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"fetch": {},
			"analyze": {
				Flags: map[string]complete.Predictor{
					"years":   years,
					"fetch":   predict.Nothing,
					"json":    predict.Nothing,
					"monthly": predict.Nothing,
					"html":    predict.Files("*.html"),
					"xlsx":    predict.Files("*.xlsx"),
					"charts":  predict.Dirs("*"),
				},
			},
			"explain": {
				Flags: map[string]complete.Predictor{
					"years": years,
					"fetch": predict.Nothing,
					"model": predict.Something,
				},
			},
			"topic": {Args: predict.Set(append(topics, "*"))},
		},
	}
}

func main() {
	name := path.Base(os.Args[0])
	// Exits when the shell asks for completions.
	completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commander.Execute(ctx)
	stop()
	os.Exit(int(code))
}
