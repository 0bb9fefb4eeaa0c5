package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/trailing/docs"
	"github.com/google/subcommands"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `tpr topic [<topic>...]

Show documentation for the given topics, '*' shows them all.
Without topic, lists the available ones.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := topicDoc(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading doc: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)
	return subcommands.ExitSuccess
}

// topicDoc returns the markdown of the topics, or the list of topics when there is none.
func topicDoc(topics []string) (string, error) {
	if len(topics) == 0 {
		return docs.Listing()
	}
	return docs.GetTopics(topics...)
}
