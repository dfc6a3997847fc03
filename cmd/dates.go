package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type datesCmd struct{}

func (*datesCmd) Name() string     { return "dates" }
func (*datesCmd) Synopsis() string { return "list the weeks a historical breakdown exists for" }
func (*datesCmd) Usage() string {
	return `negg dates

  Lists, in ascending order, the Monday-aligned week starts for which a
  weekly snapshot is available. Any of them can be passed to
  'negg breakdown -d'.
`
}

func (c *datesCmd) SetFlags(f *flag.FlagSet) {}

func (c *datesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, err := NewEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	dates, err := engine.AvailableHistoricalDates(ctx)
	if err != nil {
		return reportError(err)
	}
	if len(dates) == 0 {
		fmt.Fprintln(os.Stderr, "No weekly snapshots recorded yet.")
		return subcommands.ExitSuccess
	}
	for _, d := range dates {
		fmt.Println(d)
	}
	return subcommands.ExitSuccess
}
