package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mbeaufre/nestegg"
	"github.com/mbeaufre/nestegg/renderer"
)

type breakdownCmd struct {
	date  string
	users string
}

func (*breakdownCmd) Name() string { return "breakdown" }
func (*breakdownCmd) Synopsis() string {
	return "display the by-user and by-asset value breakdown"
}
func (*breakdownCmd) Usage() string {
	return `negg breakdown [-d <date>] [-u <users>]

  Without -d, shows the latest known total per user from the daily
  rollups. With -d, snaps the date to the nearest available weekly
  snapshot and shows the by-user and by-asset breakdown as of that week.
`
}

func (c *breakdownCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "historical date to resolve (e.g. 2025-03-10 or -2w)")
	f.StringVar(&c.users, "u", "", "comma-separated users to include (default: all)")
}

func (c *breakdownCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, err := NewEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if c.date == "" {
		totals, err := engine.LatestTotals(ctx, splitList(c.users))
		if err != nil {
			return reportError(err)
		}
		printMarkdown(renderer.LatestMarkdown(totals))
		return subcommands.ExitSuccess
	}

	on, err := nestegg.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	dist, err := engine.HistoricalDistribution(ctx, &on, splitList(c.users))
	if err != nil {
		return reportError(err)
	}
	if dist.WeekStart.IsZero() {
		fmt.Fprintln(os.Stderr, "No weekly snapshots recorded yet.")
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.DistributionMarkdown(dist))
	return subcommands.ExitSuccess
}

func reportError(err error) subcommands.ExitStatus {
	if errors.Is(err, nestegg.ErrRateLimited) {
		fmt.Fprintln(os.Stderr, "Datastore call ceiling reached; wait a minute and retry.")
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return subcommands.ExitFailure
}
