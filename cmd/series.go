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

type seriesCmd struct {
	window string
	users  string
	assets string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "display the portfolio value series for a window" }
func (*seriesCmd) Usage() string {
	return `negg series [-w <window>] [-u <users>] [-a <assets>]

  Assembles the portfolio value time series for one display window
  (1D, 1W, 1M, 3M, YTD, 1Y, ALL), ending at the live total, with
  position-change markers for the short windows.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "w", "1M", "display window (1D, 1W, 1M, 3M, YTD, 1Y, ALL)")
	f.StringVar(&c.users, "u", "", "comma-separated users to include (default: all)")
	f.StringVar(&c.assets, "a", "", "comma-separated asset classes to include (default: all)")
}

func (c *seriesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	window, err := nestegg.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	filter, err := nestegg.ParseAssetFilter(c.assets)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	engine, err := NewEngine()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	points, err := engine.ValueSeries(ctx, window, splitList(c.users), filter)
	if errors.Is(err, nestegg.ErrRateLimited) {
		fmt.Fprintln(os.Stderr, "Datastore call ceiling reached; wait a minute and retry.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error assembling series: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SeriesMarkdown(window, points))
	return subcommands.ExitSuccess
}
