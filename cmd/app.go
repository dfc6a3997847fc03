// Package cmd implements the CLI application to query the tracker's
// analytics engine.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/mbeaufre/nestegg"
	"github.com/mbeaufre/nestegg/sheets"
	"github.com/mbeaufre/nestegg/yahoo"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&seriesCmd{},
	&breakdownCmd{},
	&datesCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	sheetID = flag.String("sheet-id", os.Getenv("NESTEGG_SHEET_ID"), "Spreadsheet id of the tracker datastore")
	users   = flag.String("users", os.Getenv("NESTEGG_USERS"), "Comma-separated household usernames")
	crypto  = flag.String("crypto", "BTC,ETH,SOL", "Comma-separated tickers valued through crypto quotes")
)

// NewEngine wires the engine over the spreadsheet datastore and the quote
// service, from the app flags. The datastore API key comes from the
// NESTEGG_API_KEY environment variable.
func NewEngine() (*nestegg.Engine, error) {
	if *sheetID == "" {
		return nil, fmt.Errorf("no spreadsheet id: set -sheet-id or NESTEGG_SHEET_ID")
	}
	if *users == "" {
		return nil, fmt.Errorf("no known users: set -users or NESTEGG_USERS")
	}
	store := sheets.New(*sheetID, os.Getenv("NESTEGG_API_KEY"))
	return nestegg.NewEngine(store, yahoo.New(), nestegg.DefaultRanges(),
		splitList(*users), splitList(*crypto)), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
