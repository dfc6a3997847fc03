package renderer

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/mbeaufre/nestegg"
	md "github.com/nao1215/markdown"
)

// DistributionMarkdown renders a historical distribution: one table keyed by
// user, one keyed by asset, both sorted by descending value.
func DistributionMarkdown(d nestegg.Distribution) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Breakdown for week of %s", d.WeekStart))

	doc.H2("By user")
	doc.Table(valueTable("User", d.ByUser))

	doc.H2("By asset")
	doc.Table(valueTable("Ticker", d.ByStock))

	return doc.String()
}

// LatestMarkdown renders the live per-user totals used when no historical
// date is requested.
func LatestMarkdown(totals map[string]float64) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Latest totals")
	doc.Table(valueTable("User", totals))

	return doc.String()
}

func valueTable(keyHeader string, values map[string]float64) md.TableSet {
	type entry struct {
		key   string
		value float64
	}
	entries := make([]entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].key < entries[j].key
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{keyHeader, "Value"},
		Rows:      [][]string{},
	}
	for _, e := range entries {
		table.Rows = append(table.Rows, []string{e.key, nestegg.M(e.value, "USD").String()})
	}
	return table
}
