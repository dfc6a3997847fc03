// Package renderer turns engine results into markdown for the terminal.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mbeaufre/nestegg"
	md "github.com/nao1215/markdown"
)

// SeriesMarkdown renders a value series to a markdown table, one row per
// chart point, with any position-change markers folded into the last column.
func SeriesMarkdown(w nestegg.Window, points []nestegg.SeriesPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio value (%s)", w))

	if len(points) == 0 {
		doc.PlainText("No captured data for this window yet.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"When", "Value", "Changes"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Label,
			nestegg.M(p.Value, "USD").String(),
			markerCell(p.Markers),
		})
	}
	doc.Table(table)

	return doc.String()
}

func markerCell(markers []nestegg.Marker) string {
	if len(markers) == 0 {
		return ""
	}
	parts := make([]string, 0, len(markers))
	for _, m := range markers {
		parts = append(parts, fmt.Sprintf("%s %s %s (%s)",
			m.User, m.Ticker, nestegg.M(m.Change, "USD").SignedString(), m.Direction()))
	}
	return strings.Join(parts, "; ")
}
