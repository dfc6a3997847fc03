package nestegg

import (
	"sort"
	"time"
)

// Marker annotates a series point with a discrete holding edit and the
// portfolio value interpolated at the moment it occurred.
type Marker struct {
	Time   time.Time
	User   string
	Ticker string
	Shares float64
	Change float64
	Value  float64 // portfolio value resolved at the marker's instant
}

// Direction classifies the marker for display: "buy", "sell" or "flat".
// A zero change amount is a legitimate marker (e.g. a rebalancing note) but
// the UI flags it distinctly from real buys and sells.
func (m Marker) Direction() string {
	switch {
	case m.Change > 0:
		return "buy"
	case m.Change < 0:
		return "sell"
	default:
		return "flat"
	}
}

// SeriesPoint is one chart-ready point of the portfolio value series.
type SeriesPoint struct {
	Time    time.Time
	Value   float64
	Label   string
	Markers []Marker
}

// assembleSeries sums deduplicated buckets into an ascending value series.
func assembleSeries(buckets map[time.Time]*bucket, w Window, users UserSet, filter AssetFilter) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		capture := CaptureDaily
		if b.hourly {
			capture = CaptureHourly
		}
		points = append(points, SeriesPoint{
			Time:  b.key,
			Value: b.value(users, filter),
			Label: w.Label(b.key, capture),
		})
	}
	sortSeries(points)
	return points
}

func sortSeries(points []SeriesPoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
}
