package nestegg

import (
	"sort"
	"time"
)

// mergeTolerance is how close a change event must be to an existing series
// bucket to be folded into it instead of becoming a standalone point.
const mergeTolerance = 60 * time.Second

// correlateChanges overlays position-change markers onto an assembled series.
// Each change is resolved to a portfolio value by linear interpolation
// between the two series points straddling its timestamp (or clamped to the
// nearest endpoint outside the series bounds). Changes within the merge
// tolerance of an existing bucket attach to it; the rest are inserted as
// standalone marker-only points.
func correlateChanges(points []SeriesPoint, changes []PositionChangeEvent, w Window, now time.Time, users UserSet, filter AssetFilter, classOf func(string) AssetClass) []SeriesPoint {
	if !w.MarkersEnabled() || len(points) == 0 {
		return points
	}
	floor := w.Floor(now)

	var standalone []SeriesPoint
	for _, c := range changes {
		if !c.HasChange() {
			continue // no renderable delta, no marker
		}
		if !users.Contains(c.User) || !filter.Includes(classOf(c.Ticker)) {
			continue
		}
		if c.Time.Before(floor) || c.Time.After(now) {
			continue
		}

		m := Marker{
			Time:   c.Time,
			User:   c.User,
			Ticker: c.Ticker,
			Shares: c.Shares,
			Change: c.Change,
			Value:  interpolateValue(points, c.Time),
		}

		if i, dist := nearestPoint(points, c.Time); dist <= mergeTolerance {
			points[i].Markers = append(points[i].Markers, m)
			continue
		}
		standalone = append(standalone, SeriesPoint{
			Time:    c.Time,
			Value:   m.Value,
			Label:   w.Label(c.Time, CaptureHourly),
			Markers: []Marker{m},
		})
	}

	points = append(points, standalone...)
	sortSeries(points)
	return points
}

// nearestPoint returns the index of the series point with minimal timestamp
// distance to t, plus that distance.
func nearestPoint(points []SeriesPoint, t time.Time) (int, time.Duration) {
	best, bestDist := 0, time.Duration(1<<62)
	for i := range points {
		d := points[i].Time.Sub(t)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

// interpolateValue resolves the portfolio value at instant t against an
// ascending series: linear interpolation strictly between two adjacent
// points, the nearest endpoint's value outside the bounds.
func interpolateValue(points []SeriesPoint, t time.Time) float64 {
	i := sort.Search(len(points), func(i int) bool { return !points[i].Time.Before(t) })
	if i == len(points) {
		return points[len(points)-1].Value
	}
	if points[i].Time.Equal(t) || i == 0 {
		return points[i].Value
	}
	before, after := points[i-1], points[i]
	span := after.Time.Sub(before.Time)
	if span <= 0 {
		return before.Value
	}
	ratio := float64(t.Sub(before.Time)) / float64(span)
	return before.Value + ratio*(after.Value-before.Value)
}
