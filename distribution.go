package nestegg

import (
	"sort"
	"time"
)

// snapTolerance bounds how far, in either direction, a weekly snapshot's
// events may sit from their Monday-aligned week start and still be counted.
const snapTolerance = 3 * Day

// Distribution is a point-in-time breakdown of portfolio value, keyed once
// by username and once by ticker.
type Distribution struct {
	WeekStart Date // the snapped weekly snapshot this breakdown describes
	ByUser    map[string]float64
	ByStock   map[string]float64
}

// weekStarts normalizes every WEEKLY total-value event to its Monday-aligned
// week start and returns the distinct starts in ascending order.
func weekStarts(events []TotalValueEvent) []Date {
	seen := make(map[Date]struct{})
	for _, e := range events {
		if e.Capture != CaptureWeekly {
			continue
		}
		seen[DateOf(e.Time).StartOfWeek()] = struct{}{}
	}
	starts := make([]Date, 0, len(seen))
	for d := range seen {
		starts = append(starts, d)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
	return starts
}

// snapToWeek picks the available week start closest to the requested date.
// Candidates are scanned in ascending order and only a strictly smaller
// distance displaces the current best, so an equidistant tie resolves to the
// earlier week deterministically.
func snapToWeek(starts []Date, target Date) (Date, bool) {
	if len(starts) == 0 {
		return Date{}, false
	}
	best := starts[0]
	bestDist := absDuration(target.Sub(best))
	for _, d := range starts[1:] {
		dist := absDuration(target.Sub(d))
		if dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, true
}

// byUserBreakdown keeps, among WEEKLY events within the snap tolerance of
// the week start, the single latest event per selected user. That one total
// per user is the breakdown; nothing is summed further.
func byUserBreakdown(events []TotalValueEvent, week Date, users UserSet) map[string]float64 {
	latest := make(map[string]TotalValueEvent)
	for _, e := range events {
		if e.Capture != CaptureWeekly || !users.Contains(e.User) {
			continue
		}
		if !withinTolerance(e.Time, week) {
			continue
		}
		if prev, ok := latest[e.User]; !ok || e.Time.After(prev.Time) {
			latest[e.User] = e
		}
	}
	byUser := make(map[string]float64, len(latest))
	for user, e := range latest {
		byUser[user] = e.Total()
	}
	return byUser
}

// latestHoldings keeps, among holdings within the snap tolerance of the week
// start, the latest event per (user, ticker) pair.
func latestHoldings(events []HoldingEvent, week Date, users UserSet) []HoldingEvent {
	type key struct{ user, ticker string }
	latest := make(map[key]HoldingEvent)
	for _, e := range events {
		if !users.Contains(e.User) || !withinTolerance(e.Time, week) {
			continue
		}
		k := key{e.User, e.Ticker}
		if prev, ok := latest[k]; !ok || e.Time.After(prev.Time) {
			latest[k] = e
		}
	}
	kept := make([]HoldingEvent, 0, len(latest))
	for _, e := range latest {
		kept = append(kept, e)
	}
	return kept
}

func withinTolerance(t time.Time, week Date) bool {
	return absDuration(t.Sub(week.time())) <= snapTolerance
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
