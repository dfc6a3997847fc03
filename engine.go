package nestegg

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RangeReader reads raw rows from the remote tabular datastore. Row 0 is a
// header by convention and is skipped by the parsers; an empty range yields
// an empty sequence, not an error. Implementations are expected to call
// through a CallGate and RangeCache rather than hit the datastore directly.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeID string, forceRefresh bool) ([][]string, error)
}

// Ranges names the datastore ranges of the four raw event streams.
type Ranges struct {
	Holdings string
	Totals   string
	Rollups  string
	Changes  string
}

// DefaultRanges returns the sheet ranges of a stock tracker spreadsheet laid
// out the conventional way.
func DefaultRanges() Ranges {
	return Ranges{
		Holdings: "Holdings!A:E",
		Totals:   "Totals!A:G",
		Rollups:  "Rollups!A:F",
		Changes:  "Changes!A:E",
	}
}

// Engine is the portfolio time-series reconstruction and aggregation engine.
// It is stateless between requests: every invocation fetches (or re-uses
// cached) rows, parses all streams to completion, and derives its result in
// freshly allocated buckets, so overlapping requests never share mutable
// state.
type Engine struct {
	store  RangeReader
	quotes Quoter
	ranges Ranges
	users  UserSet
	crypto map[string]struct{}
	now    func() time.Time
}

// NewEngine creates an engine over a datastore and a quote service.
// users are the known household members; events naming anyone else are
// discarded. cryptoTickers are the tickers valued through crypto quotes.
func NewEngine(store RangeReader, quotes Quoter, ranges Ranges, users, cryptoTickers []string) *Engine {
	crypto := make(map[string]struct{}, len(cryptoTickers))
	for _, t := range cryptoTickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			crypto[t] = struct{}{}
		}
	}
	return &Engine{
		store:  store,
		quotes: quotes,
		ranges: ranges,
		users:  NewUserSet(users...),
		crypto: crypto,
		now:    time.Now,
	}
}

// selectUsers intersects the requested usernames with the known users.
// An empty request selects every known user.
func (e *Engine) selectUsers(selected []string) UserSet {
	if len(selected) == 0 {
		return e.users
	}
	s := make(UserSet)
	for _, name := range selected {
		if e.users.Contains(strings.TrimSpace(name)) {
			s[strings.TrimSpace(name)] = struct{}{}
		}
	}
	return s
}

// ValueSeries assembles the chart-ready portfolio value series for a display
// window, restricted to the selected users and asset classes. The returned
// series is strictly ascending in time and, when a live total is available,
// terminates at the live anchor. An empty result means the datastore had no
// usable rows, which the UI renders as an empty state.
func (e *Engine) ValueSeries(ctx context.Context, w Window, selected []string, filter AssetFilter) ([]SeriesPoint, error) {
	users := e.selectUsers(selected)
	now := e.now()

	// All streams are read and parsed to completion before bucketing.
	totalRows, err := e.store.ReadRange(ctx, e.ranges.Totals, false)
	if err != nil {
		return nil, fmt.Errorf("reading totals range: %w", err)
	}
	holdingRows, err := e.store.ReadRange(ctx, e.ranges.Holdings, false)
	if err != nil {
		return nil, fmt.Errorf("reading holdings range: %w", err)
	}
	rollupRows, err := e.store.ReadRange(ctx, e.ranges.Rollups, false)
	if err != nil {
		return nil, fmt.Errorf("reading rollups range: %w", err)
	}
	var changeRows [][]string
	if w.MarkersEnabled() {
		if changeRows, err = e.store.ReadRange(ctx, e.ranges.Changes, false); err != nil {
			return nil, fmt.Errorf("reading changes range: %w", err)
		}
	}

	totals := ParseTotalValueRows(totalRows, e.users)
	holdings := ParseHoldingRows(holdingRows, e.users)
	rollups := ParseDailyRollupRows(rollupRows, e.users, now)

	points := assembleSeries(buildBuckets(totals, w, now), w, users, filter)

	live := e.liveTotal(ctx, holdings, rollups, users, filter)
	if len(points) == 0 && live <= 0 {
		return nil, nil
	}
	points = injectLiveAnchor(points, w, now, live)

	if w.MarkersEnabled() {
		changes := ParsePositionChangeRows(changeRows, e.users)
		points = correlateChanges(points, changes, w, now, users, filter, e.classOf)
	}
	return points, nil
}

// liveTotal computes the current portfolio value independent of the
// snapshot log: the latest holding per (user, ticker) valued at live quotes.
// When the holdings log is empty the latest daily rollup per user stands in
// as the authoritative total.
func (e *Engine) liveTotal(ctx context.Context, holdings []HoldingEvent, rollups []DailyRollupEvent, users UserSet, filter AssetFilter) float64 {
	type key struct{ user, ticker string }
	latest := make(map[key]HoldingEvent)
	for _, h := range holdings {
		if !users.Contains(h.User) {
			continue
		}
		k := key{h.User, h.Ticker}
		if prev, ok := latest[k]; !ok || h.Time.After(prev.Time) {
			latest[k] = h
		}
	}

	if len(latest) > 0 {
		var total float64
		for _, h := range latest {
			if !filter.Includes(e.classOf(h.Ticker)) {
				continue
			}
			total += h.Shares * e.priceOf(ctx, h.Ticker)
		}
		return total
	}

	latestRollup := make(map[string]DailyRollupEvent)
	for _, r := range rollups {
		if !users.Contains(r.User) {
			continue
		}
		if prev, ok := latestRollup[r.User]; !ok || r.On.After(prev.On) {
			latestRollup[r.User] = r
		}
	}
	var total float64
	for _, r := range latestRollup {
		total += r.Filtered(filter)
	}
	return total
}

// AvailableHistoricalDates returns the ascending list of Monday-aligned week
// starts for which a weekly snapshot exists.
func (e *Engine) AvailableHistoricalDates(ctx context.Context) ([]Date, error) {
	rows, err := e.store.ReadRange(ctx, e.ranges.Totals, false)
	if err != nil {
		return nil, fmt.Errorf("reading totals range: %w", err)
	}
	return weekStarts(ParseTotalValueRows(rows, e.users)), nil
}

// HistoricalDistribution resolves the by-user and by-asset value breakdowns
// as of the available weekly snapshot nearest to the requested date. A nil
// date makes the resolver a no-op (callers use live data instead); a
// datastore with no weekly snapshots yields an empty distribution.
func (e *Engine) HistoricalDistribution(ctx context.Context, on *Date, selected []string) (Distribution, error) {
	if on == nil {
		return Distribution{}, nil
	}
	users := e.selectUsers(selected)

	totalRows, err := e.store.ReadRange(ctx, e.ranges.Totals, false)
	if err != nil {
		return Distribution{}, fmt.Errorf("reading totals range: %w", err)
	}
	holdingRows, err := e.store.ReadRange(ctx, e.ranges.Holdings, false)
	if err != nil {
		return Distribution{}, fmt.Errorf("reading holdings range: %w", err)
	}

	totals := ParseTotalValueRows(totalRows, e.users)
	week, ok := snapToWeek(weekStarts(totals), *on)
	if !ok {
		return Distribution{}, nil
	}

	byStock := make(map[string]float64)
	for _, h := range latestHoldings(ParseHoldingRows(holdingRows, e.users), week, users) {
		byStock[h.Ticker] += h.Shares * e.priceOf(ctx, h.Ticker)
	}

	return Distribution{
		WeekStart: week,
		ByUser:    byUserBreakdown(totals, week, users),
		ByStock:   byStock,
	}, nil
}

// LatestTotals returns the most authoritative current total per selected
// user, from the daily rollup stream. It backs the "live" variant of the
// distribution view when no historical date is requested.
func (e *Engine) LatestTotals(ctx context.Context, selected []string) (map[string]float64, error) {
	rows, err := e.store.ReadRange(ctx, e.ranges.Rollups, false)
	if err != nil {
		return nil, fmt.Errorf("reading rollups range: %w", err)
	}
	users := e.selectUsers(selected)

	latest := make(map[string]DailyRollupEvent)
	for _, r := range ParseDailyRollupRows(rows, e.users, e.now()) {
		if !users.Contains(r.User) {
			continue
		}
		if prev, ok := latest[r.User]; !ok || r.On.After(prev.On) {
			latest[r.User] = r
		}
	}
	totals := make(map[string]float64, len(latest))
	for user, r := range latest {
		totals[user] = r.Filtered(AllAssets())
	}
	return totals, nil
}
