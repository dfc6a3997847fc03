package nestegg

import (
	"context"
	"fmt"
	"time"
)

// testNow is the fixed reference clock for tests:
// Wednesday 2025-06-18 14:30 UTC. The Monday of that week is 2025-06-16.
var testNow = time.Date(2025, time.June, 18, 14, 30, 0, 0, time.UTC)

// fakeReader serves canned rows keyed by range id. A non-nil err fails every
// read, which is how tests exercise the error paths.
type fakeReader struct {
	rows  map[string][][]string
	err   error
	calls int
}

func (f *fakeReader) ReadRange(ctx context.Context, rangeID string, forceRefresh bool) ([][]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows[rangeID], nil
}

// fakeQuoter prices tickers from a fixed table; unknown tickers fail the
// lookup, like a real quote service would.
type fakeQuoter struct {
	prices map[string]float64
}

func (f *fakeQuoter) Quote(ctx context.Context, ticker string) (Quote, error) {
	p, ok := f.prices[ticker]
	if !ok {
		return Quote{}, fmt.Errorf("no price for %q", ticker)
	}
	return Quote{Ticker: ticker, Price: p}, nil
}

func (f *fakeQuoter) CryptoQuote(ctx context.Context, ticker string) (Quote, error) {
	return f.Quote(ctx, ticker)
}

// newTestEngine wires an engine over canned rows and prices, pinned to the
// test clock.
func newTestEngine(rows map[string][][]string, prices map[string]float64, users ...string) *Engine {
	e := NewEngine(&fakeReader{rows: rows}, &fakeQuoter{prices: prices}, DefaultRanges(), users, []string{"BTC", "ETH"})
	e.now = func() time.Time { return testNow }
	return e
}

// at builds an instant on the test clock's day grid, e.g. at(17, 10, 0) is
// 2025-06-17 10:00 UTC.
func at(day, hour, min int) time.Time {
	return time.Date(2025, time.June, day, hour, min, 0, 0, time.UTC)
}
