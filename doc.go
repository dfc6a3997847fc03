// Package nestegg implements the analytics engine of a household investment
// tracker. The tracker's datastore is an external spreadsheet holding
// append-only logs of point-in-time snapshots, captured at irregular hourly,
// daily and weekly granularities, by several household members, across four
// asset classes (stocks, cash, real estate, crypto).
//
// The engine turns those raw logs into chart-ready data:
//   - a de-duplicated, time-bucketed portfolio value series for seven display
//     windows (1D, 1W, 1M, 3M, YTD, 1Y, ALL), always terminated by a live
//     anchor computed from current quotes;
//   - position-change markers correlated onto the series by nearest-bucket
//     matching and linear interpolation;
//   - point-in-time distribution breakdowns (by user, by asset) for any
//     historical weekly snapshot.
//
// All spreadsheet reads go through a sliding-window call gate and a short
// freshness cache; the persistence layer and quote service are consumed
// through small interfaces so the engine stays a pure in-memory
// transformation stage. This package is the foundation of the `negg`
// command-line tool.
package nestegg
