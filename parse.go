package nestegg

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Raw row layouts, after the header row (row 0, always skipped):
//
//	holdings: timestamp, user, ticker, shares, notes
//	totals:   timestamp, user, stock, cash, realestate, crypto, capture
//	rollups:  user, stock, cash, realestate, crypto, date
//	changes:  timestamp, user, ticker, shares, change
//
// Spreadsheet rows are untyped string arrays and malformed input is common;
// every parser here drops bad rows silently and never aborts the batch.

// genericTimeFormats are the fallback layouts tried when a timestamp is
// neither RFC3339 nor the sheet's MM/DD/YYYY convention.
var genericTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

// parseTimestamp parses a cell into an instant. RFC3339 is preferred when a
// 'T' separator is present, then MM/DD/YYYY, then the generic layouts.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(sheetDateFormat, s); err == nil {
		return t, true
	}
	for _, layout := range genericTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseFloat converts a cell to a float, best effort. Currency decoration
// ("$1,234.56") is tolerated; anything unparsable is worth 0.
func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// cell returns the trimmed cell at index i, or "" when the row is too short.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// body skips the header row.
func body(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

// ParseTotalValueRows converts raw totals rows into validated events.
// Rows with an unparsable timestamp, an unknown user, a missing capture type
// or a non-positive total are dropped.
func ParseTotalValueRows(rows [][]string, known UserSet) []TotalValueEvent {
	var events []TotalValueEvent
	for _, row := range body(rows) {
		ts, ok := parseTimestamp(cell(row, 0))
		if !ok {
			continue
		}
		user := cell(row, 1)
		if !known.Contains(user) {
			continue
		}
		capture, err := ParseCaptureType(cell(row, 6))
		if err != nil {
			continue
		}
		e := TotalValueEvent{
			Time:       ts,
			User:       user,
			Stock:      parseFloat(cell(row, 2)),
			Cash:       parseFloat(cell(row, 3)),
			RealEstate: parseFloat(cell(row, 4)),
			Crypto:     parseFloat(cell(row, 5)),
			Capture:    capture,
		}
		if e.Total() <= 0 {
			continue
		}
		events = append(events, e)
	}
	return events
}

// ParseHoldingRows converts raw holdings rows into validated events.
// Shares must parse to a non-negative number; notes are optional.
func ParseHoldingRows(rows [][]string, known UserSet) []HoldingEvent {
	var events []HoldingEvent
	for _, row := range body(rows) {
		ts, ok := parseTimestamp(cell(row, 0))
		if !ok {
			continue
		}
		user := cell(row, 1)
		ticker := cell(row, 2)
		if !known.Contains(user) || ticker == "" || cell(row, 3) == "" {
			continue
		}
		shares := parseFloat(cell(row, 3))
		if shares < 0 {
			continue
		}
		events = append(events, HoldingEvent{
			Time:   ts,
			User:   user,
			Ticker: ticker,
			Shares: shares,
			Notes:  cell(row, 4),
		})
	}
	return events
}

// ParseDailyRollupRows converts raw rollup rows into validated events.
// Rows without a parsable snapshot date inherit the most recent valid date
// seen among sibling rows, or today's date derived from now when none exists.
func ParseDailyRollupRows(rows [][]string, known UserSet, now time.Time) []DailyRollupEvent {
	// First pass: the most recent valid date among siblings.
	latest := Date{}
	for _, row := range body(rows) {
		if on, err := ParseDate(cell(row, 5)); err == nil {
			if latest.IsZero() || on.After(latest) {
				latest = on
			}
		}
	}
	if latest.IsZero() {
		latest = DateOf(now)
	}

	var events []DailyRollupEvent
	for _, row := range body(rows) {
		user := cell(row, 0)
		if !known.Contains(user) {
			continue
		}
		on, err := ParseDate(cell(row, 5))
		if err != nil {
			on = latest
		}
		events = append(events, DailyRollupEvent{
			User:       user,
			Stock:      parseFloat(cell(row, 1)),
			Cash:       parseFloat(cell(row, 2)),
			RealEstate: parseFloat(cell(row, 3)),
			Crypto:     parseFloat(cell(row, 4)),
			On:         on,
		})
	}
	return events
}

// ParsePositionChangeRows converts raw change-log rows into validated events.
// An empty or unparsable change amount is recorded as NaN: the event is kept
// (it is still part of history) but will never produce a marker.
func ParsePositionChangeRows(rows [][]string, known UserSet) []PositionChangeEvent {
	var events []PositionChangeEvent
	for _, row := range body(rows) {
		ts, ok := parseTimestamp(cell(row, 0))
		if !ok {
			continue
		}
		user := cell(row, 1)
		ticker := cell(row, 2)
		if !known.Contains(user) || ticker == "" {
			continue
		}
		change := math.NaN()
		if c := cell(row, 4); c != "" {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(c, "$"), ",", ""), 64); err == nil {
				change = v
			}
		}
		events = append(events, PositionChangeEvent{
			Time:   ts,
			User:   user,
			Ticker: ticker,
			Shares: parseFloat(cell(row, 3)),
			Change: change,
		})
	}
	return events
}
