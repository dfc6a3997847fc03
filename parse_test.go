package nestegg

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"2025-06-18T14:30:00Z", time.Date(2025, time.June, 18, 14, 30, 0, 0, time.UTC), true},
		{"2025-06-18T14:30:00+02:00", time.Date(2025, time.June, 18, 14, 30, 0, 0, time.FixedZone("", 2*3600)), true},
		{"06/18/2025", time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC), true},
		{"2025-06-18 14:30:05", time.Date(2025, time.June, 18, 14, 30, 5, 0, time.UTC), true},
		{"2025-06-18 14:30", time.Date(2025, time.June, 18, 14, 30, 0, 0, time.UTC), true},
		{"2025-06-18", time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC), true},
		{"2025/06/18", time.Date(2025, time.June, 18, 0, 0, 0, 0, time.UTC), true},
		{"not a time", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := parseTimestamp(tt.input)
			if ok != tt.ok {
				t.Fatalf("parseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFloat(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"1234.56", 1234.56},
		{"$1,234.56", 1234.56},
		{"  $42 ", 42},
		{"-17.5", -17.5},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := parseFloat(tt.input); got != tt.want {
			t.Errorf("parseFloat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTotalValueRows(t *testing.T) {
	known := NewUserSet("amy", "bob")
	rows := [][]string{
		{"Timestamp", "User", "Stock", "Cash", "RealEstate", "Crypto", "Capture"},
		{"2025-06-17T10:00:00Z", "amy", "1000", "500", "0", "100", "DAILY"},
		{"2025-06-17T10:00:00Z", "bob", "$1,000", "0", "0", "0", "weekly"},
		{"2025-06-17T10:00:00Z", "carol", "1000", "0", "0", "0", "DAILY"}, // unknown user
		{"not a time", "amy", "1000", "0", "0", "0", "DAILY"},             // bad timestamp
		{"2025-06-17T10:00:00Z", "amy", "1000", "0", "0", "0", "MONTHLY"}, // bad capture
		{"2025-06-17T10:00:00Z", "amy", "0", "0", "0", "0", "DAILY"},      // non-positive total
	}

	events := ParseTotalValueRows(rows, known)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(events), events)
	}
	if events[0].User != "amy" || events[0].Total() != 1600 || events[0].Capture != CaptureDaily {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].User != "bob" || events[1].Stock != 1000 || events[1].Capture != CaptureWeekly {
		t.Errorf("unexpected second event %+v", events[1])
	}
}

func TestParseHoldingRows(t *testing.T) {
	known := NewUserSet("amy")
	rows := [][]string{
		{"Timestamp", "User", "Ticker", "Shares", "Notes"},
		{"2025-06-17T09:00:00Z", "amy", "VTI", "10", "opening position"},
		{"2025-06-17T09:00:00Z", "amy", "VTI", "-1", ""}, // negative shares
		{"2025-06-17T09:00:00Z", "amy", "", "10", ""},    // missing ticker
		{"2025-06-17T09:00:00Z", "amy", "VTI", "", ""},   // missing shares
		{"2025-06-17T09:00:00Z", "eve", "VTI", "10", ""}, // unknown user
	}

	events := ParseHoldingRows(rows, known)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(events), events)
	}
	got := events[0]
	if got.Ticker != "VTI" || got.Shares != 10 || got.Notes != "opening position" {
		t.Errorf("unexpected event %+v", got)
	}
}

func TestParseDailyRollupRows(t *testing.T) {
	known := NewUserSet("amy", "bob")

	t.Run("missing date inherits latest sibling date", func(t *testing.T) {
		rows := [][]string{
			{"User", "Stock", "Cash", "RealEstate", "Crypto", "Date"},
			{"amy", "1000", "500", "0", "0", "06/16/2025"},
			{"bob", "400", "100", "0", "0", "06/17/2025"},
			{"amy", "1100", "500", "0", "0", ""}, // no date cell
		}
		events := ParseDailyRollupRows(rows, known, testNow)
		if len(events) != 3 {
			t.Fatalf("got %d events, want 3", len(events))
		}
		want := NewDate(2025, time.June, 17)
		if events[2].On != want {
			t.Errorf("substituted date = %v, want %v", events[2].On, want)
		}
	})

	t.Run("no valid date anywhere falls back to today", func(t *testing.T) {
		rows := [][]string{
			{"User", "Stock", "Cash", "RealEstate", "Crypto", "Date"},
			{"amy", "1000", "500", "0", "0", ""},
		}
		events := ParseDailyRollupRows(rows, known, testNow)
		if len(events) != 1 {
			t.Fatalf("got %d events, want 1", len(events))
		}
		if want := DateOf(testNow); events[0].On != want {
			t.Errorf("fallback date = %v, want %v", events[0].On, want)
		}
	})

	t.Run("unknown user dropped", func(t *testing.T) {
		rows := [][]string{
			{"User", "Stock", "Cash", "RealEstate", "Crypto", "Date"},
			{"carol", "1000", "500", "0", "0", "06/17/2025"},
		}
		if events := ParseDailyRollupRows(rows, known, testNow); len(events) != 0 {
			t.Errorf("got %d events, want 0", len(events))
		}
	})
}

func TestParsePositionChangeRows(t *testing.T) {
	known := NewUserSet("amy")
	rows := [][]string{
		{"Timestamp", "User", "Ticker", "Shares", "Change"},
		{"2025-06-17T10:00:00Z", "amy", "VTI", "12", "$1,200"},
		{"2025-06-17T10:00:00Z", "amy", "VTI", "12", ""},        // missing change amount
		{"2025-06-17T10:00:00Z", "amy", "VTI", "12", "unknown"}, // unparsable change amount
		{"2025-06-17T10:00:00Z", "eve", "VTI", "12", "100"},     // unknown user
	}

	events := ParsePositionChangeRows(rows, known)
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(events), events)
	}
	if !events[0].HasChange() || events[0].Change != 1200 {
		t.Errorf("first event should carry change 1200, got %+v", events[0])
	}
	// a missing or unparsable amount keeps the event but disables its marker
	if events[1].HasChange() {
		t.Errorf("event with empty change cell should have no change, got %+v", events[1])
	}
	if events[2].HasChange() {
		t.Errorf("event with unparsable change cell should have no change, got %+v", events[2])
	}
}

func TestHeaderOnlyRanges(t *testing.T) {
	known := NewUserSet("amy")
	header := [][]string{{"a", "b", "c", "d", "e", "f", "g"}}

	if got := ParseTotalValueRows(header, known); len(got) != 0 {
		t.Errorf("totals: got %d events, want 0", len(got))
	}
	if got := ParseHoldingRows(header, known); len(got) != 0 {
		t.Errorf("holdings: got %d events, want 0", len(got))
	}
	if got := ParseDailyRollupRows(header, known, testNow); len(got) != 0 {
		t.Errorf("rollups: got %d events, want 0", len(got))
	}
	if got := ParsePositionChangeRows(header, known); len(got) != 0 {
		t.Errorf("changes: got %d events, want 0", len(got))
	}
}
