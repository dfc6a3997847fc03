package nestegg

import (
	"fmt"
	"strings"
	"time"
)

// Window is one of the seven selectable chart display windows.
type Window int

const (
	Window1D Window = iota
	Window1W
	Window1M
	Window3M
	WindowYTD
	Window1Y
	WindowAll
)

func (w Window) String() string {
	switch w {
	case Window1D:
		return "1D"
	case Window1W:
		return "1W"
	case Window1M:
		return "1M"
	case Window3M:
		return "3M"
	case WindowYTD:
		return "YTD"
	case Window1Y:
		return "1Y"
	case WindowAll:
		return "ALL"
	default:
		panic(fmt.Sprintf("unknown window %d", int(w)))
	}
}

// ParseWindow parses a display window label, case-insensitively.
func ParseWindow(s string) (Window, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1D":
		return Window1D, nil
	case "1W":
		return Window1W, nil
	case "1M":
		return Window1M, nil
	case "3M":
		return Window3M, nil
	case "YTD":
		return WindowYTD, nil
	case "1Y":
		return Window1Y, nil
	case "ALL":
		return WindowAll, nil
	default:
		return WindowAll, fmt.Errorf("unknown window %q (want 1D, 1W, 1M, 3M, YTD, 1Y or ALL)", s)
	}
}

// Eligible reports whether snapshots of the given capture type may feed this
// window. Finer captures are only eligible in short windows, so a chart never
// mixes months of hourly noise into a yearly view.
func (w Window) Eligible(c CaptureType) bool {
	switch w {
	case Window1D:
		return true // HOURLY, DAILY and WEEKLY all qualify
	case Window1W, Window1M, Window3M:
		return c == CaptureDaily || c == CaptureWeekly
	case WindowYTD, Window1Y, WindowAll:
		return c == CaptureWeekly
	default:
		return false
	}
}

// Floor returns the earliest instant (inclusive) this window reaches back to,
// relative to now.
func (w Window) Floor(now time.Time) time.Time {
	switch w {
	case Window1D:
		return startOfDay(now)
	case Window1W:
		return now.Add(-7 * Day)
	case Window1M:
		return now.AddDate(0, -1, 0)
	case Window3M:
		return now.AddDate(0, -3, 0)
	case WindowYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	case Window1Y:
		return now.AddDate(-1, 0, 0)
	case WindowAll:
		return time.Unix(0, 0).In(now.Location())
	default:
		panic(fmt.Sprintf("unknown window %d", int(w)))
	}
}

// includes reports whether an event at t belongs to this window's historical
// pass. The 1D window keeps today's events only; every other window excludes
// today, whose value is supplied separately by the live anchor.
func (w Window) includes(t, now time.Time) bool {
	if t.After(now) {
		return false
	}
	if w == Window1D {
		return sameDay(t, now)
	}
	return !t.Before(w.Floor(now)) && t.Before(startOfDay(now))
}

// bucketKey computes the aggregation slot for an event. The 1D window buckets
// by exact hour. Other windows bucket by day, except that an HOURLY capture
// keeps its hour key so intraday granularity survives inside a daily view.
func (w Window) bucketKey(t time.Time, c CaptureType) time.Time {
	if w == Window1D || c == CaptureHourly {
		return startOfHour(t)
	}
	return startOfDay(t)
}

// Label renders the textual chart key for a point at t. Hourly points embed
// the time component so that two points on the same day never collide in
// chart equality checks.
func (w Window) Label(t time.Time, c CaptureType) string {
	switch w {
	case Window1D:
		return t.Format("15:04")
	case Window1W:
		if c == CaptureHourly {
			return t.Format("Mon Jan 2 15:04")
		}
		return t.Format("Mon Jan 2")
	case Window1M, Window3M, WindowYTD, Window1Y:
		if c == CaptureHourly {
			return t.Format("Jan 2 15:04")
		}
		return t.Format("Jan 2")
	case WindowAll:
		return t.Format("Jan 2006")
	default:
		panic(fmt.Sprintf("unknown window %d", int(w)))
	}
}

// MarkersEnabled reports whether position-change markers are overlaid for
// this window. Longer windows aggregate too coarsely for meaningful markers.
func (w Window) MarkersEnabled() bool {
	return w == Window1D || w == Window1W || w == Window1M
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func startOfHour(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameHour(a, b time.Time) bool {
	return sameDay(a, b) && a.Hour() == b.Hour()
}
