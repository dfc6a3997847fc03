package nestegg

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// CaptureType is the granularity label attached to a total-value snapshot.
// It controls which display windows may use the snapshot.
type CaptureType int

const (
	CaptureHourly CaptureType = iota
	CaptureDaily
	CaptureWeekly
)

func (c CaptureType) String() string {
	switch c {
	case CaptureHourly:
		return "HOURLY"
	case CaptureDaily:
		return "DAILY"
	case CaptureWeekly:
		return "WEEKLY"
	default:
		panic(fmt.Sprintf("unknown capture type %d", int(c)))
	}
}

// ParseCaptureType parses a capture type label, case-insensitively.
func ParseCaptureType(s string) (CaptureType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HOURLY":
		return CaptureHourly, nil
	case "DAILY":
		return CaptureDaily, nil
	case "WEEKLY":
		return CaptureWeekly, nil
	default:
		return CaptureDaily, fmt.Errorf("unknown capture type %q", s)
	}
}

// AssetClass classifies a holding for filtering purposes.
type AssetClass int

const (
	ClassStock AssetClass = iota
	ClassCash
	ClassRealEstate
	ClassCrypto
)

func (c AssetClass) String() string {
	switch c {
	case ClassStock:
		return "stocks"
	case ClassCash:
		return "cash"
	case ClassRealEstate:
		return "realestate"
	case ClassCrypto:
		return "crypto"
	default:
		panic(fmt.Sprintf("unknown asset class %d", int(c)))
	}
}

// AssetFilter selects which asset classes contribute to a computed value.
// A filtered-out class contributes zero, never "missing data".
type AssetFilter struct {
	Stocks     bool
	Cash       bool
	RealEstate bool
	Crypto     bool
}

// AllAssets returns a filter with every asset class enabled.
func AllAssets() AssetFilter {
	return AssetFilter{Stocks: true, Cash: true, RealEstate: true, Crypto: true}
}

// Includes reports whether the class contributes under this filter.
func (f AssetFilter) Includes(c AssetClass) bool {
	switch c {
	case ClassStock:
		return f.Stocks
	case ClassCash:
		return f.Cash
	case ClassRealEstate:
		return f.RealEstate
	case ClassCrypto:
		return f.Crypto
	default:
		return false
	}
}

// ParseAssetFilter parses a comma-separated list of asset class names
// ("stocks,cash,realestate,crypto"). An empty string means all classes.
func ParseAssetFilter(s string) (AssetFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return AllAssets(), nil
	}
	var f AssetFilter
	for _, part := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "stocks", "stock":
			f.Stocks = true
		case "cash":
			f.Cash = true
		case "realestate", "real-estate":
			f.RealEstate = true
		case "crypto":
			f.Crypto = true
		default:
			return AssetFilter{}, fmt.Errorf("unknown asset class %q", part)
		}
	}
	return f, nil
}

// UserSet is a set of known usernames. Events naming anyone else are
// discarded during parsing.
type UserSet map[string]struct{}

// NewUserSet builds a UserSet from a list of usernames, ignoring blanks.
func NewUserSet(names ...string) UserSet {
	s := make(UserSet, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

// Contains reports whether name is a member of the set.
func (s UserSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// TotalValueEvent is one point-in-time capture of a user's portfolio value,
// split by asset class.
type TotalValueEvent struct {
	Time       time.Time
	User       string
	Stock      float64
	Cash       float64
	RealEstate float64
	Crypto     float64
	Capture    CaptureType
}

// Total returns the sum of the four asset values. Events with a non-positive
// total are considered invalid and never enter the pipeline.
func (e TotalValueEvent) Total() float64 {
	return e.Stock + e.Cash + e.RealEstate + e.Crypto
}

// Filtered returns the event's value restricted to the enabled asset classes.
func (e TotalValueEvent) Filtered(f AssetFilter) float64 {
	var v float64
	if f.Stocks {
		v += e.Stock
	}
	if f.Cash {
		v += e.Cash
	}
	if f.RealEstate {
		v += e.RealEstate
	}
	if f.Crypto {
		v += e.Crypto
	}
	return v
}

// HoldingEvent is one append-only record from the holdings-history log.
// History is immutable: edits append new events, they never mutate old ones.
type HoldingEvent struct {
	Time   time.Time
	User   string
	Ticker string
	Shares float64
	Notes  string
}

// DailyRollupEvent is the most authoritative "latest known" total per user.
type DailyRollupEvent struct {
	User       string
	Stock      float64
	Cash       float64
	RealEstate float64
	Crypto     float64
	On         Date
}

// Filtered returns the rollup value restricted to the enabled asset classes.
func (e DailyRollupEvent) Filtered(f AssetFilter) float64 {
	var v float64
	if f.Stocks {
		v += e.Stock
	}
	if f.Cash {
		v += e.Cash
	}
	if f.RealEstate {
		v += e.RealEstate
	}
	if f.Crypto {
		v += e.Crypto
	}
	return v
}

// PositionChangeEvent is a discrete holding edit from the change log.
// A missing change amount is stored as NaN; such events carry no renderable
// marker.
type PositionChangeEvent struct {
	Time   time.Time
	User   string
	Ticker string
	Shares float64
	Change float64
}

// HasChange reports whether the event carries a usable change amount.
func (e PositionChangeEvent) HasChange() bool { return !math.IsNaN(e.Change) }
