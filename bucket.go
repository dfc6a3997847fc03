package nestegg

import "time"

// bucket is a single time-aligned aggregation slot. perUser holds, for each
// username, the one event that survived last-value-wins deduplication.
type bucket struct {
	key     time.Time
	perUser map[string]TotalValueEvent
	hourly  bool // true when any surviving event was an HOURLY capture
}

// buildBuckets groups eligible total-value events into buckets for the given
// window. Within a bucket, each user keeps only the chronologically latest
// event: an HOURLY and a WEEKLY capture landing in the same slot must not be
// double-summed.
func buildBuckets(events []TotalValueEvent, w Window, now time.Time) map[time.Time]*bucket {
	buckets := make(map[time.Time]*bucket)
	for _, e := range events {
		if !w.Eligible(e.Capture) || !w.includes(e.Time, now) {
			continue
		}
		key := w.bucketKey(e.Time, e.Capture)
		b := buckets[key]
		if b == nil {
			b = &bucket{key: key, perUser: make(map[string]TotalValueEvent)}
			buckets[key] = b
		}
		if prev, ok := b.perUser[e.User]; !ok || e.Time.After(prev.Time) {
			b.perUser[e.User] = e
		}
		if e.Capture == CaptureHourly {
			b.hourly = true
		}
	}
	return buckets
}

// value sums the surviving per-user events, restricted to the selected users
// and the enabled asset classes. The filter applies before summation.
func (b *bucket) value(users UserSet, filter AssetFilter) float64 {
	var total float64
	for user, e := range b.perUser {
		if !users.Contains(user) {
			continue
		}
		total += e.Filtered(filter)
	}
	return total
}
