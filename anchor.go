package nestegg

import "time"

// injectLiveAnchor guarantees the series ends at the true current value even
// when historical capture lags. The historical pass never contributes
// "today" (except in the 1D window), so the anchor is the single source of
// truth for the final point.
//
// For 1D the live point is appended after the latest hour bucket; when now
// falls inside the same hour as that bucket, both the on-the-hour point and
// the current-time point are kept, so a visible move within the hour is not
// discarded. For every other window an existing "today" bucket is
// overwritten in place, otherwise a fresh final bucket is appended.
func injectLiveAnchor(points []SeriesPoint, w Window, now time.Time, live float64) []SeriesPoint {
	anchor := SeriesPoint{Time: now, Value: live, Label: w.Label(now, CaptureHourly)}

	if w == Window1D {
		if n := len(points); n > 0 && points[n-1].Time.Equal(now) {
			points[n-1] = anchor
		} else {
			points = append(points, anchor)
		}
	} else {
		anchor.Label = w.Label(now, CaptureDaily)
		replaced := false
		for i := range points {
			if sameDay(points[i].Time, now) {
				points[i] = anchor
				replaced = true
				break
			}
		}
		if !replaced {
			points = append(points, anchor)
		}
	}

	sortSeries(points)

	// The sort can leave the anchor stranded before a later historical point
	// (a timezone edge case when an event's offset puts it past "now").
	// Splice it out and force-append it as the true last element.
	if last := points[len(points)-1]; !last.Time.Equal(anchor.Time) {
		for i := range points {
			if points[i].Time.Equal(anchor.Time) && points[i].Value == live {
				points = append(points[:i], points[i+1:]...)
				break
			}
		}
		points = append(points, anchor)
	}
	return points
}
