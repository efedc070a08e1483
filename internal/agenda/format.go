package agenda

import (
	"strings"
	"time"

	"daydash/internal/models"
)

const allDayLabel = "All Day"

// FormatTimeRange renders the event's span as a 12-hour range like
// "9:00 AM - 10:00 AM" in the given display zone. Every failure path
// degrades to a coarser but valid string; it never panics.
func FormatTimeRange(ev models.RawEvent, loc *time.Location) string {
	if ev.Start.DateTime == "" {
		return allDayLabel
	}
	start, ok := clockIn(ev.Start.DateTime, loc)
	if !ok {
		return allDayLabel
	}
	end, ok := clockIn(ev.End.DateTime, loc)
	if !ok {
		return allDayLabel
	}
	return start + " - " + end
}

// clockIn extracts a clock string from a timestamp. The primary path is a
// strict RFC 3339 parse converted into loc; when that fails, any zone or
// offset suffix is stripped and the remainder reparsed as naive local time.
func clockIn(stamp string, loc *time.Location) (string, bool) {
	if stamp == "" {
		return "", false
	}
	if t, err := time.Parse(time.RFC3339, stamp); err == nil {
		return t.In(loc).Format("3:04 PM"), true
	}
	naive := stripZoneSuffix(stamp)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, naive, loc); err == nil {
			return t.Format("3:04 PM"), true
		}
	}
	return "", false
}

// stripZoneSuffix removes a trailing "Z", UTC offset, or fractional seconds
// from an RFC 3339-ish timestamp, leaving the naive date-time part.
func stripZoneSuffix(stamp string) string {
	s := strings.TrimSuffix(stamp, "Z")
	tIdx := strings.IndexByte(s, 'T')
	if tIdx < 0 {
		return s
	}
	rest := s[tIdx+1:]
	if idx := strings.IndexAny(rest, "+-"); idx >= 0 {
		s = s[:tIdx+1+idx]
	}
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		s = s[:idx]
	}
	return s
}
