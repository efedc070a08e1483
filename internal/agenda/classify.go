package agenda

import (
	"time"

	"daydash/internal/models"
)

const dateLayout = "2006-01-02"

// isToday reports whether the event falls on ref's calendar date.
//
// Each bound is checked in order, start then end, so an overnight event that
// started yesterday still matches through its end. Timestamps are compared
// after conversion into ref's zone; bare all-day dates are compared
// directly. An event with no parseable bound at all is kept: an unparseable
// date must not silently hide a real event.
func isToday(ev models.RawEvent, ref time.Time) bool {
	parsedAny := false
	for _, bound := range []models.TimeSpec{ev.Start, ev.End} {
		if bound.DateTime != "" {
			t, err := time.Parse(time.RFC3339, bound.DateTime)
			if err != nil {
				continue
			}
			parsedAny = true
			if sameDate(t.In(ref.Location()), ref) {
				return true
			}
			continue
		}
		if bound.Date != "" {
			d, err := time.Parse(dateLayout, bound.Date)
			if err != nil {
				continue
			}
			parsedAny = true
			if d.Format(dateLayout) == ref.Format(dateLayout) {
				return true
			}
		}
	}
	return !parsedAny
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
