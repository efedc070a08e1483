package agenda

import (
	"fmt"
	"time"

	"daydash/internal/models"
)

const (
	// Result caps for the two query strategies. The wide window doubles the
	// cap because it spans parts of three days.
	preciseMaxResults  = 50
	fallbackMaxResults = 100
)

// Resolver computes the time bounds sent to the remote events query.
type Resolver struct {
	timezone string // IANA zone name from config; empty means use the process zone
}

// NewResolver creates a Resolver for the given IANA zone name.
func NewResolver(timezone string) *Resolver {
	return &Resolver{timezone: timezone}
}

// PreciseWindow is today from 00:00:00 to 23:59:59.999999 in the resolved
// zone, with the zone name attached so the server filters on it. It fails
// when no usable zone identifier can be resolved; "Local" is not one, since
// it means nothing to a remote server.
func (r *Resolver) PreciseWindow(now time.Time) (models.TimeWindow, error) {
	name := r.timezone
	if name == "" {
		name = now.Location().String()
	}
	if name == "" || name == "Local" {
		return models.TimeWindow{}, fmt.Errorf("no resolvable timezone identifier")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return models.TimeWindow{}, fmt.Errorf("load timezone %q: %w", name, err)
	}

	year, month, day := now.In(loc).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// Derive the end from the next calendar date, not from adding 24 hours:
	// a DST transition day is 23 or 25 hours long.
	end := time.Date(year, month, day+1, 0, 0, 0, 0, loc).Add(-time.Microsecond)
	return models.TimeWindow{Start: start, End: end, Timezone: name}, nil
}

// FallbackWindow trades precision for robustness: yesterday 18:00 through
// tomorrow 06:00 in naive local time, with no zone parameter. The classifier
// discards whatever this over-fetches, so correctness does not depend on how
// the backend interprets the bounds.
func (r *Resolver) FallbackWindow(now time.Time) models.TimeWindow {
	year, month, day := now.Date()
	start := time.Date(year, month, day-1, 18, 0, 0, 0, now.Location())
	end := time.Date(year, month, day+1, 6, 0, 0, 0, now.Location())
	return models.TimeWindow{Start: start, End: end}
}
