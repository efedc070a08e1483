package models

import "time"

// TimeSpec is one bound of a calendar event as the Google Calendar API
// returns it: either a timestamp with offset (DateTime) or a bare calendar
// date for all-day events (Date). At most one field is set; both may be
// empty when the upstream payload is malformed. The ambiguity is preserved
// here and resolved by the agenda package, not at ingestion.
type TimeSpec struct {
	DateTime string // RFC 3339, e.g. "2024-03-10T09:00:00-08:00"
	Date     string // "2006-01-02", all-day events only
}

// IsZero reports whether the bound carries no data at all.
func (ts TimeSpec) IsZero() bool {
	return ts.DateTime == "" && ts.Date == ""
}

// RawEvent is a calendar event exactly as fetched, before any today
// classification or display formatting.
type RawEvent struct {
	Title       string
	Start       TimeSpec
	End         TimeSpec
	Location    string
	Description string
}

// ResolvedEvent is a RawEvent decorated for display. Computed fresh on
// every fetch and never persisted.
type ResolvedEvent struct {
	RawEvent
	IsToday   bool
	TimeRange string
}

// CalendarDescriptor identifies one calendar available to the account.
type CalendarDescriptor struct {
	ID          string
	DisplayName string
}

// TimeWindow is the bound sent to the remote events query. Timezone is the
// IANA zone name passed for server-side filtering; empty means the query is
// sent without a zone parameter (the wide fallback window).
type TimeWindow struct {
	Start    time.Time
	End      time.Time
	Timezone string
}

// AuthState is what the UI collaborator observes about authentication.
type AuthState int

const (
	Unauthenticated AuthState = iota
	Authenticated
)

func (s AuthState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}
