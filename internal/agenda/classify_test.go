package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"daydash/internal/models"
)

func TestIsToday(t *testing.T) {
	pacific := time.FixedZone("PST", -8*3600)
	// Local date 2024-03-10, early evening.
	ref := time.Date(2024, 3, 10, 18, 0, 0, 0, pacific)

	tests := []struct {
		name string
		ev   models.RawEvent
		want bool
	}{
		{
			name: "timed event on today",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "2024-03-10T09:00:00-08:00"},
				End:   models.TimeSpec{DateTime: "2024-03-10T10:00:00-08:00"},
			},
			want: true,
		},
		{
			name: "utc stamp that is today locally but tomorrow in utc",
			ev: models.RawEvent{
				// 02:00Z on the 11th is 18:00 on the 10th in PST.
				Start: models.TimeSpec{DateTime: "2024-03-11T02:00:00Z"},
				End:   models.TimeSpec{DateTime: "2024-03-11T03:00:00Z"},
			},
			want: true,
		},
		{
			name: "timed event tomorrow",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "2024-03-11T09:00:00-08:00"},
				End:   models.TimeSpec{DateTime: "2024-03-11T10:00:00-08:00"},
			},
			want: false,
		},
		{
			name: "overnight event ending today",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "2024-03-09T23:00:00-08:00"},
				End:   models.TimeSpec{DateTime: "2024-03-10T01:00:00-08:00"},
			},
			want: true,
		},
		{
			name: "all-day event today",
			ev:   models.RawEvent{Start: models.TimeSpec{Date: "2024-03-10"}},
			want: true,
		},
		{
			name: "all-day event yesterday",
			ev:   models.RawEvent{Start: models.TimeSpec{Date: "2024-03-09"}},
			want: false,
		},
		{
			name: "all-day event tomorrow",
			ev:   models.RawEvent{Start: models.TimeSpec{Date: "2024-03-11"}},
			want: false,
		},
		{
			name: "unparseable start but all-day end today",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "garbage"},
				End:   models.TimeSpec{Date: "2024-03-10"},
			},
			want: true,
		},
		{
			name: "no parseable bound at all is kept",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "garbage"},
				End:   models.TimeSpec{DateTime: "also garbage"},
			},
			want: true,
		},
		{
			name: "empty bounds are kept",
			ev:   models.RawEvent{Title: "mystery"},
			want: true,
		},
		{
			name: "parseable but off-date bounds are excluded",
			ev: models.RawEvent{
				Start: models.TimeSpec{DateTime: "garbage"},
				End:   models.TimeSpec{Date: "2024-03-12"},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isToday(tt.ev, ref))
		})
	}
}
