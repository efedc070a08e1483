package icloud

import (
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daydash/internal/models"
)

func TestEntryStart(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"9:00 AM", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), true},
		{"2:30 PM", time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), true},
		{"14:30", time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC), true},
		{" 9:00 am ", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), true},
		{"whenever", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := entryStart(day, tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "input %q: got %v", tt.in, got)
		}
	}
}

func TestToVEventTimed(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entry := models.ScheduleEntry{ID: "abc", Time: "9:00 AM", Title: "Dentist", Location: "Main St"}

	ve := toVEvent("abc", day, entry)

	summary, err := ve.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Dentist", summary)

	start, err := ve.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)))

	end, err := ve.Props.DateTime(ical.PropDateTimeEnd, time.UTC)
	require.NoError(t, err)
	assert.True(t, end.Equal(start.Add(time.Hour)))

	location, err := ve.Props.Text(ical.PropLocation)
	require.NoError(t, err)
	assert.Equal(t, "Main St", location)
}

func TestToVEventAllDayWhenTimeUnparseable(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	entry := models.ScheduleEntry{ID: "abc", Time: "whenever", Title: "Errands"}

	ve := toVEvent("abc", day, entry)

	startProp := ve.Props.Get(ical.PropDateTimeStart)
	require.NotNil(t, startProp)
	assert.Equal(t, "20240310", startProp.Value)
	assert.Nil(t, ve.Props.Get(ical.PropDateTimeEnd))
}
