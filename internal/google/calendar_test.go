package google

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"daydash/internal/models"
)

func TestClientFailsOpenWhenUnauthenticated(t *testing.T) {
	auth := NewAuthenticator(testLogger(), NewTokenStore(filepath.Join(t.TempDir(), "token.json")), nil, nil)
	client := NewClient(auth, testLogger())

	calendars, err := client.ListCalendars(context.Background())
	require.NoError(t, err)
	assert.Empty(t, calendars)

	events, err := client.ListEvents(context.Background(), "primary", models.TimeWindow{}, 50)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestToRawEvent(t *testing.T) {
	timed := toRawEvent(&calendar.Event{
		Summary:     "Standup",
		Location:    "Room 1",
		Description: "Daily",
		Start:       &calendar.EventDateTime{DateTime: "2024-03-10T09:00:00-08:00"},
		End:         &calendar.EventDateTime{DateTime: "2024-03-10T10:00:00-08:00"},
	})
	assert.Equal(t, "Standup", timed.Title)
	assert.Equal(t, "2024-03-10T09:00:00-08:00", timed.Start.DateTime)
	assert.Empty(t, timed.Start.Date)

	allDay := toRawEvent(&calendar.Event{
		Summary: "Field day",
		Start:   &calendar.EventDateTime{Date: "2024-03-10"},
		End:     &calendar.EventDateTime{Date: "2024-03-11"},
	})
	assert.Equal(t, "2024-03-10", allDay.Start.Date)
	assert.Empty(t, allDay.Start.DateTime)

	// A malformed payload with no bounds at all stays representable.
	bare := toRawEvent(&calendar.Event{Summary: "mystery"})
	assert.True(t, bare.Start.IsZero())
	assert.True(t, bare.End.IsZero())
}
