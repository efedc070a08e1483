package google

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"daydash/internal/models"
)

// Client issues list queries against the Google Calendar API using the
// Authenticator's credential. Both operations fail open when the session is
// not authenticated: the dashboard must never block on calendar
// unavailability, so an empty result stands in for an error the UI cannot
// act on.
type Client struct {
	auth    *Authenticator
	logger  *slog.Logger
	service *calendar.Service
}

// NewClient creates a calendar client bound to an Authenticator.
func NewClient(auth *Authenticator, logger *slog.Logger) *Client {
	return &Client{auth: auth, logger: logger}
}

// ensureService lazily builds the API service. Returns (nil, nil) when the
// session is unauthenticated.
func (c *Client) ensureService(ctx context.Context) (*calendar.Service, error) {
	if c.service != nil {
		return c.service, nil
	}
	httpClient := c.auth.HTTPClient(ctx)
	if httpClient == nil {
		return nil, nil
	}
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	c.service = service
	return service, nil
}

// ListCalendars fetches the calendars available to the account. Failures
// are logged and converted to an empty list.
func (c *Client) ListCalendars(ctx context.Context) ([]models.CalendarDescriptor, error) {
	service, err := c.ensureService(ctx)
	if err != nil {
		c.logger.Warn("Could not build calendar service", "error", err)
		return nil, nil
	}
	if service == nil {
		return nil, nil
	}

	cctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	list, err := service.CalendarList.List().Context(cctx).Do()
	if err != nil {
		c.logger.Warn("Listing calendars failed", "error", err)
		return nil, nil
	}

	calendars := make([]models.CalendarDescriptor, 0, len(list.Items))
	for _, item := range list.Items {
		calendars = append(calendars, models.CalendarDescriptor{
			ID:          item.Id,
			DisplayName: item.Summary,
		})
	}
	return calendars, nil
}

// ListEvents fetches events in the given window, ascending by start time.
// An unauthenticated session yields an empty result; a remote failure is
// returned wrapped in ErrRemoteQueryFailed so the orchestrator can take its
// fallback branch. No retry happens at this layer.
func (c *Client) ListEvents(ctx context.Context, calendarID string, window models.TimeWindow, maxResults int64) ([]models.RawEvent, error) {
	service, err := c.ensureService(ctx)
	if err != nil {
		c.logger.Warn("Could not build calendar service", "error", err)
		return nil, nil
	}
	if service == nil {
		return nil, nil
	}

	call := service.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(window.Start.Format(time.RFC3339)).
		TimeMax(window.End.Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime")
	if window.Timezone != "" {
		call = call.TimeZone(window.Timezone)
	}

	cctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()
	result, err := call.Context(cctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteQueryFailed, err)
	}

	events := make([]models.RawEvent, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, toRawEvent(item))
	}
	c.logger.Debug("Fetched events", "calendarID", calendarID, "count", len(events))
	return events, nil
}

// toRawEvent converts an API event without resolving the dateTime/date
// ambiguity; that stays intact until classification.
func toRawEvent(item *calendar.Event) models.RawEvent {
	ev := models.RawEvent{
		Title:       item.Summary,
		Location:    item.Location,
		Description: item.Description,
	}
	if item.Start != nil {
		ev.Start = models.TimeSpec{DateTime: item.Start.DateTime, Date: item.Start.Date}
	}
	if item.End != nil {
		ev.End = models.TimeSpec{DateTime: item.End.DateTime, Date: item.End.Date}
	}
	return ev
}
