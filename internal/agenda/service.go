package agenda

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"daydash/internal/google"
	"daydash/internal/models"
)

// Auth is the slice of the authenticator the orchestrator needs.
type Auth interface {
	Ensure(ctx context.Context) error
	State() models.AuthState
	Reconnect() error
}

// Calendar is the slice of the calendar client the orchestrator needs.
type Calendar interface {
	ListCalendars(ctx context.Context) ([]models.CalendarDescriptor, error)
	ListEvents(ctx context.Context, calendarID string, window models.TimeWindow, maxResults int64) ([]models.RawEvent, error)
}

// Service composes authentication, window resolution, classification and
// formatting into the one fetch operation the dashboard calls. It owns the
// session: no ambient globals, single writer for auth state.
type Service struct {
	logger   *slog.Logger
	auth     Auth
	calendar Calendar
	resolver *Resolver
	display  *time.Location
	now      func() time.Time
}

// NewService creates the orchestrator. display is the zone events are shown
// in; nil means the process's local zone.
func NewService(logger *slog.Logger, auth Auth, calendar Calendar, resolver *Resolver, display *time.Location) *Service {
	if display == nil {
		display = time.Local
	}
	return &Service{
		logger:   logger,
		auth:     auth,
		calendar: calendar,
		resolver: resolver,
		display:  display,
		now:      time.Now,
	}
}

// FetchTodayEvents returns today's events for the calendar, decorated for
// display. It is idempotent and side-effect-free beyond a possible
// credential refresh, and it never returns an error: a calendar that cannot
// be reached shows as an empty day, not a broken dashboard.
func (s *Service) FetchTodayEvents(ctx context.Context, calendarID string) []models.ResolvedEvent {
	if err := s.auth.Ensure(ctx); err != nil {
		if errors.Is(err, google.ErrMissingClientConfig) {
			s.logger.Error("Calendar is not set up", "error", err)
		} else {
			s.logger.Error("Authentication failed", "error", err)
		}
		return nil
	}

	ref := s.now().In(s.display)

	var events []models.RawEvent
	window, err := s.resolver.PreciseWindow(ref)
	if err == nil {
		events, err = s.calendar.ListEvents(ctx, calendarID, window, preciseMaxResults)
	}
	if err != nil {
		s.logger.Warn("Precise today query failed, widening the window", "error", err)
		wide := s.resolver.FallbackWindow(ref)
		fetched, ferr := s.calendar.ListEvents(ctx, calendarID, wide, fallbackMaxResults)
		if ferr != nil {
			s.logger.Error("Fallback query failed too, showing an empty day", "error", ferr)
			return nil
		}
		events = nil
		for _, ev := range fetched {
			if isToday(ev, ref) {
				events = append(events, ev)
			}
		}
	}

	resolved := make([]models.ResolvedEvent, 0, len(events))
	for _, ev := range events {
		resolved = append(resolved, models.ResolvedEvent{
			RawEvent:  ev,
			IsToday:   isToday(ev, ref),
			TimeRange: FormatTimeRange(ev, s.display),
		})
	}
	return resolved
}

// ListCalendars returns the calendars available to the account, empty when
// unauthenticated or unreachable.
func (s *Service) ListCalendars(ctx context.Context) []models.CalendarDescriptor {
	if err := s.auth.Ensure(ctx); err != nil {
		if errors.Is(err, google.ErrMissingClientConfig) {
			s.logger.Error("Calendar is not set up", "error", err)
		} else {
			s.logger.Warn("Authentication failed", "error", err)
		}
		return nil
	}
	calendars, err := s.calendar.ListCalendars(ctx)
	if err != nil {
		s.logger.Warn("Listing calendars failed", "error", err)
		return nil
	}
	return calendars
}

// AuthState reports the session's authentication state.
func (s *Service) AuthState() models.AuthState {
	return s.auth.State()
}

// Reconnect drops the session credential so the next fetch re-authorizes.
func (s *Service) Reconnect() error {
	return s.auth.Reconnect()
}
