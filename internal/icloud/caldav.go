package icloud

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/caldav"
	"github.com/google/uuid"

	"daydash/internal/models"
)

const (
	endpoint = "https://caldav.icloud.com/"

	// Manual entries carry only a start time; give them a fixed slot.
	defaultDuration = time.Hour
)

// basicAuthTransport adds Basic Auth and a User-Agent to every request.
type basicAuthTransport struct {
	username  string
	password  string
	transport http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.username, t.password)
	req.Header.Set("User-Agent", "daydash/1.0")
	return t.transport.RoundTrip(req)
}

// Publisher mirrors the dashboard's manual schedule entries into an iCloud
// calendar over CalDAV, so events added on the dashboard show up on the
// user's other devices.
type Publisher struct {
	caldavClient *caldav.Client
	webdavClient *webdav.Client
	logger       *slog.Logger
	calendarURL  string
}

// NewPublisher connects with an app-specific password and locates the named
// calendar under the account's calendar home set.
func NewPublisher(ctx context.Context, logger *slog.Logger, username, password, calendarName string) (*Publisher, error) {
	httpClient := &http.Client{
		Transport: &basicAuthTransport{
			username:  username,
			password:  password,
			transport: http.DefaultTransport,
		},
		Timeout: 10 * time.Second,
	}

	caldavClient, err := caldav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create caldav client: %w", err)
	}
	webdavClient, err := webdav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("create webdav client: %w", err)
	}

	p := &Publisher{
		caldavClient: caldavClient,
		webdavClient: webdavClient,
		logger:       logger,
	}

	calendarURL, err := p.findCalendar(ctx, calendarName)
	if err != nil {
		return nil, fmt.Errorf("find calendar %q: %w", calendarName, err)
	}
	p.calendarURL = calendarURL
	logger.Info("Found iCloud calendar", "url", calendarURL)
	return p, nil
}

// PublishSchedule uploads each manual entry as its own VEVENT for the given
// day. Entries that fail individually are logged and skipped; one bad entry
// must not abort the batch.
func (p *Publisher) PublishSchedule(ctx context.Context, day time.Time, entries []models.ScheduleEntry) error {
	var failed int
	for _, entry := range entries {
		if err := p.publishEntry(ctx, day, entry); err != nil {
			p.logger.Error("Could not publish schedule entry", "title", entry.Title, "error", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d schedule entries failed to publish", failed, len(entries))
	}
	return nil
}

func (p *Publisher) publishEntry(ctx context.Context, day time.Time, entry models.ScheduleEntry) error {
	uid := entry.ID
	if uid == "" {
		uid = uuid.New().String()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//daydash//EN")
	cal.Children = append(cal.Children, toVEvent(uid, day, entry))

	// The event path must be relative to the endpoint for the webdav client.
	eventPath := path.Join(strings.TrimPrefix(p.calendarURL, endpoint), uid+".ics")
	writer, err := p.webdavClient.Create(ctx, eventPath)
	if err != nil {
		return fmt.Errorf("create event on CalDAV server: %w", err)
	}
	defer writer.Close()

	if err := ical.NewEncoder(writer).Encode(cal); err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	p.logger.Debug("Published schedule entry", "title", entry.Title, "uid", uid)
	return nil
}

// toVEvent builds the VEVENT for one entry. A parseable kitchen-style time
// ("9:00 AM") becomes a timed event on the given day; anything else is
// published as an all-day event rather than dropped.
func toVEvent(uid string, day time.Time, entry models.ScheduleEntry) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, uid)
	ve.Props.SetText(ical.PropSummary, entry.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())

	if start, ok := entryStart(day, entry.Time); ok {
		ve.Props.SetDateTime(ical.PropDateTimeStart, start)
		ve.Props.SetDateTime(ical.PropDateTimeEnd, start.Add(defaultDuration))
	} else {
		startProp := ical.NewProp(ical.PropDateTimeStart)
		startProp.SetValueType(ical.ValueDate)
		startProp.Value = day.Format("20060102")
		ve.Props.Add(startProp)
	}

	if entry.Location != "" {
		ve.Props.SetText(ical.PropLocation, entry.Location)
	}
	return ve
}

// entryStart parses the entry's freeform time text onto the day's date.
func entryStart(day time.Time, timeText string) (time.Time, bool) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(timeText), " ", ""))
	for _, layout := range []string{"3:04PM", "15:04"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			year, month, d := day.Date()
			return time.Date(year, month, d, t.Hour(), t.Minute(), 0, 0, day.Location()), true
		}
	}
	return time.Time{}, false
}

// findCalendar walks principal, home set, and calendar listing to resolve
// the calendar's URL.
func (p *Publisher) findCalendar(ctx context.Context, name string) (string, error) {
	principalPath, err := p.caldavClient.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return "", fmt.Errorf("find principal path: %w", err)
	}
	homeSetPath, err := p.caldavClient.FindCalendarHomeSet(ctx, principalPath)
	if err != nil {
		return "", fmt.Errorf("find calendar home set: %w", err)
	}
	calendars, err := p.caldavClient.FindCalendars(ctx, homeSetPath)
	if err != nil {
		return "", fmt.Errorf("find calendars: %w", err)
	}
	for _, cal := range calendars {
		if cal.Name == name {
			return strings.TrimSuffix(endpoint, "/") + cal.Path, nil
		}
	}
	return "", fmt.Errorf("no calendar named %q", name)
}
