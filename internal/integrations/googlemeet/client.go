package googlemeet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const conferenceSolutionHangoutsMeet = "hangoutsMeet"

// pendingEventTTL сколько помнить событие новой ссылки для отзыва при неудачной фиксации
const pendingEventTTL = time.Hour

var (
	// ErrNotConfigured возвращается, когда учетные данные Google не заданы
	ErrNotConfigured = errors.New("googlemeet client: credentials are not configured")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("googlemeet client: internal error")

	// ErrNoMeetingLink возвращается, когда событие создано без ссылки Meet
	ErrNoMeetingLink = errors.New("googlemeet client: event has no meet link")

	// ErrUnknownLink возвращается при отзыве ссылки, событие которой клиент не создавал
	ErrUnknownLink = errors.New("googlemeet client: unknown meeting link")
)

// Config параметры доступа к Google Calendar
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	CalendarID   string
	Timeout      time.Duration
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client создает ссылки Google Meet через события Google Calendar
type Client struct {
	events     *calendar.EventsService
	calendarID string
	log        Logger

	mu      sync.Mutex
	pending map[string]pendingEvent
	now     func() time.Time
}

type pendingEvent struct {
	id      string
	created time.Time
}

// NewClient создает клиент с OAuth2 refresh token хоста
func NewClient(ctx context.Context, cfg Config, log Logger) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, ErrNotConfigured
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarEventsScope},
	}
	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	httpClient := oauth2.NewClient(ctx, tokenSource)
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return NewClientWithOptions(ctx, cfg.CalendarID, log, option.WithHTTPClient(httpClient))
}

// NewClientWithOptions создает клиент с произвольными опциями google api (используется в тестах)
func NewClientWithOptions(ctx context.Context, calendarID string, log Logger, opts ...option.ClientOption) (*Client, error) {
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create calendar service: %v", ErrInternal, err)
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	return &Client{
		events:     srv.Events,
		calendarID: calendarID,
		log:        log,
		pending:    make(map[string]pendingEvent),
		now:        time.Now,
	}, nil
}

// CreateMeetingLink создает событие календаря с конференцией Meet и возвращает ссылку
func (c *Client) CreateMeetingLink(ctx context.Context, title string, start time.Time, durationMinutes int) (string, error) {
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	event := &calendar.Event{
		Summary: title,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: conferenceSolutionHangoutsMeet,
				},
			},
		},
	}

	created, err := c.events.Insert(c.calendarID, event).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("%w: failed to insert event: %v", ErrInternal, err)
	}

	link := meetLink(created)
	if link == "" {
		return "", fmt.Errorf("%w: event id=%s", ErrNoMeetingLink, created.Id)
	}

	c.remember(link, created.Id)
	c.log.Info("Google Meet link created for event id=%s", created.Id)
	return link, nil
}

// RevokeMeetingLink удаляет событие календаря, созданное для ссылки
func (c *Client) RevokeMeetingLink(ctx context.Context, link string) error {
	c.mu.Lock()
	event, ok := c.pending[link]
	delete(c.pending, link)
	c.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLink, link)
	}

	if err := c.events.Delete(c.calendarID, event.id).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: failed to delete event id=%s: %v", ErrInternal, event.id, err)
	}

	c.log.Info("Google Meet event id=%s deleted", event.id)
	return nil
}

// remember сохраняет событие ссылки и забывает события старше pendingEventTTL
func (c *Client) remember(link, eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for l, e := range c.pending {
		if now.Sub(e.created) > pendingEventTTL {
			delete(c.pending, l)
		}
	}
	c.pending[link] = pendingEvent{id: eventID, created: now}
}

// meetLink достает ссылку подключения из созданного события
func meetLink(event *calendar.Event) string {
	if event.HangoutLink != "" {
		return event.HangoutLink
	}
	if event.ConferenceData == nil {
		return ""
	}
	for _, ep := range event.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" && ep.Uri != "" {
			return ep.Uri
		}
	}
	return ""
}

