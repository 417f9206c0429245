package gcal

import (
	"context"
	"fmt"
	"net/http"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/vkarpenko/deadline-sync/app/schedule"
)

var _ schedule.EventWriter = (*Client)(nil)

// Client writes whole-day entries to one Google calendar.
type Client struct {
	service    *calendar.Service
	calendarID string
}

func NewClient(ctx context.Context, httpClient *http.Client, calendarID string) (*Client, error) {
	service, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{
		service:    service,
		calendarID: calendarID,
	}, nil
}

// InsertAllDayEvent creates a date-only entry. All-day events carry no
// time-of-day and no timezone.
func (c *Client) InsertAllDayEvent(ctx context.Context, title string, date schedule.Date) error {
	event := &calendar.Event{
		Summary: title,
		Start:   &calendar.EventDateTime{Date: date.String()},
		End:     &calendar.EventDateTime{Date: date.String()},
	}

	if _, err := c.service.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}

	return nil
}
