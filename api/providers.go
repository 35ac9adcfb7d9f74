package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jrsteele09/go-barber-client/users"
)

func (c *Client) Providers(ctx context.Context) ([]users.User, error) {
	var out []users.User
	if err := c.getJSON(ctx, RouteProviders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProviderAppointments lists the signed-in provider's appointments on the calendar day of day.
func (c *Client) ProviderAppointments(ctx context.Context, day time.Time) ([]ProviderAppointment, error) {
	var out []ProviderAppointment
	if err := c.getJSON(ctx, RouteProviderSchedule, dayQuery(day), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MonthAvailability(ctx context.Context, providerID string, year int, month time.Month) ([]DayAvailability, error) {
	q := url.Values{}
	q.Set("provider_id", providerID)
	q.Set("month", strconv.Itoa(int(month)))
	q.Set("year", strconv.Itoa(year))

	var out []DayAvailability
	if err := c.getJSON(ctx, RouteProviderMonthAvailability, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DayAvailability(ctx context.Context, providerID string, day time.Time) ([]HourAvailability, error) {
	q := dayQuery(day)
	q.Set("provider_id", providerID)

	var out []HourAvailability
	if err := c.getJSON(ctx, RouteProviderDayAvailability, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.getJSON(ctx, RouteProviderNotifications, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead flags one notification as read; the API answers 204.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	body := struct {
		DocID string `json:"doc_id"`
	}{DocID: id}
	return c.doJSON(ctx, http.MethodPut, RouteProviderNotifications, nil, body, nil)
}

func dayQuery(day time.Time) url.Values {
	q := url.Values{}
	q.Set("day", strconv.Itoa(day.Day()))
	q.Set("month", strconv.Itoa(int(day.Month())))
	q.Set("year", strconv.Itoa(day.Year()))
	return q
}
