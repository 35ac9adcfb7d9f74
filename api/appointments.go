package api

import (
	"context"
	"net/http"
	"time"
)

// CreateAppointment books provider at date. The date is sent in UTC.
func (c *Client) CreateAppointment(ctx context.Context, providerID string, date time.Time) (Appointment, error) {
	body := struct {
		ProviderID string    `json:"provider_id"`
		Date       time.Time `json:"date"`
	}{ProviderID: providerID, Date: date.UTC()}

	var out Appointment
	if err := c.doJSON(ctx, http.MethodPost, RouteAppointments, nil, body, &out); err != nil {
		return Appointment{}, err
	}
	return out, nil
}
