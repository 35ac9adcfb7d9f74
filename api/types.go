package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jrsteele09/go-barber-client/users"
)

// Timestamp decodes the API's datetimes. Appointment dates carry a zone offset; notification
// timestamps come from the document store without one and are taken as UTC.
type Timestamp struct {
	time.Time
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// Session is the body of a successful /sessions/access-token call.
type Session struct {
	User  users.User `json:"user"`
	Token string     `json:"token"`
}

// Detail is the {"detail": "..."} message body most endpoints answer with.
type Detail struct {
	Detail string `json:"detail"`
}

// ProviderAppointment is an entry of the provider's own schedule (/providers/me).
type ProviderAppointment struct {
	ID         string     `json:"id"`
	ProviderID string     `json:"provider_id"`
	Date       Timestamp  `json:"date"`
	User       users.User `json:"user"` // The client who booked
}

// UserAppointment is an entry of the client's own bookings (/users/me).
type UserAppointment struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	Provider users.User `json:"provider"`
	Date     Timestamp  `json:"date"`
}

// Appointment is returned when a booking is created.
type Appointment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProviderID string    `json:"provider_id"`
	Date       Timestamp `json:"date"`
}

// DayAvailability flags whether a day of the month still has free hours.
type DayAvailability struct {
	Day       int  `json:"day"`
	Available bool `json:"available"`
}

// HourAvailability flags whether an hour of a day can be booked.
type HourAvailability struct {
	Hour      int  `json:"hour"`
	Available bool `json:"available"`
}

type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Read        bool      `json:"read"`
	CreatedAt   Timestamp `json:"created_at"`
}
