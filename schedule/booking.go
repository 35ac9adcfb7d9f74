package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-barber-client/api"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/users"
)

// OrderProviders returns a copy of providers with selectedID moved to the front by swapping it
// with the first entry. An unknown id leaves the order unchanged.
func OrderProviders(providers []users.User, selectedID string) []users.User {
	out := append([]users.User(nil), providers...)
	for i, p := range out {
		if p.ID == selectedID {
			out[0], out[i] = out[i], out[0]
			break
		}
	}
	return out
}

// FindProvider looks selectedID up in providers.
func FindProvider(providers []users.User, selectedID string) (users.User, bool) {
	for _, p := range providers {
		if p.ID == selectedID {
			return p, true
		}
	}
	return users.User{}, false
}

// BuildDate combines the calendar day of day with hour, minutes zeroed, in loc. Hour zero means
// no hour was selected.
func BuildDate(day time.Time, hour int, loc *time.Location) (time.Time, error) {
	if hour == 0 {
		return time.Time{}, apperrors.ErrInvalidHour
	}
	d := day.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, loc), nil
}

// AppointmentCreator is the API call the Booker makes.
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, providerID string, date time.Time) (api.Appointment, error)
}

// Booker submits one appointment at a time. After a success it stays blocked until Reset, so a
// repeated submit cannot book twice.
type Booker struct {
	client AppointmentCreator
	loc    *time.Location

	mu      sync.Mutex
	blocked bool
}

func NewBooker(client AppointmentCreator, loc *time.Location) *Booker {
	return &Booker{client: client, loc: loc}
}

// Booked is a successful booking with what the confirmation screen shows.
type Booked struct {
	Appointment api.Appointment
	Provider    users.User
	Date        time.Time
}

func (b *Booker) Submit(ctx context.Context, providers []users.User, providerID string, day time.Time, hour int) (Booked, error) {
	date, err := BuildDate(day, hour, b.loc)
	if err != nil {
		return Booked{}, err
	}
	provider, ok := FindProvider(providers, providerID)
	if !ok {
		return Booked{}, apperrors.Wrapf(apperrors.ErrProviderNotFound, "provider %s", providerID)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.blocked {
		return Booked{}, apperrors.ErrBookingBlocked
	}

	appt, err := b.client.CreateAppointment(ctx, provider.ID, date)
	if err != nil {
		return Booked{}, err
	}
	b.blocked = true
	return Booked{Appointment: appt, Provider: provider, Date: date}, nil
}

// Reset allows the next booking.
func (b *Booker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocked = false
}

func (b *Booker) Blocked() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.blocked
}
