package schedule

import (
	"sort"
	"time"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/users"
)

// Noon splits a day's appointments into morning and afternoon.
const Noon = 12

// Entry is one appointment as the dashboard shows it. Person is the other party: the client on
// a provider's dashboard, the provider on a client's.
type Entry struct {
	ID     string
	At     time.Time
	Person users.User
	Past   bool
}

// Day is a provider's schedule for one calendar day.
type Day struct {
	Date      time.Time
	Today     bool
	Morning   []Entry
	Afternoon []Entry
	// Next is the first appointment still ahead, only set when Date is today.
	Next *Entry
}

func (d Day) Empty() bool {
	return len(d.Morning) == 0 && len(d.Afternoon) == 0
}

// ProviderDay partitions a provider's appointments for date.
func (f *Formatter) ProviderDay(date time.Time, appts []api.ProviderAppointment) Day {
	now := NowTimeFunc()
	day := Day{Date: f.In(date), Today: f.IsToday(date)}

	entries := make([]Entry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, Entry{ID: a.ID, At: f.In(a.Date.Time), Person: a.User, Past: a.Date.Before(now)})
	}
	sortEntries(entries)

	for i := range entries {
		e := entries[i]
		if e.At.Hour() < Noon {
			day.Morning = append(day.Morning, e)
		} else {
			day.Afternoon = append(day.Afternoon, e)
		}
		if day.Today && day.Next == nil && e.At.After(now) {
			day.Next = &entries[i]
		}
	}
	return day
}

// ClientAppointments orders a client's bookings and splits them into upcoming and past.
func (f *Formatter) ClientAppointments(appts []api.UserAppointment) (upcoming, past []Entry) {
	now := NowTimeFunc()
	entries := make([]Entry, 0, len(appts))
	for _, a := range appts {
		entries = append(entries, Entry{ID: a.ID, At: f.In(a.Date.Time), Person: a.Provider, Past: a.Date.Before(now)})
	}
	sortEntries(entries)

	for _, e := range entries {
		if e.Past {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming, past
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].At.Before(entries[j].At) })
}

// DisabledDays lists the days of the month that cannot be picked: weekends and days the API
// reports as unavailable.
func DisabledDays(year int, month time.Month, avail []api.DayAvailability) []int {
	unavailable := make(map[int]bool, len(avail))
	for _, d := range avail {
		if !d.Available {
			unavailable[d.Day] = true
		}
	}

	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	var out []int
	for day := 1; day <= last; day++ {
		wd := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
		if unavailable[day] || wd == time.Saturday || wd == time.Sunday {
			out = append(out, day)
		}
	}
	return out
}

// SplitHours partitions a day's availability at noon.
func SplitHours(hours []api.HourAvailability) (morning, afternoon []api.HourAvailability) {
	for _, h := range hours {
		if h.Hour < Noon {
			morning = append(morning, h)
		} else {
			afternoon = append(afternoon, h)
		}
	}
	return morning, afternoon
}
