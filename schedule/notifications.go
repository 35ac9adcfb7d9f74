package schedule

import (
	"sort"

	"github.com/jrsteele09/go-barber-client/api"
)

// NotificationItem is a notification with its relative age already rendered.
type NotificationItem struct {
	api.Notification
	Age string
}

// Notifications orders notifications newest first and renders their ages.
func (f *Formatter) Notifications(in []api.Notification) []NotificationItem {
	out := make([]NotificationItem, 0, len(in))
	for _, n := range in {
		out = append(out, NotificationItem{Notification: n, Age: f.Relative(n.CreatedAt.Time)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	return out
}

// HasUnread reports whether any notification is still unread.
func HasUnread(in []api.Notification) bool {
	for _, n := range in {
		if !n.Read {
			return true
		}
	}
	return false
}

// MarkRead flags id as read locally, returning whether it was found.
func MarkRead(in []api.Notification, id string) bool {
	for i := range in {
		if in[i].ID == id {
			in[i].Read = true
			return true
		}
	}
	return false
}
