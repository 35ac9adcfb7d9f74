package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/forms"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/schedule"
	"github.com/jrsteele09/go-barber-client/token"
	"github.com/jrsteele09/go-barber-client/users"
)

// Printer renders screens and toasts for the terminal. Colours are dropped automatically when
// the writer is not a terminal.
type Printer struct {
	out    io.Writer
	fmt    *schedule.Formatter
	style  styles
	labels labels
}

func NewPrinter(out io.Writer, f *schedule.Formatter, locale string) *Printer {
	return &Printer{
		out:    out,
		fmt:    f,
		style:  newStyles(lipgloss.NewRenderer(out)),
		labels: labelsFor(locale),
	}
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.out, s)
}

// Info, Success and Error are the toast kinds.
func (p *Printer) Info(msg string) {
	p.println(p.style.info.Render("ℹ " + msg))
}

func (p *Printer) Success(msg string) {
	p.println(p.style.success.Render("✔ " + msg))
}

func (p *Printer) Error(msg string) {
	p.println(p.style.failure.Render("✖ " + msg))
}

// Fail turns err into what the user should see: field problems one per line, the server's
// message for API errors, a sign-in prompt for lost sessions and a generic line otherwise.
func (p *Printer) Fail(err error) {
	var fieldErrs forms.Errors
	if apperrors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for f := range fieldErrs {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			p.println(p.style.field.Render(f+": ") + fieldErrs[f])
		}
		return
	}
	p.Error(p.Message(err))
}

// Message is the single line shown for err.
func (p *Printer) Message(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrUnauthorized),
		apperrors.Is(err, apperrors.ErrSignInRequired),
		apperrors.Is(err, apperrors.ErrNoSession):
		var apiErr *api.Error
		if apperrors.As(err, &apiErr) && apiErr.Public && apiErr.Detail != "" {
			return apiErr.Detail
		}
		return p.labels.signInAgain
	case apperrors.Is(err, apperrors.ErrInvalidHour),
		apperrors.Is(err, apperrors.ErrBookingBlocked),
		apperrors.Is(err, apperrors.ErrProviderNotFound):
		return err.Error()
	}
	if detail, ok := api.DetailOf(err); ok {
		return detail
	}
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return err.Error()
	}
	return p.labels.unexpected
}

// Welcome is the dashboard header.
func (p *Printer) Welcome(u users.User) {
	kind := p.labels.client
	if u.IsProvider() {
		kind = p.labels.provider
	}
	p.println(p.style.subtle.Render(p.labels.welcome) + " " + p.style.accent.Render(u.FullName()) + p.style.subtle.Render(" ("+kind+")"))
}

// Profile prints the signed-in user and what is known about the session token.
func (p *Printer) Profile(u users.User, claims token.Claims, claimsErr error) {
	lines := []string{
		p.style.title.Render(u.FullName()),
		u.Email,
	}
	if u.IsProvider() {
		lines = append(lines, *u.Address)
	}
	if u.Avatar != "" {
		lines = append(lines, p.style.subtle.Render(u.Avatar))
	}
	if claimsErr == nil && !claims.ExpiresAt.IsZero() {
		lines = append(lines, p.style.subtle.Render("token: "+p.fmt.Relative(claims.ExpiresAt)+" ("+claims.ExpiresAt.In(p.fmt.Location()).Format(time.RFC3339)+")"))
	}
	p.println(p.style.card.Render(strings.Join(lines, "\n")))
}

// ProviderDay is the provider's dashboard for one day.
func (p *Printer) ProviderDay(day schedule.Day) {
	heading := p.labels.scheduled
	p.println(p.style.title.Render(heading))

	sub := []string{}
	if day.Today {
		sub = append(sub, p.labels.today)
	}
	sub = append(sub, p.fmt.DayHeading(day.Date), p.fmt.Weekday(day.Date))
	p.println(p.style.accent.Render(strings.Join(sub, " | ")))

	if day.Next != nil {
		p.println("")
		p.println(p.style.subtle.Render(p.labels.next))
		p.println(p.style.card.Render(p.style.strong.Render(day.Next.Person.FullName()) + "  " + p.fmt.Hour(day.Next.At)))
	}

	p.period(p.labels.morning, day.Morning)
	p.period(p.labels.afternoon, day.Afternoon)
}

func (p *Printer) period(title string, entries []schedule.Entry) {
	p.println("")
	p.println(p.style.subtle.Render(title))
	if len(entries) == 0 {
		p.println("  " + p.labels.noneInPeriod)
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("  %s  %s", p.fmt.Hour(e.At), e.Person.FullName())
		if e.Past {
			line = p.style.past.Render(line)
		}
		p.println(line)
	}
}

// ClientAppointments lists a client's bookings.
func (p *Printer) ClientAppointments(upcoming, past []schedule.Entry) {
	p.println(p.style.title.Render(p.labels.upcoming))
	if len(upcoming) == 0 {
		p.println("  " + p.labels.noneBooked)
	}
	for _, e := range upcoming {
		p.println(fmt.Sprintf("  %s %s  %s", p.fmt.LongDay(e.At), p.fmt.Hour(e.At), e.Person.FullName()))
	}
	if len(past) == 0 {
		return
	}
	p.println("")
	p.println(p.style.subtle.Render(p.labels.past))
	for _, e := range past {
		p.println(p.style.past.Render(fmt.Sprintf("  %s %s  %s", p.fmt.LongDay(e.At), p.fmt.Hour(e.At), e.Person.FullName())))
	}
}

// Providers lists the providers a client can book, selected first.
func (p *Printer) Providers(providers []users.User, selectedID string) {
	p.println(p.style.title.Render(p.labels.providers))
	if len(providers) == 0 {
		p.println("  " + p.labels.noProviders)
		return
	}
	for _, u := range providers {
		name := u.FullName()
		if u.ID == selectedID {
			name = p.style.accent.Render("› " + name)
		} else {
			name = "  " + name
		}
		p.println(fmt.Sprintf("%s  %s  %s", name, p.style.subtle.Render(*orEmpty(u.Address)), p.style.subtle.Render(u.ID)))
	}
}

func orEmpty(s *string) *string {
	if s == nil {
		empty := ""
		return &empty
	}
	return s
}

// Availability prints the month's disabled days and the hours of the selected day.
func (p *Printer) Availability(day time.Time, disabled []int, hours []api.HourAvailability) {
	p.println(p.style.title.Render(p.fmt.DayHeading(day)) + " " + p.style.subtle.Render(p.fmt.Weekday(day)))

	if len(disabled) > 0 {
		days := make([]string, 0, len(disabled))
		for _, d := range disabled {
			days = append(days, fmt.Sprintf("%02d", d))
		}
		p.println(p.style.subtle.Render(p.labels.availableDays+": ") + strings.Join(days, " "))
	}

	morning, afternoon := schedule.SplitHours(hours)
	p.slots(p.labels.morning, morning)
	p.slots(p.labels.afternoon, afternoon)
}

func (p *Printer) slots(title string, hours []api.HourAvailability) {
	cells := make([]string, 0, len(hours))
	for _, h := range hours {
		label := p.fmt.Slot(h.Hour)
		if h.Available {
			cells = append(cells, p.style.accent.Render(label))
		} else {
			cells = append(cells, p.style.disabled.Render(label))
		}
	}
	p.println(p.style.subtle.Render(title) + "  " + strings.Join(cells, "  "))
}

// Booked is the confirmation screen.
func (p *Printer) Booked(b schedule.Booked) {
	body := p.style.title.Render(p.labels.created) + "\n" +
		p.fmt.Confirmation(b.Date) + "\n" +
		p.style.accent.Render(b.Provider.FullName())
	p.println(p.style.card.Render(body))
}

// Notifications lists notifications newest first, unread ones highlighted.
func (p *Printer) Notifications(items []schedule.NotificationItem) {
	p.println(p.style.title.Render(p.labels.notifications))
	if len(items) == 0 {
		p.println("  " + p.labels.noNotes)
		return
	}
	for _, n := range items {
		marker := p.style.accent.Render("●")
		content := n.Content
		if n.Read {
			marker = " "
			content = p.style.subtle.Render(content)
		}
		p.println(fmt.Sprintf("%s %s", marker, content))
		p.println("  " + p.style.subtle.Render(n.Age+"  "+n.ID))
	}
}

// Metrics prints the request counters gathered during the command.
func (p *Printer) Metrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return apperrors.Wrapf(err, "gather metrics")
	}
	for _, mf := range families {
		if mf.GetName() != "gobarber_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			method := labels["method"]
			p.println(fmt.Sprintf("%s %s %s %.0f",
				p.style.method(method).Render(fmt.Sprintf("%-4s", method)),
				labels["route"],
				p.style.subtle.Render(labels["status"]),
				m.GetCounter().GetValue()))
		}
	}
	return nil
}
