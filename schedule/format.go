package schedule

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/goodsign/monday"
)

// NowTimeFunc is swapped in tests.
var NowTimeFunc = time.Now

// Formatter renders appointment times in one locale and time zone.
type Formatter struct {
	locale monday.Locale
	loc    *time.Location
}

// NewFormatter supports pt_BR (the default) and en_US.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	var l monday.Locale = monday.LocalePtBR
	if strings.HasPrefix(strings.ToLower(locale), "en") {
		l = monday.LocaleEnUS
	}
	return &Formatter{locale: l, loc: loc}
}

func (f *Formatter) english() bool {
	return f.locale == monday.LocaleEnUS
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

// In converts t to the formatter's zone.
func (f *Formatter) In(t time.Time) time.Time {
	return t.In(f.loc)
}

// Hour is "HH:mm".
func (f *Formatter) Hour(t time.Time) string {
	return f.In(t).Format("15:04")
}

// Slot is the "HH:00" label of a bookable hour.
func (f *Formatter) Slot(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// DayHeading is "Dia 05 de Mar" (or "March 05").
func (f *Formatter) DayHeading(t time.Time) string {
	if f.english() {
		return monday.Format(f.In(t), "January 02", f.locale)
	}
	return "Dia " + monday.Format(f.In(t), "02 de ", f.locale) + capitalize(monday.Format(f.In(t), "Jan", f.locale))
}

// Weekday is the capitalised day of the week, e.g. "Terça-feira".
func (f *Formatter) Weekday(t time.Time) string {
	return capitalize(monday.Format(f.In(t), "Monday", f.locale))
}

// LongDay is "05 de março" (or "March 05").
func (f *Formatter) LongDay(t time.Time) string {
	if f.english() {
		return monday.Format(f.In(t), "January 02", f.locale)
	}
	return monday.Format(f.In(t), "02 de January", f.locale)
}

// Confirmation is the sentence shown once an appointment is booked.
func (f *Formatter) Confirmation(t time.Time) string {
	if f.english() {
		return monday.Format(f.In(t), "Monday, January 02, 2006 at 15:04", f.locale)
	}
	return capitalize(monday.Format(f.In(t), "Monday, dia 02 de January de 2006 às 15:04h", f.locale))
}

// Relative is the distance from now, e.g. "há 5 minutos" or "5 minutes ago".
func (f *Formatter) Relative(t time.Time) string {
	now := NowTimeFunc()
	if f.english() {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return humanize.CustomRelTime(t, now, "há", "em", relMagnitudesPtBR)
}

var relMagnitudesPtBR = []humanize.RelTimeMagnitude{
	{D: time.Second, Format: "agora", DivBy: time.Second},
	{D: 2 * time.Second, Format: "%s 1 segundo", DivBy: 1},
	{D: time.Minute, Format: "%s %d segundos", DivBy: time.Second},
	{D: 2 * time.Minute, Format: "%s 1 minuto", DivBy: 1},
	{D: time.Hour, Format: "%s %d minutos", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "%s 1 hora", DivBy: 1},
	{D: humanize.Day, Format: "%s %d horas", DivBy: time.Hour},
	{D: 2 * humanize.Day, Format: "%s 1 dia", DivBy: 1},
	{D: humanize.Week, Format: "%s %d dias", DivBy: humanize.Day},
	{D: 2 * humanize.Week, Format: "%s 1 semana", DivBy: 1},
	{D: humanize.Month, Format: "%s %d semanas", DivBy: humanize.Week},
	{D: 2 * humanize.Month, Format: "%s 1 mês", DivBy: 1},
	{D: humanize.Year, Format: "%s %d meses", DivBy: humanize.Month},
	{D: 18 * humanize.Month, Format: "%s 1 ano", DivBy: 1},
	{D: 2 * humanize.Year, Format: "%s 2 anos", DivBy: 1},
	{D: humanize.LongTime, Format: "%s %d anos", DivBy: humanize.Year},
	{D: math.MaxInt64, Format: "%s muito tempo", DivBy: 1},
}

// IsToday reports whether t falls on the current calendar day in the formatter's zone.
func (f *Formatter) IsToday(t time.Time) bool {
	return SameDay(f.In(t), f.In(NowTimeFunc()))
}

// SameDay compares calendar dates in a's zone.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
