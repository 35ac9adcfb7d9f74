package config

import "time"

const (
	localeVar   = "GOBARBER_LOCALE"
	timezoneVar = "GOBARBER_TIMEZONE"
)

type DisplayConfig interface {
	GetLocale() string
	GetLocation() *time.Location
}

type Display struct {
	env EnvVars
}

var _ DisplayConfig = Display{}

func (d Display) GetLocale() string {
	return d.env.get(localeVar, "pt_BR")
}

// GetLocation is the zone appointments are presented in. The API stores UTC and serves
// America/Sao_Paulo.
func (d Display) GetLocation() *time.Location {
	loc, err := time.LoadLocation(d.env.get(timezoneVar, "America/Sao_Paulo"))
	if err != nil {
		return time.Local
	}
	return loc
}
