package config

import (
	"strings"
	"time"
)

const (
	apiURLVar  = "GOBARBER_API_URL"
	hostVar    = "GOBARBER_HOST"
	timeoutVar = "GOBARBER_TIMEOUT"
)

// Hosts accepted by /sessions/access-token. The web host is restricted to providers.
const (
	HostWeb    = "web"
	HostMobile = "mobile"
)

type APIConfig interface {
	GetAPIURL() string
	GetHost() string
	GetTimeout() time.Duration
}

type API struct {
	env EnvVars
}

var _ APIConfig = API{}

func (a API) GetAPIURL() string {
	return strings.TrimRight(a.env.get(apiURLVar, "http://localhost:8000"), "/")
}

func (a API) GetHost() string {
	host := strings.ToLower(a.env.get(hostVar, HostWeb))
	if host != HostMobile {
		return HostWeb
	}
	return host
}

func (a API) GetTimeout() time.Duration {
	d, err := time.ParseDuration(a.env.get(timeoutVar, "15s"))
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
