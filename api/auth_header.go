package api

import (
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// authHeader is the client's mutable default Authorization header.
type authHeader struct {
	mu  sync.RWMutex
	tok *oauth2.Token
}

func (a *authHeader) set(accessToken string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tok = &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
}

func (a *authHeader) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tok = nil
}

// apply sets the header on r and reports whether credentials were attached.
func (a *authHeader) apply(r *http.Request) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.tok == nil {
		return false
	}
	a.tok.SetAuthHeader(r)
	return true
}

func (a *authHeader) value() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.tok == nil {
		return ""
	}
	return a.tok.Type() + " " + a.tok.AccessToken
}
