package apifake

import (
	"fmt"
	"net/http"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

// chainMiddleware wraps h so the first middleware listed runs first.
func chainMiddleware(h http.HandlerFunc, mw ...middleware) http.HandlerFunc {
	chained := h
	for i := len(mw) - 1; i >= 0; i-- {
		chained = mw[i](chained)
	}
	return chained
}

// recordMiddleware counts requests per "METHOD /path" and keeps the last Authorization header.
func (f *FakeAPI) recordMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lock.Lock()
		f.calls[r.Method+" "+r.URL.Path]++
		f.lastAuth = r.Header.Get("Authorization")
		f.lock.Unlock()
		next(w, r)
	}
}

// recoverMiddleware answers 500 with a detail instead of dropping the connection.
func (f *FakeAPI) recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("internal error: %v", rec))
			}
		}()
		next(w, r)
	}
}

// holdMiddleware parks the request while Hold is in effect. A cancelled request is dropped.
func (f *FakeAPI) holdMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.lock.RLock()
		hold := f.hold
		f.lock.RUnlock()
		if hold != nil {
			select {
			case <-hold:
			case <-r.Context().Done():
				return
			}
		}
		next(w, r)
	}
}
