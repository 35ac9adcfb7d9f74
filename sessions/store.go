package sessions

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-barber-client/api"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/storage"
	"github.com/jrsteele09/go-barber-client/token"
	"github.com/jrsteele09/go-barber-client/users"
)

// Authenticator is the part of the API client the store drives: it exchanges credentials for a
// token and owns the default Authorization header.
type Authenticator interface {
	AccessToken(ctx context.Context, creds api.Credentials) (api.Session, error)
	SetToken(token string)
	ClearToken()
}

var _ Authenticator = (*api.Client)(nil)

// Store is the single owner of the session. It keeps memory, durable storage and the client's
// Authorization header in agreement: writes go to storage first, then the header, then memory.
type Store struct {
	repo   storage.Repo
	client Authenticator
	log    zerolog.Logger

	mu       sync.RWMutex
	current  Session
	lifetime context.Context
	end      context.CancelFunc
}

func NewStore(repo storage.Repo, client Authenticator, log zerolog.Logger) *Store {
	return &Store{repo: repo, client: client, log: log}
}

// Restore rehydrates the session persisted by a previous run. With both keys present the session
// is rebuilt and the header armed; otherwise the store starts signed out. A token whose exp has
// passed is cleared as if the API had already answered 401.
func (s *Store) Restore(ctx context.Context) error {
	values, err := s.repo.MultiGet(ctx, TokenKey, UserKey)
	if err != nil {
		return apperrors.Wrapf(err, "read stored session")
	}

	tok, rawUser := values[TokenKey], values[UserKey]
	if tok == "" || rawUser == "" {
		return nil
	}

	var user users.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.SignOut(ctx)
		return apperrors.Wrapf(apperrors.ErrInvalidSession, "decode stored user: %v", err)
	}

	if claims, err := token.Inspect(tok); err == nil && claims.Expired() {
		s.log.Info().Time("expired_at", claims.ExpiresAt).Msg("stored session expired")
		s.SignOut(ctx)
		return nil
	}

	s.client.SetToken(tok)
	s.establish(Session{Token: tok, User: user})
	s.log.Debug().Str("user_id", user.ID).Msg("session restored")
	return nil
}

// SignIn exchanges credentials for a session. On failure nothing is committed and any previous
// session is left as it was.
func (s *Store) SignIn(ctx context.Context, email, password string, host api.Host) error {
	resp, err := s.client.AccessToken(ctx, api.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
		Host:     host,
	})
	if err != nil {
		return err
	}
	if resp.Token == "" || resp.User.IsZero() {
		return apperrors.Wrapf(apperrors.ErrInvalidSession, "sign in response without token or user")
	}

	rawUser, err := json.Marshal(resp.User)
	if err != nil {
		return apperrors.Wrapf(err, "encode user")
	}
	if err := s.repo.MultiSet(ctx, map[string]string{
		TokenKey: resp.Token,
		UserKey:  string(rawUser),
	}); err != nil {
		return apperrors.Wrapf(err, "persist session")
	}

	s.client.SetToken(resp.Token)
	s.establish(Session{Token: resp.Token, User: resp.User})
	s.log.Info().Str("user_id", resp.User.ID).Str("host", string(host)).Msg("signed in")
	return nil
}

// SignOut ends the session: storage is cleared, the header disarmed and every request bound to
// the session cancelled. It never fails and may be called any number of times; storage errors are
// logged.
func (s *Store) SignOut(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := s.repo.MultiRemove(ctx, TokenKey, UserKey); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear stored session")
	}
	s.client.ClearToken()

	s.mu.Lock()
	had := !s.current.IsZero()
	s.current = Session{}
	end := s.end
	s.lifetime, s.end = nil, nil
	s.mu.Unlock()

	if end != nil {
		end()
	}
	if had {
		s.log.Info().Msg("signed out")
	}
}

// UpdateUser replaces the session's user and keeps its token. It returns ErrNoSession when signed
// out.
func (s *Store) UpdateUser(ctx context.Context, user users.User) error {
	if !s.HasSession() {
		return apperrors.ErrNoSession
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return apperrors.Wrapf(err, "encode user")
	}
	if err := s.repo.MultiSet(ctx, map[string]string{UserKey: string(rawUser)}); err != nil {
		return apperrors.Wrapf(err, "persist user")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.IsZero() {
		return apperrors.ErrNoSession
	}
	s.current.User = user
	return nil
}

func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsZero()
}

func (s *Store) HasSession() bool {
	_, ok := s.Current()
	return ok
}

func (s *Store) User() (users.User, bool) {
	cur, ok := s.Current()
	return cur.User, ok
}

// Bind derives a context from parent that is cancelled when the session ends. Without a session
// the context is already cancelled. The cause of a session-driven cancellation is ErrNoSession.
func (s *Store) Bind(parent context.Context) (context.Context, context.CancelFunc) {
	s.mu.RLock()
	lifetime := s.lifetime
	s.mu.RUnlock()

	ctx, cancel := context.WithCancelCause(parent)
	if lifetime == nil {
		cancel(apperrors.ErrNoSession)
		return ctx, func() {}
	}

	stop := context.AfterFunc(lifetime, func() { cancel(apperrors.ErrNoSession) })
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}

// establish replaces the in-memory session and starts a new lifetime, ending the previous one.
func (s *Store) establish(sess Session) {
	lifetime, end := context.WithCancel(context.Background())

	s.mu.Lock()
	prevEnd := s.end
	s.current = sess
	s.lifetime, s.end = lifetime, end
	s.mu.Unlock()

	if prevEnd != nil {
		prevEnd()
	}
}
