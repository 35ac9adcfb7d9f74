package sessions_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/api/apifake"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/sessions"
	fakekv "github.com/jrsteele09/go-barber-client/storage/repofake"
	"github.com/jrsteele09/go-barber-client/users"
)

// stubAuthenticator answers AccessToken from a canned response and records the header state.
type stubAuthenticator struct {
	mu     sync.Mutex
	resp   api.Session
	err    error
	header string
}

func (a *stubAuthenticator) AccessToken(_ context.Context, _ api.Credentials) (api.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resp, a.err
}

func (a *stubAuthenticator) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.header = "Bearer " + token
}

func (a *stubAuthenticator) ClearToken() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.header = ""
}

func (a *stubAuthenticator) Header() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.header
}

type testFixture struct {
	repo  *fakekv.FakeKVRepo
	auth  *stubAuthenticator
	store *sessions.Store
	user  users.User
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	repo := fakekv.NewFakeKVRepo()
	user := users.User{ID: "1", Name: "Ana", Surname: "Silva", Email: "ana@gobarber.com", Address: utils.Ptr("Rua A, 10")}
	auth := &stubAuthenticator{resp: api.Session{Token: "abc", User: user}}
	return &testFixture{
		repo:  repo,
		auth:  auth,
		store: sessions.NewStore(repo, auth, zerolog.Nop()),
		user:  user,
	}
}

func (f *testFixture) stored(t *testing.T) map[string]string {
	t.Helper()
	values, err := f.repo.MultiGet(context.Background(), sessions.TokenKey, sessions.UserKey)
	require.NoError(t, err)
	return values
}

func TestSignIn(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.SignIn(ctx, " ana@gobarber.com ", "secret123", api.HostWeb))

	cur, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, "abc", cur.Token)
	require.Equal(t, f.user, cur.User)
	require.Equal(t, "Bearer abc", f.auth.Header())

	stored := f.stored(t)
	require.Equal(t, "abc", stored[sessions.TokenKey])
	require.JSONEq(t, `{"id":"1","name":"Ana","surname":"Silva","email":"ana@gobarber.com","address":"Rua A, 10"}`, stored[sessions.UserKey])
}

func TestSignIn_FailureLeavesPriorState(t *testing.T) {
	ctx := context.Background()

	t.Run("rejected credentials while signed out", func(t *testing.T) {
		f := setupTestFixture(t)
		f.auth.err = &api.Error{Status: 400, Detail: "E-mail ou senha incorretos!"}

		err := f.store.SignIn(ctx, "ana@gobarber.com", "wrong", api.HostWeb)
		require.ErrorIs(t, err, apperrors.ErrBadRequest)
		require.False(t, f.store.HasSession())
		require.Empty(t, f.auth.Header())
		require.Zero(t, f.repo.Len())
	})

	t.Run("rejected credentials keep the existing session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))

		f.auth.err = &api.Error{Status: 401, Detail: "Este e-mail ainda não foi verificado"}
		require.Error(t, f.store.SignIn(ctx, "other@gobarber.com", "x", api.HostWeb))

		cur, ok := f.store.Current()
		require.True(t, ok)
		require.Equal(t, "abc", cur.Token)
		require.Equal(t, "Bearer abc", f.auth.Header())
		require.Equal(t, "abc", f.stored(t)[sessions.TokenKey])
	})

	t.Run("storage failure commits nothing", func(t *testing.T) {
		f := setupTestFixture(t)
		f.repo.FailWrites = errors.New("disk full")

		err := f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb)
		require.ErrorContains(t, err, "disk full")
		require.False(t, f.store.HasSession())
		require.Empty(t, f.auth.Header())
	})

	t.Run("response without token", func(t *testing.T) {
		f := setupTestFixture(t)
		f.auth.resp = api.Session{User: f.user}

		err := f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb)
		require.ErrorIs(t, err, apperrors.ErrInvalidSession)
		require.False(t, f.store.HasSession())
		require.Zero(t, f.repo.Len())
	})
}

func TestSignOut(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))

	f.store.SignOut(ctx)
	require.False(t, f.store.HasSession())
	_, ok := f.store.User()
	require.False(t, ok)
	require.Empty(t, f.auth.Header())
	require.Zero(t, f.repo.Len())

	t.Run("idempotent", func(t *testing.T) {
		f.store.SignOut(ctx)
		f.store.SignOut(ctx)
		require.False(t, f.store.HasSession())
		require.Zero(t, f.repo.Len())
	})

	t.Run("storage failure still signs out", func(t *testing.T) {
		require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))
		f.repo.FailWrites = errors.New("read-only")
		f.store.SignOut(ctx)
		require.False(t, f.store.HasSession())
		require.Empty(t, f.auth.Header())
	})

	t.Run("cancelled context still clears storage", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		f.store.SignOut(cctx)
		require.Zero(t, f.repo.Len())
	})
}

func TestUpdateUser(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		err := f.store.UpdateUser(ctx, f.user)
		require.ErrorIs(t, err, apperrors.ErrNoSession)
		require.Zero(t, f.repo.Len())
	})

	require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))

	updated := f.user
	updated.Name = "Ana Paula"
	updated.Avatar = "https://cdn.gobarber.com/ana.png"
	require.NoError(t, f.store.UpdateUser(ctx, updated))

	cur, ok := f.store.Current()
	require.True(t, ok)
	require.Equal(t, "abc", cur.Token)
	require.Equal(t, updated, cur.User)
	require.Equal(t, "abc", f.stored(t)[sessions.TokenKey])
	require.Contains(t, f.stored(t)[sessions.UserKey], "Ana Paula")
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("empty storage starts signed out", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.store.Restore(ctx))
		require.False(t, f.store.HasSession())
		require.Empty(t, f.auth.Header())
	})

	t.Run("stored token and user rebuild the session", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.repo.MultiSet(ctx, map[string]string{
			sessions.TokenKey: "abc",
			sessions.UserKey:  `{"id":"1","name":"Ana","surname":"Silva","email":"ana@gobarber.com"}`,
		}))

		require.NoError(t, f.store.Restore(ctx))
		cur, ok := f.store.Current()
		require.True(t, ok)
		require.Equal(t, "abc", cur.Token)
		require.Equal(t, "1", cur.User.ID)
		require.Equal(t, "Bearer abc", f.auth.Header())
	})

	t.Run("only one key present starts signed out", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.repo.MultiSet(ctx, map[string]string{sessions.TokenKey: "abc"}))
		require.NoError(t, f.store.Restore(ctx))
		require.False(t, f.store.HasSession())
	})

	t.Run("corrupt user is cleared", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.repo.MultiSet(ctx, map[string]string{
			sessions.TokenKey: "abc",
			sessions.UserKey:  `{not json`,
		}))
		err := f.store.Restore(ctx)
		require.ErrorIs(t, err, apperrors.ErrInvalidSession)
		require.False(t, f.store.HasSession())
		require.Zero(t, f.repo.Len())
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		fake := apifake.New()
		t.Cleanup(fake.Close)

		f := setupTestFixture(t)
		require.NoError(t, f.repo.MultiSet(ctx, map[string]string{
			sessions.TokenKey: fake.IssueToken("1", -time.Hour),
			sessions.UserKey:  `{"id":"1","name":"Ana","surname":"Silva","email":"ana@gobarber.com"}`,
		}))
		require.NoError(t, f.store.Restore(ctx))
		require.False(t, f.store.HasSession())
		require.Zero(t, f.repo.Len())
	})
}

func TestBind(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("without a session the context is already done", func(t *testing.T) {
		bound, cancel := f.store.Bind(ctx)
		defer cancel()
		require.Error(t, bound.Err())
		require.ErrorIs(t, context.Cause(bound), apperrors.ErrNoSession)
	})

	require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))
	bound, cancel := f.store.Bind(ctx)
	defer cancel()
	require.NoError(t, bound.Err())

	f.store.SignOut(ctx)
	select {
	case <-bound.Done():
	case <-time.After(time.Second):
		t.Fatal("bound context survived sign-out")
	}
	require.ErrorIs(t, context.Cause(bound), apperrors.ErrNoSession)

	t.Run("a new sign-in ends the previous lifetime", func(t *testing.T) {
		require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))
		first, cancelFirst := f.store.Bind(ctx)
		defer cancelFirst()

		require.NoError(t, f.store.SignIn(ctx, "ana@gobarber.com", "secret123", api.HostWeb))
		select {
		case <-first.Done():
		case <-time.After(time.Second):
			t.Fatal("previous lifetime not ended")
		}

		second, cancelSecond := f.store.Bind(ctx)
		defer cancelSecond()
		require.NoError(t, second.Err())
	})
}

// TestStoreWithAPI drives the store through the real client and the fake API, including the
// forced sign-out on 401 and cancellation of in-flight requests.
func TestStoreWithAPI(t *testing.T) {
	fake := apifake.New()
	t.Cleanup(fake.Close)
	provider := fake.AddUser(users.User{
		Name: "Ana", Surname: "Silva", Email: "ana@gobarber.com", Address: utils.Ptr("Rua A, 10"),
	}, "secret123", true)

	client, err := api.New(fake.URL())
	require.NoError(t, err)
	repo := fakekv.NewFakeKVRepo()
	store := sessions.NewStore(repo, client, zerolog.Nop())
	client.OnUnauthorized(store.SignOut)
	ctx := context.Background()

	require.NoError(t, store.SignIn(ctx, provider.Email, "secret123", api.HostWeb))
	cur, _ := store.Current()
	require.Equal(t, "Bearer "+cur.Token, client.Authorization())

	claims, err := cur.Claims()
	require.NoError(t, err)
	require.Equal(t, provider.ID, claims.Subject)

	t.Run("in-flight requests end with the session", func(t *testing.T) {
		release := fake.Hold()
		defer release()

		bound, cancel := store.Bind(ctx)
		defer cancel()
		done := make(chan error, 1)
		go func() {
			_, err := client.Notifications(bound)
			done <- err
		}()

		require.Eventually(t, func() bool {
			return fake.Calls("GET", api.RouteProviderNotifications) == 1
		}, 5*time.Second, 10*time.Millisecond)
		store.SignOut(ctx)

		select {
		case err := <-done:
			require.ErrorIs(t, err, apperrors.ErrNoSession)
		case <-time.After(5 * time.Second):
			t.Fatal("request outlived the session")
		}
	})

	t.Run("401 forces sign-out", func(t *testing.T) {
		require.NoError(t, store.SignIn(ctx, provider.Email, "secret123", api.HostWeb))
		fake.RevokeTokens()

		_, err := client.Notifications(ctx)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		require.False(t, store.HasSession())
		require.Empty(t, client.Authorization())
		require.Zero(t, repo.Len())
	})
}
