package api_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/api/apifake"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/users"
)

type testFixture struct {
	fake     *apifake.FakeAPI
	client   *api.Client
	registry *prometheus.Registry
	provider users.User
	customer users.User
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	fake := apifake.New()
	t.Cleanup(fake.Close)

	reg := prometheus.NewRegistry()
	client, err := api.New(fake.URL(), api.WithRegisterer(reg), api.WithTimeout(5*time.Second))
	require.NoError(t, err)

	provider := fake.AddUser(users.User{
		Name: "Ana", Surname: "Silva", Email: "ana@gobarber.com", Address: utils.Ptr("Rua A, 10"),
	}, "secret123", true)
	customer := fake.AddUser(users.User{
		Name: "Bruno", Surname: "Costa", Email: "bruno@gobarber.com",
	}, "secret123", true)

	return &testFixture{fake: fake, client: client, registry: reg, provider: provider, customer: customer}
}

func (f *testFixture) signIn(t *testing.T, u users.User) {
	t.Helper()
	f.client.SetToken(f.fake.IssueToken(u.ID, time.Hour))
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := api.New("not a url")
	require.Error(t, err)

	c, err := api.New("http://localhost:8000/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestClient_AuthorizationHeader(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("unarmed client sends no header", func(t *testing.T) {
		require.Empty(t, f.client.Authorization())
		_, err := f.client.Providers(ctx)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		require.Empty(t, f.fake.LastAuthorization())
	})

	t.Run("armed client sends bearer token", func(t *testing.T) {
		token := f.fake.IssueToken(f.customer.ID, time.Hour)
		f.client.SetToken(token)
		require.Equal(t, "Bearer "+token, f.client.Authorization())

		providers, err := f.client.Providers(ctx)
		require.NoError(t, err)
		require.Len(t, providers, 1)
		require.Equal(t, f.provider.ID, providers[0].ID)
		require.Equal(t, "Bearer "+token, f.fake.LastAuthorization())
	})

	t.Run("cleared client stops sending header", func(t *testing.T) {
		f.client.ClearToken()
		require.Empty(t, f.client.Authorization())
		_, err := f.client.Providers(ctx)
		require.Error(t, err)
		require.Empty(t, f.fake.LastAuthorization())
	})
}

func TestClient_UnauthorizedInterceptor(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	var calls atomic.Int32
	f.client.OnUnauthorized(func(context.Context) { calls.Add(1) })

	f.signIn(t, f.customer)
	_, err := f.client.Providers(ctx)
	require.NoError(t, err)
	require.Zero(t, calls.Load())

	f.fake.RevokeTokens()
	_, err = f.client.UserAppointments(ctx)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Equal(t, int32(1), calls.Load())

	detail, ok := api.DetailOf(err)
	require.True(t, ok)
	require.Equal(t, "Credenciais inválidas", detail)

	_, err = f.client.Notifications(ctx)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Equal(t, int32(2), calls.Load())

	t.Run("public endpoints never trigger the handler", func(t *testing.T) {
		_, err := f.client.AccessToken(ctx, api.Credentials{Email: f.customer.Email, Password: "secret123", Host: api.HostWeb})
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		require.Equal(t, int32(2), calls.Load())
		require.Empty(t, f.fake.LastAuthorization())
	})

	t.Run("unarmed client does not trigger the handler", func(t *testing.T) {
		f.client.ClearToken()
		_, err := f.client.Providers(ctx)
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
		require.Equal(t, int32(2), calls.Load())
	})
}

func TestClient_HandlerReceivesLiveContext(t *testing.T) {
	f := setupTestFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	var handlerCtxErr error
	f.client.OnUnauthorized(func(hctx context.Context) {
		cancel()
		handlerCtxErr = hctx.Err()
	})

	f.client.SetToken("not-a-valid-token")
	_, err := f.client.Providers(ctx)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.NoError(t, handlerCtxErr)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		detail   string
	}{
		{"bad request", http.StatusBadRequest, `{"detail":"E-mail ou senha incorretos!"}`, apperrors.ErrBadRequest, "E-mail ou senha incorretos!"},
		{"not found", http.StatusNotFound, `{"detail":"Usuário não encontrado!"}`, apperrors.ErrNotFound, "Usuário não encontrado!"},
		{"validation list", http.StatusUnprocessableEntity,
			`{"detail":[{"loc":["body","email"],"msg":"field required","type":"value_error.missing"},{"loc":["body","password"],"msg":"field required","type":"value_error.missing"}]}`,
			apperrors.ErrValidation, "email: field required; password: field required"},
		{"server error without body", http.StatusInternalServerError, ``, apperrors.ErrServer, ""},
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Token inválido"}`, apperrors.ErrUnauthorized, "Token inválido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			c, err := api.New(srv.URL)
			require.NoError(t, err)

			_, err = c.ForgotPassword(context.Background(), "x@y.com")
			require.ErrorIs(t, err, tt.sentinel)

			var apiErr *api.Error
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.detail, apiErr.Detail)
			require.Equal(t, api.RouteForgotPassword, apiErr.Path)
		})
	}
}

func TestClient_RequestID(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, r.Header.Get(api.RequestIDHeader))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	c, err := api.New(srv.URL)
	require.NoError(t, err)
	require.NoError(t, c.MarkNotificationRead(context.Background(), "a"))
	require.NoError(t, c.MarkNotificationRead(context.Background(), "b"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	for _, id := range seen {
		_, err := uuid.Parse(id)
		require.NoError(t, err)
	}
	require.NotEqual(t, seen[0], seen[1])
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := api.New(url)
	require.NoError(t, err)
	_, err = c.Providers(context.Background())
	require.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestClient_CancelledContext(t *testing.T) {
	f := setupTestFixture(t)
	f.signIn(t, f.customer)
	release := f.fake.Hold()
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.client.Providers(ctx)
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("request was not cancelled")
	}
}

func TestClient_Metrics(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.client.Providers(ctx)
	require.Error(t, err)
	f.signIn(t, f.customer)
	_, err = f.client.Providers(ctx)
	require.NoError(t, err)

	expected := `
# HELP gobarber_api_requests_total API requests by method, route and status.
# TYPE gobarber_api_requests_total counter
gobarber_api_requests_total{method="GET",route="/providers",status="200"} 1
gobarber_api_requests_total{method="GET",route="/providers",status="401"} 1
`
	require.NoError(t, testutil.GatherAndCompare(f.registry, strings.NewReader(expected), "gobarber_api_requests_total"))

	count, err := testutil.GatherAndCount(f.registry, "gobarber_api_request_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	t.Run("second client on the same registry shares collectors", func(t *testing.T) {
		other, err := api.New(f.fake.URL(), api.WithRegisterer(f.registry))
		require.NoError(t, err)
		_, _ = other.Providers(ctx)
		count, err := testutil.GatherAndCount(f.registry, "gobarber_api_requests_total")
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})
}

func TestClient_UploadAvatar(t *testing.T) {
	f := setupTestFixture(t)
	f.signIn(t, f.customer)

	image := []byte("\x89PNG fake image")
	u, err := f.client.UploadAvatar(context.Background(), "me.png", bytes.NewReader(image))
	require.NoError(t, err)
	require.Equal(t, f.customer.ID, u.ID)
	require.True(t, strings.HasPrefix(u.Avatar, f.fake.URL()+"/files/"))
	require.Equal(t, image, f.fake.Avatar(f.customer.ID))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	var ts api.Timestamp

	require.NoError(t, ts.UnmarshalJSON([]byte(`"2024-03-05T14:00:00-03:00"`)))
	require.Equal(t, time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC), ts.UTC())

	require.NoError(t, ts.UnmarshalJSON([]byte(`"2024-03-05T12:30:00.123000"`)))
	require.Equal(t, time.Date(2024, 3, 5, 12, 30, 0, 123000000, time.UTC), ts.Time)

	require.NoError(t, ts.UnmarshalJSON([]byte(`null`)))
	require.True(t, ts.IsZero())

	require.Error(t, ts.UnmarshalJSON([]byte(`"yesterday"`)))
}
