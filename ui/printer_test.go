package ui_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/forms"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/schedule"
	"github.com/jrsteele09/go-barber-client/ui"
	"github.com/jrsteele09/go-barber-client/users"
)

var zone = time.FixedZone("-03", -3*60*60)

func setupTestFixture(t *testing.T, locale string) (*ui.Printer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return ui.NewPrinter(&buf, schedule.NewFormatter(locale, zone), locale), &buf
}

func TestMessage(t *testing.T) {
	p, _ := setupTestFixture(t, "pt_BR")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"lost session", &api.Error{Status: 401, Detail: "Credenciais inválidas"}, "Faça login para continuar"},
		{"guard", apperrors.ErrSignInRequired, "Faça login para continuar"},
		{"sign-in rejection shows the server message", &api.Error{Status: 401, Detail: "Este e-mail ainda não foi verificado", Public: true}, "Este e-mail ainda não foi verificado"},
		{"api detail", &api.Error{Status: 400, Detail: "Este horario já esta agendado"}, "Este horario já esta agendado"},
		{"booking", apperrors.ErrInvalidHour, apperrors.ErrInvalidHour.Error()},
		{"local lookup", apperrors.Wrapf(apperrors.ErrNotFound, "notification abc"), "notification abc: not found"},
		{"network", errors.New("dial tcp: connection refused"), "Ocorreu um erro, tente novamente"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, p.Message(tt.err))
		})
	}
}

func TestFail_FieldErrors(t *testing.T) {
	p, buf := setupTestFixture(t, "pt_BR")
	p.Fail(forms.Errors{"password": "Digite uma senha!", "email": "Digite um email valido!"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, []string{"email: Digite um email valido!", "password: Digite uma senha!"}, lines)
}

func TestProviderDay(t *testing.T) {
	schedule.NowTimeFunc = func() time.Time { return time.Date(2024, 3, 5, 10, 30, 0, 0, zone) }
	t.Cleanup(func() { schedule.NowTimeFunc = time.Now })

	p, buf := setupTestFixture(t, "en_US")
	f := schedule.NewFormatter("en_US", zone)
	client := users.User{Name: "Bruno", Surname: "Costa"}
	day := f.ProviderDay(time.Date(2024, 3, 5, 0, 0, 0, 0, zone), []api.ProviderAppointment{
		{ID: "1", Date: api.Timestamp{Time: time.Date(2024, 3, 5, 14, 0, 0, 0, zone)}, User: client},
	})
	p.ProviderDay(day)

	out := buf.String()
	require.Contains(t, out, "Today | March 05 | Tuesday")
	require.Contains(t, out, "Up next")
	require.Contains(t, out, "No appointments in this period")
	require.Contains(t, out, "14:00  Bruno Costa")
}

func TestProvidersAndNotifications(t *testing.T) {
	p, buf := setupTestFixture(t, "pt_BR")
	p.Providers([]users.User{{ID: "p1", Name: "Ana", Surname: "Silva", Address: utils.Ptr("Rua A, 10")}}, "p1")
	p.Notifications(nil)

	out := buf.String()
	require.Contains(t, out, "› Ana Silva")
	require.Contains(t, out, "Rua A, 10")
	require.Contains(t, out, "Nenhuma notificação")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gobarber_api_requests_total",
		Help: "test",
	}, []string{"method", "route", "status"})
	reg.MustRegister(counter)
	counter.WithLabelValues("GET", "/providers", "200").Add(2)

	p, buf := setupTestFixture(t, "pt_BR")
	require.NoError(t, p.Metrics(reg))
	require.Contains(t, buf.String(), "GET")
	require.Contains(t, buf.String(), "/providers 200 2")
}
