package api_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/api/apifake"
	apperrors "github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/internal/utils"
	"github.com/jrsteele09/go-barber-client/users"
)

func TestAccessToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	t.Run("provider on web", func(t *testing.T) {
		s, err := f.client.AccessToken(ctx, api.Credentials{Email: f.provider.Email, Password: "secret123", Host: api.HostWeb})
		require.NoError(t, err)
		require.NotEmpty(t, s.Token)
		require.Equal(t, f.provider.ID, s.User.ID)
		require.True(t, s.User.IsProvider())
	})

	t.Run("client on mobile", func(t *testing.T) {
		s, err := f.client.AccessToken(ctx, api.Credentials{Email: f.customer.Email, Password: "secret123", Host: api.HostMobile})
		require.NoError(t, err)
		require.Equal(t, f.customer.ID, s.User.ID)
	})

	t.Run("client on web is rejected", func(t *testing.T) {
		_, err := f.client.AccessToken(ctx, api.Credentials{Email: f.customer.Email, Password: "secret123", Host: api.HostWeb})
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.client.AccessToken(ctx, api.Credentials{Email: f.provider.Email, Password: "nope", Host: api.HostWeb})
		require.ErrorIs(t, err, apperrors.ErrBadRequest)
		detail, ok := api.DetailOf(err)
		require.True(t, ok)
		require.Equal(t, "E-mail ou senha incorretos!", detail)
	})

	t.Run("inactive account", func(t *testing.T) {
		inactive := f.fake.AddUser(users.User{Name: "Caio", Surname: "Reis", Email: "caio@gobarber.com"}, "secret123", false)
		_, err := f.client.AccessToken(ctx, api.Credentials{Email: inactive.Email, Password: "secret123", Host: api.HostMobile})
		require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestSignUpActivateAndReset(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	msg, err := f.client.CreateUser(ctx, api.NewUser{
		Name: "Dora", Surname: "Lima", Email: "dora@gobarber.com", Address: utils.Ptr("Av. B, 20"),
		Password: "password1", ConfirmPassword: "password1",
	})
	require.NoError(t, err)
	require.Contains(t, msg, "e-mail")

	_, err = f.client.CreateUser(ctx, api.NewUser{
		Name: "Dora", Surname: "Lima", Email: "dora@gobarber.com", Password: "password1", ConfirmPassword: "password1",
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	kind, err := f.client.Activate(ctx, f.fake.LastActivationToken())
	require.NoError(t, err)
	require.Equal(t, users.KindProvider, kind)

	_, err = f.client.Activate(ctx, f.fake.LastActivationToken())
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.client.Activate(ctx, "garbage")
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)

	msg, err = f.client.ForgotPassword(ctx, "dora@gobarber.com")
	require.NoError(t, err)
	require.NotEmpty(t, msg)

	_, err = f.client.ForgotPassword(ctx, "nobody@gobarber.com")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.client.ResetPassword(ctx, api.PasswordReset{
		Token: f.fake.LastResetToken(), NewPassword: "password2", ConfirmPassword: "password2",
	})
	require.NoError(t, err)

	_, err = f.client.AccessToken(ctx, api.Credentials{Email: "dora@gobarber.com", Password: "password2", Host: api.HostWeb})
	require.NoError(t, err)
}

func TestProfileAndPassword(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()
	f.signIn(t, f.provider)

	u, err := f.client.UpdateProfile(ctx, api.ProfileUpdate{Name: "Ana Paula", Surname: "Silva", Email: f.provider.Email})
	require.NoError(t, err)
	require.Equal(t, "Ana Paula", u.Name)
	require.Equal(t, "Rua A, 10", utils.Value(u.Address), "address is kept when omitted")

	_, err = f.client.UpdateProfile(ctx, api.ProfileUpdate{Name: "Ana", Surname: "Silva", Email: f.customer.Email})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	err = f.client.ChangePassword(ctx, api.PasswordChange{OldPassword: "wrong", NewPassword: "newsecret", ConfirmPassword: "newsecret"})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	require.NoError(t, f.client.ChangePassword(ctx, api.PasswordChange{
		OldPassword: "secret123", NewPassword: "newsecret", ConfirmPassword: "newsecret",
	}))
}

func TestBookingFlow(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	// Tuesday 2024-03-05 10:30 in the API zone.
	now := time.Date(2024, 3, 5, 10, 30, 0, 0, apifake.Zone)
	f.fake.Now = func() time.Time { return now }
	f.signIn(t, f.customer)

	days, err := f.client.MonthAvailability(ctx, f.provider.ID, 2024, time.March)
	require.NoError(t, err)
	require.Len(t, days, 31)
	require.False(t, days[3].Available, "4th is in the past")
	require.True(t, days[4].Available, "5th is today")

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, apifake.Zone)
	hours, err := f.client.DayAvailability(ctx, f.provider.ID, day)
	require.NoError(t, err)
	require.Len(t, hours, 10)
	require.Equal(t, 8, hours[0].Hour)
	require.Equal(t, 17, hours[9].Hour)
	require.False(t, hours[2].Available, "10h already started")
	require.True(t, hours[3].Available)

	at := time.Date(2024, 3, 5, 14, 0, 0, 0, apifake.Zone)
	appt, err := f.client.CreateAppointment(ctx, f.provider.ID, at)
	require.NoError(t, err)
	require.Equal(t, f.provider.ID, appt.ProviderID)
	require.True(t, appt.Date.Equal(at))

	_, err = f.client.CreateAppointment(ctx, f.provider.ID, at)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, err = f.client.CreateAppointment(ctx, "not-a-uuid", at)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	hours, err = f.client.DayAvailability(ctx, f.provider.ID, day)
	require.NoError(t, err)
	require.False(t, hours[6].Available, "14h is now booked")

	mine, err := f.client.UserAppointments(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, f.provider.ID, mine[0].Provider.ID)

	f.signIn(t, f.provider)
	schedule, err := f.client.ProviderAppointments(ctx, day)
	require.NoError(t, err)
	require.Len(t, schedule, 1)
	require.Equal(t, f.customer.ID, schedule[0].User.ID)
	require.True(t, schedule[0].Date.Equal(at))

	notes, err := f.client.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.False(t, notes[0].Read)
	require.Contains(t, notes[0].Content, "Bruno Costa")
	require.True(t, notes[0].CreatedAt.Equal(now))

	require.NoError(t, f.client.MarkNotificationRead(ctx, notes[0].ID))
	notes, err = f.client.Notifications(ctx)
	require.NoError(t, err)
	require.True(t, notes[0].Read)
}
