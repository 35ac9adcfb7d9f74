package apifake

import (
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/users"
)

type authedHandler func(w http.ResponseWriter, r *http.Request, me users.User)

func (f *FakeAPI) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+api.RouteAccessToken, f.accessToken)
	mux.HandleFunc("POST "+api.RouteForgotPassword, f.forgotPassword)
	mux.HandleFunc("POST "+api.RouteResetPassword, f.resetPassword)
	mux.HandleFunc("POST "+api.RouteUsers, f.createUser)
	mux.HandleFunc("PUT "+api.RouteUserActivate, f.activate)
	mux.HandleFunc("PUT "+api.RouteUsers, f.authed(f.updateUser))
	mux.HandleFunc("PUT "+api.RouteUserPassword, f.authed(f.updatePassword))
	mux.HandleFunc("PUT "+api.RouteUserAvatar, f.authed(f.uploadAvatar))
	mux.HandleFunc("GET "+api.RouteUserSchedules, f.authed(f.userAppointments))
	mux.HandleFunc("GET "+api.RouteProviders, f.authed(f.listProviders))
	mux.HandleFunc("GET "+api.RouteProviderSchedule, f.authed(f.providerAppointments))
	mux.HandleFunc("GET "+api.RouteProviderMonthAvailability, f.authed(f.monthAvailability))
	mux.HandleFunc("GET "+api.RouteProviderDayAvailability, f.authed(f.dayAvailability))
	mux.HandleFunc("GET "+api.RouteProviderNotifications, f.authed(f.listNotifications))
	mux.HandleFunc("PUT "+api.RouteProviderNotifications, f.authed(f.readNotification))
	mux.HandleFunc("POST "+api.RouteAppointments, f.authed(f.createAppointment))

	return chainMiddleware(mux.ServeHTTP, f.recoverMiddleware, f.recordMiddleware)
}

// authed resolves the bearer token to a user, answering 401 the way the API does.
func (f *FakeAPI) authed(next authedHandler) http.HandlerFunc {
	return chainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		tokenType, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || raw == "" || !strings.EqualFold(tokenType, "bearer") {
			writeDetail(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		id, ok := f.verify(raw, issuerAccess)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		me, ok := f.User(id)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		next(w, r, me)
	}, f.holdMiddleware)
}

func (f *FakeAPI) accessToken(w http.ResponseWriter, r *http.Request) {
	var in api.Credentials
	if !decode(w, r, &in) {
		return
	}

	f.lock.RLock()
	acc, ok := f.accounts[f.emailIDs[in.Email]]
	var user users.User
	var active bool
	var hash []byte
	if ok {
		user, active, hash = acc.user, acc.active, acc.hash
	}
	f.lock.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(in.Password)) != nil {
		writeDetail(w, http.StatusBadRequest, "E-mail ou senha incorretos!")
		return
	}
	if !active {
		writeDetail(w, http.StatusUnauthorized, "Este e-mail ainda não foi verificado. Verifique sua caixa de entrada")
		return
	}
	if !user.IsProvider() && in.Host == api.HostWeb {
		writeDetail(w, http.StatusUnauthorized, "Versão web e apenas para cabeleireiros, porfavor user a versão mobile")
		return
	}
	writeJSON(w, http.StatusOK, api.Session{User: user, Token: f.IssueToken(user.ID, 24*time.Hour)})
}

func (f *FakeAPI) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &in) {
		return
	}
	f.lock.RLock()
	id, ok := f.emailIDs[in.Email]
	f.lock.RUnlock()
	if !ok {
		writeDetail(w, http.StatusNotFound, "Usuário não encontrado!")
		return
	}

	token := f.sign(id, issuerReset, 2*time.Hour)
	f.lock.Lock()
	f.lastResetToken = token
	f.lock.Unlock()
	writeDetail(w, http.StatusOK, "E-mail de recuperação enviado, por favor verifique sua caixa de entrada")
}

func (f *FakeAPI) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in api.PasswordReset
	if !decode(w, r, &in) {
		return
	}
	if in.NewPassword != in.ConfirmPassword {
		writeDetail(w, http.StatusBadRequest, "Nova senha e confirmação de senha não confere!")
		return
	}
	id, ok := f.verify(in.Token, issuerReset)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Token inválido")
		return
	}
	if !f.setPassword(id, in.NewPassword) {
		writeDetail(w, http.StatusNotFound, "Usuário não encontrado!")
		return
	}
	writeDetail(w, http.StatusOK, "Senha recuperada com sucesso")
}

func (f *FakeAPI) setPassword(id, password string) bool {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return false
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return false
	}
	acc.hash = hash
	return true
}

func (f *FakeAPI) createUser(w http.ResponseWriter, r *http.Request) {
	var in api.NewUser
	if !decode(w, r, &in) {
		return
	}
	if in.Password != in.ConfirmPassword {
		writeDetail(w, http.StatusBadRequest, "Senha e confirmação de senha não confere!")
		return
	}
	f.lock.RLock()
	_, taken := f.emailIDs[in.Email]
	f.lock.RUnlock()
	if taken {
		writeDetail(w, http.StatusBadRequest, "Endereço de email já registrador!")
		return
	}

	u := f.AddUser(users.User{Name: in.Name, Surname: in.Surname, Email: in.Email, Address: in.Address}, in.Password, false)
	token := f.sign(u.ID, issuerActivate, 31*24*time.Hour)
	f.lock.Lock()
	f.lastActivation = token
	f.lock.Unlock()
	writeDetail(w, http.StatusCreated, "Enviamos um e-mail para você confirma seu cadastro, por favor verifique sua caixa de entrada.")
}

func (f *FakeAPI) activate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token string `json:"token"`
	}
	if !decode(w, r, &in) {
		return
	}
	id, ok := f.verify(in.Token, issuerActivate)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Token inválido")
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Usuário não encontrado!")
		return
	}
	if acc.active {
		writeDetail(w, http.StatusBadRequest, "Conta já verificada")
		return
	}
	acc.active = true
	writeJSON(w, http.StatusOK, map[string]users.Kind{"type": acc.user.Kind()})
}

func (f *FakeAPI) updateUser(w http.ResponseWriter, r *http.Request, me users.User) {
	var in api.ProfileUpdate
	if !decode(w, r, &in) {
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	if owner, ok := f.emailIDs[in.Email]; ok && owner != me.ID {
		writeDetail(w, http.StatusBadRequest, "Endereço de email já registrador!")
		return
	}
	acc := f.accounts[me.ID]
	delete(f.emailIDs, acc.user.Email)
	acc.user.Name, acc.user.Surname, acc.user.Email = in.Name, in.Surname, in.Email
	if in.Address != nil && *in.Address != "" {
		acc.user.Address = in.Address
	}
	f.emailIDs[acc.user.Email] = me.ID
	writeJSON(w, http.StatusOK, acc.user)
}

func (f *FakeAPI) updatePassword(w http.ResponseWriter, r *http.Request, me users.User) {
	var in api.PasswordChange
	if !decode(w, r, &in) {
		return
	}
	if in.NewPassword != in.ConfirmPassword {
		writeDetail(w, http.StatusBadRequest, "Senha e confirmação de senha não confere!")
		return
	}
	f.lock.RLock()
	hash := f.accounts[me.ID].hash
	f.lock.RUnlock()
	if bcrypt.CompareHashAndPassword(hash, []byte(in.OldPassword)) != nil {
		writeDetail(w, http.StatusBadRequest, "A senha atual esta incorreta")
		return
	}
	f.setPassword(me.ID, in.NewPassword)
	w.WriteHeader(http.StatusNoContent)
}

func (f *FakeAPI) uploadAvatar(w http.ResponseWriter, r *http.Request, me users.User) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationList("file", "field required"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	acc := f.accounts[me.ID]
	f.avatars[me.ID] = data
	acc.user.Avatar = f.server.URL + "/files/" + uuid.NewString() + ".png"
	writeJSON(w, http.StatusOK, acc.user)
}

func (f *FakeAPI) userAppointments(w http.ResponseWriter, _ *http.Request, me users.User) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	out := []api.UserAppointment{}
	for _, a := range f.sortedAppointments(func(a appointment) bool { return a.userID == me.ID }) {
		out = append(out, api.UserAppointment{
			ID:       a.id,
			UserID:   a.userID,
			Provider: f.accounts[a.providerID].user,
			Date:     api.Timestamp{Time: a.date.In(Zone)},
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) listProviders(w http.ResponseWriter, _ *http.Request, me users.User) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	out := []users.User{}
	for _, acc := range f.accounts {
		if acc.user.IsProvider() && acc.user.ID != me.ID {
			out = append(out, acc.user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName() < out[j].FullName() })
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) providerAppointments(w http.ResponseWriter, r *http.Request, me users.User) {
	q, ok := queryInts(r, "day", "month", "year")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationList("day", "value is not a valid integer"))
		return
	}

	f.lock.RLock()
	defer f.lock.RUnlock()
	out := []api.ProviderAppointment{}
	for _, a := range f.sortedAppointments(func(a appointment) bool {
		return a.providerID == me.ID && sameDay(a.date, q[2], q[1], q[0])
	}) {
		out = append(out, api.ProviderAppointment{
			ID:         a.id,
			ProviderID: a.providerID,
			Date:       api.Timestamp{Time: a.date.In(Zone)},
			User:       f.accounts[a.userID].user,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) monthAvailability(w http.ResponseWriter, r *http.Request, _ users.User) {
	q, ok := queryInts(r, "month", "year")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationList("month", "value is not a valid integer"))
		return
	}
	providerID := r.URL.Query().Get("provider_id")
	month, year := q[0], q[1]
	now := f.Now()

	f.lock.RLock()
	defer f.lock.RUnlock()
	out := make([]api.DayAvailability, 0, 31)
	for day := 1; day <= monthDays(year, month); day++ {
		booked := len(f.sortedAppointments(func(a appointment) bool {
			return a.providerID == providerID && sameDay(a.date, year, month, day)
		}))
		endOfDay := time.Date(year, time.Month(month), day, 23, 59, 59, 0, Zone)
		out = append(out, api.DayAvailability{Day: day, Available: booked < lastHour-firstHour+1 && now.Before(endOfDay)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) dayAvailability(w http.ResponseWriter, r *http.Request, _ users.User) {
	q, ok := queryInts(r, "day", "month", "year")
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, validationList("day", "value is not a valid integer"))
		return
	}
	providerID := r.URL.Query().Get("provider_id")
	day, month, year := q[0], q[1], q[2]
	now := f.Now()

	f.lock.RLock()
	defer f.lock.RUnlock()
	taken := make(map[int]bool)
	for _, a := range f.appointments {
		if a.providerID == providerID && sameDay(a.date, year, month, day) {
			taken[a.date.In(Zone).Hour()] = true
		}
	}
	out := make([]api.HourAvailability, 0, lastHour-firstHour+1)
	for hour := firstHour; hour <= lastHour; hour++ {
		slot := time.Date(year, time.Month(month), day, hour, 0, 0, 0, Zone)
		weekday := slot.Weekday() != time.Saturday && slot.Weekday() != time.Sunday
		out = append(out, api.HourAvailability{Hour: hour, Available: !taken[hour] && weekday && now.Before(slot)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) createAppointment(w http.ResponseWriter, r *http.Request, me users.User) {
	var in struct {
		ProviderID string    `json:"provider_id"`
		Date       time.Time `json:"date"`
	}
	if !decode(w, r, &in) {
		return
	}
	if _, err := uuid.Parse(in.ProviderID); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "provider_id"}, "msg": "value is not a valid uuid", "type": "type_error.uuid"}},
		})
		return
	}
	provider, ok := f.User(in.ProviderID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Cabeleireiro não encontrado")
		return
	}
	local := in.Date.In(Zone)
	switch {
	case in.Date.Before(f.Now()):
		writeDetail(w, http.StatusBadRequest, "Você não pode marcar agendamento em datas passadas")
		return
	case local.Hour() < firstHour || local.Hour() > lastHour:
		writeDetail(w, http.StatusBadRequest, "Você só pode cria agendamentos entre 8:00 e 17:00")
		return
	case provider.ID == me.ID:
		writeDetail(w, http.StatusBadRequest, "Você não pode marca agendamento consigo mesmo")
		return
	}

	f.lock.Lock()
	for _, a := range f.appointments {
		if a.providerID == provider.ID && a.date.Equal(in.Date) {
			f.lock.Unlock()
			writeDetail(w, http.StatusBadRequest, "Este horario já esta agendado")
			return
		}
	}
	a := appointment{id: uuid.NewString(), userID: me.ID, providerID: provider.ID, date: in.Date.UTC()}
	f.appointments = append(f.appointments, a)
	f.lock.Unlock()

	f.AddNotification(provider.ID, f.notificationMessage(me, a.date), f.Now())
	writeJSON(w, http.StatusCreated, api.Appointment{
		ID:         a.id,
		UserID:     a.userID,
		ProviderID: a.providerID,
		Date:       api.Timestamp{Time: a.date.In(Zone)},
	})
}

func (f *FakeAPI) listNotifications(w http.ResponseWriter, _ *http.Request, me users.User) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	out := []rawNotification{}
	for i := len(f.notifications) - 1; i >= 0; i-- {
		n := f.notifications[i]
		if n.RecipientID == me.ID {
			out = append(out, rawNotification{
				ID:          n.ID,
				RecipientID: n.RecipientID,
				Content:     n.Content,
				Read:        n.Read,
				CreatedAt:   n.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000"),
			})
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// rawNotification carries created_at without a zone, as the document store serves it.
type rawNotification struct {
	ID          string `json:"id"`
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
	Read        bool   `json:"read"`
	CreatedAt   string `json:"created_at"`
}

func (f *FakeAPI) readNotification(w http.ResponseWriter, r *http.Request, _ users.User) {
	var in struct {
		DocID string `json:"doc_id"`
	}
	if !decode(w, r, &in) {
		return
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	for _, n := range f.notifications {
		if n.ID == in.DocID {
			n.Read = true
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
