// Package apifake is an in-memory GoBarber API served over httptest, for tests.
package apifake

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jrsteele09/go-barber-client/api"
	"github.com/jrsteele09/go-barber-client/users"
)

// Zone is the fixed -03:00 offset the API serves appointment dates in.
var Zone = time.FixedZone("-03", -3*60*60)

const (
	issuerAccess   = "access"
	issuerReset    = "reset"
	issuerActivate = "activate"

	firstHour = 8
	lastHour  = 17
)

type account struct {
	user   users.User
	hash   []byte
	active bool
}

type appointment struct {
	id         string
	userID     string
	providerID string
	date       time.Time
}

// FakeAPI mimics the GoBarber backend closely enough to drive the client end to end.
type FakeAPI struct {
	server *httptest.Server
	secret []byte

	// Now is the API's clock; tests pin it to make availability deterministic.
	Now func() time.Time

	lock           sync.RWMutex
	accounts       map[string]*account // user id to account
	emailIDs       map[string]string   // email to user id
	appointments   []appointment
	notifications  []*api.Notification
	avatars        map[string][]byte
	issued         []string        // access token ids
	revoked        map[string]bool // access token ids answering 401
	calls          map[string]int
	lastAuth       string
	lastResetToken string
	lastActivation string
	hold           chan struct{}
}

func New() *FakeAPI {
	f := &FakeAPI{
		secret:   []byte(uuid.NewString()),
		Now:      time.Now,
		accounts: make(map[string]*account),
		emailIDs: make(map[string]string),
		avatars:  make(map[string][]byte),
		revoked:  make(map[string]bool),
		calls:    make(map[string]int),
	}
	f.server = httptest.NewServer(f.routes())
	return f
}

func (f *FakeAPI) URL() string {
	return f.server.URL
}

func (f *FakeAPI) Close() {
	f.lock.Lock()
	if f.hold != nil {
		close(f.hold)
		f.hold = nil
	}
	f.lock.Unlock()
	f.server.Close()
}

// AddUser stores u with password. The returned copy carries the assigned ID.
func (f *FakeAPI) AddUser(u users.User, password string, active bool) users.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Avatar == "" {
		u.Avatar = "https://ui-avatars.com/api/?background=random&name=" + u.Name + "+" + u.Surname
	}
	f.accounts[u.ID] = &account{user: u, hash: hash, active: active}
	f.emailIDs[u.Email] = u.ID
	return u
}

func (f *FakeAPI) User(id string) (users.User, bool) {
	f.lock.RLock()
	defer f.lock.RUnlock()
	acc, ok := f.accounts[id]
	if !ok {
		return users.User{}, false
	}
	return acc.user, true
}

// IssueToken signs an access token for userID valid for ttl (negative for an expired one).
func (f *FakeAPI) IssueToken(userID string, ttl time.Duration) string {
	return f.sign(userID, issuerAccess, ttl)
}

// RevokeTokens makes every token issued so far answer 401, as an expired session would.
func (f *FakeAPI) RevokeTokens() {
	f.lock.Lock()
	defer f.lock.Unlock()
	for _, id := range f.issued {
		f.revoked[id] = true
	}
}

// AddAppointment books providerID for userID directly, bypassing the booking rules.
func (f *FakeAPI) AddAppointment(userID, providerID string, date time.Time) string {
	f.lock.Lock()
	defer f.lock.Unlock()
	id := uuid.NewString()
	f.appointments = append(f.appointments, appointment{id: id, userID: userID, providerID: providerID, date: date.UTC()})
	return id
}

func (f *FakeAPI) AddNotification(recipientID, content string, createdAt time.Time) string {
	f.lock.Lock()
	defer f.lock.Unlock()
	n := &api.Notification{
		ID:          strings.ReplaceAll(uuid.NewString(), "-", "")[:24],
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   api.Timestamp{Time: createdAt.UTC()},
	}
	f.notifications = append(f.notifications, n)
	return n.ID
}

// Calls counts requests received for "METHOD /path".
func (f *FakeAPI) Calls(method, path string) int {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.calls[method+" "+path]
}

// LastAuthorization is the Authorization header of the most recent request.
func (f *FakeAPI) LastAuthorization() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.lastAuth
}

func (f *FakeAPI) LastResetToken() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.lastResetToken
}

func (f *FakeAPI) LastActivationToken() string {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.lastActivation
}

func (f *FakeAPI) Avatar(userID string) []byte {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.avatars[userID]
}

// Hold parks every authenticated request until release is called or the request is cancelled.
func (f *FakeAPI) Hold() (release func()) {
	f.lock.Lock()
	defer f.lock.Unlock()
	ch := make(chan struct{})
	f.hold = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			f.lock.Lock()
			if f.hold == ch {
				close(ch)
				f.hold = nil
			}
			f.lock.Unlock()
		})
	}
}

func (f *FakeAPI) sign(subject, issuer string, ttl time.Duration) string {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(f.secret)
	if err != nil {
		panic(err)
	}
	if issuer == issuerAccess {
		f.lock.Lock()
		f.issued = append(f.issued, claims.ID)
		f.lock.Unlock()
	}
	return signed
}

// verify returns the subject of a valid token issued for issuer.
func (f *FakeAPI) verify(raw, issuer string) (string, bool) {
	var claims jwtlib.RegisteredClaims
	_, err := jwtlib.ParseWithClaims(raw, &claims, func(*jwtlib.Token) (any, error) {
		return f.secret, nil
	}, jwtlib.WithValidMethods([]string{"HS256"}), jwtlib.WithIssuer(issuer))
	if err != nil {
		return "", false
	}
	f.lock.RLock()
	revoked := f.revoked[claims.ID]
	f.lock.RUnlock()
	if revoked {
		return "", false
	}
	return claims.Subject, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.Detail{Detail: detail})
}

// decode answers 422 with a validation list, the way the API rejects malformed bodies.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(r.Body)
	if err == nil {
		err = json.Unmarshal(body, v)
	}
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body"}, "msg": "value is not a valid dict", "type": "type_error.dict"}},
		})
		return false
	}
	return true
}

func queryInts(r *http.Request, names ...string) ([]int, bool) {
	out := make([]int, 0, len(names))
	for _, name := range names {
		n, err := strconv.Atoi(r.URL.Query().Get(name))
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

func sameDay(t time.Time, year, month, day int) bool {
	local := t.In(Zone)
	return local.Year() == year && int(local.Month()) == month && local.Day() == day
}

func (f *FakeAPI) sortedAppointments(keep func(appointment) bool) []appointment {
	var out []appointment
	for _, a := range f.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })
	return out
}

func validationList(field, msg string) map[string]any {
	return map[string]any{"detail": []map[string]any{{"loc": []string{"query", field}, "msg": msg, "type": "value_error"}}}
}

func monthDays(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (f *FakeAPI) notificationMessage(client users.User, date time.Time) string {
	return fmt.Sprintf("Novo agendamento de %s para o dia %s", client.FullName(), date.In(Zone).Format("02/01/2006 15:04"))
}
