package sessions

import (
	"github.com/jrsteele09/go-barber-client/token"
	"github.com/jrsteele09/go-barber-client/users"
)

// Storage keys. The token and user keys differ in capitalisation ("GoBarber" / "Gobarber"); both
// are kept verbatim so sessions persisted by earlier clients are still found.
const (
	TokenKey = "@GoBarber:token"
	UserKey  = "@Gobarber:user"
)

// Session is the signed-in state: both fields are set or the session does not exist.
type Session struct {
	Token string     // Bearer token issued by /sessions/access-token
	User  users.User // Profile returned with the token, replaced whole on update
}

func (s Session) IsZero() bool {
	return s.Token == "" && s.User.IsZero()
}

// Claims decodes the token without verifying it. Opaque tokens return ErrInvalidToken.
func (s Session) Claims() (token.Claims, error) {
	return token.Inspect(s.Token)
}
