package auth

import (
	"context"
	"errors"
)

// CookieName is the cookie carrying the opaque session identifier. The
// client holds only the id; the payload lives server-side in a Store.
const CookieName = "pwd_session"

// ErrSessionNotFound is returned when a session id is absent or expired.
var ErrSessionNotFound = errors.New("session not found")

// Session is the identity snapshot bound to a session id. Fields mirror the
// user row at login time and are not re-validated per request; a profile
// update rewrites the live session in place.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Store is the server-side session persistence boundary. Create must
// generate a cryptographically unguessable id. Destroy is idempotent and
// concurrent writes to the same id resolve last-write-wins.
type Store interface {
	Create(ctx context.Context, sess Session) (string, error)
	Read(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, sess Session) error
	Destroy(ctx context.Context, id string) error
}
