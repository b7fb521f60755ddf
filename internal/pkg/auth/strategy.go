package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the caller holds administrator privileges.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// RoleAdmin is the role claim carried by administrator tokens.
const RoleAdmin = "admin"

type Strategy interface {
	IssueToken(id Identity) (string, error)
	ParseToken(token string) (Identity, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
