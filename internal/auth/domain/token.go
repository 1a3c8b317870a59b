package domain

import "time"

// RefreshToken is an outstanding refresh token. Revoked marks it blacklisted.
type RefreshToken struct {
	ID        string
	UserID    int64
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// Live reports whether the token may still authenticate at now.
func (t *RefreshToken) Live(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// SessionMeta is request metadata recorded alongside an issued refresh token.
type SessionMeta struct {
	IPAddress string
	UserAgent string
}
