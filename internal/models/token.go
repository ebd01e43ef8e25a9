package models

import "time"

type AccessToken struct {
	ID        string
	UserID    int
	Name      string
	Client    string
	Revoked   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IssuedToken is returned by the token issuer. ID stays server side and is
// used for revocation; Value is the bearer string handed to the client.
type IssuedToken struct {
	ID    string
	Value string
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID  int
	Email   string
	TokenID string
}
