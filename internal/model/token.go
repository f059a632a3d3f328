package model

import "time"

// ScopePublish allows a token to publish packs.
const ScopePublish = "publish"

// AuthToken maps the SHA-256 of a bearer token to its owner. Raw tokens are never stored.
type AuthToken struct {
	TokenHash string
	Username  string
	Scope     string
	CreatedAt time.Time
}

// Scope is the authenticated identity attached to a request.
type Scope struct {
	Username   string
	TokenScope string
}

// IsAuthenticated reports whether the scope belongs to a verified token.
func (s Scope) IsAuthenticated() bool { return s.Username != "" }

// CanPublish reports whether the token may publish packs.
func (s Scope) CanPublish() bool { return s.TokenScope == ScopePublish }
