package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const bearerPrefix = "Bearer "

type IssueInput struct {
	Username string
	Scope    string
}

type IssueOutput struct {
	Token    string
	Username string
	Scope    string
}

// HashToken is the one-way hash stored in place of a raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ParseBearer extracts the token from an Authorization header value.
func ParseBearer(header string) (string, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}
