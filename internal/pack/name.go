package pack

import (
	"regexp"
	"strings"
)

const (
	MinNameLength = 2
	MaxNameLength = 64
)

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DefaultReservedNames blocks names that could impersonate the platform.
var DefaultReservedNames = []string{
	"agentpacks", "admin", "api", "www", "root", "system", "official", "registry",
	"npm", "node", "core", "std", "test", "null", "undefined", "help", "support",
	"security", "login", "signup", "search", "packs", "pack",
}

// NamePolicy rejects squatting-prone pack names.
type NamePolicy struct {
	reserved map[string]struct{}
}

// NewNamePolicy builds a policy over reserved. An empty list falls back to DefaultReservedNames.
func NewNamePolicy(reserved []string) NamePolicy {
	if len(reserved) == 0 {
		reserved = DefaultReservedNames
	}
	set := make(map[string]struct{}, len(reserved))
	for _, n := range reserved {
		set[strings.ToLower(strings.TrimSpace(n))] = struct{}{}
	}
	return NamePolicy{reserved: set}
}

// Validate returns ErrNameTooShort, ErrNameInvalid or ErrNameReserved, checked in that order.
func (p NamePolicy) Validate(name string) error {
	if len(name) < MinNameLength {
		return ErrNameTooShort
	}
	if len(name) > MaxNameLength || !namePattern.MatchString(name) {
		return ErrNameInvalid
	}
	if _, ok := p.reserved[name]; ok {
		return ErrNameReserved
	}
	return nil
}
