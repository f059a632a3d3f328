package model

import (
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// Pack is a named, versioned bundle owned by a single author.
type Pack struct {
	Name               string
	DisplayName        string
	Description        string
	AuthorName         string
	LatestVersion      string
	Deprecated         bool
	DeprecationMessage *string
	// AverageRating is round(mean(ratings) * 10); nil while the pack has no reviews.
	AverageRating *int
	ReviewCount   int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Exists reports whether p was loaded from storage (repositories return the zero value on miss).
func (p Pack) Exists() bool { return p.Name != "" }

// IsAuthor reports whether username owns the pack.
func (p Pack) IsAuthor(username string) bool {
	return username != "" && p.AuthorName == username
}

// ShouldPromote reports whether version should replace LatestVersion.
func (p Pack) ShouldPromote(version string) bool {
	if p.LatestVersion == "" {
		return true
	}
	return semver.Compare(SemverTag(version), SemverTag(p.LatestVersion)) > 0
}

// SemverTag adds the "v" prefix golang.org/x/mod/semver expects.
func SemverTag(version string) string {
	return "v" + version
}

// IsValidVersion accepts full MAJOR.MINOR.PATCH versions with optional pre-release and build parts.
func IsValidVersion(version string) bool {
	if version == "" || strings.HasPrefix(version, "v") {
		return false
	}
	tag := SemverTag(version)
	if !semver.IsValid(tag) {
		return false
	}
	core, _, _ := strings.Cut(tag, "+")
	return semver.Canonical(tag) == core
}

// PackVersion is one published tarball of a pack.
type PackVersion struct {
	PackName    string
	Version     string
	Manifest    json.RawMessage
	TarballRef  string
	Integrity   string
	SizeBytes   int64
	Yanked      bool
	PublishedBy string
	PublishedAt time.Time
}

// Exists reports whether v was loaded from storage.
func (v PackVersion) Exists() bool { return v.Version != "" }
