package repository

import "encoding/json"

// UpsertFromPublishOptions holds everything written by one successful publish.
type UpsertFromPublishOptions struct {
	Name        string
	DisplayName string
	Description string
	Author      string

	Version    string
	Manifest   json.RawMessage
	TarballRef string
	Integrity  string
	SizeBytes  int64
}

// SetDeprecationOptions replaces both deprecation fields.
type SetDeprecationOptions struct {
	Name       string
	Deprecated bool
	Message    *string
}
