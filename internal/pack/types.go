package pack

import (
	"encoding/json"
	"time"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/pkg/ratelimit"
)

const DefaultMaxTarballBytes int64 = 10 * 1024 * 1024

// --- UseCase Inputs ---

type PublishInput struct {
	Token    string
	Tarball  []byte
	Name     string
	Version  string
	Manifest json.RawMessage
}

type DeprecateInput struct {
	Name       string
	Deprecated bool
	Message    *string
}

type YankInput struct {
	Name    string
	Version string
}

// --- UseCase Outputs ---

type PublishOutput struct {
	Pack    model.Pack
	Version model.PackVersion
	// RateLimit is set whenever the publish limiter was consulted, including on rejection.
	RateLimit *ratelimit.Result
}

// --- Webhook payloads ---

type PublishEventData struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Author      string    `json:"author"`
	Integrity   string    `json:"integrity"`
	SizeBytes   int64     `json:"size_bytes"`
	PublishedAt time.Time `json:"published_at"`
}

type DeprecationEventData struct {
	Name       string  `json:"name"`
	Deprecated bool    `json:"deprecated"`
	Message    *string `json:"message"`
}

type YankEventData struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Yanked  bool   `json:"yanked"`
}
