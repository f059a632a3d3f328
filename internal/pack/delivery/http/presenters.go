package http

import (
	"encoding/json"
	"time"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack"
)

// --- Request DTOs ---

// publishMetadata is the JSON carried in the "metadata" multipart field.
type publishMetadata struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Manifest json.RawMessage `json:"manifest"`
}

type publishReq struct {
	Token    string
	Tarball  []byte
	Metadata publishMetadata
}

func (r publishReq) toInput() pack.PublishInput {
	return pack.PublishInput{
		Token:    r.Token,
		Tarball:  r.Tarball,
		Name:     r.Metadata.Name,
		Version:  r.Metadata.Version,
		Manifest: r.Metadata.Manifest,
	}
}

type deprecateReq struct {
	Name       string  `json:"-"`
	Deprecated *bool   `json:"deprecated" binding:"required"`
	Message    *string `json:"message"    binding:"omitempty,max=500"`
}

func (r deprecateReq) toInput() pack.DeprecateInput {
	return pack.DeprecateInput{
		Name:       r.Name,
		Deprecated: *r.Deprecated,
		Message:    r.Message,
	}
}

// --- Response DTOs ---

type packResp struct {
	Name               string    `json:"name"`
	DisplayName        string    `json:"display_name"`
	Description        string    `json:"description"`
	AuthorName         string    `json:"author_name"`
	LatestVersion      string    `json:"latest_version"`
	Deprecated         bool      `json:"deprecated"`
	DeprecationMessage *string   `json:"deprecation_message"`
	AverageRating      *int      `json:"average_rating"`
	ReviewCount        int       `json:"review_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func newPackResp(p model.Pack) packResp {
	return packResp{
		Name:               p.Name,
		DisplayName:        p.DisplayName,
		Description:        p.Description,
		AuthorName:         p.AuthorName,
		LatestVersion:      p.LatestVersion,
		Deprecated:         p.Deprecated,
		DeprecationMessage: p.DeprecationMessage,
		AverageRating:      p.AverageRating,
		ReviewCount:        p.ReviewCount,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

type versionResp struct {
	Version     string          `json:"version"`
	Integrity   string          `json:"integrity"`
	TarballRef  string          `json:"tarball_ref"`
	SizeBytes   int64           `json:"size_bytes"`
	Yanked      bool            `json:"yanked"`
	PublishedBy string          `json:"published_by"`
	PublishedAt time.Time       `json:"published_at"`
	Manifest    json.RawMessage `json:"manifest,omitempty"`
}

func newVersionResp(v model.PackVersion) versionResp {
	return versionResp{
		Version:     v.Version,
		Integrity:   v.Integrity,
		TarballRef:  v.TarballRef,
		SizeBytes:   v.SizeBytes,
		Yanked:      v.Yanked,
		PublishedBy: v.PublishedBy,
		PublishedAt: v.PublishedAt,
		Manifest:    v.Manifest,
	}
}

type publishResp struct {
	packResp
	Version versionResp `json:"version"`
}

func (h *handler) newPublishResp(out pack.PublishOutput) publishResp {
	return publishResp{
		packResp: newPackResp(out.Pack),
		Version:  newVersionResp(out.Version),
	}
}

type deprecateResp struct {
	Deprecated bool    `json:"deprecated"`
	Message    *string `json:"message"`
}

func (h *handler) newDeprecateResp(p model.Pack) deprecateResp {
	return deprecateResp{Deprecated: p.Deprecated, Message: p.DeprecationMessage}
}

type listVersionsResp struct {
	Versions []versionResp `json:"versions"`
}

func (h *handler) newListVersionsResp(versions []model.PackVersion) listVersionsResp {
	out := make([]versionResp, len(versions))
	for i, v := range versions {
		out[i] = newVersionResp(v)
	}
	return listVersionsResp{Versions: out}
}

type yankResp struct {
	Yanked  bool        `json:"yanked"`
	Version versionResp `json:"version"`
}

func (h *handler) newYankResp(v model.PackVersion) yankResp {
	return yankResp{Yanked: v.Yanked, Version: newVersionResp(v)}
}
