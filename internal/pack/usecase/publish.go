package usecase

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack"
	"agentpacks-registry/internal/pack/repository"
	"agentpacks-registry/internal/webhook"
	"agentpacks-registry/pkg/manifest"
)

// Publish runs the gate in order and short-circuits on the first failure.
// Nothing is written until every check has passed.
func (uc *implUseCase) Publish(ctx context.Context, input pack.PublishInput) (pack.PublishOutput, error) {
	var out pack.PublishOutput

	// 1. Authenticate
	sc, err := uc.authUC.Verify(ctx, input.Token)
	if err != nil {
		uc.metrics.ObservePublish("unauthenticated")
		return out, err
	}
	if !sc.CanPublish() {
		uc.metrics.ObservePublish("forbidden")
		return out, pack.ErrInsufficientScope
	}

	// 2. Rate limit
	if uc.limiter != nil {
		res := uc.limiter.Allow("user:" + sc.Username)
		out.RateLimit = &res
		if !res.Allowed {
			uc.metrics.ObservePublish("rate_limited")
			uc.metrics.ObserveRateLimited(uc.limiter.Class())
			return out, pack.ErrRateLimited
		}
	}

	// 3. Size
	size := int64(len(input.Tarball))
	if size > uc.cfg.MaxTarballBytes {
		uc.metrics.ObservePublish("too_large")
		return out, pack.ErrPayloadTooLarge
	}
	if size == 0 {
		uc.metrics.ObservePublish("invalid")
		return out, pack.ErrMissingTarball
	}

	// 4. Name policy
	if err := uc.names.Validate(input.Name); err != nil {
		uc.metrics.ObservePublish("invalid")
		return out, err
	}

	if !model.IsValidVersion(input.Version) {
		uc.metrics.ObservePublish("invalid")
		return out, pack.ErrInvalidVersion
	}
	mf, err := manifest.Validate(input.Manifest, input.Name, input.Version)
	if err != nil {
		uc.l.Warnf(ctx, "pack.usecase.Publish.manifest: %s@%s: %v", input.Name, input.Version, err)
		uc.metrics.ObservePublish("invalid")
		return out, fmt.Errorf("%w: %v", pack.ErrInvalidManifest, err)
	}

	// Ownership and duplicate checks before the blob is written.
	existing, err := uc.repo.GetPack(ctx, input.Name)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Publish.GetPack: %v", err)
		return out, err
	}
	if existing.Exists() {
		if !existing.IsAuthor(sc.Username) {
			uc.metrics.ObservePublish("forbidden")
			return out, pack.ErrNotAuthor
		}
		v, err := uc.repo.GetVersion(ctx, input.Name, input.Version)
		if err != nil {
			uc.l.Errorf(ctx, "pack.usecase.Publish.GetVersion: %v", err)
			return out, err
		}
		if v.Exists() {
			uc.metrics.ObservePublish("conflict")
			return out, pack.ErrVersionExists
		}
	}

	// 5. Create/update
	sum := sha512.Sum512(input.Tarball)
	ref, err := uc.blobs.Put(ctx, tarballKey(input.Name, input.Version, sum), input.Tarball)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Publish.Put: %v", err)
		uc.metrics.ObservePublish("error")
		return out, err
	}

	p, v, err := uc.repo.UpsertFromPublish(ctx, repository.UpsertFromPublishOptions{
		Name:        input.Name,
		DisplayName: mf.DisplayName,
		Description: mf.Description,
		Author:      sc.Username,
		Version:     input.Version,
		Manifest:    input.Manifest,
		TarballRef:  ref,
		Integrity:   integrity(sum),
		SizeBytes:   size,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAuthorMismatch):
			uc.metrics.ObservePublish("forbidden")
			return out, pack.ErrNotAuthor
		case errors.Is(err, repository.ErrVersionExists):
			uc.metrics.ObservePublish("conflict")
			return out, pack.ErrVersionExists
		}
		uc.l.Errorf(ctx, "pack.usecase.Publish.UpsertFromPublish: %v", err)
		uc.metrics.ObservePublish("error")
		return out, err
	}

	uc.metrics.ObservePublish("ok")
	uc.l.Infof(ctx, "pack.usecase.Publish: %s@%s published by %s", p.Name, v.Version, sc.Username)

	// 6. Notify
	uc.notify(ctx, webhook.DispatchInput{
		PackName: p.Name,
		Event:    model.EventPublish,
		Version:  v.Version,
		Data: pack.PublishEventData{
			Name:        p.Name,
			Version:     v.Version,
			Author:      p.AuthorName,
			Integrity:   v.Integrity,
			SizeBytes:   v.SizeBytes,
			PublishedAt: v.PublishedAt,
		},
	})

	out.Pack = p
	out.Version = v
	return out, nil
}

// tarballKey is content-addressed. A publish that loses the race in
// UpsertFromPublish writes to its own key and never replaces committed bytes.
func tarballKey(name, version string, sum [sha512.Size]byte) string {
	return fmt.Sprintf("%s/%s-%s-%s.tgz", name, name, version, hex.EncodeToString(sum[:12]))
}

// integrity is a Subresource Integrity string over the tarball bytes.
func integrity(sum [sha512.Size]byte) string {
	return "sha512-" + base64.StdEncoding.EncodeToString(sum[:])
}
