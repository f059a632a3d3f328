package usecase

import (
	"context"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack"
	"agentpacks-registry/internal/webhook"
)

// ListVersions returns every version of a pack, newest first.
func (uc *implUseCase) ListVersions(ctx context.Context, name string) ([]model.PackVersion, error) {
	if _, err := uc.Detail(ctx, name); err != nil {
		return nil, err
	}
	versions, err := uc.repo.ListVersions(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.ListVersions: %v", err)
		return nil, err
	}
	return versions, nil
}

// Yank marks a version as withdrawn. Yanking twice is a no-op and does not notify again.
func (uc *implUseCase) Yank(ctx context.Context, sc model.Scope, input pack.YankInput) (model.PackVersion, error) {
	p, err := uc.authorPack(ctx, sc, input.Name)
	if err != nil {
		return model.PackVersion{}, err
	}

	v, err := uc.repo.GetVersion(ctx, p.Name, input.Version)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Yank.GetVersion: %v", err)
		return model.PackVersion{}, err
	}
	if !v.Exists() {
		return model.PackVersion{}, pack.ErrVersionNotFound
	}
	if v.Yanked {
		return v, nil
	}

	v, err = uc.repo.YankVersion(ctx, p.Name, input.Version)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Yank.YankVersion: %v", err)
		return model.PackVersion{}, err
	}

	uc.notify(ctx, webhook.DispatchInput{
		PackName: p.Name,
		Event:    model.EventDelete,
		Version:  v.Version,
		Data:     pack.YankEventData{Name: p.Name, Version: v.Version, Yanked: true},
	})
	return v, nil
}
