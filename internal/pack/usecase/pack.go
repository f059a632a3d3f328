package usecase

import (
	"context"
	"strings"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack"
	"agentpacks-registry/internal/pack/repository"
	"agentpacks-registry/internal/webhook"
)

// Detail returns a pack by name. Returns ErrPackNotFound when not found.
func (uc *implUseCase) Detail(ctx context.Context, name string) (model.Pack, error) {
	p, err := uc.repo.GetPack(ctx, name)
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Detail.GetPack: %v", err)
		return model.Pack{}, err
	}
	if !p.Exists() {
		return model.Pack{}, pack.ErrPackNotFound
	}
	return p, nil
}

// Deprecate sets or clears the deprecation flag. Clearing it also clears the message.
func (uc *implUseCase) Deprecate(ctx context.Context, sc model.Scope, input pack.DeprecateInput) (model.Pack, error) {
	p, err := uc.authorPack(ctx, sc, input.Name)
	if err != nil {
		return model.Pack{}, err
	}

	var msg *string
	if input.Deprecated && input.Message != nil {
		if m := strings.TrimSpace(*input.Message); m != "" {
			msg = &m
		}
	}

	updated, err := uc.repo.SetDeprecation(ctx, repository.SetDeprecationOptions{
		Name:       p.Name,
		Deprecated: input.Deprecated,
		Message:    msg,
	})
	if err != nil {
		uc.l.Errorf(ctx, "pack.usecase.Deprecate.SetDeprecation: %v", err)
		return model.Pack{}, err
	}

	uc.notify(ctx, webhook.DispatchInput{
		PackName: updated.Name,
		Event:    model.EventUpdate,
		Version:  updated.LatestVersion,
		Data: pack.DeprecationEventData{
			Name:       updated.Name,
			Deprecated: updated.Deprecated,
			Message:    updated.DeprecationMessage,
		},
	})
	return updated, nil
}

// authorPack loads name and checks that sc owns it.
func (uc *implUseCase) authorPack(ctx context.Context, sc model.Scope, name string) (model.Pack, error) {
	if !sc.IsAuthenticated() {
		return model.Pack{}, auth.ErrMissingToken
	}
	p, err := uc.Detail(ctx, name)
	if err != nil {
		return model.Pack{}, err
	}
	if !p.IsAuthor(sc.Username) {
		return model.Pack{}, pack.ErrNotAuthor
	}
	return p, nil
}
