package usecase

import (
	"context"
	"strings"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/model"
)

// Verify hashes rawToken and resolves it through the cache, then the repository.
// Only hits are cached so a freshly issued token is usable immediately.
func (uc *implUseCase) Verify(ctx context.Context, rawToken string) (model.Scope, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return model.Scope{}, auth.ErrMissingToken
	}

	hash := auth.HashToken(rawToken)
	if uc.cache != nil {
		if sc, ok := uc.cache.Get(hash); ok {
			return sc, nil
		}
	}

	tok, err := uc.repo.GetToken(ctx, hash)
	if err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Verify.GetToken: %v", err)
		return model.Scope{}, err
	}
	if tok.Username == "" {
		return model.Scope{}, auth.ErrInvalidToken
	}

	sc := model.Scope{Username: tok.Username, TokenScope: tok.Scope}
	if uc.cache != nil {
		uc.cache.Add(hash, sc)
	}
	return sc, nil
}
