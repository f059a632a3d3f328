package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"agentpacks-registry/internal/auth"
	"agentpacks-registry/internal/auth/repository"
)

const (
	tokenPrefix = "ap_"
	tokenBytes  = 32
)

// Issue generates a random token and persists only its hash.
func (uc *implUseCase) Issue(ctx context.Context, input auth.IssueInput) (auth.IssueOutput, error) {
	username := strings.TrimSpace(input.Username)
	sc := strings.TrimSpace(input.Scope)
	if username == "" || sc == "" {
		return auth.IssueOutput{}, auth.ErrInvalidInput
	}

	raw, err := newRawToken()
	if err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Issue.newRawToken: %v", err)
		return auth.IssueOutput{}, err
	}

	tok, err := uc.repo.CreateToken(ctx, repository.CreateTokenOptions{
		TokenHash: auth.HashToken(raw),
		Username:  username,
		Scope:     sc,
	})
	if err != nil {
		uc.l.Errorf(ctx, "auth.usecase.Issue.CreateToken: %v", err)
		return auth.IssueOutput{}, err
	}

	uc.l.Infof(ctx, "auth.usecase.Issue: token issued for %s with scope %s", tok.Username, tok.Scope)
	return auth.IssueOutput{Token: raw, Username: tok.Username, Scope: tok.Scope}, nil
}

func newRawToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return tokenPrefix + hex.EncodeToString(b), nil
}
