package auth

import (
	"context"

	"agentpacks-registry/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Verify resolves a raw bearer token to the identity it was issued to.
	Verify(ctx context.Context, rawToken string) (model.Scope, error)
	// Issue creates a new token. The raw value is only ever returned here.
	Issue(ctx context.Context, input IssueInput) (IssueOutput, error)
}
