package repository

import (
	"context"

	"agentpacks-registry/internal/model"
)

// Repository stores hashed tokens. It never sees raw token values.
type Repository interface {
	// GetToken returns the zero value when no token has the given hash.
	GetToken(ctx context.Context, tokenHash string) (model.AuthToken, error)
	CreateToken(ctx context.Context, opt CreateTokenOptions) (model.AuthToken, error)
}
