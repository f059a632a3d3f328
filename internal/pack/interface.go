package pack

import (
	"context"

	"agentpacks-registry/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Publish gatekeeping: auth, publish rate limit, size, name policy, then persist.
	Publish(ctx context.Context, input PublishInput) (PublishOutput, error)
	Detail(ctx context.Context, name string) (model.Pack, error)
	Deprecate(ctx context.Context, sc model.Scope, input DeprecateInput) (model.Pack, error)

	// Versions
	ListVersions(ctx context.Context, name string) ([]model.PackVersion, error)
	Yank(ctx context.Context, sc model.Scope, input YankInput) (model.PackVersion, error)
}
