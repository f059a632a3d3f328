package postgre

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"agentpacks-registry/internal/auth/repository"
	"agentpacks-registry/internal/model"
)

var _ repository.Repository = (*Store)(nil)

func (s *Store) GetToken(ctx context.Context, tokenHash string) (model.AuthToken, error) {
	const query = `
		SELECT token_hash, username, scope, created_at
		FROM auth_tokens WHERE token_hash = $1`

	var tok model.AuthToken
	err := s.pool.QueryRow(ctx, query, tokenHash).Scan(&tok.TokenHash, &tok.Username, &tok.Scope, &tok.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AuthToken{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetToken"), err)
		return model.AuthToken{}, repository.ErrFailedToGet
	}
	return tok, nil
}

func (s *Store) CreateToken(ctx context.Context, opt repository.CreateTokenOptions) (model.AuthToken, error) {
	const query = `
		INSERT INTO auth_tokens (token_hash, username, scope, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING token_hash, username, scope, created_at`

	var tok model.AuthToken
	err := s.pool.QueryRow(ctx, query, opt.TokenHash, opt.Username, opt.Scope).
		Scan(&tok.TokenHash, &tok.Username, &tok.Scope, &tok.CreatedAt)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("CreateToken"), err)
		return model.AuthToken{}, repository.ErrFailedToInsert
	}
	return tok, nil
}
