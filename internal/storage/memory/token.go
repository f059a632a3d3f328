package memory

import (
	"context"

	"agentpacks-registry/internal/auth/repository"
	"agentpacks-registry/internal/model"
)

var _ repository.Repository = (*Store)(nil)

func (s *Store) GetToken(ctx context.Context, tokenHash string) (model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens[tokenHash], nil
}

func (s *Store) CreateToken(ctx context.Context, opt repository.CreateTokenOptions) (model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[opt.TokenHash]; ok {
		return model.AuthToken{}, repository.ErrFailedToInsert
	}
	tok := model.AuthToken{
		TokenHash: opt.TokenHash,
		Username:  opt.Username,
		Scope:     opt.Scope,
		CreatedAt: s.timestamp(),
	}
	s.tokens[opt.TokenHash] = tok
	return tok, nil
}
