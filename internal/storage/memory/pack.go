package memory

import (
	"context"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack/repository"
)

var _ repository.Repository = (*Store)(nil)

func (s *Store) GetPack(ctx context.Context, name string) (model.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePack(s.packs[name]), nil
}

func (s *Store) UpsertFromPublish(ctx context.Context, opt repository.UpsertFromPublishOptions) (model.Pack, model.PackVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	p, exists := s.packs[opt.Name]
	if exists && p.AuthorName != opt.Author {
		return model.Pack{}, model.PackVersion{}, repository.ErrAuthorMismatch
	}
	for _, v := range s.versions[opt.Name] {
		if v.Version == opt.Version {
			return model.Pack{}, model.PackVersion{}, repository.ErrVersionExists
		}
	}

	if !exists {
		p = model.Pack{
			Name:       opt.Name,
			AuthorName: opt.Author,
			CreatedAt:  now,
		}
	}
	if opt.DisplayName != "" {
		p.DisplayName = opt.DisplayName
	}
	if opt.Description != "" {
		p.Description = opt.Description
	}
	if p.ShouldPromote(opt.Version) {
		p.LatestVersion = opt.Version
	}
	p.UpdatedAt = now

	v := model.PackVersion{
		PackName:    opt.Name,
		Version:     opt.Version,
		Manifest:    append([]byte(nil), opt.Manifest...),
		TarballRef:  opt.TarballRef,
		Integrity:   opt.Integrity,
		SizeBytes:   opt.SizeBytes,
		PublishedBy: opt.Author,
		PublishedAt: now,
	}

	s.packs[opt.Name] = p
	s.versions[opt.Name] = append(s.versions[opt.Name], v)
	return clonePack(p), v, nil
}

// SetDeprecation returns the zero value when the pack does not exist.
func (s *Store) SetDeprecation(ctx context.Context, opt repository.SetDeprecationOptions) (model.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.packs[opt.Name]
	if !ok {
		return model.Pack{}, nil
	}
	p.Deprecated = opt.Deprecated
	p.DeprecationMessage = nil
	if opt.Deprecated {
		p.DeprecationMessage = cloneString(opt.Message)
	}
	p.UpdatedAt = s.timestamp()
	s.packs[opt.Name] = p
	return clonePack(p), nil
}

func (s *Store) RecomputeRatingCache(ctx context.Context, name string) (model.Pack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.packs[name]; !ok {
		return model.Pack{}, nil
	}
	s.recomputeLocked(name)
	return clonePack(s.packs[name]), nil
}

// recomputeLocked rewrites the cache from the current review set. Caller holds s.mu.
func (s *Store) recomputeLocked(name string) {
	p, ok := s.packs[name]
	if !ok {
		return
	}
	stats := s.statsLocked(name)
	p.AverageRating = stats.CachedAverage()
	p.ReviewCount = stats.Count
	s.packs[name] = p
}

func (s *Store) GetVersion(ctx context.Context, packName, version string) (model.PackVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range s.versions[packName] {
		if v.Version == version {
			return v, nil
		}
	}
	return model.PackVersion{}, nil
}

// ListVersions returns versions newest first.
func (s *Store) ListVersions(ctx context.Context, packName string) ([]model.PackVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.versions[packName]
	out := make([]model.PackVersion, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	return out, nil
}

func (s *Store) YankVersion(ctx context.Context, packName, version string) (model.PackVersion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.versions[packName] {
		if v.Version == version {
			s.versions[packName][i].Yanked = true
			return s.versions[packName][i], nil
		}
	}
	return model.PackVersion{}, nil
}
