package memory

import (
	"context"

	"github.com/google/uuid"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review/repository"
)

var _ repository.Repository = (*Store)(nil)

// UpsertReview writes the review and refreshes the pack cache under one lock.
func (s *Store) UpsertReview(ctx context.Context, opt repository.UpsertReviewOptions) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.packs[opt.PackName]; !ok {
		return model.Review{}, repository.ErrPackMissing
	}

	now := s.timestamp()
	list := s.reviews[opt.PackName]
	var saved model.Review
	found := false
	for i := range list {
		if list[i].Username == opt.Username {
			list[i].Rating = opt.Rating
			list[i].Comment = cloneString(opt.Comment)
			list[i].UpdatedAt = now
			saved = list[i]
			found = true
			break
		}
	}
	if !found {
		saved = model.Review{
			ID:        uuid.NewString(),
			PackName:  opt.PackName,
			Username:  opt.Username,
			Rating:    opt.Rating,
			Comment:   cloneString(opt.Comment),
			CreatedAt: now,
			UpdatedAt: now,
		}
		list = append(list, saved)
	}
	s.reviews[opt.PackName] = list

	s.recomputeLocked(opt.PackName)
	return cloneReview(saved), nil
}

func (s *Store) DeleteReview(ctx context.Context, packName, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[packName]
	for i := range list {
		if list[i].Username == username {
			s.reviews[packName] = append(list[:i:i], list[i+1:]...)
			s.recomputeLocked(packName)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetReview(ctx context.Context, packName, username string) (model.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.reviews[packName] {
		if r.Username == username {
			return cloneReview(r), nil
		}
	}
	return model.Review{}, nil
}

func (s *Store) ListReviews(ctx context.Context, opt repository.ListReviewsOptions) ([]model.Review, model.RatingStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.reviews[opt.PackName]
	total := len(list)

	start := min(max(opt.Offset, 0), total)
	end := total
	if opt.Limit > 0 {
		end = min(start+opt.Limit, total)
	}

	out := make([]model.Review, 0, end-start)
	for _, r := range list[start:end] {
		out = append(out, cloneReview(r))
	}
	return out, s.statsLocked(opt.PackName), nil
}

func (s *Store) statsLocked(packName string) model.RatingStats {
	var stats model.RatingStats
	for _, r := range s.reviews[packName] {
		stats.Count++
		stats.Sum += r.Rating
	}
	return stats
}

func cloneReview(r model.Review) model.Review {
	r.Comment = cloneString(r.Comment)
	return r
}
