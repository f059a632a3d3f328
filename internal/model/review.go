package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is one user's rating of a pack. (PackName, Username) is unique.
type Review struct {
	ID        string
	PackName  string
	Username  string
	Rating    int
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exists reports whether r was loaded from storage.
func (r Review) Exists() bool { return r.ID != "" }

// RatingStats is the aggregate of every rating held for one pack.
type RatingStats struct {
	Count int
	Sum   int
}

// CachedAverage is the fixed-point value persisted on the pack row:
// round(mean * 10), rounding halves up. Integer-only so storage and memory agree exactly.
func (s RatingStats) CachedAverage() *int {
	if s.Count <= 0 {
		return nil
	}
	v := (s.Sum*20 + s.Count) / (2 * s.Count)
	return &v
}

// DisplayAverage is the unscaled mean rounded to one decimal place.
func (s RatingStats) DisplayAverage() *float64 {
	cached := s.CachedAverage()
	if cached == nil {
		return nil
	}
	v := float64(*cached) / 10
	return &v
}
