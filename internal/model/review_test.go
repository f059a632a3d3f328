package model_test

import (
	"testing"

	"agentpacks-registry/internal/model"
)

func TestRatingStatsCachedAverage(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    *int
	}{
		{"no reviews", nil, nil},
		{"single", []int{4}, intPtr(40)},
		{"two averaging to three", []int{4, 2}, intPtr(30)},
		{"repeating decimal rounds up", []int{5, 5, 4}, intPtr(47)},
		{"repeating decimal rounds down", []int{5, 4, 4}, intPtr(43)},
		{"half rounds up", []int{1, 2, 2, 2}, intPtr(18)},
		{"exact half", []int{4, 5, 4, 5, 4, 5, 4, 5, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 5}, intPtr(43)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := statsOf(tc.ratings)
			got := s.CachedAverage()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("expected %d, got %d", *tc.want, *got)
			}
		})
	}
}

func TestRatingStatsDisplayAverage(t *testing.T) {
	if v := (model.RatingStats{}).DisplayAverage(); v != nil {
		t.Errorf("expected nil display average without reviews, got %v", *v)
	}
	v := statsOf([]int{5, 5, 4}).DisplayAverage()
	if v == nil || *v != 4.7 {
		t.Errorf("expected 4.7, got %v", v)
	}
}

func statsOf(ratings []int) model.RatingStats {
	s := model.RatingStats{}
	for _, r := range ratings {
		s.Count++
		s.Sum += r
	}
	return s
}

func intPtr(v int) *int { return &v }
