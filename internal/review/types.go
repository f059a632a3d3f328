package review

import "agentpacks-registry/internal/model"

const (
	MaxCommentLength = 2000

	DefaultListLimit = 20
	MaxListLimit     = 100
)

// --- UseCase Inputs ---

type UpsertInput struct {
	PackName string
	Rating   int
	Comment  *string
}

type ListInput struct {
	PackName string
	Limit    int
	Offset   int
}

// --- UseCase Outputs ---

type ListOutput struct {
	Reviews []model.Review
	Total   int
	// AverageRating is the unscaled mean to one decimal; nil when Total is 0.
	AverageRating *float64
	Limit         int
	Offset        int
}
