package repository

type UpsertReviewOptions struct {
	PackName string
	Username string
	Rating   int
	Comment  *string
}

type ListReviewsOptions struct {
	PackName string
	Limit    int
	Offset   int
}
