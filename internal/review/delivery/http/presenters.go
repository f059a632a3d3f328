package http

import (
	"math"
	"time"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review"
)

// --- Request DTOs ---

type listReq struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// upsertReq takes rating as a float so 4.5 is reported as a bad rating rather than a bad body.
type upsertReq struct {
	Rating  *float64 `json:"rating"`
	Comment *string  `json:"comment"`
}

// toInput maps a missing or non-integer rating to 0, which the usecase rejects
// as out of range after its authorship check.
func (r upsertReq) toInput(packName string) review.UpsertInput {
	rating := 0
	if r.Rating != nil {
		if v := *r.Rating; v == math.Trunc(v) && v >= model.MinRating && v <= model.MaxRating {
			rating = int(v)
		}
	}
	return review.UpsertInput{
		PackName: packName,
		Rating:   rating,
		Comment:  r.Comment,
	}
}

// --- Response DTOs ---

type reviewResp struct {
	ID        string    `json:"id"`
	PackName  string    `json:"pack_name"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newReviewResp(r model.Review) reviewResp {
	return reviewResp{
		ID:        r.ID,
		PackName:  r.PackName,
		Username:  r.Username,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type listResp struct {
	Reviews       []reviewResp `json:"reviews"`
	Total         int          `json:"total"`
	AverageRating *float64     `json:"average_rating"`
	Limit         int          `json:"limit"`
	Offset        int          `json:"offset"`
}

func (h *handler) newListResp(out review.ListOutput) listResp {
	reviews := make([]reviewResp, len(out.Reviews))
	for i, r := range out.Reviews {
		reviews[i] = newReviewResp(r)
	}
	return listResp{
		Reviews:       reviews,
		Total:         out.Total,
		AverageRating: out.AverageRating,
		Limit:         out.Limit,
		Offset:        out.Offset,
	}
}

type deleteResp struct {
	Deleted bool `json:"deleted"`
}

type meResp struct {
	Review *reviewResp `json:"review"`
}

func (h *handler) newMeResp(r model.Review) meResp {
	if !r.Exists() {
		return meResp{}
	}
	resp := newReviewResp(r)
	return meResp{Review: &resp}
}
