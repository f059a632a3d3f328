package postgre

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/review/repository"
)

var _ repository.Repository = (*Store)(nil)

const reviewColumns = `id, pack_name, username, rating, comment, created_at, updated_at`

func scanReview(row pgx.Row) (model.Review, error) {
	var r model.Review
	err := row.Scan(&r.ID, &r.PackName, &r.Username, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// UpsertReview writes the review and refreshes the pack cache in one transaction.
func (s *Store) UpsertReview(ctx context.Context, opt repository.UpsertReviewOptions) (model.Review, error) {
	var saved model.Review
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		locked, err := lockPack(ctx, tx, opt.PackName)
		if err != nil {
			return err
		}
		if !locked {
			return repository.ErrPackMissing
		}

		saved, err = scanReview(tx.QueryRow(ctx, `
			INSERT INTO reviews (id, pack_name, username, rating, comment, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (pack_name, username)
			DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = NOW()
			RETURNING `+reviewColumns,
			uuid.NewString(), opt.PackName, opt.Username, opt.Rating, opt.Comment))
		if err != nil {
			return err
		}

		_, err = recomputeRating(ctx, tx, opt.PackName)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrPackMissing) {
			return model.Review{}, err
		}
		s.l.Errorf(ctx, "%s: %v", s.dsn("UpsertReview"), err)
		return model.Review{}, repository.ErrFailedToInsert
	}
	return saved, nil
}

func (s *Store) DeleteReview(ctx context.Context, packName, username string) (bool, error) {
	var deleted bool
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		locked, err := lockPack(ctx, tx, packName)
		if err != nil || !locked {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM reviews WHERE pack_name = $1 AND username = $2`, packName, username)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		deleted = true

		_, err = recomputeRating(ctx, tx, packName)
		return err
	})
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("DeleteReview"), err)
		return false, repository.ErrFailedToDelete
	}
	return deleted, nil
}

func (s *Store) GetReview(ctx context.Context, packName, username string) (model.Review, error) {
	r, err := scanReview(s.pool.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE pack_name = $1 AND username = $2`, packName, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Review{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetReview"), err)
		return model.Review{}, repository.ErrFailedToGet
	}
	return r, nil
}

// ListReviews pages in creation order. A non-positive limit returns every row after offset.
// The aggregate and the page share one repeatable-read snapshot.
func (s *Store) ListReviews(ctx context.Context, opt repository.ListReviewsOptions) ([]model.Review, model.RatingStats, error) {
	var limit *int
	if opt.Limit > 0 {
		limit = &opt.Limit
	}

	var (
		out   []model.Review
		stats model.RatingStats
	)
	txOpts := pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	err := pgx.BeginTxFunc(ctx, s.pool, txOpts, func(tx pgx.Tx) error {
		var err error
		if stats, err = ratingStats(ctx, tx, opt.PackName); err != nil {
			return fmt.Errorf("stats: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT `+reviewColumns+` FROM reviews
			WHERE pack_name = $1
			ORDER BY created_at, id
			LIMIT $2 OFFSET $3`, opt.PackName, limit, max(opt.Offset, 0))
		if err != nil {
			return err
		}
		defer rows.Close()

		out = []model.Review{}
		for rows.Next() {
			r, err := scanReview(rows)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			out = append(out, r)
		}
		return rows.Err()
	})
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("ListReviews"), err)
		return nil, model.RatingStats{}, repository.ErrFailedToList
	}
	return out, stats, nil
}
