package postgre

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/pack/repository"
)

var _ repository.Repository = (*Store)(nil)

const packColumns = `name, display_name, description, author_name, latest_version,
	deprecated, deprecation_message, average_rating, review_count, created_at, updated_at`

const versionColumns = `pack_name, version, manifest, tarball_ref, integrity,
	size_bytes, yanked, published_by, published_at`

func scanPack(row pgx.Row) (model.Pack, error) {
	var p model.Pack
	err := row.Scan(
		&p.Name, &p.DisplayName, &p.Description, &p.AuthorName, &p.LatestVersion,
		&p.Deprecated, &p.DeprecationMessage, &p.AverageRating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func scanVersion(row pgx.Row) (model.PackVersion, error) {
	var (
		v        model.PackVersion
		manifest []byte
	)
	err := row.Scan(
		&v.PackName, &v.Version, &manifest, &v.TarballRef, &v.Integrity,
		&v.SizeBytes, &v.Yanked, &v.PublishedBy, &v.PublishedAt,
	)
	v.Manifest = manifest
	return v, err
}

func (s *Store) GetPack(ctx context.Context, name string) (model.Pack, error) {
	p, err := scanPack(s.pool.QueryRow(ctx, `SELECT `+packColumns+` FROM packs WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Pack{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetPack"), err)
		return model.Pack{}, repository.ErrFailedToGet
	}
	return p, nil
}

// UpsertFromPublish creates the pack on first publish and inserts the version in one transaction.
// The pack row is locked so concurrent publishes of the same name serialise on it.
func (s *Store) UpsertFromPublish(ctx context.Context, opt repository.UpsertFromPublishOptions) (model.Pack, model.PackVersion, error) {
	var (
		p model.Pack
		v model.PackVersion
	)
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		if _, err := tx.Exec(ctx, `
			INSERT INTO packs (name, author_name, created_at, updated_at)
			VALUES ($1, $2, $3, $3)
			ON CONFLICT (name) DO NOTHING`, opt.Name, opt.Author, now); err != nil {
			return err
		}

		current, err := scanPack(tx.QueryRow(ctx, `SELECT `+packColumns+` FROM packs WHERE name = $1 FOR UPDATE`, opt.Name))
		if err != nil {
			return err
		}
		if current.AuthorName != opt.Author {
			return repository.ErrAuthorMismatch
		}

		v, err = scanVersion(tx.QueryRow(ctx, `
			INSERT INTO pack_versions (pack_name, version, manifest, tarball_ref, integrity, size_bytes, published_by, published_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (pack_name, version) DO NOTHING
			RETURNING `+versionColumns,
			opt.Name, opt.Version, nullableJSON(opt.Manifest), opt.TarballRef, opt.Integrity, opt.SizeBytes, opt.Author, now))
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrVersionExists
		}
		if err != nil {
			return err
		}

		displayName, description, latest := current.DisplayName, current.Description, current.LatestVersion
		if opt.DisplayName != "" {
			displayName = opt.DisplayName
		}
		if opt.Description != "" {
			description = opt.Description
		}
		if current.ShouldPromote(opt.Version) {
			latest = opt.Version
		}

		p, err = scanPack(tx.QueryRow(ctx, `
			UPDATE packs SET display_name = $2, description = $3, latest_version = $4, updated_at = $5
			WHERE name = $1
			RETURNING `+packColumns, opt.Name, displayName, description, latest, now))
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrAuthorMismatch) || errors.Is(err, repository.ErrVersionExists) {
			return model.Pack{}, model.PackVersion{}, err
		}
		s.l.Errorf(ctx, "%s: %v", s.dsn("UpsertFromPublish"), err)
		return model.Pack{}, model.PackVersion{}, repository.ErrFailedToInsert
	}
	return p, v, nil
}

// SetDeprecation returns the zero value when the pack does not exist.
func (s *Store) SetDeprecation(ctx context.Context, opt repository.SetDeprecationOptions) (model.Pack, error) {
	var msg *string
	if opt.Deprecated {
		msg = opt.Message
	}

	p, err := scanPack(s.pool.QueryRow(ctx, `
		UPDATE packs SET deprecated = $2, deprecation_message = $3, updated_at = NOW()
		WHERE name = $1
		RETURNING `+packColumns, opt.Name, opt.Deprecated, msg))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Pack{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("SetDeprecation"), err)
		return model.Pack{}, repository.ErrFailedToUpdate
	}
	return p, nil
}

func (s *Store) RecomputeRatingCache(ctx context.Context, name string) (model.Pack, error) {
	var p model.Pack
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		locked, err := lockPack(ctx, tx, name)
		if err != nil || !locked {
			return err
		}
		p, err = recomputeRating(ctx, tx, name)
		return err
	})
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("RecomputeRatingCache"), err)
		return model.Pack{}, repository.ErrFailedToUpdate
	}
	return p, nil
}

// lockPack takes the row lock that serialises review writes for one pack.
func lockPack(ctx context.Context, tx pgx.Tx, name string) (bool, error) {
	var one int
	err := tx.QueryRow(ctx, `SELECT 1 FROM packs WHERE name = $1 FOR UPDATE`, name).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func ratingStats(ctx context.Context, q querier, name string) (model.RatingStats, error) {
	var stats model.RatingStats
	err := q.QueryRow(ctx, `SELECT COUNT(*), COALESCE(SUM(rating), 0) FROM reviews WHERE pack_name = $1`, name).
		Scan(&stats.Count, &stats.Sum)
	return stats, err
}

// recomputeRating rewrites the cached aggregate from the current review set.
func recomputeRating(ctx context.Context, q querier, name string) (model.Pack, error) {
	stats, err := ratingStats(ctx, q, name)
	if err != nil {
		return model.Pack{}, err
	}
	return scanPack(q.QueryRow(ctx, `
		UPDATE packs SET average_rating = $2, review_count = $3
		WHERE name = $1
		RETURNING `+packColumns, name, stats.CachedAverage(), stats.Count))
}

func (s *Store) GetVersion(ctx context.Context, packName, version string) (model.PackVersion, error) {
	v, err := scanVersion(s.pool.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM pack_versions WHERE pack_name = $1 AND version = $2`, packName, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PackVersion{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("GetVersion"), err)
		return model.PackVersion{}, repository.ErrFailedToGet
	}
	return v, nil
}

// ListVersions returns versions newest first.
func (s *Store) ListVersions(ctx context.Context, packName string) ([]model.PackVersion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+versionColumns+` FROM pack_versions WHERE pack_name = $1 ORDER BY published_at DESC, version DESC`, packName)
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("ListVersions"), err)
		return nil, repository.ErrFailedToList
	}
	defer rows.Close()

	out := []model.PackVersion{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			s.l.Errorf(ctx, "%s scan: %v", s.dsn("ListVersions"), err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		s.l.Errorf(ctx, "%s rows: %v", s.dsn("ListVersions"), err)
		return nil, repository.ErrFailedToList
	}
	return out, nil
}

func (s *Store) YankVersion(ctx context.Context, packName, version string) (model.PackVersion, error) {
	v, err := scanVersion(s.pool.QueryRow(ctx, `
		UPDATE pack_versions SET yanked = TRUE
		WHERE pack_name = $1 AND version = $2
		RETURNING `+versionColumns, packName, version))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PackVersion{}, nil
	}
	if err != nil {
		s.l.Errorf(ctx, "%s: %v", s.dsn("YankVersion"), err)
		return model.PackVersion{}, repository.ErrFailedToUpdate
	}
	return v, nil
}
