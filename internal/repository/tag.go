package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/jackc/pgx/v5"
)

// TagRepository persists tags.
type TagRepository struct {
	db DB
}

func NewTagRepository(db DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	tags, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Tag])
	if err != nil {
		return nil, fmt.Errorf("collect tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM tags WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	tag, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Tag])
	if err != nil {
		return nil, wrapNoRows("tags", err)
	}
	return tag, nil
}

func (r *TagRepository) CreateTag(ctx context.Context, tag *model.Tag) error {
	err := r.db.QueryRow(ctx, `INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id`, tag.Name, tag.Slug).Scan(&tag.ID)
	if err != nil {
		return fmt.Errorf("insert tag: %w", err)
	}
	return nil
}

func (r *TagRepository) UpdateTag(ctx context.Context, tag *model.Tag) error {
	ct, err := r.db.Exec(ctx, `UPDATE tags SET name = $2, slug = $3 WHERE id = $1`, tag.ID, tag.Name, tag.Slug)
	if err != nil {
		return fmt.Errorf("update tag: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("tags", pgx.ErrNoRows)
	}
	return nil
}

func (r *TagRepository) DeleteTag(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return notFound("tags", pgx.ErrNoRows)
	}
	return nil
}

// ExistingTagIDs returns the subset of ids that exist.
func (r *TagRepository) ExistingTagIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM tags WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

// BulkCreateTags inserts tags, skipping any whose name or slug is taken.
// It returns how many rows were actually inserted.
func (r *TagRepository) BulkCreateTags(ctx context.Context, tags []model.Tag) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}

	names := make([]string, len(tags))
	slugs := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
		slugs[i] = t.Slug
	}

	ct, err := r.db.Exec(ctx, `
		INSERT INTO tags (name, slug)
		SELECT * FROM UNNEST($1::text[], $2::text[])
		ON CONFLICT DO NOTHING`, names, slugs)
	if err != nil {
		return 0, fmt.Errorf("bulk insert tags: %w", err)
	}
	return int(ct.RowsAffected()), nil
}
