package service

import (
	"context"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
)

type TagService struct {
	server *server.Server
	tags   TagStore
}

func NewTagService(s *server.Server, stores Stores) *TagService {
	return &TagService{server: s, tags: stores.Tags}
}

func (s *TagService) List(ctx context.Context) ([]model.Tag, error) {
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []model.Tag{}
	}
	return tags, nil
}

func (s *TagService) Get(ctx context.Context, id int64) (*model.Tag, error) {
	return s.tags.GetTag(ctx, id)
}

func (s *TagService) Create(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	if err := s.tags.CreateTag(ctx, &tag); err != nil {
		return nil, err
	}
	s.server.Logger.Info().Int64("tag_id", tag.ID).Str("slug", tag.Slug).Msg("tag created")
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, tag model.Tag) (*model.Tag, error) {
	if err := s.tags.UpdateTag(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Delete(ctx context.Context, id int64) error {
	return s.tags.DeleteTag(ctx, id)
}

// Import inserts tags, ignoring ones whose name or slug exists.
// It returns how many were inserted.
func (s *TagService) Import(ctx context.Context, tags []model.Tag) (int, error) {
	return s.tags.BulkCreateTags(ctx, tags)
}
