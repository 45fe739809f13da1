package handler

import (
	"encoding/json"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

type TagHandler struct {
	Handler
	tags *service.TagService
}

func NewTagHandler(s *server.Server, tags *service.TagService) *TagHandler {
	return &TagHandler{Handler: NewHandler(s), tags: tags}
}

func (h *TagHandler) ListTags(c echo.Context, _ *EmptyRequest) ([]model.Tag, error) {
	return h.tags.List(c.Request().Context())
}

func (h *TagHandler) GetTag(c echo.Context, req *IDRequest) (*model.Tag, error) {
	return h.tags.Get(c.Request().Context(), req.ID)
}

type TagPayload struct {
	Name string `json:"name" validate:"required,max=32"`
	Slug string `json:"slug" validate:"required,max=32,slug"`
}

func (p TagPayload) tag(id int64) model.Tag {
	return model.Tag{ID: id, Name: p.Name, Slug: p.Slug}
}

type CreateTagRequest struct {
	TagPayload
}

func (r *CreateTagRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TagHandler) CreateTag(c echo.Context, req *CreateTagRequest) (*model.Tag, error) {
	return h.tags.Create(c.Request().Context(), req.tag(0))
}

type UpdateTagRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	TagPayload
}

func (r *UpdateTagRequest) Validate() error {
	return validation.Struct(r)
}

func (h *TagHandler) UpdateTag(c echo.Context, req *UpdateTagRequest) (*model.Tag, error) {
	return h.tags.Update(c.Request().Context(), req.tag(req.ID))
}

func (h *TagHandler) DeleteTag(c echo.Context, req *IDRequest) error {
	return h.tags.Delete(c.Request().Context(), req.ID)
}

// ImportTagsRequest is a bare JSON array of tags, the format of tags.json.
type ImportTagsRequest struct {
	Tags []TagPayload `json:"tags" validate:"required,min=1,dive"`
}

func (r *ImportTagsRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Tags)
}

func (r *ImportTagsRequest) Validate() error {
	return validation.Struct(r)
}

// ImportResponse reports how many rows an import inserted.
type ImportResponse struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
}

func (h *TagHandler) ImportTags(c echo.Context, req *ImportTagsRequest) (*ImportResponse, error) {
	tags := make([]model.Tag, 0, len(req.Tags))
	for _, p := range req.Tags {
		tags = append(tags, p.tag(0))
	}

	inserted, err := h.tags.Import(c.Request().Context(), tags)
	if err != nil {
		return nil, err
	}
	return &ImportResponse{Received: len(tags), Inserted: inserted}, nil
}
