package handler

import (
	"encoding/json"

	"github.com/deppfellow/foodgram/internal/model"
	"github.com/deppfellow/foodgram/internal/server"
	"github.com/deppfellow/foodgram/internal/service"
	"github.com/deppfellow/foodgram/internal/validation"
	"github.com/labstack/echo/v4"
)

type IngredientHandler struct {
	Handler
	ingredients *service.IngredientService
}

func NewIngredientHandler(s *server.Server, ingredients *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{Handler: NewHandler(s), ingredients: ingredients}
}

// ListIngredientsRequest filters by a case-insensitive name prefix.
type ListIngredientsRequest struct {
	Name string `query:"name" validate:"max=128"`
}

func (r *ListIngredientsRequest) Validate() error {
	return validation.Struct(r)
}

func (h *IngredientHandler) ListIngredients(c echo.Context, req *ListIngredientsRequest) ([]model.Ingredient, error) {
	return h.ingredients.List(c.Request().Context(), req.Name)
}

func (h *IngredientHandler) GetIngredient(c echo.Context, req *IDRequest) (*model.Ingredient, error) {
	return h.ingredients.Get(c.Request().Context(), req.ID)
}

type IngredientPayload struct {
	Name            string `json:"name" validate:"required,max=128"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=64"`
}

func (p IngredientPayload) ingredient(id int64) model.Ingredient {
	return model.Ingredient{ID: id, Name: p.Name, MeasurementUnit: p.MeasurementUnit}
}

type CreateIngredientRequest struct {
	IngredientPayload
}

func (r *CreateIngredientRequest) Validate() error {
	return validation.Struct(r)
}

func (h *IngredientHandler) CreateIngredient(c echo.Context, req *CreateIngredientRequest) (*model.Ingredient, error) {
	return h.ingredients.Create(c.Request().Context(), req.ingredient(0))
}

type UpdateIngredientRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,gt=0"`
	IngredientPayload
}

func (r *UpdateIngredientRequest) Validate() error {
	return validation.Struct(r)
}

func (h *IngredientHandler) UpdateIngredient(c echo.Context, req *UpdateIngredientRequest) (*model.Ingredient, error) {
	return h.ingredients.Update(c.Request().Context(), req.ingredient(req.ID))
}

func (h *IngredientHandler) DeleteIngredient(c echo.Context, req *IDRequest) error {
	return h.ingredients.Delete(c.Request().Context(), req.ID)
}

// ImportIngredientsRequest is a bare JSON array, the format of ingredients.json.
type ImportIngredientsRequest struct {
	Ingredients []IngredientPayload `json:"ingredients" validate:"required,min=1,dive"`
}

func (r *ImportIngredientsRequest) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &r.Ingredients)
}

func (r *ImportIngredientsRequest) Validate() error {
	return validation.Struct(r)
}

func (h *IngredientHandler) ImportIngredients(c echo.Context, req *ImportIngredientsRequest) (*ImportResponse, error) {
	ingredients := make([]model.Ingredient, 0, len(req.Ingredients))
	for _, p := range req.Ingredients {
		ingredients = append(ingredients, p.ingredient(0))
	}

	inserted, err := h.ingredients.Import(c.Request().Context(), ingredients)
	if err != nil {
		return nil, err
	}
	return &ImportResponse{Received: len(ingredients), Inserted: inserted}, nil
}
