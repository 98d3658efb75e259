package service

import (
	"context"

	"habit-planner/internal/model"
)

// CategoryService provides helpers around per-user categories.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context, userID uint) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

// Ensure returns the category with the given name, creating it with
// the color when it does not exist yet.
func (s *CategoryService) Ensure(ctx context.Context, userID uint, name, color string) (*model.Category, error) {
	return s.categories.GetOrCreate(ctx, userID, name, color)
}

func (s *CategoryService) Delete(ctx context.Context, userID, categoryID uint) error {
	return s.categories.Delete(ctx, userID, categoryID)
}
