package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type ProjectElementRepository struct {
	db *gorm.DB
}

func NewProjectElementRepository(db *gorm.DB) *ProjectElementRepository {
	return &ProjectElementRepository{db: db}
}

func (r *ProjectElementRepository) Create(ctx context.Context, element *model.ProjectElement) error {
	if err := r.db.WithContext(ctx).Create(element).Error; err != nil {
		return fmt.Errorf("create project element failed: %w", err)
	}
	return nil
}

func (r *ProjectElementRepository) GetByID(ctx context.Context, id uint) (*model.ProjectElement, error) {
	var element model.ProjectElement
	if err := r.db.WithContext(ctx).First(&element, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project element failed: %w", err)
	}
	return &element, nil
}

// List returns elements ordered by id; an empty elementType matches all.
func (r *ProjectElementRepository) List(ctx context.Context, elementType string) ([]model.ProjectElement, error) {
	q := r.db.WithContext(ctx)
	if elementType != "" {
		q = q.Where("type = ?", elementType)
	}
	var elements []model.ProjectElement
	if err := q.Order("id ASC").Find(&elements).Error; err != nil {
		return nil, fmt.Errorf("list project elements failed: %w", err)
	}
	return elements, nil
}
