package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type RelationshipRepository struct {
	db *gorm.DB
}

func NewRelationshipRepository(db *gorm.DB) *RelationshipRepository {
	return &RelationshipRepository{db: db}
}

func (r *RelationshipRepository) Create(ctx context.Context, rel *model.Relationship) error {
	if err := r.db.WithContext(ctx).Create(rel).Error; err != nil {
		return fmt.Errorf("create relationship failed: %w", err)
	}
	return nil
}

// ListByElementID returns edges leaving or entering elementID.
func (r *RelationshipRepository) ListByElementID(ctx context.Context, elementID uint) ([]model.Relationship, error) {
	var rels []model.Relationship
	if err := r.db.WithContext(ctx).
		Where("from_element_id = ? OR to_element_id = ?", elementID, elementID).
		Order("id ASC").
		Find(&rels).Error; err != nil {
		return nil, fmt.Errorf("list relationships failed: %w", err)
	}
	return rels, nil
}
