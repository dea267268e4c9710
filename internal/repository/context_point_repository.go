package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type ContextPointRepository struct {
	db *gorm.DB
}

func NewContextPointRepository(db *gorm.DB) *ContextPointRepository {
	return &ContextPointRepository{db: db}
}

func (r *ContextPointRepository) Create(ctx context.Context, point *model.ContextPoint) error {
	if err := r.db.WithContext(ctx).Create(point).Error; err != nil {
		return fmt.Errorf("create context point failed: %w", err)
	}
	return nil
}

func (r *ContextPointRepository) ListBySessionID(ctx context.Context, sessionID uint) ([]model.ContextPoint, error) {
	var points []model.ContextPoint
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC, id ASC").
		Find(&points).Error; err != nil {
		return nil, fmt.Errorf("list context points failed: %w", err)
	}
	return points, nil
}
