package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session *model.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session failed: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session failed: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("list sessions failed: %w", err)
	}
	return sessions, nil
}

// End stamps the end time and summary. It reports whether a row was updated.
func (r *SessionRepository) End(ctx context.Context, id uint, summary string, endedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{"end_time": endedAt, "summary": summary})
	if result.Error != nil {
		return false, fmt.Errorf("end session failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
