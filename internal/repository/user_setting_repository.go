package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type UserSettingRepository struct {
	db *gorm.DB
}

func NewUserSettingRepository(db *gorm.DB) *UserSettingRepository {
	return &UserSettingRepository{db: db}
}

// Upsert overwrites the first row for (userID, key) or inserts one. The table
// has no unique constraint, so this is best effort under concurrent writers.
func (r *UserSettingRepository) Upsert(ctx context.Context, userID uint, key, value string) (*model.UserSetting, error) {
	existing, err := r.Get(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Value = value
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, fmt.Errorf("update user setting failed: %w", err)
		}
		return existing, nil
	}

	setting := &model.UserSetting{UserID: userID, Key: key, Value: value}
	if err := r.db.WithContext(ctx).Create(setting).Error; err != nil {
		return nil, fmt.Errorf("create user setting failed: %w", err)
	}
	return setting, nil
}

func (r *UserSettingRepository) Get(ctx context.Context, userID uint, key string) (*model.UserSetting, error) {
	var setting model.UserSetting
	err := r.db.WithContext(ctx).
		Where(&model.UserSetting{UserID: userID, Key: key}).
		Order("id ASC").
		First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user setting failed: %w", err)
	}
	return &setting, nil
}

func (r *UserSettingRepository) ListByUserID(ctx context.Context, userID uint) ([]model.UserSetting, error) {
	var settings []model.UserSetting
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("list user settings failed: %w", err)
	}
	return settings, nil
}
