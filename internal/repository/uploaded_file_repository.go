package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
)

type UploadedFileRepository struct {
	db *gorm.DB
}

func NewUploadedFileRepository(db *gorm.DB) *UploadedFileRepository {
	return &UploadedFileRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *UploadedFileRepository) WithTx(tx *gorm.DB) *UploadedFileRepository {
	return &UploadedFileRepository{db: tx}
}

// Transaction runs fn inside a database transaction. fn receives a
// repository bound to that transaction; returning an error rolls it back.
func (r *UploadedFileRepository) Transaction(ctx context.Context, fn func(*UploadedFileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}

func (r *UploadedFileRepository) Create(ctx context.Context, file *model.UploadedFile) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("create uploaded file failed: %w", err)
	}
	return nil
}

func (r *UploadedFileRepository) ListByUserID(ctx context.Context, userID uint) ([]model.UploadedFile, error) {
	var files []model.UploadedFile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("upload_time DESC, id DESC").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("list uploaded files failed: %w", err)
	}
	return files, nil
}

// GetByHash returns the most recent file with the given metadata hash.
func (r *UploadedFileRepository) GetByHash(ctx context.Context, hash string) (*model.UploadedFile, error) {
	var file model.UploadedFile
	if err := r.db.WithContext(ctx).Where("hash = ?", hash).Order("id DESC").First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uploaded file by hash failed: %w", err)
	}
	return &file, nil
}

func (r *UploadedFileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.UploadedFile{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count uploaded files failed: %w", err)
	}
	return count, nil
}
