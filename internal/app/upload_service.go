package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/model"
	"github.com/R3MiX9002/my-gemini-app/internal/repository"
)

// FilePart is one file of a multipart upload.
type FilePart struct {
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

type UploadedFileInfo struct {
	Filename  string `json:"filename"`
	Hash      string `json:"hash"`
	SavedPath string `json:"saved_path"`
}

type UploadResult struct {
	Message       string             `json:"message"`
	UploadedFiles []UploadedFileInfo `json:"uploaded_files"`
}

type UploadEventPublisher interface {
	PublishFileUploaded(ctx context.Context, event model.FileUploadedEvent) error
}

type UploadService struct {
	fileRepo  *repository.UploadedFileRepository
	dir       string
	publisher UploadEventPublisher
	now       func() time.Time
}

// NewUploadService stores files under dir. publisher may be nil.
func NewUploadService(fileRepo *repository.UploadedFileRepository, dir string, publisher UploadEventPublisher) *UploadService {
	return &UploadService{
		fileRepo:  fileRepo,
		dir:       dir,
		publisher: publisher,
		now:       time.Now,
	}
}

// MetadataHash derives the stored hash from file metadata, not content.
func MetadataHash(filename string, size int64, contentType string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s-%d-%s", filename, size, contentType)))
	return hex.EncodeToString(sum[:])
}

// Upload writes every part to disk and records it in one transaction. If any
// part fails, the rows are rolled back and files written so far are removed.
func (s *UploadService) Upload(ctx context.Context, userID uint, parts []FilePart) (*UploadResult, error) {
	if len(parts) == 0 {
		return nil, ErrNoFiles
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory failed: %w", err)
	}

	logger := ctxzap.Extract(ctx)
	var (
		written []string
		stored  []model.UploadedFile
	)
	err := s.fileRepo.Transaction(ctx, func(tx *repository.UploadedFileRepository) error {
		for _, part := range parts {
			file, err := s.save(part)
			if file != nil {
				written = append(written, file.SavedPath)
			}
			if err != nil {
				return err
			}
			file.UserID = userID
			if err := tx.Create(ctx, file); err != nil {
				return err
			}
			stored = append(stored, *file)
		}
		return nil
	})
	if err != nil {
		for _, path := range written {
			if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn("remove partial upload failed", zap.String("path", path), zap.Error(rmErr))
			}
		}
		return nil, err
	}

	result := &UploadResult{
		Message:       "Files uploaded successfully",
		UploadedFiles: make([]UploadedFileInfo, 0, len(stored)),
	}
	for _, f := range stored {
		result.UploadedFiles = append(result.UploadedFiles, UploadedFileInfo{
			Filename:  f.OriginalName,
			Hash:      f.Hash,
			SavedPath: f.SavedPath,
		})
		s.publish(ctx, f)
	}
	logger.Info("files uploaded", zap.Int("count", len(stored)), zap.Uint("user_id", userID))
	return result, nil
}

func (s *UploadService) ListFiles(ctx context.Context, userID uint) ([]model.UploadedFile, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.fileRepo.ListByUserID(ctx, userID)
}

// FileByHash returns the newest upload whose metadata hash matches.
func (s *UploadService) FileByHash(ctx context.Context, hash string) (*model.UploadedFile, error) {
	if hash == "" {
		return nil, ErrInvalidInput
	}
	file, err := s.fileRepo.GetByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// save copies one part to disk. The returned file is non-nil once the
// destination exists, even when copying fails.
func (s *UploadService) save(part FilePart) (*model.UploadedFile, error) {
	name := filepath.Base(strings.ReplaceAll(part.Filename, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return nil, fmt.Errorf("%w: bad filename %q", ErrInvalidInput, part.Filename)
	}

	src, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload part failed: %w", err)
	}
	defer src.Close()

	savedPath := filepath.Join(s.dir, name)
	dst, err := os.Create(savedPath)
	if err != nil {
		return nil, fmt.Errorf("create upload file failed: %w", err)
	}
	file := &model.UploadedFile{
		OriginalName: name,
		SavedPath:    savedPath,
		MimeType:     part.ContentType,
		UploadTime:   s.now(),
	}

	size, err := io.Copy(dst, src)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return file, fmt.Errorf("write upload file failed: %w", err)
	}

	file.Size = size
	file.Hash = MetadataHash(name, size, part.ContentType)
	return file, nil
}

func (s *UploadService) publish(ctx context.Context, f model.UploadedFile) {
	if s.publisher == nil {
		return
	}
	event := model.FileUploadedEvent{
		FileID:    f.ID,
		UserID:    f.UserID,
		Filename:  f.OriginalName,
		SavedPath: f.SavedPath,
		MimeType:  f.MimeType,
		Size:      f.Size,
		Hash:      f.Hash,
		At:        f.UploadTime,
	}
	if err := s.publisher.PublishFileUploaded(ctx, event); err != nil {
		ctxzap.Extract(ctx).Warn("publish upload event failed", zap.Uint("file_id", f.ID), zap.Error(err))
	}
}
