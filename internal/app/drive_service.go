package app

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// DriveService accepts content destined for Google Drive. Nothing is stored
// or forwarded yet.
type DriveService struct{}

func NewDriveService() *DriveService {
	return &DriveService{}
}

func (s *DriveService) Save(ctx context.Context, content, accessToken string) error {
	if content == "" || strings.TrimSpace(accessToken) == "" {
		return ErrInvalidInput
	}
	ctxzap.Extract(ctx).Info("drive content received",
		zap.Int("content_length", len(content)),
		zap.String("access_token", maskSecret(accessToken)),
	)
	return nil
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}
