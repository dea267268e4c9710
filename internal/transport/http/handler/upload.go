package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/pkg/logger"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

type UploadHandler struct {
	uploadService *app.UploadService
	userID        uint
}

func NewUploadHandler(uploadService *app.UploadService, userID uint) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, userID: userID}
}

// Upload accepts files under any multipart field name.
func (h *UploadHandler) Upload(c *gin.Context) {
	ctx := withAction(c, "Upload")
	var parts []app.FilePart
	if form, err := c.MultipartForm(); err == nil {
		parts = fileParts(form)
	}

	ctx = logger.AddFields(ctx, zap.Int("files", len(parts)))
	result, err := h.uploadService.Upload(ctx, h.userID, parts)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoFiles):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			ctxzap.Extract(ctx).Error("upload failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, "upload failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *UploadHandler) ListFiles(c *gin.Context) {
	ctx := withAction(c, "ListFiles")
	files, err := h.uploadService.ListFiles(ctx, h.userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "list files failed")
		return
	}
	response.OK(c, files)
}

func (h *UploadHandler) FileByHash(c *gin.Context) {
	ctx := withAction(c, "FileByHash")
	file, err := h.uploadService.FileByHash(ctx, c.Param("hash"))
	if err != nil {
		writeServiceError(c, err, "get file failed")
		return
	}
	response.OK(c, file)
}

func fileParts(form *multipart.Form) []app.FilePart {
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []app.FilePart
	for _, field := range fields {
		for _, fh := range form.File[field] {
			parts = append(parts, app.FilePart{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
	}
	return parts
}
