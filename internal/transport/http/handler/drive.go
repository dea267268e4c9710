package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

type DriveHandler struct {
	driveService *app.DriveService
}

type SaveToDriveRequest struct {
	Content     string `json:"content"`
	AccessToken string `json:"accessToken"`
}

func NewDriveHandler(driveService *app.DriveService) *DriveHandler {
	return &DriveHandler{driveService: driveService}
}

func (h *DriveHandler) Save(c *gin.Context) {
	ctx := withAction(c, "SaveToDrive")
	var req SaveToDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing content or accessToken")
		return
	}
	if err := h.driveService.Save(ctx, req.Content, req.AccessToken); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing content or accessToken")
		return
	}
	response.OK(c, gin.H{"message": "content received"})
}
