package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

type ContextHandler struct {
	contextService *app.ContextService
	userID         uint
}

type EndSessionRequest struct {
	Summary string `json:"summary"`
}

type AddContextPointRequest struct {
	Type            string `json:"type" binding:"required"`
	Content         string `json:"content"`
	RelatedElements string `json:"related_elements"`
}

type AddElementRequest struct {
	Path    string `json:"path" binding:"required"`
	Type    string `json:"type" binding:"required"`
	Summary string `json:"summary"`
}

type AddRelationshipRequest struct {
	FromElementID uint   `json:"from_element_id" binding:"required,gt=0"`
	ToElementID   uint   `json:"to_element_id" binding:"required,gt=0"`
	Type          string `json:"type"`
}

type PutSettingRequest struct {
	Value string `json:"value"`
}

func NewContextHandler(contextService *app.ContextService, userID uint) *ContextHandler {
	return &ContextHandler{contextService: contextService, userID: userID}
}

func (h *ContextHandler) GetUser(c *gin.Context) {
	ctx := withAction(c, "GetUser")
	user, err := h.contextService.GetUser(ctx, h.userID)
	if err != nil {
		writeServiceError(c, err, "get user failed")
		return
	}
	response.OK(c, user)
}

func (h *ContextHandler) StartSession(c *gin.Context) {
	ctx := withAction(c, "StartSession")
	session, err := h.contextService.StartSession(ctx, h.userID)
	if err != nil {
		writeServiceError(c, err, "start session failed")
		return
	}
	response.Created(c, session)
}

func (h *ContextHandler) ListSessions(c *gin.Context) {
	ctx := withAction(c, "ListSessions")
	sessions, err := h.contextService.ListSessions(ctx, h.userID)
	if err != nil {
		writeServiceError(c, err, "list sessions failed")
		return
	}
	response.OK(c, sessions)
}

func (h *ContextHandler) GetSession(c *gin.Context) {
	ctx := withAction(c, "GetSession")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	session, err := h.contextService.GetSession(ctx, id)
	if err != nil {
		writeServiceError(c, err, "get session failed")
		return
	}
	response.OK(c, session)
}

func (h *ContextHandler) EndSession(c *gin.Context) {
	ctx := withAction(c, "EndSession")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req EndSessionRequest
	// an empty body ends the session without a summary
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	session, err := h.contextService.EndSession(ctx, id, req.Summary)
	if err != nil {
		writeServiceError(c, err, "end session failed")
		return
	}
	response.OK(c, session)
}

func (h *ContextHandler) AddContextPoint(c *gin.Context) {
	ctx := withAction(c, "AddContextPoint")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req AddContextPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	point, err := h.contextService.AddContextPoint(ctx, app.AddContextPointInput{
		SessionID:       id,
		Type:            req.Type,
		Content:         req.Content,
		RelatedElements: req.RelatedElements,
	})
	if err != nil {
		writeServiceError(c, err, "add context point failed")
		return
	}
	response.Created(c, point)
}

func (h *ContextHandler) ListContextPoints(c *gin.Context) {
	ctx := withAction(c, "ListContextPoints")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	points, err := h.contextService.ListContextPoints(ctx, id)
	if err != nil {
		writeServiceError(c, err, "list context points failed")
		return
	}
	response.OK(c, points)
}

func (h *ContextHandler) AddElement(c *gin.Context) {
	ctx := withAction(c, "AddElement")
	var req AddElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	element, err := h.contextService.AddElement(ctx, app.AddElementInput{
		Path:    req.Path,
		Type:    req.Type,
		Summary: req.Summary,
	})
	if err != nil {
		writeServiceError(c, err, "add element failed")
		return
	}
	response.Created(c, element)
}

func (h *ContextHandler) GetElement(c *gin.Context) {
	ctx := withAction(c, "GetElement")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	element, err := h.contextService.GetElement(ctx, id)
	if err != nil {
		writeServiceError(c, err, "get element failed")
		return
	}
	response.OK(c, element)
}

func (h *ContextHandler) ListElements(c *gin.Context) {
	ctx := withAction(c, "ListElements")
	elements, err := h.contextService.ListElements(ctx, c.Query("type"))
	if err != nil {
		writeServiceError(c, err, "list elements failed")
		return
	}
	response.OK(c, elements)
}

func (h *ContextHandler) AddRelationship(c *gin.Context) {
	ctx := withAction(c, "AddRelationship")
	var req AddRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	rel, err := h.contextService.AddRelationship(ctx, app.AddRelationshipInput{
		FromElementID: req.FromElementID,
		ToElementID:   req.ToElementID,
		Type:          req.Type,
	})
	if err != nil {
		writeServiceError(c, err, "add relationship failed")
		return
	}
	response.Created(c, rel)
}

func (h *ContextHandler) ListRelationships(c *gin.Context) {
	ctx := withAction(c, "ListRelationships")
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rels, err := h.contextService.ListRelationships(ctx, id)
	if err != nil {
		writeServiceError(c, err, "list relationships failed")
		return
	}
	response.OK(c, rels)
}

func (h *ContextHandler) ListSettings(c *gin.Context) {
	ctx := withAction(c, "ListSettings")
	settings, err := h.contextService.ListSettings(ctx, h.userID)
	if err != nil {
		writeServiceError(c, err, "list settings failed")
		return
	}
	response.OK(c, settings)
}

func (h *ContextHandler) GetSetting(c *gin.Context) {
	ctx := withAction(c, "GetSetting")
	setting, err := h.contextService.GetSetting(ctx, h.userID, c.Param("key"))
	if err != nil {
		writeServiceError(c, err, "get setting failed")
		return
	}
	response.OK(c, setting)
}

func (h *ContextHandler) PutSetting(c *gin.Context) {
	ctx := withAction(c, "PutSetting")
	var req PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	setting, err := h.contextService.PutSetting(ctx, h.userID, c.Param("key"), req.Value)
	if err != nil {
		writeServiceError(c, err, "put setting failed")
		return
	}
	response.OK(c, setting)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrSessionNotFound),
		errors.Is(err, app.ErrSettingNotFound),
		errors.Is(err, app.ErrElementNotFound),
		errors.Is(err, app.ErrFileNotFound),
		errors.Is(err, app.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	default:
		ctxzap.Extract(c.Request.Context()).Error(fallback, zap.Error(err))
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}
