package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/R3MiX9002/my-gemini-app/internal/app"
	"github.com/R3MiX9002/my-gemini-app/internal/transport/http/response"
)

type GenerateHandler struct {
	chatService *app.ChatService
}

type GenerateRequest struct {
	Model    string          `json:"model"`
	Contents json.RawMessage `json:"contents"`
}

type streamFrame struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func NewGenerateHandler(chatService *app.ChatService) *GenerateHandler {
	return &GenerateHandler{chatService: chatService}
}

// Generate relays the model's answer as server-sent events, one
// data: {"text": ...} frame per chunk.
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := withAction(c, "Generate")
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	chunks, err := h.chatService.Stream(ctx, app.GenerateInput{
		Model:    req.Model,
		Contents: req.Contents,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrLLMNotConfigured):
			response.Error(c, http.StatusServiceUnavailable, app.LLMSetupMessage)
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			ctxzap.Extract(ctx).Error("open llm stream failed", zap.Error(err))
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, http.StatusInternalServerError, "stream not supported")
		return
	}
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	for chunk := range chunks {
		frame := streamFrame{Text: chunk.Text}
		if chunk.Err != nil {
			ctxzap.Extract(ctx).Warn("llm stream broke off", zap.Error(chunk.Err))
			frame = streamFrame{Error: chunk.Err.Error()}
		}
		if err := writeFrame(c, flusher, frame); err != nil {
			return
		}
	}
}

func writeFrame(c *gin.Context, flusher http.Flusher, frame streamFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
