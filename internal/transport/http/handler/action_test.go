package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/R3MiX9002/my-gemini-app/internal/ai"
	"github.com/R3MiX9002/my-gemini-app/internal/app"
)

func TestGenerate_LogsCarryAction(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	streamer := scriptedStreamer{chunks: []ai.Chunk{{Err: errors.New("upstream reset")}}}
	h := NewGenerateHandler(app.NewChatService(streamer, ai.ChatConfig{APIKey: "key", Model: "m"}, 0))
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(ctxzap.ToContext(c.Request.Context(), zap.New(core)))
		c.Next()
	})
	router.POST("/api/generate", h.Generate)

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"contents":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("llm stream broke off").All()
	if len(entries) != 1 {
		t.Fatalf("got %d stream warnings, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["action"]; got != "Generate" {
		t.Errorf("action = %v, want Generate", got)
	}
}
