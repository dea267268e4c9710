package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(RequestLogger(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		ctxzap.Extract(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get(RequestIDHeader) != "req-1" {
		t.Fatalf("%s = %q, want req-1", RequestIDHeader, rec.Header().Get(RequestIDHeader))
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("log entries = %d, want 3", len(entries))
	}
	for _, e := range entries {
		if e.ContextMap()["request_id"] != "req-1" {
			t.Fatalf("entry %q missing request_id: %v", e.Message, e.ContextMap())
		}
	}
	if got := entries[2].ContextMap()["status"]; got != int64(http.StatusNoContent) {
		t.Fatalf("finish status = %v, want 204", got)
	}
}

func TestRequestLogger_GeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger(zap.NewNop()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("generated request id = %q, want uuid", rec.Header().Get(RequestIDHeader))
	}
}
