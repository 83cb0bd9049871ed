// internal/interfaces/http/handlers/chat_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

func chatTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "Storefront Backend"},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough-123",
			AccessTokenExpiry: time.Hour,
		},
	}

	// No store is touched; authentication rejects these requests first
	handler := NewChatHandler(nil, cfg)

	router := gin.New()
	chat := router.Group("/api/v1/chat")
	chat.Use(middleware.AuthMiddleware(cfg))
	{
		chat.GET("/messages", handler.GetMessages)
		chat.POST("/messages", handler.SendMessage)
	}
	return router
}

func TestChatFetchWithoutAuthReturns401(t *testing.T) {
	router := chatTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want %d", rec.Code, http.StatusUnauthorized)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error payload, got %v", body)
	}
	if _, ok := body["data"]; ok {
		t.Fatal("unauthenticated fetch must never include message content")
	}
}

func TestChatFetchWithInvalidTokenReturns401(t *testing.T) {
	router := chatTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat/messages", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestChatSendWithoutAuthReturns401(t *testing.T) {
	router := chatTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status mismatch: got %d want %d", rec.Code, http.StatusUnauthorized)
	}
}
