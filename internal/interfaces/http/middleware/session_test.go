// internal/interfaces/http/middleware/session_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func TestSessionMiddlewareGeneratesID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/", func(c *gin.Context) {
		sessionID, ok := GetSessionIDFromContext(c)
		if !ok {
			t.Fatal("session ID missing from context")
		}
		c.String(http.StatusOK, sessionID)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	echoed := rec.Header().Get("X-Session-ID")
	if echoed == "" {
		t.Fatal("generated session ID should be echoed in the response header")
	}
	if _, err := uuid.Parse(echoed); err != nil {
		t.Fatalf("generated session ID is not a UUID: %v", err)
	}
	if rec.Body.String() != echoed {
		t.Fatal("context session ID should match the response header")
	}
}

func TestSessionMiddlewareKeepsClientID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(SessionMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	clientID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-ID", clientID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Session-ID"); got != clientID {
		t.Fatalf("client session ID should be preserved: got %q want %q", got, clientID)
	}
}
