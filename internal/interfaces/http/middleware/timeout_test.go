// internal/interfaces/http/middleware/timeout_test.go
package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
)

func timeoutTestRouter(timeout time.Duration, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{RequestTimeout: timeout},
	}

	router := gin.New()
	router.Use(Timeout(cfg))
	router.GET("/", handler)
	return router
}

func TestTimeoutOverrunReturns408(t *testing.T) {
	router := timeoutTestRouter(20*time.Millisecond, func(c *gin.Context) {
		// Wait out the deadline without writing, as a stalled
		// downstream call would
		<-c.Request.Context().Done()
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestTimeout {
		t.Fatalf("status mismatch: got %d want %d", rec.Code, http.StatusRequestTimeout)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error payload, got %v", body)
	}
}

func TestTimeoutFastRequestPassesThrough(t *testing.T) {
	router := timeoutTestRouter(time.Second, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status mismatch: got %d want %d", rec.Code, http.StatusOK)
	}
}
