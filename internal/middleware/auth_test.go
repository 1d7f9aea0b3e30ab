package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/security"
)

const testSecret = "middleware-test-secret-with-length"

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": MustUserID(c)})
	})
	return r
}

func TestRequireAuth(t *testing.T) {
	token, err := security.GenerateJWT(42, "alice@example.com", testSecret)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}
	badToken, _ := security.GenerateJWT(42, "alice@example.com", "another-secret-entirely-here")

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"Valid token", "Bearer " + token, http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"No bearer prefix", token, http.StatusUnauthorized},
		{"Wrong signing key", "Bearer " + badToken, http.StatusUnauthorized},
		{"Garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
	}

	router := authRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, 3, time.Minute)

	if !rl.CheckUserLimit(1) || !rl.CheckUserLimit(1) {
		t.Fatal("first two user requests must pass")
	}
	if rl.CheckUserLimit(1) {
		t.Error("third user request must be limited")
	}
	if !rl.CheckUserLimit(2) {
		t.Error("other users are unaffected")
	}

	for i := 0; i < 3; i++ {
		if !rl.CheckIPLimit("10.0.0.1") {
			t.Fatalf("ip request %d must pass", i+1)
		}
	}
	if rl.CheckIPLimit("10.0.0.1") {
		t.Error("fourth ip request must be limited")
	}

	rl.Reset()
	if !rl.CheckUserLimit(1) {
		t.Error("reset must clear user windows")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(10, 1, time.Minute)

	r := gin.New()
	r.GET("/ping", rl.Limit(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", second.Code)
	}
}
