package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"agentpacks-registry/internal/auth"
	authUC "agentpacks-registry/internal/auth/usecase"
	"agentpacks-registry/internal/middleware"
	"agentpacks-registry/internal/model"
	"agentpacks-registry/internal/storage/memory"
	"agentpacks-registry/pkg/log"
	"agentpacks-registry/pkg/ratelimit"
	"agentpacks-registry/pkg/scope"
)

func setup(t *testing.T, max int) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.New()
	auc := authUC.New(log.NewNop(), store, authUC.Config{})
	out, err := auc.Issue(context.Background(), auth.IssueInput{Username: "alice", Scope: model.ScopePublish})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	limiter := ratelimit.New(ratelimit.Config{Class: ratelimit.ClassGeneral, Window: time.Minute, Max: max})
	mw := middleware.New(log.NewNop(), auc, limiter, nil)

	r := gin.New()
	r.Use(mw.RequestID(), mw.AccessLog(), mw.RateLimit())
	r.GET("/open", func(c *gin.Context) {
		c.String(http.StatusOK, log.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/private", mw.Auth(), func(c *gin.Context) {
		sc, ok := scope.GetScopeFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sc.Username)
	})
	return r, out.Token
}

func do(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r, _ := setup(t, 100)

	w := do(r, "/open", map[string]string{middleware.HeaderRequestID: "req-123"})
	if got := w.Header().Get(middleware.HeaderRequestID); got != "req-123" {
		t.Errorf("expected echoed request id, got %q", got)
	}
	if w.Body.String() != "req-123" {
		t.Errorf("request id not in context: %q", w.Body.String())
	}

	w = do(r, "/open", nil)
	if w.Header().Get(middleware.HeaderRequestID) == "" {
		t.Error("expected generated request id")
	}
}

func TestAuth(t *testing.T) {
	r, token := setup(t, 100)

	if w := do(r, "/private", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := do(r, "/private", map[string]string{"Authorization": "Bearer wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with bad token, got %d", w.Code)
	}
	w := do(r, "/private", map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK || w.Body.String() != "alice" {
		t.Errorf("expected 200 alice, got %d %q", w.Code, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	r, token := setup(t, 2)

	for i := 0; i < 2; i++ {
		w := do(r, "/open", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
		if w.Header().Get("X-RateLimit-Remaining") == "" || w.Header().Get("X-RateLimit-Limit") != "2" {
			t.Errorf("missing rate limit headers: %v", w.Header())
		}
	}

	w := do(r, "/open", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("expected remaining 0, got %q", w.Header().Get("X-RateLimit-Remaining"))
	}

	// A token holder is its own subject.
	if w := do(r, "/private", map[string]string{"Authorization": "Bearer " + token}); w.Code != http.StatusOK {
		t.Errorf("token subject should have its own budget, got %d", w.Code)
	}
}

func TestRateLimitIgnoresUnverifiedBearers(t *testing.T) {
	r, _ := setup(t, 2)

	for i := 0; i < 20; i++ {
		w := do(r, "/open", map[string]string{"Authorization": fmt.Sprintf("Bearer fake-%d", i)})
		want := http.StatusOK
		if i >= 2 {
			want = http.StatusTooManyRequests
		}
		if w.Code != want {
			t.Fatalf("request %d: expected %d, got %d", i, want, w.Code)
		}
	}
}
