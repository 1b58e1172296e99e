package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

type stubIssuer struct {
	adapter.TokenIssuer
	role entity.UserRole
}

func (s stubIssuer) Authenticate(_ context.Context, token string) (*adapter.Identity, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &adapter.Identity{UserID: uuid.New(), Email: "a@clinic.org", Role: s.role}, nil
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		c.String(http.StatusOK, string(identity.Role))
	})
	engine.GET("/", handlers...)
	return engine
}

func get(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	engine := newEngine(NewAuthMiddleware(stubIssuer{role: entity.UserRoleSupervisor}).Authenticate())

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "AUTH-030003"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "AUTH-030001"},
		{"empty token", "Bearer ", http.StatusUnauthorized, "AUTH-030003"},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, "AUTH-030001"},
		{"valid token", "Bearer good", http.StatusOK, "supervisor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(engine, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestRequireRole(t *testing.T) {
	allowed := RequireRole(entity.UserRoleSupervisor, entity.UserRoleAdmin)

	dataEntry := NewAuthMiddleware(stubIssuer{role: entity.UserRoleDataEntry})
	rec := get(newEngine(dataEntry.Authenticate(), allowed), "Bearer good")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH-040001")

	admin := NewAuthMiddleware(stubIssuer{role: entity.UserRoleAdmin})
	rec = get(newEngine(admin.Authenticate(), allowed), "Bearer good")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(newEngine(allowed), "")
	assert.Equal(t, http.StatusForbidden, rec.Code, "no identity means no role")
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine := newEngine(NewRateLimiter(client, "login", 2, time.Minute).Middleware())

	assert.Equal(t, http.StatusOK, get(engine, "").Code)
	assert.Equal(t, http.StatusOK, get(engine, "").Code)

	rec := get(engine, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "AUTH-020003")
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	mr.FastForward(61 * time.Second)
	assert.Equal(t, http.StatusOK, get(engine, "").Code)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	engine := newEngine(NewRateLimiter(client, "login", 1, time.Minute).Middleware())
	assert.Equal(t, http.StatusOK, get(engine, "").Code)
	assert.Equal(t, http.StatusOK, get(engine, "").Code)
}
