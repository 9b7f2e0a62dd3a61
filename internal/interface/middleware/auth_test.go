package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devtrails/campdirect/internal/domain/entity"
	repo "github.com/devtrails/campdirect/internal/domain/repository"
	"github.com/devtrails/campdirect/pkg/credentials"
)

type staticLookup struct {
	users map[string]*entity.User
}

func (s *staticLookup) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

func authRig(t *testing.T) (*gin.Engine, *credentials.TokenManager, *staticLookup) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := credentials.NewTokenManager("test-secret", time.Hour)
	users := &staticLookup{users: map[string]*entity.User{
		"u1": {ID: "u1", Role: entity.RoleUser},
		"p1": {ID: "p1", Role: entity.RolePublisher},
	}}
	r := gin.New()
	r.GET("/me", Authenticate(users, tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": Principal(c).ID})
	})
	r.GET("/publish", Authenticate(users, tokens), RequireRoles(entity.RolePublisher, entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/no-gate", RequireRoles(entity.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens, users
}

func TestAuthenticateMissingToken(t *testing.T) {
	r, _, _ := authRig(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	r, _, _ := authRig(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	r, tokens, _ := authRig(t)
	token, _, err := tokens.Issue("ghost")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateBearerToken(t *testing.T) {
	r, tokens, _ := authRig(t)
	token, _, err := tokens.Issue("u1")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthenticateCookieToken(t *testing.T) {
	r, tokens, _ := authRig(t)
	token, _, err := tokens.Issue("u1")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateHeaderTakesPrecedence(t *testing.T) {
	r, tokens, _ := authRig(t)
	headerToken, _, err := tokens.Issue("p1")
	require.NoError(t, err)
	cookieToken, _, err := tokens.Issue("u1")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+headerToken)
	req.AddCookie(&http.Cookie{Name: "token", Value: cookieToken})
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "p1")
}

func TestRequireRolesDeniesWrongRole(t *testing.T) {
	r, tokens, _ := authRig(t)
	token, _, err := tokens.Issue("u1")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/publish", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	r, tokens, _ := authRig(t)
	token, _, err := tokens.Issue("p1")
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/publish", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesFailsSafeWithoutPrincipal(t *testing.T) {
	// misconfigured route with no Authenticate in front denies rather
	// than panics
	r, _, _ := authRig(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-gate", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
