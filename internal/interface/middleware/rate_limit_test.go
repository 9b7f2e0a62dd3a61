package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/devtrails/campdirect/internal/domain/entity"
)

func limiterCtx(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/bootcamps", nil)
	c.Request.RemoteAddr = "203.0.113.7:4567"
	return c
}

func TestKeyByUserUsesPrincipal(t *testing.T) {
	c := limiterCtx(t)
	c.Set(CtxPrincipalKey, &entity.User{ID: "user-42", Role: entity.RolePublisher})

	assert.Equal(t, "rl:user:user-42", KeyByUser()(c))
}

func TestKeyByUserAnonymousFallsBackToIP(t *testing.T) {
	c := limiterCtx(t)

	assert.Equal(t, "rl:user:anon:ip:203.0.113.7", KeyByUser()(c))
}

func TestKeyByIPAndPathIsPerRoute(t *testing.T) {
	c := limiterCtx(t)

	key := KeyByIPAndPath()(c)
	assert.Contains(t, key, "/api/v1/bootcamps")
	assert.Contains(t, key, "203.0.113.7")
}
