package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/container"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
)

// AuthModule mounts the session and password lifecycle routes. The
// credential endpoints carry tighter per-IP limits than the global one.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Gate    gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, gate gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Gate: gate}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	credsLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", credsLimiter, m.Handler.Register)
	rg.POST("/auth/login", credsLimiter, m.Handler.Login)
	rg.GET("/auth/logout", m.Handler.Logout)
	rg.POST("/auth/forgotpassword", resetLimiter, m.Handler.ForgotPassword)
	rg.PUT("/auth/resetpassword/:resettoken", resetLimiter, m.Handler.ResetPassword)

	auth := rg.Group("/auth")
	auth.Use(m.Gate)
	{
		auth.GET("/me", m.Handler.Me)
		auth.PUT("/updatedetails", m.Handler.UpdateDetails)
		auth.PUT("/updatepassword", m.Handler.UpdatePassword)
	}
}
