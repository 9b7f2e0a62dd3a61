package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/domain/entity"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
)

// UserModule mounts the admin-only account management routes.
type UserModule struct {
	Handler *handlers.UserHandler
	Gate    gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, gate gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Gate: gate}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.Use(m.Gate, middleware.RequireRoles(entity.RoleAdmin))
	{
		users.GET("", m.Handler.List)
		users.POST("", m.Handler.Create)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
