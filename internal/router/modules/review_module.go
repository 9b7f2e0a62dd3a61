package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/domain/entity"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
)

// ReviewModule mounts the top-level review routes; nested creation lives
// under the bootcamp module.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
	Gate    gin.HandlerFunc
}

func NewReviewModule(h *handlers.ReviewHandler, gate gin.HandlerFunc) *ReviewModule {
	return &ReviewModule{Handler: h, Gate: gate}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	review := middleware.RequireRoles(entity.RoleUser, entity.RoleAdmin)

	rg.GET("/reviews", m.Handler.List)
	rg.GET("/reviews/:id", m.Handler.Get)

	auth := rg.Group("/reviews")
	auth.Use(m.Gate)
	{
		auth.PUT("/:id", review, m.Handler.Update)
		auth.DELETE("/:id", review, m.Handler.Delete)
	}
}
