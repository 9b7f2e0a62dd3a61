package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/domain/entity"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
)

// CourseModule mounts the top-level course routes; nested creation lives
// under the bootcamp module.
type CourseModule struct {
	Handler *handlers.CourseHandler
	Gate    gin.HandlerFunc
}

func NewCourseModule(h *handlers.CourseHandler, gate gin.HandlerFunc) *CourseModule {
	return &CourseModule{Handler: h, Gate: gate}
}

func (m *CourseModule) Register(rg *gin.RouterGroup) {
	publish := middleware.RequireRoles(entity.RolePublisher, entity.RoleAdmin)

	rg.GET("/courses", m.Handler.List)
	rg.GET("/courses/:id", m.Handler.Get)

	auth := rg.Group("/courses")
	auth.Use(m.Gate)
	{
		auth.PUT("/:id", publish, m.Handler.Update)
		auth.DELETE("/:id", publish, m.Handler.Delete)
	}
}
