package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/container"
	"github.com/devtrails/campdirect/internal/domain/entity"
	handlers "github.com/devtrails/campdirect/internal/interface/http"
	"github.com/devtrails/campdirect/internal/interface/middleware"
)

// BootcampModule mounts the bootcamp routes plus the nested course and
// review collections. Reads are public; writes require a publisher or
// admin, except reviews which belong to users.
type BootcampModule struct {
	Bootcamps *handlers.BootcampHandler
	Courses   *handlers.CourseHandler
	Reviews   *handlers.ReviewHandler
	Gate      gin.HandlerFunc
}

func NewBootcampModule(b *handlers.BootcampHandler, c *handlers.CourseHandler, r *handlers.ReviewHandler, gate gin.HandlerFunc) *BootcampModule {
	return &BootcampModule{Bootcamps: b, Courses: c, Reviews: r, Gate: gate}
}

func (m *BootcampModule) Register(rg *gin.RouterGroup) {
	publish := middleware.RequireRoles(entity.RolePublisher, entity.RoleAdmin)
	review := middleware.RequireRoles(entity.RoleUser, entity.RoleAdmin)
	// photo uploads hit object storage, so cap them per principal
	uploadLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByUser(), nil)

	rg.GET("/bootcamps", m.Bootcamps.List)
	rg.GET("/bootcamps/search", m.Bootcamps.Search)
	rg.GET("/bootcamps/radius/:zipcode/:distance", m.Bootcamps.WithinRadius)
	rg.GET("/bootcamps/:id", m.Bootcamps.Get)
	rg.GET("/bootcamps/:id/courses", m.Courses.ListByBootcamp)
	rg.GET("/bootcamps/:id/reviews", m.Reviews.ListByBootcamp)

	auth := rg.Group("/bootcamps")
	auth.Use(m.Gate)
	{
		auth.POST("", publish, m.Bootcamps.Create)
		auth.PUT("/:id", publish, m.Bootcamps.Update)
		auth.DELETE("/:id", publish, m.Bootcamps.Delete)
		auth.PUT("/:id/photo", publish, uploadLimiter, m.Bootcamps.UploadPhoto)
		auth.POST("/:id/courses", publish, m.Courses.Create)
		auth.POST("/:id/reviews", review, m.Reviews.Create)
	}
}
