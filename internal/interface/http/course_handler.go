package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/application"
	"github.com/devtrails/campdirect/internal/interface/middleware"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/response"
	"github.com/devtrails/campdirect/pkg/validation"
)

type CourseHandler struct {
	Courses *application.CourseService
}

func NewCourseHandler(courses *application.CourseService) *CourseHandler {
	return &CourseHandler{Courses: courses}
}

type courseRequest struct {
	Title                string  `json:"title" binding:"omitempty,max=100"`
	Description          string  `json:"description" binding:"omitempty,max=500"`
	Weeks                string  `json:"weeks"`
	Tuition              float64 `json:"tuition" binding:"omitempty,gte=0"`
	MinimumSkill         string  `json:"minimumSkill" binding:"omitempty,oneof=beginner intermediate advanced"`
	ScholarshipAvailable *bool   `json:"scholarshipAvailable"`
}

func (r courseRequest) input() application.CourseInput {
	return application.CourseInput{
		Title:                r.Title,
		Description:          r.Description,
		Weeks:                r.Weeks,
		Tuition:              r.Tuition,
		MinimumSkill:         r.MinimumSkill,
		ScholarshipAvailable: r.ScholarshipAvailable,
	}
}

// List GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	spec := parseQuery(c.Request.URL.Query())
	listing, err := h.Courses.List(c.Request.Context(), spec)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, listing.Items, listing.Total, paginationMeta(spec, listing.Total))
}

// ListByBootcamp GET /api/v1/bootcamps/:id/courses
func (h *CourseHandler) ListByBootcamp(c *gin.Context) {
	out, err := h.Courses.ListByBootcamp(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, out, len(out), nil)
}

// Get GET /api/v1/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

// Create POST /api/v1/bootcamps/:id/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	if req.Title == "" || req.Description == "" {
		response.FromError(c, apperr.ValidationMsg("title and description are required"))
		return
	}
	course, err := h.Courses.Create(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, course)
}

// Update PUT /api/v1/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	course, err := h.Courses.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

// Delete DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Courses.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
