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

type ReviewHandler struct {
	Reviews *application.ReviewService
}

func NewReviewHandler(reviews *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

type reviewRequest struct {
	Title  string `json:"title" binding:"omitempty,max=100"`
	Text   string `json:"text"`
	Rating int    `json:"rating" binding:"omitempty,gte=1,lte=10"`
}

// List GET /api/v1/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	spec := parseQuery(c.Request.URL.Query())
	listing, err := h.Reviews.List(c.Request.Context(), spec)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, listing.Items, listing.Total, paginationMeta(spec, listing.Total))
}

// ListByBootcamp GET /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) ListByBootcamp(c *gin.Context) {
	out, err := h.Reviews.ListByBootcamp(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, out, len(out), nil)
}

// Get GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

// Create POST /api/v1/bootcamps/:id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	if req.Title == "" || req.Rating == 0 {
		response.FromError(c, apperr.ValidationMsg("title and rating are required"))
		return
	}
	r, err := h.Reviews.Create(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, r)
}

// Update PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	r, err := h.Reviews.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

// Delete DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Reviews.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
