package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/application"
	"github.com/devtrails/campdirect/internal/interface/middleware"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/response"
	"github.com/devtrails/campdirect/pkg/validation"
)

type BootcampHandler struct {
	Bootcamps *application.BootcampService
}

func NewBootcampHandler(bootcamps *application.BootcampService) *BootcampHandler {
	return &BootcampHandler{Bootcamps: bootcamps}
}

type bootcampRequest struct {
	Name          string   `json:"name" binding:"omitempty,max=50"`
	Description   string   `json:"description" binding:"omitempty,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

func (r bootcampRequest) input() application.BootcampInput {
	return application.BootcampInput{
		Name:          r.Name,
		Description:   r.Description,
		Website:       r.Website,
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		Careers:       r.Careers,
		Housing:       r.Housing,
		JobAssistance: r.JobAssistance,
		JobGuarantee:  r.JobGuarantee,
		AcceptGi:      r.AcceptGi,
	}
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	spec := parseQuery(c.Request.URL.Query())
	listing, err := h.Bootcamps.List(c.Request.Context(), spec)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, listing.Items, listing.Total, paginationMeta(spec, listing.Total))
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Bootcamps.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req bootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	if req.Name == "" || req.Description == "" {
		response.FromError(c, apperr.ValidationMsg("name and description are required"))
		return
	}
	b, err := h.Bootcamps.Create(c.Request.Context(), middleware.Principal(c), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, b)
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req bootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	b, err := h.Bootcamps.Update(c.Request.Context(), middleware.Principal(c), c.Param("id"), req.input())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Bootcamps.Delete(c.Request.Context(), middleware.Principal(c), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

// WithinRadius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) WithinRadius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.FromError(c, apperr.ValidationMsg("distance must be a number of miles"))
		return
	}
	out, err := h.Bootcamps.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, out, len(out), nil)
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.FromError(c, apperr.ValidationMsg("Please upload a file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.FromError(c, apperr.Server("open upload", err))
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Bootcamps.UploadPhoto(c.Request.Context(), middleware.Principal(c), c.Param("id"),
		f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"photo": url})
}

// Search GET /api/v1/bootcamps/search?q=...
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.FromError(c, apperr.ValidationMsg("query parameter q is required"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Bootcamps.Search(c.Request.Context(), q, size)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, hits, len(hits), nil)
}
