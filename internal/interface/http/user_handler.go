package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/application"
	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/response"
	"github.com/devtrails/campdirect/pkg/validation"
)

// UserHandler is the admin-only account CRUD surface; the router mounts
// it behind Authenticate plus RequireRoles(admin).
type UserHandler struct {
	Users *application.UserService
}

func NewUserHandler(users *application.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher admin"`
}

// List GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	spec := parseQuery(c.Request.URL.Query())
	listing, err := h.Users.List(c.Request.Context(), spec)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.List(c, listing.Items, listing.Total, paginationMeta(spec, listing.Total))
}

// Get GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		response.FromError(c, apperr.ValidationMsg("name, email and password are required"))
		return
	}
	u, err := h.Users.Create(c.Request.Context(), application.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusCreated, u)
}

// Update PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	u, err := h.Users.Update(c.Request.Context(), c.Param("id"), application.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

// Delete DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
