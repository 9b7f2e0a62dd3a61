package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devtrails/campdirect/internal/application"
	"github.com/devtrails/campdirect/internal/domain/entity"
	"github.com/devtrails/campdirect/internal/interface/middleware"
	"github.com/devtrails/campdirect/pkg/apperr"
	"github.com/devtrails/campdirect/pkg/helpers"
	"github.com/devtrails/campdirect/pkg/response"
	"github.com/devtrails/campdirect/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.CookieManager
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=user publisher"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	_, token, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.Role),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetToken(c, token)
	response.Token(c, http.StatusCreated, token)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	_, token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetToken(c, token)
	response.Token(c, http.StatusOK, token)
}

// Logout GET /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{})
}

// Me GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, http.StatusOK, middleware.Principal(c))
}

type updateDetailsRequest struct {
	Name  string `json:"name" binding:"omitempty"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdateDetails PUT /api/v1/auth/updatedetails
func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	u, err := h.Auth.UpdateDetails(c.Request.Context(), middleware.Principal(c).ID, application.UpdateDetailsInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdatePassword PUT /api/v1/auth/updatepassword
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	token, err := h.Auth.UpdatePassword(c.Request.Context(), middleware.Principal(c).ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetToken(c, token)
	response.Token(c, http.StatusOK, token)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword POST /api/v1/auth/forgotpassword
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	if err := h.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, err)
		return
	}
	response.Msg(c, http.StatusOK, "Email sent")
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

// ResetPassword PUT /api/v1/auth/resetpassword/:resettoken
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToDetails(err)))
		return
	}
	token, err := h.Auth.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.Cookies.SetToken(c, token)
	response.Token(c, http.StatusOK, token)
}
