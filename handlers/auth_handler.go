package handlers

import (
	"net/http"

	"TodoAPI/middlewares"
	"TodoAPI/models"
	"TodoAPI/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup handles POST /api/auth/signup (public).
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	out, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out) // {token, user}
}

// Login handles POST /api/auth/login (public).
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	out, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Me handles GET /api/auth/me (protected).
func (h *AuthHandler) Me(c *gin.Context) {
	out, err := h.svc.Me(c.Request.Context(), middlewares.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
