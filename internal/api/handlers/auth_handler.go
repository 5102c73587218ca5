package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/services"
)

type AuthHandler struct {
	svc     services.AuthService
	cookies *CookieHelper
}

func NewAuthHandler(svc services.AuthService, cookies *CookieHelper) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"omitempty,oneof=STUDENT ADMIN"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userView struct {
	ID      string          `json:"id"`
	Email   string          `json:"email"`
	Role    models.UserRole `json:"role"`
	Profile *models.Profile `json:"profile,omitempty"`
}

func viewOfUser(u *models.User, withProfile bool) userView {
	v := userView{ID: u.ID, Email: u.Email, Role: u.Role}
	if withProfile {
		v.Profile = u.Profile
	}
	return v
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, "AuthHandler.Register", &req) {
		return
	}

	u, err := h.svc.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.UserRole(req.Role),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"userId":  u.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, "AuthHandler.Login", &req) {
		return
	}

	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.cookies.SetSession(c, token)
	c.JSON(http.StatusOK, gin.H{"user": viewOfUser(u, true)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := h.svc.Logout(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	h.cookies.ClearSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	u, err := h.svc.Me(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOfUser(u, true)})
}
