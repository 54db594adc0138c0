package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leagermaxl/nutri-smart/middlewares"
	"github.com/leagermaxl/nutri-smart/services"
)

type AuthController struct {
	Svc          *services.AuthService
	CookieSecure bool
}

func NewAuthController(svc *services.AuthService, cookieSecure bool) *AuthController {
	return &AuthController{Svc: svc, CookieSecure: cookieSecure}
}

func (h *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"message": "Registered successfully"})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.Svc.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"message": "Logged in successfully"})
}

func (h *AuthController) setAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AuthCookieName, token, 15*60, "/", "", h.CookieSecure, true)
}
