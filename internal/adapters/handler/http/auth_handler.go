package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowtrack/routine-engine/internal/core/domain"
	"github.com/glowtrack/routine-engine/internal/core/services"
)

type AuthHandler struct {
	service *services.AuthService
	tokens  *services.TokenService
}

func NewAuthHandler(service *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		service: service,
		tokens:  tokens,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type coachResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", err.Error())
		return
	}

	coach, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			respondError(c, http.StatusConflict, CodeConflict, "email already exists")
		case errors.Is(err, domain.ErrInvalidEmail):
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid email format")
		case errors.Is(err, domain.ErrPasswordTooShort):
			respondError(c, http.StatusBadRequest, CodeInvalidRequest, "password too short")
		default:
			_ = c.Error(err)
			respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, coachResponse{
		ID:    coach.ID,
		Email: coach.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request parameters", err.Error())
		return
	}

	coach, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, CodeUnauthorized, "invalid credentials")
			return
		}
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		return
	}

	token, err := h.tokens.GenerateToken(coach.ID)
	if err != nil {
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
